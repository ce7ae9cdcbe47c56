package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty report with defaults.
func New(profileName string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Status:      StatusComplete,
	}
}

// stage returns the entry for name, appending one if needed. Stages keep
// the order in which they were first seen.
func (r *Report) stage(name string) *StageInfo {
	for i := range r.Stages {
		if r.Stages[i].Name == name {
			return &r.Stages[i]
		}
	}
	r.Stages = append(r.Stages, StageInfo{Name: name})
	return &r.Stages[len(r.Stages)-1]
}

// SetPreview records the thumbnail written for a stage.
func (r *Report) SetPreview(stage string, p Preview) {
	r.stage(stage).Preview = &p
}

// SetElapsed records how long a stage's work took.
func (r *Report) SetElapsed(stage string, d time.Duration) {
	r.stage(stage).ElapsedMS = float64(d.Microseconds()) / 1000
}

// Fail marks the run as stopped early.
func (r *Report) Fail(status string, err error) {
	r.Status = status
	if err != nil {
		r.Error = err.Error()
	}
}

// ComputeStats recalculates aggregate statistics from stages.
func (r *Report) ComputeStats() {
	var s Stats
	s.TotalStages = len(r.Stages)
	for _, st := range r.Stages {
		s.TotalElapsedMS += st.ElapsedMS
		if st.Preview != nil {
			s.TotalPreviews++
			s.PreviewBytes += st.Preview.Size
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a report from disk. Unknown fields are ignored so newer
// reports stay readable.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
