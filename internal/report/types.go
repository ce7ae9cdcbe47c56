package report

// Report is the JSON record of one render run.
type Report struct {
	Version     int         `json:"version"`
	GeneratedAt string      `json:"generated_at"`
	Profile     string      `json:"profile"`
	Source      SourceInfo  `json:"source"`
	Levels      Levels      `json:"levels"`
	StepMS      int64       `json:"step_ms"`
	Status      string      `json:"status"`          // "complete", "failed" or "canceled"
	Error       string      `json:"error,omitempty"` // set unless Status is "complete"
	Output      *Output     `json:"output,omitempty"`
	PreviewDir  string      `json:"preview_dir,omitempty"` // relative to the report file
	Stages      []StageInfo `json:"stages"`
	Stats       Stats       `json:"stats"`
}

// SourceInfo holds metadata about the input image.
type SourceInfo struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // xxhash64 of the raw file
}

// Levels are the generator settings the run used.
type Levels struct {
	Min   uint8   `json:"min"`
	Max   uint8   `json:"max"`
	Gamma float64 `json:"gamma"`
}

// Output describes the drawn art.
type Output struct {
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
	Hash string `json:"hash"`           // digest of the printed rows
	Text string `json:"text,omitempty"` // file the rows went to, empty for stdout
	PNG  string `json:"png,omitempty"`
}

// StageInfo is one pipeline step: resize, blur, blend or glyphs.
type StageInfo struct {
	Name      string   `json:"name"`
	ElapsedMS float64  `json:"elapsed_ms"`
	Preview   *Preview `json:"preview,omitempty"`
}

// Preview is the thumbnail written for a stage.
type Preview struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to the preview directory
}

// Stats aggregates run metrics.
type Stats struct {
	TotalElapsedMS float64 `json:"total_elapsed_ms"`
	TotalStages    int     `json:"total_stages"`
	TotalPreviews  int     `json:"total_previews"`
	PreviewBytes   int64   `json:"preview_bytes"`
}

const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// SupportedVersion is the current schema version.
const SupportedVersion = 1
