package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AnyUserName/asciisketch/internal/report"
	"github.com/spf13/cobra"
)

// DefaultReportName is looked up when stats is given a directory.
const DefaultReportName = "asciisketch.report.json"

var statsCmd = &cobra.Command{
	Use:   "stats <report_or_dir>",
	Short: "Display statistics for a render report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the report inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, DefaultReportName)
	}

	r, err := report.Read(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r)
	return nil
}

func printStats(w io.Writer, r *report.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report version: %d\n", r.Version)
	fmt.Fprintf(w, "  Generated:      %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Profile:        %s\n", r.Profile)
	fmt.Fprintf(w, "  Status:         %s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintf(w, "  Error:          %s\n", r.Error)
	}
	fmt.Fprintln(w)

	s := r.Source
	fmt.Fprintf(w, "  Source:         %s\n", s.Path)
	fmt.Fprintf(w, "  Dimensions:     %dx%d %s (%s)\n", s.Width, s.Height, s.Format, formatBytes(s.Size))
	fmt.Fprintf(w, "  Levels:         %d..%d, gamma %.2f\n", r.Levels.Min, r.Levels.Max, r.Levels.Gamma)
	fmt.Fprintf(w, "  Step delay:     %d ms\n", r.StepMS)
	if o := r.Output; o != nil {
		fmt.Fprintf(w, "  Art:            %d cols x %d rows (%d cells)\n", o.Cols, o.Rows, o.Cols*o.Rows)
		fmt.Fprintf(w, "  Art hash:       %s\n", o.Hash)
	}
	fmt.Fprintln(w)

	// Per-stage breakdown.
	fmt.Fprintln(w, "  Stages:")
	var slowest report.StageInfo
	for _, st := range r.Stages {
		line := fmt.Sprintf("    %-7s %9.2f ms", st.Name, st.ElapsedMS)
		if p := st.Preview; p != nil {
			line += fmt.Sprintf("  %-5s %3dx%-3d %s", p.Format, p.Width, p.Height, formatBytes(p.Size))
		}
		fmt.Fprintln(w, line)
		if st.ElapsedMS > slowest.ElapsedMS {
			slowest = st
		}
	}
	fmt.Fprintln(w)

	st := r.Stats
	fmt.Fprintf(w, "  Work time:      %.2f ms\n", st.TotalElapsedMS)
	if slowest.Name != "" && st.TotalElapsedMS > 0 {
		fmt.Fprintf(w, "  Slowest step:   %s (%.0f%%)\n", slowest.Name, slowest.ElapsedMS/st.TotalElapsedMS*100)
	}
	if r.StepMS > 0 && len(r.Stages) > 0 {
		// The last step fires len(stages) delays after start.
		fmt.Fprintf(w, "  Scheduled wait: %d ms\n", r.StepMS*int64(len(r.Stages)))
	}
	fmt.Fprintf(w, "  Previews:       %d (%s)\n", st.TotalPreviews, formatBytes(st.PreviewBytes))

	// Warnings.
	var warnings []string
	if r.Status == report.StatusComplete && r.Output == nil {
		warnings = append(warnings, "complete run has no output")
	}
	if r.PreviewDir != "" {
		for _, name := range []string{"resize", "blur", "blend"} {
			if !hasPreview(r, name) {
				warnings = append(warnings, fmt.Sprintf("stage %q has no preview", name))
			}
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}

func hasPreview(r *report.Report, stage string) bool {
	for _, st := range r.Stages {
		if st.Name == stage {
			return st.Preview != nil
		}
	}
	return false
}
