package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/asciisketch/internal/hasher"
	"github.com/AnyUserName/asciisketch/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a render report and check its preview files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	reportPath := args[0]

	r, err := report.Read(reportPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errs := validateReport(r, filepath.Dir(reportPath))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Report is valid")
		fmt.Fprintf(out, "  ✓ %d stages, %d previews, all files present\n", r.Stats.TotalStages, r.Stats.TotalPreviews)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

// stageOrder is the order steps run in.
var stageOrder = map[string]int{"resize": 0, "blur": 1, "blend": 2, "glyphs": 3}

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if r.Source.Width <= 0 || r.Source.Height <= 0 {
		errs = append(errs, fmt.Sprintf("invalid source dimensions %dx%d", r.Source.Width, r.Source.Height))
	}
	if r.Levels.Min >= r.Levels.Max {
		errs = append(errs, fmt.Sprintf("min level %d not below max level %d", r.Levels.Min, r.Levels.Max))
	}
	if r.Levels.Gamma <= 0 {
		errs = append(errs, fmt.Sprintf("invalid gamma %v", r.Levels.Gamma))
	}
	if r.StepMS < 0 {
		errs = append(errs, fmt.Sprintf("negative step %d ms", r.StepMS))
	}

	switch r.Status {
	case report.StatusComplete:
		o := r.Output
		if o == nil {
			errs = append(errs, "complete run has no output")
			break
		}
		if o.Cols <= 0 || o.Rows <= 0 {
			errs = append(errs, fmt.Sprintf("invalid art size %dx%d", o.Cols, o.Rows))
		}
		if len(o.Hash) != hasher.NameLen {
			errs = append(errs, fmt.Sprintf("art hash %q is not %d hex chars", o.Hash, hasher.NameLen))
		}
		if len(r.Stages) != len(stageOrder) {
			errs = append(errs, fmt.Sprintf("complete run has %d stages, want %d", len(r.Stages), len(stageOrder)))
		}
	case report.StatusFailed, report.StatusCanceled:
		if r.Error == "" {
			errs = append(errs, fmt.Sprintf("%s run has no error", r.Status))
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown status %q", r.Status))
	}

	previewDir := r.PreviewDir
	if !filepath.IsAbs(previewDir) {
		previewDir = filepath.Join(baseDir, previewDir)
	}

	last := -1
	seenPaths := map[string]bool{}
	for i, st := range r.Stages {
		pos, ok := stageOrder[st.Name]
		if !ok {
			errs = append(errs, fmt.Sprintf("stage[%d]: unknown stage %q", i, st.Name))
			continue
		}
		if pos <= last {
			errs = append(errs, fmt.Sprintf("stage[%d]: %q out of order", i, st.Name))
		}
		last = pos
		if st.ElapsedMS < 0 {
			errs = append(errs, fmt.Sprintf("stage %q: negative elapsed time", st.Name))
		}

		p := st.Preview
		if p == nil {
			continue
		}
		if st.Name == "glyphs" {
			errs = append(errs, "stage \"glyphs\" cannot have a preview")
		}
		if p.Width <= 0 || p.Height <= 0 {
			errs = append(errs, fmt.Sprintf("stage %q: invalid preview dimensions %dx%d", st.Name, p.Width, p.Height))
		}
		if p.Path == "" {
			errs = append(errs, fmt.Sprintf("stage %q: missing preview path", st.Name))
			continue
		}
		if seenPaths[p.Path] {
			errs = append(errs, fmt.Sprintf("stage %q: duplicate preview path %q", st.Name, p.Path))
		}
		seenPaths[p.Path] = true

		errs = append(errs, checkPreviewFile(st.Name, filepath.Join(previewDir, p.Path), p)...)
	}

	// Verify stats consistency.
	previews := 0
	for _, st := range r.Stages {
		if st.Preview != nil {
			previews++
		}
	}
	if r.Stats.TotalStages != len(r.Stages) {
		errs = append(errs, fmt.Sprintf("stats.total_stages mismatch: %d != %d", r.Stats.TotalStages, len(r.Stages)))
	}
	if r.Stats.TotalPreviews != previews {
		errs = append(errs, fmt.Sprintf("stats.total_previews mismatch: %d != %d", r.Stats.TotalPreviews, previews))
	}

	return errs
}

func checkPreviewFile(stage, path string, p *report.Preview) []string {
	f, err := os.Open(path)
	if err != nil {
		return []string{fmt.Sprintf("stage %q: preview not found: %s", stage, p.Path)}
	}
	defer f.Close()

	var errs []string
	if info, err := f.Stat(); err == nil && p.Size > 0 && info.Size() != p.Size {
		errs = append(errs, fmt.Sprintf("stage %q: size mismatch: report=%d, disk=%d", stage, p.Size, info.Size()))
	}
	sum, err := hasher.ContentHashReader(f, len(p.Hash))
	if err != nil {
		return append(errs, fmt.Sprintf("stage %q: read preview: %v", stage, err))
	}
	if p.Hash == "" || sum != p.Hash {
		errs = append(errs, fmt.Sprintf("stage %q: hash mismatch: report=%q, disk=%q", stage, p.Hash, sum))
	}
	return errs
}
