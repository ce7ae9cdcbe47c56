package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/asciisketch/internal/art"
	"github.com/AnyUserName/asciisketch/internal/encoder"
	"github.com/AnyUserName/asciisketch/internal/hasher"
	"github.com/AnyUserName/asciisketch/internal/keeper"
	"github.com/AnyUserName/asciisketch/internal/loop"
	"github.com/AnyUserName/asciisketch/internal/preview"
	"github.com/AnyUserName/asciisketch/internal/profile"
	"github.com/AnyUserName/asciisketch/internal/render"
	"github.com/AnyUserName/asciisketch/internal/report"
	"github.com/AnyUserName/asciisketch/internal/stage"
	"github.com/spf13/cobra"
)

// renderConfig is everything one render needs, after flags and the
// profile have been merged.
type renderConfig struct {
	input      string
	out        string // "" or "-" for stdout
	png        string
	previews   string
	previewFmt string
	quality    int
	strip      string
	report     string
	fontSize   float64

	profile profile.Profile
	height  int
}

var (
	renderOut        string
	renderPNG        string
	renderPreviews   string
	renderPreviewFmt string
	renderQuality    int
	renderStrip      string
	renderReport     string
	renderProfile    string
	renderWidth      int
	renderHeight     int
	renderMin        uint8
	renderMax        uint8
	renderGamma      float64
	renderStepMS     int
	renderFontSize   float64
)

var renderCmd = &cobra.Command{
	Use:   "render <image>",
	Short: "Render an image as ASCII art",
	Long: `Decodes an image (png, jpeg, gif, bmp, tiff, webp) and draws it as text.

The pipeline runs as four deferred steps (resize, blur, blend, glyphs) on
an event loop, each one --step milliseconds after the previous. With
--previews a thumbnail of every intermediate image is written as it is
produced; file names are content-addressed: <step>.<hash>.<ext>

Press Ctrl-C to cancel a run between steps.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "out", "o", "-", "text output file (- for stdout)")
	f.StringVar(&renderPNG, "png", "", "also rasterise the art to this image file")
	f.StringVar(&renderPreviews, "previews", "", "directory for per-stage thumbnails")
	f.StringVar(&renderPreviewFmt, "preview-format", "", "thumbnail format: jpeg, png, bmp, tiff (default from profile)")
	f.IntVarP(&renderQuality, "quality", "q", 0, "thumbnail JPEG quality 1-100 (0 = default)")
	f.StringVar(&renderStrip, "strip", "", "write an HTML page with the progress strip and the art")
	f.StringVar(&renderReport, "report", "", "write a JSON run report to this file")
	f.StringVarP(&renderProfile, "profile", "p", profile.DefaultName, "level preset")
	f.IntVarP(&renderWidth, "width", "W", 0, "target width in columns (never upscales)")
	f.IntVarP(&renderHeight, "height", "H", 0, "target height in source pixels (never upscales)")
	f.Uint8Var(&renderMin, "min", art.DefaultMinLevel, "low level threshold 0-255")
	f.Uint8Var(&renderMax, "max", art.DefaultMaxLevel, "high level threshold 0-255")
	f.Float64Var(&renderGamma, "gamma", art.DefaultGamma, "gamma inside the level window")
	f.IntVar(&renderStepMS, "step", 0, "delay before each step in ms (default from profile)")
	f.Float64Var(&renderFontSize, "font-size", render.DefaultFontSize, "point size for --png")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()

	// Flags override the preset only when given.
	prof := profile.Get(renderProfile)
	flags := cmd.Flags()
	if flags.Changed("min") {
		prof.MinLevel = renderMin
	}
	if flags.Changed("max") {
		prof.MaxLevel = renderMax
	}
	if flags.Changed("gamma") {
		prof.Gamma = renderGamma
	}
	if flags.Changed("width") {
		prof.Width = renderWidth
	}
	if flags.Changed("step") {
		if renderStepMS < 0 {
			return fmt.Errorf("step must not be negative, got %d", renderStepMS)
		}
		prof.Step = time.Duration(renderStepMS) * time.Millisecond
	}

	cfg := renderConfig{
		input:      args[0],
		out:        renderOut,
		png:        renderPNG,
		previews:   renderPreviews,
		previewFmt: renderPreviewFmt,
		quality:    renderQuality,
		strip:      renderStrip,
		report:     renderReport,
		fontSize:   renderFontSize,
		profile:    prof,
		height:     renderHeight,
	}

	logVerbose("input:   %s", cfg.input)
	logVerbose("profile: %s (min=%d, max=%d, gamma=%.2f, step=%s)",
		prof.Name, prof.MinLevel, prof.MaxLevel, prof.Gamma, prof.Step)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rep, err := renderImage(ctx, cfg, cmd.OutOrStdout())
	if rep != nil {
		printRenderReport(cmd.ErrOrStderr(), rep, time.Since(start))
	}
	return err
}

// renderImage decodes the input, drives one staged run on an event loop
// and writes every requested output. The report is returned whenever the
// run got far enough to start, even if it then failed.
func renderImage(ctx context.Context, cfg renderConfig, stdout io.Writer) (*report.Report, error) {
	data, err := os.ReadFile(cfg.input)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	opts := cfg.profile.Options()
	if cfg.height > 0 {
		opts = append(opts, art.WithHeight(cfg.height))
	}
	src, err := art.Decode(data)
	if err != nil {
		return nil, err
	}
	gen, err := art.New(src, opts...)
	if err != nil {
		return nil, err
	}
	cols, rows := gen.GridSize()
	logVerbose("source:  %dx%d %s -> %d cols x %d rows", src.Width(), src.Height(), src.Format(), cols, rows)

	rep := report.New(cfg.profile.Name)
	rep.Source = report.SourceInfo{
		Path:   cfg.input,
		Format: src.Format(),
		Width:  src.Width(),
		Height: src.Height(),
		Size:   int64(len(data)),
		Hash:   hasher.ContentHash(data, hasher.NameLen),
	}
	c := gen.Config()
	rep.Levels = report.Levels{Min: c.MinLevel, Max: c.MaxLevel, Gamma: c.Gamma}
	rep.StepMS = cfg.profile.Step.Milliseconds()

	// Sinks.
	lines := &render.Lines{}
	sinks := render.Tee{lines}
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()

	text := stdout
	toFile := cfg.out != "" && cfg.out != "-"
	if toFile {
		f, err := os.Create(cfg.out)
		if err != nil {
			return nil, fmt.Errorf("create text output: %w", err)
		}
		closers = append(closers, f)
		text = f
	}
	sinks = append(sinks, render.NewText(text))

	if cfg.png != "" {
		f, err := os.Create(cfg.png)
		if err != nil {
			return nil, fmt.Errorf("create png output: %w", err)
		}
		closers = append(closers, f)
		ps, err := render.NewPNG(f, nil, cfg.fontSize, pngEncoder(cfg.png))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, ps)
	}

	// Previews.
	var pw *preview.Writer
	runOpts := []stage.Option{stage.WithStep(cfg.profile.Step)}
	if cfg.previews != "" || cfg.strip != "" {
		format := cfg.previewFmt
		if format == "" {
			format = cfg.profile.Preview
		}
		enc, err := encoder.NewRegistry(cfg.quality).Resolve(format)
		if err != nil {
			return nil, err
		}

		var popts []preview.Option
		if cfg.previews != "" {
			popts = append(popts, preview.ToDir(cfg.previews), preview.WithReport(rep))
			rep.PreviewDir = relativeTo(cfg.report, cfg.previews)
		}
		if cfg.strip != "" {
			popts = append(popts, preview.KeepDataURIs())
		}
		pw = preview.New(enc, popts...)
		runOpts = append(runOpts, stage.WithObserver(pw.Observe))
	}

	run, err := drive(ctx, gen, sinks, runOpts...)
	if run == nil {
		return nil, err
	}

	for _, t := range run.Timings() {
		rep.SetElapsed(t.Stage.Step(), t.Elapsed)
	}
	if err != nil {
		status := report.StatusFailed
		if errors.Is(err, stage.ErrCanceled) {
			status = report.StatusCanceled
		}
		rep.Fail(status, err)
	} else {
		rep.Output = &report.Output{
			Cols: cols,
			Rows: len(lines.Rows()),
			Hash: hasher.Rows(lines.Rows()),
			PNG:  cfg.png,
		}
		if toFile {
			rep.Output.Text = cfg.out
		}
		if cfg.strip != "" {
			if err := writeStrip(cfg.strip, cfg.input, pw, lines.String()); err != nil {
				return rep, err
			}
		}
	}

	if cfg.report != "" {
		if werr := report.WriteJSON(rep, cfg.report); werr != nil {
			return rep, fmt.Errorf("write report: %w", werr)
		}
		logVerbose("report:  %s", cfg.report)
	}
	if err != nil {
		return rep, fmt.Errorf("render: %w", err)
	}
	return rep, nil
}

// drive starts a run on a fresh event loop and blocks until it is done or
// ctx ends. The loop runs on the calling goroutine, so the run, its keeper
// and the progress ticker are only ever touched from here.
func drive(ctx context.Context, gen *art.Generator, sink stage.Sink, opts ...stage.Option) (*stage.Run, error) {
	l := loop.New()
	progress := keeper.New(l)
	defer progress.Close()

	var (
		run      *stage.Run
		startErr error
	)
	l.Post(func() {
		run, startErr = stage.Start(gen, l, sink, opts...)
		if startErr != nil {
			l.Stop()
			return
		}
		if verbose {
			if _, err := progress.Repeat(func() {
				logVerbose("progress: %s (%d pending)", run.State(), run.Pending())
			}, 250*time.Millisecond); err != nil {
				logVerbose("progress ticker: %v", err)
			}
		}
		go func() {
			<-run.Done()
			l.Stop()
		}()
	})

	if err := l.Run(ctx); err != nil {
		if run == nil {
			return nil, err
		}
		run.Cancel()
	}
	if startErr != nil {
		return nil, startErr
	}
	return run, run.Err()
}

// pngEncoder picks the raster format from the file extension.
func pngEncoder(path string) encoder.Encoder {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if enc := encoder.NewRegistry(0).Get(ext); enc != nil {
		return enc
	}
	return &encoder.PNGEncoder{}
}

func writeStrip(path, title string, pw *preview.Writer, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create strip: %w", err)
	}
	defer f.Close()
	if err := preview.WriteStrip(f, filepath.Base(title), pw.Entries(), text); err != nil {
		return fmt.Errorf("write strip: %w", err)
	}
	return f.Close()
}

// relativeTo expresses dir relative to the directory of file, falling
// back to dir unchanged.
func relativeTo(file, dir string) string {
	if file == "" {
		return dir
	}
	rel, err := filepath.Rel(filepath.Dir(file), dir)
	if err != nil {
		return dir
	}
	return rel
}

func printRenderReport(w io.Writer, r *report.Report, elapsed time.Duration) {
	r.ComputeStats()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Source:    %s (%dx%d %s, %s)\n",
		r.Source.Path, r.Source.Width, r.Source.Height, r.Source.Format, formatBytes(r.Source.Size))
	fmt.Fprintf(w, "  Levels:    %d..%d gamma %.2f (profile %s)\n", r.Levels.Min, r.Levels.Max, r.Levels.Gamma, r.Profile)
	if r.Output != nil {
		fmt.Fprintf(w, "  Art:       %d cols x %d rows (%s)\n", r.Output.Cols, r.Output.Rows, r.Output.Hash)
	}
	for _, s := range r.Stages {
		line := fmt.Sprintf("    %-7s %8.2f ms", s.Name, s.ElapsedMS)
		if s.Preview != nil {
			line += fmt.Sprintf("  %s (%s)", s.Preview.Path, formatBytes(s.Preview.Size))
		}
		fmt.Fprintln(w, line)
	}
	if r.Status != report.StatusComplete {
		fmt.Fprintf(w, "  Status:    %s: %s\n", r.Status, r.Error)
	}
	fmt.Fprintf(w, "  Time:      %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)
}
