package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/AnyUserName/asciisketch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "asciisketch",
	Short: "Turn images into pencil-sketch ASCII art",
	Long: `asciisketch converts a raster image into rows of text whose density
follows the image's luminance.

The image is resized to a text grid, blended with a blurred negative of
itself, stretched through a level window and mapped onto 95 glyphs ranked
by ink coverage. Each step runs as a deferred task on an event loop, so
progress previews can be written while the art is being made.`,
	Version: version,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"asciisketch %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[asciisketch] "+format+"\n", args...)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
