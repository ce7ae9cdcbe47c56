package cmd

import (
	"fmt"

	"github.com/AnyUserName/asciisketch/internal/glyph"
	"github.com/golang/freetype/truetype"
	"github.com/spf13/cobra"
)

var (
	glyphsFont  string
	glyphsSize  float64
	glyphsChars string
)

var glyphsCmd = &cobra.Command{
	Use:   "glyphs",
	Short: "Rank characters by rendered ink coverage",
	Long: `Renders each character into a monospace cell and counts ink pixels,
then prints the characters densest first as a Go string literal.

The built-in table was produced this way from the printable ASCII set.
Use --font to rank for the font the art will be viewed in.`,
	Args: cobra.NoArgs,
	RunE: runGlyphs,
}

func init() {
	glyphsCmd.Flags().StringVar(&glyphsFont, "font", "", "TrueType font file (default Go Mono)")
	glyphsCmd.Flags().Float64Var(&glyphsSize, "size", 24, "point size to render at")
	glyphsCmd.Flags().StringVar(&glyphsChars, "chars", glyph.Printable, "characters to rank")
	rootCmd.AddCommand(glyphsCmd)
}

func runGlyphs(cmd *cobra.Command, _ []string) error {
	var (
		f   *truetype.Font
		err error
	)
	if glyphsFont != "" {
		f, err = glyph.LoadFont(glyphsFont)
	} else {
		f, err = glyph.MonoFont()
	}
	if err != nil {
		return err
	}
	if glyphsSize <= 0 {
		return fmt.Errorf("size must be positive, got %v", glyphsSize)
	}

	out := cmd.OutOrStdout()
	densities, cell := glyph.Measure(f, glyphsSize, glyphsChars)
	table, _ := glyph.Rank(f, glyphsSize, glyphsChars)

	logVerbose("cell: %dx%d px at %.0fpt", cell.Width, cell.Height, glyphsSize)
	if verbose {
		for _, d := range densities {
			logVerbose("  %q %4d px", d.Rune, d.Ink)
		}
	}

	fmt.Fprintf(out, "%q\n", table.String())
	fmt.Fprintf(out, "// %d glyphs, cell %dx%d px", table.Len(), cell.Width, cell.Height)
	if table.String() == glyph.Default.String() {
		fmt.Fprint(out, ", same order as the built-in table")
	}
	fmt.Fprintln(out)
	return nil
}
