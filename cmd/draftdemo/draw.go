package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/draft/preview"
	"github.com/gogpu/draft/view"
)

var (
	drawScript string
	drawOut    string
	drawRulers bool
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Replay a construction script and render the drawing",
	Long: `Replay the inputs of a YAML script through the snap engine and the
construction tools, print every object created, and render the layers,
grid, rulers and any unfinished construction to a PNG image.

Examples:
  draftdemo draw --script square.yaml
  draftdemo draw --script square.yaml --out square.png --units metric`,
	RunE: runDraw,
}

func init() {
	rootCmd.AddCommand(drawCmd)

	drawCmd.Flags().StringVar(&drawScript, "script", "", "construction script (YAML)")
	drawCmd.Flags().StringVarP(&drawOut, "out", "o", "drawing.png", "output PNG file")
	drawCmd.Flags().BoolVar(&drawRulers, "rulers", true, "draw rulers")
	_ = drawCmd.MarkFlagRequired("script")
}

func runDraw(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := LoadScript(drawScript)
	if err != nil {
		return err
	}
	res, err := script.run(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	img := preview.NewRenderer().Render(res.frame(drawRulers))
	if err := preview.SavePNG(drawOut, img); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d objects, %d rejected, saved %s\n", res.finished, res.rejected, drawOut)
	return nil
}

// frame captures the editor state for rendering.
func (r *session) frame(rulers bool) preview.Frame {
	ed := r.editor
	f := preview.Frame{
		Snapshot:    ed.Repository().Snapshot(),
		View:        ed.View().State(),
		GridVisible: ed.Config().GridVisible,
		Cursor:      r.cursor,
	}
	if rulers {
		f.Horizontal = ed.View().Ruler(view.Horizontal)
		f.Vertical = ed.View().Ruler(view.Vertical)
	}
	if s, ok := ed.Tool().Session(); ok {
		f.Session = s.Vertices()
	}
	return f
}
