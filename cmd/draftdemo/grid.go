package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/draft"
)

var (
	gridFrom    float64
	gridTo      float64
	gridPerDec  int
	gridAllUnit bool
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the grid spacing chosen at each zoom level",
	Long: `Print the grid step picked for a range of zoom levels, with the
on-screen spacing in pixels.

Examples:
  draftdemo grid
  draftdemo grid --units metric --from 0.01 --to 100
  draftdemo grid --all`,
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)

	gridCmd.Flags().Float64Var(&gridFrom, "from", 0.1, "lowest zoom in device pixels per world unit")
	gridCmd.Flags().Float64Var(&gridTo, "to", 1000, "highest zoom")
	gridCmd.Flags().IntVar(&gridPerDec, "per-decade", 3, "zoom levels per decade")
	gridCmd.Flags().BoolVar(&gridAllUnit, "all", false, "show every unit family")
}

func runGrid(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !(gridFrom > 0) || gridTo < gridFrom || gridPerDec < 1 {
		return fmt.Errorf("grid: invalid zoom range %g..%g", gridFrom, gridTo)
	}

	families := []draft.UnitFamily{cfg.Units}
	if gridAllUnit {
		families = []draft.UnitFamily{draft.UnitDecimalInch, draft.UnitFractionalInch, draft.UnitMetric}
	}
	units := make([]draft.UnitSystem, len(families))
	for i, f := range families {
		units[i] = draft.UnitSystem{Family: f, Band: cfg.Band()}
	}
	return writeGridTable(cmd.OutOrStdout(), units, zoomLevels(gridFrom, gridTo, gridPerDec))
}

// zoomLevels returns log-spaced zooms from lo to hi inclusive.
func zoomLevels(lo, hi float64, perDecade int) []float64 {
	var zs []float64
	n := int(math.Floor(math.Log10(hi/lo)*float64(perDecade) + 1e-9))
	for i := 0; i <= n; i++ {
		zs = append(zs, lo*math.Pow(10, float64(i)/float64(perDecade)))
	}
	return zs
}

func writeGridTable(w io.Writer, units []draft.UnitSystem, zooms []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "zoom\t")
	for _, u := range units {
		fmt.Fprintf(tw, "%s\tpx\t", u.Family)
	}
	fmt.Fprintln(tw)
	for _, z := range zooms {
		fmt.Fprintf(tw, "%.4g\t", z)
		for _, u := range units {
			step := u.GridSpacing(z)
			fmt.Fprintf(tw, "%s\t%.1f\t", stepLabel(step, u.Family), step*z)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func stepLabel(step float64, f draft.UnitFamily) string {
	if f == draft.UnitFractionalInch {
		return draft.FormatLength(step, f)
	}
	return fmt.Sprintf("%g%s", step, f.Symbol())
}
