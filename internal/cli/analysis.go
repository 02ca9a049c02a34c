package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

func newAnalysisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analysis",
		Short: "Show cross-question analysis",
		Long: `Analysis shows the Analisis view: satisfaction against difficulty sized
by usage frequency and colored by tool, the tool > decision > satisfaction
hierarchy summing usage frequency, and the tool by decision crosstab.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			return a.analisis(cmd, ds)
		},
	}
}

func (a *app) analisis(cmd *cobra.Command, ds types.Dataset) error {
	v, err := views.BuildAnalisis(ds)
	if err != nil {
		return classify(err)
	}
	if a.jsonOutput() {
		return a.emit(cmd, v)
	}

	out := cmd.OutOrStdout()
	r := a.renderer(cmd)
	r.Title(views.Analisis.Heading())
	if v.Empty {
		r.Notice(v.Notice)
		return nil
	}
	fmt.Fprintln(out, v.Subtitle)
	fmt.Fprintln(out)
	r.Title(v.ScatterTitle)
	r.Scatter(v.Points, v.X.Label, v.Y.Label)
	r.Legend(v.Points)

	fmt.Fprintln(out)
	r.Title(v.HierarchyTitle)
	r.Sunburst(v.Sunburst)

	fmt.Fprintln(out)
	r.Crosstab(*v.Crosstab)
	return nil
}
