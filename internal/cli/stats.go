package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bisurvey/internal/render"
	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [field]",
		Short: "Show per-question statistics",
		Long: `Stats shows the Respuestas view: tool shares, usage frequency, a
satisfaction histogram, the decision funnel and difficulty. With a field
argument (PREG1..PREG5 or 1..5) only that question is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return a.questionStats(cmd, ds, args[0])
			}
			return a.respuestas(cmd, ds)
		},
	}
}

func (a *app) respuestas(cmd *cobra.Command, ds types.Dataset) error {
	v, err := views.BuildRespuestas(ds)
	if err != nil {
		return classify(err)
	}
	if a.jsonOutput() {
		return a.emit(cmd, v)
	}
	r := a.renderer(cmd)
	r.Title(views.Respuestas.Heading())
	if v.Empty {
		r.Notice(v.Notice)
		return nil
	}
	for _, q := range v.Questions {
		fmt.Fprintln(cmd.OutOrStdout())
		drawQuestion(r, q)
	}
	return nil
}

func (a *app) questionStats(cmd *cobra.Command, ds types.Dataset, arg string) error {
	f, err := types.ParseField(arg)
	if err != nil {
		return userError(err)
	}
	q, err := views.BuildQuestion(ds, f)
	if err != nil {
		return classify(err)
	}
	if a.jsonOutput() {
		return a.emit(cmd, q)
	}
	if q.Empty {
		a.renderer(cmd).Notice(q.Notice)
		return nil
	}
	drawQuestion(a.renderer(cmd), q)
	return nil
}

func drawQuestion(r *render.Renderer, q views.QuestionStats) {
	r.Title(fmt.Sprintf("%s. %s", q.Field, q.Question))
	if len(q.Buckets) > 0 {
		r.Histogram(q.Buckets)
	} else {
		r.Bars(q.Counts)
	}
	if q.Summary != nil {
		r.Summary(*q.Summary)
	}
}
