package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		view     string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Redraw a view whenever the survey file changes",
		Long: "Watch renders the Respuestas or Analisis view and redraws it each time\n" +
			"the survey file is written, until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := views.ParseView(view)
			if err != nil {
				return userError(err)
			}
			if v != views.Respuestas && v != views.Analisis {
				return userError(fmt.Errorf("watch supports %s and %s, not %s", views.Respuestas, views.Analisis, v))
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, cmd, v, debounce)
		},
	}
	cmd.Flags().StringVar(&view, "view", string(views.Respuestas), "view to redraw: Respuestas or Analisis")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before redrawing")
	return cmd
}

func (a *app) runWatch(ctx context.Context, cmd *cobra.Command, v views.View, debounce time.Duration) error {
	w, err := watch.New(a.cfg.DataFile, debounce, a.logger)
	if err != nil {
		return sysError(err)
	}

	draw := func() {
		ds, err := a.loadDataset()
		if err != nil {
			a.logger.Warn("reload failed", zap.Error(err))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n── %s ──\n", time.Now().Format(time.TimeOnly))
		if v == views.Analisis {
			err = a.analisis(cmd, ds)
		} else {
			err = a.respuestas(cmd, ds)
		}
		if err != nil {
			a.logger.Warn("render failed", zap.Error(err))
		}
	}

	draw()
	if err := w.Run(ctx, draw); err != nil {
		return sysError(err)
	}
	return nil
}
