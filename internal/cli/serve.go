package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/logging"
	"github.com/mesh-intelligence/bisurvey/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		listen  string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the survey web application",
		Long: "Serve starts the web shell: the survey form, the table editor, the\n" +
			"per-question and cross-question views, a JSON API and /metrics.\n" +
			"It stops gracefully on SIGINT or SIGTERM.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.Listen
			if listen != "" {
				addr = listen
			}
			logger, err := logging.New(a.cfg.LogLevel, logging.FormatJSON)
			if err != nil {
				return userError(err)
			}
			defer func() { _ = logger.Sync() }()

			srv, err := web.New(web.Options{
				DataFile:       a.cfg.DataFile,
				LogoFile:       a.cfg.LogoFile,
				Logger:         logger,
				AllowedOrigins: origins,
			})
			if err != nil {
				return sysError(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("serving survey",
				zap.String("addr", addr),
				zap.String("data_file", a.cfg.DataFile))
			if err := srv.Run(ctx, addr); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: config listen or 127.0.0.1:8501)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "origins allowed to call the JSON API")
	return cmd
}
