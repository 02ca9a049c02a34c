package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/sqlite"
)

func newExportCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the responses to a SQLite database",
		Long: "Export writes every response into a fresh SQLite file with a questions\n" +
			"catalogue and a tool_counts view, for use in external BI tools.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			path := dbPath
			if path == "" {
				path = strings.TrimSuffix(a.cfg.DataFile, filepath.Ext(a.cfg.DataFile)) + ".db"
			}

			res, err := sqlite.Export(cmd.Context(), path, a.cfg.DataFile, ds)
			if err != nil {
				a.logger.Error("export failed", zap.String("path", path), zap.Error(err))
				return classify(err)
			}
			a.logger.Info("export written", zap.String("path", res.Path), zap.Int("rows", res.Rows))

			if a.jsonOutput() {
				return a.emit(cmd, res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d respuestas exportadas a %s\n", res.Rows, res.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "sqlite", "", "database path (default: data file with .db extension)")
	return cmd
}
