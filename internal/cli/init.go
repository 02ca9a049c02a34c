package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/paths"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create config.yaml and an empty survey file",
		Long: "Init writes a default config.yaml into the configuration directory and\n" +
			"creates the survey CSV with only its header row. Existing files are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, global)
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "write config.yaml to the per-user configuration directory")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, global bool) error {
	var (
		configDir string
		err       error
	)
	if global {
		configDir, err = paths.UserConfigDir()
	} else {
		configDir, err = paths.ResolveConfigDir(a.flags.configDir)
	}
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	wrote, err := writeConfigIfMissing(configDir)
	if err != nil {
		return sysError(err)
	}
	if wrote {
		a.logger.Info("config written", zap.String("dir", configDir))
	}

	created := false
	if _, err := os.Stat(a.cfg.DataFile); errors.Is(err, fs.ErrNotExist) {
		if err := a.store().Overwrite(types.Dataset{}); err != nil {
			return sysError(fmt.Errorf("create data file: %w", err))
		}
		created = true
	} else if err != nil {
		return sysError(fmt.Errorf("stat data file: %w", err))
	}

	if a.jsonOutput() {
		return a.emit(cmd, map[string]any{
			"config_dir":     configDir,
			"config_written": wrote,
			"data_file":      a.cfg.DataFile,
			"data_created":   created,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "configuración: %s\n", configDir)
	fmt.Fprintf(out, "datos: %s\n", a.cfg.DataFile)
	return nil
}
