// Package cli implements the survey command-line interface: one cobra
// command per menu view plus the editing, export and serve commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/logging"
	"github.com/mesh-intelligence/bisurvey/internal/store"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// cliLogLevel keeps command output free of info logs unless --log-level
// asks for them. The web shell uses the configured level.
const cliLogLevel = "warn"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataFile  string
	logo      string
	logLevel  string
	jsonMode  bool
	output    string
}

// app carries the per-invocation state shared by subcommands. It is
// populated by the root command's PersistentPreRunE.
type app struct {
	flags  rootFlags
	cfg    types.Config
	logger *zap.Logger
}

// NewRootCmd creates the top-level "survey" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "survey",
		Short: "Collect and analyse the BI tool usage survey",
		Long: "Survey records answers to the five-question BI tool usage survey in a CSV\n" +
			"file and shows per-question statistics and cross-question analysis.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: .bisurvey)")
	pf.StringVar(&a.flags.dataFile, "data-file", "", "survey CSV file (default: "+types.DefaultDataFile+")")
	pf.StringVar(&a.flags.logo, "logo", "", "branding image (default: "+types.DefaultLogoFile+")")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVarP(&a.flags.output, "output", "o", outputText, "output format: text, json, yaml")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newSubmitCmd(a),
		newListCmd(a),
		newEditCmd(a),
		newStatsCmd(a),
		newAnalysisCmd(a),
		newWatchCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and maps the returned error to an exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup resolves configuration and builds the logger. The version command
// needs neither.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	if _, err := a.format(); err != nil {
		return err
	}
	cfg, err := a.resolveConfig()
	if err != nil {
		return userError(err)
	}
	level := cliLogLevel
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	logger, err := logging.New(level, logging.FormatConsole)
	if err != nil {
		return userError(err)
	}
	a.cfg = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.logger.Debug("configuration resolved",
		zap.String("data_file", cfg.DataFile),
		zap.String("logo", cfg.LogoFile),
		zap.String("listen", cfg.Listen))
	return nil
}

func (a *app) store() *store.Store {
	return store.New(a.cfg.DataFile)
}

// cliError carries the exit code a failure maps to.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// userError marks err as caused by invalid input (exit 1).
func userError(err error) error {
	return &cliError{code: exitUserError, err: err}
}

// sysError marks err as an environment or I/O failure (exit 2).
func sysError(err error) error {
	return &cliError{code: exitSysError, err: err}
}

// exitCode returns the exit code for err. Unclassified errors, such as
// cobra's argument and flag errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// loadDataset reads the survey file. Schema and value problems are user
// errors; anything else is a system error.
func (a *app) loadDataset() (types.Dataset, error) {
	ds, err := a.store().Load()
	if err != nil {
		return nil, classify(err)
	}
	a.logger.Debug("dataset loaded", zap.Int("rows", ds.Len()))
	return ds, nil
}

func classify(err error) error {
	if errors.Is(err, types.ErrSchemaMismatch) || errors.Is(err, types.ErrInvalidValue) ||
		errors.Is(err, types.ErrUnknownField) || errors.Is(err, types.ErrRowOutOfRange) {
		return userError(err)
	}
	return sysError(err)
}
