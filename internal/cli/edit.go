package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/store"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// ChangesSaved is the confirmation shown after the dataset is overwritten.
const ChangesSaved = "Archivo actualizado."

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit recorded responses",
		Long: "Edit changes the survey table and overwrites the file with the result.\n" +
			"Rows are addressed by the zero-based index shown by \"survey list\".",
	}
	cmd.AddCommand(
		newEditSetCmd(a),
		newEditAddCmd(a),
		newEditDeleteCmd(a),
		newEditImportCmd(a),
		newEditClearCmd(a),
	)
	return cmd
}

func newEditSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <row> <field> <value>",
		Short: "Change one cell",
		Long: `Set replaces one cell. The field is a column name (PREG1..PREG5) or its
1-based position.

Example:
  survey edit set 0 PREG3 5
  survey edit set 2 1 Tableau`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}
			field, err := types.ParseField(args[1])
			if err != nil {
				return userError(err)
			}
			return a.mutate(cmd, func(ds types.Dataset) (types.Dataset, error) {
				return ds.SetCell(row, field, args[2])
			})
		},
	}
}

func newEditAddCmd(a *app) *cobra.Command {
	var at int
	cmd := &cobra.Command{
		Use:   "add <PREG1> <PREG2> <PREG3> <PREG4> <PREG5>",
		Short: "Insert a row",
		Long: `Add inserts a row built from five values in column order. Without --at
the row is appended.

Example:
  survey edit add Excel 2 3 No 4 --at 0`,
		Args: cobra.ExactArgs(len(types.Fields)),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := types.ParseResponse(args)
			if err != nil {
				return userError(err)
			}
			return a.mutate(cmd, func(ds types.Dataset) (types.Dataset, error) {
				pos := at
				if pos < 0 {
					pos = ds.Len()
				}
				return ds.InsertRow(pos, resp)
			})
		},
	}
	cmd.Flags().IntVar(&at, "at", -1, "zero-based position of the new row")
	return cmd
}

func newEditDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <row>",
		Short: "Remove a row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(ds types.Dataset) (types.Dataset, error) {
				return ds.DeleteRow(row)
			})
		},
	}
}

func newEditImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace every row with the contents of a CSV file",
		Long: "Import reads a CSV whose header names the PREG1..PREG5 columns (in any\n" +
			"order) and overwrites the survey file with its rows.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return userError(fmt.Errorf("open import file: %w", err))
			}
			defer f.Close()

			imported, err := store.Decode(f)
			if err != nil {
				return userError(fmt.Errorf("import %s: %w", args[0], err))
			}
			return a.mutate(cmd, func(types.Dataset) (types.Dataset, error) {
				return imported, nil
			})
		},
	}
}

func newEditClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every row, keeping the header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError(fmt.Errorf("clear removes every response; pass --yes to confirm"))
			}
			return a.mutate(cmd, func(types.Dataset) (types.Dataset, error) {
				return types.Dataset{}, nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm removing every row")
	return cmd
}

// mutate loads the dataset, applies change, and overwrites the file with
// the result. Nothing is written when change fails.
func (a *app) mutate(cmd *cobra.Command, change func(types.Dataset) (types.Dataset, error)) error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}
	edited, err := change(ds)
	if err != nil {
		return classify(err)
	}
	if err := a.store().Overwrite(edited); err != nil {
		a.logger.Error("overwrite failed", zap.Error(err))
		return classify(fmt.Errorf("save changes: %w", err))
	}
	a.logger.Info("dataset overwritten", zap.Int("before", ds.Len()), zap.Int("after", edited.Len()))

	if a.jsonOutput() {
		return a.emit(cmd, edited)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ChangesSaved)
	return nil
}

func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, userError(fmt.Errorf("%w: row %q", types.ErrRowOutOfRange, s))
	}
	return n, nil
}
