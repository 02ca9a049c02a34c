package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bisurvey/internal/store"
	"github.com/mesh-intelligence/bisurvey/internal/views"
)

func newListCmd(a *app) *cobra.Command {
	var csvOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every recorded response",
		Long: "List prints the survey file as a table with row indexes, the same rows\n" +
			"the edit commands address. Use --output json|yaml or --csv for machine output.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			if csvOut {
				if err := store.Encode(cmd.OutOrStdout(), ds); err != nil {
					return sysError(err)
				}
				return nil
			}
			if a.jsonOutput() {
				return a.emit(cmd, ds)
			}
			r := a.renderer(cmd)
			if ds.Empty() {
				r.Notice(views.NoResponses)
				return nil
			}
			r.Dataset(ds)
			return nil
		},
	}
	cmd.Flags().BoolVar(&csvOut, "csv", false, "write the rows as CSV with header")
	return cmd
}
