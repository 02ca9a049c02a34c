// Package sqlite provides the public API for materializing a survey CSV
// file into a SQLite database. It wraps the internal store and exporter so
// other modules can run the export without the CLI.
//
// Example:
//
//	res, err := sqlite.ExportFile(ctx, "C03_Encuesta.csv", "encuesta.db")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Rows, "rows exported")
package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/bisurvey/internal/sqlite"
	"github.com/mesh-intelligence/bisurvey/internal/store"
)

// Result describes a completed export.
type Result = sqlite.Result

// ExportFile loads the survey CSV at csvPath and writes it into a fresh
// SQLite database at dbPath. A missing CSV exports zero rows.
func ExportFile(ctx context.Context, csvPath, dbPath string) (Result, error) {
	ds, err := store.New(csvPath).Load()
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", csvPath, err)
	}
	return sqlite.Export(ctx, dbPath, csvPath, ds)
}
