package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Result describes a completed export.
type Result struct {
	ExportID string    `json:"export_id" yaml:"export_id"`
	Path     string    `json:"path" yaml:"path"`
	Rows     int       `json:"rows" yaml:"rows"`
	At       time.Time `json:"exported_at" yaml:"exported_at"`
}

// Export writes ds into a fresh SQLite database at dbPath, replacing any
// existing file. source names where the data came from (the CSV path). All
// rows are inserted in one transaction.
func Export(ctx context.Context, dbPath, source string, ds types.Dataset) (Result, error) {
	if err := ds.Validate(); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return Result{}, err
	}
	// Always start from an empty schema.
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("removing old database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return Result{}, err
	}
	defer db.Close()

	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return Result{}, fmt.Errorf("creating schema: %w", err)
		}
	}

	res := Result{
		ExportID: newUUID(),
		Path:     dbPath,
		Rows:     len(ds),
		At:       time.Now().UTC(),
	}
	if err := insertAll(ctx, db, res, source, ds); err != nil {
		return Result{}, err
	}
	return res, nil
}

func insertAll(ctx context.Context, db *sql.DB, res Result, source string, ds types.Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exports (export_id, source, row_count, exported_at) VALUES (?, ?, ?, ?)`,
		res.ExportID, source, res.Rows, res.At.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting export: %w", err)
	}

	for i, f := range types.Fields {
		numeric := 0
		if f.Numeric() {
			numeric = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (field, ordinal, label, question, is_numeric) VALUES (?, ?, ?, ?, ?)`,
			f.String(), i+1, f.Label(), f.Question(), numeric); err != nil {
			return fmt.Errorf("inserting question %s: %w", f, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO responses (response_id, export_id, position, preg1, preg2, preg3, preg4, preg5)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range ds {
		if _, err := stmt.ExecContext(ctx, newUUID(), res.ExportID, i,
			string(r.Tool), int(r.Frequency), int(r.Quality), string(r.Improved), int(r.Difficulty)); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

// newUUID generates a UUID v7 string, falling back to v4.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
