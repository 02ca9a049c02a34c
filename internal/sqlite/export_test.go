package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

func sample() types.Dataset {
	return types.Dataset{
		{Tool: types.ToolPowerBI, Frequency: 4, Quality: 5, Improved: types.AnswerYes, Difficulty: 3},
		{Tool: types.ToolTableau, Frequency: 2, Quality: 3, Improved: types.AnswerNo, Difficulty: 5},
		{Tool: types.ToolPowerBI, Frequency: 2, Quality: 1, Improved: types.AnswerNo, Difficulty: 1},
	}
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExport_WritesRowsInOrder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out", "survey.db")

	res, err := Export(context.Background(), dbPath, "C03_Encuesta.csv", sample())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if res.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", res.Rows)
	}
	if _, err := uuid.Parse(res.ExportID); err != nil {
		t.Errorf("export id is not a UUID: %v", err)
	}

	db := openDB(t, dbPath)
	rows, err := db.Query(`SELECT preg1, preg2, preg3, preg4, preg5 FROM responses ORDER BY position`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var got types.Dataset
	for rows.Next() {
		var tool, improved string
		var freq, quality, difficulty int
		if err := rows.Scan(&tool, &freq, &quality, &improved, &difficulty); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, types.Response{
			Tool:       types.Tool(tool),
			Frequency:  types.Score(freq),
			Quality:    types.Score(quality),
			Improved:   types.Answer(improved),
			Difficulty: types.Score(difficulty),
		})
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := sample()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExport_ToolCountsView(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "survey.db")
	if _, err := Export(context.Background(), dbPath, "src.csv", sample()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	db := openDB(t, dbPath)
	var n int
	var avgFreq float64
	err := db.QueryRow(`SELECT responses, avg_frequency FROM tool_counts WHERE tool = ?`, "Power BI").Scan(&n, &avgFreq)
	if err != nil {
		t.Fatalf("query view: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 Power BI responses, got %d", n)
	}
	if avgFreq != 3 {
		t.Errorf("expected avg frequency 3, got %v", avgFreq)
	}

	var questions int
	if err := db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&questions); err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if questions != len(types.Fields) {
		t.Errorf("expected %d questions, got %d", len(types.Fields), questions)
	}
}

func TestExport_ReplacesExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "survey.db")
	if _, err := Export(context.Background(), dbPath, "a.csv", sample()); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if _, err := Export(context.Background(), dbPath, "b.csv", sample()[:1]); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db := openDB(t, dbPath)
	var n, exports int
	if err := db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM exports`).Scan(&exports); err != nil {
		t.Fatalf("count exports: %v", err)
	}
	if n != 1 || exports != 1 {
		t.Errorf("expected 1 response and 1 export, got %d and %d", n, exports)
	}
}

func TestExport_EmptyDataset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "survey.db")
	res, err := Export(context.Background(), dbPath, "empty.csv", nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if res.Rows != 0 {
		t.Errorf("expected 0 rows, got %d", res.Rows)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestExport_RejectsInvalidDataset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "survey.db")
	ds := types.Dataset{{Tool: "Looker", Frequency: 1, Quality: 1, Improved: types.AnswerNo, Difficulty: 1}}
	if _, err := Export(context.Background(), dbPath, "bad.csv", ds); err == nil {
		t.Fatal("expected error for invalid dataset")
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("database must not be created for invalid data")
	}
}
