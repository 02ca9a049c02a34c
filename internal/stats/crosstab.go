package stats

import (
	"slices"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Table is a contingency table of record counts between two fields. Rows
// and Cols list the values that occur, in domain order.
type Table struct {
	RowField  string   `json:"row_field" yaml:"row_field"`
	ColField  string   `json:"col_field" yaml:"col_field"`
	Rows      []string `json:"rows" yaml:"rows"`
	Cols      []string `json:"cols" yaml:"cols"`
	Counts    [][]int  `json:"counts" yaml:"counts"`
	RowTotals []int    `json:"row_totals" yaml:"row_totals"`
	ColTotals []int    `json:"col_totals" yaml:"col_totals"`
	Total     int      `json:"total" yaml:"total"`
}

// Crosstab counts records for every (row value, col value) pair.
func Crosstab(ds types.Dataset, row, col types.Field) (Table, error) {
	if err := checkField(ds, row); err != nil {
		return Table{}, err
	}
	if err := checkField(ds, col); err != nil {
		return Table{}, err
	}

	t := Table{
		RowField: row.String(),
		ColField: col.String(),
		Rows:     present(ds, row),
		Cols:     present(ds, col),
		Total:    len(ds),
	}
	t.Counts = make([][]int, len(t.Rows))
	for i := range t.Counts {
		t.Counts[i] = make([]int, len(t.Cols))
	}
	t.RowTotals = make([]int, len(t.Rows))
	t.ColTotals = make([]int, len(t.Cols))

	for _, r := range ds {
		i := slices.Index(t.Rows, r.Value(row))
		j := slices.Index(t.Cols, r.Value(col))
		t.Counts[i][j]++
		t.RowTotals[i]++
		t.ColTotals[j]++
	}
	return t, nil
}

// present returns the values of f that occur in ds, in domain order.
func present(ds types.Dataset, f types.Field) []string {
	seen := make(map[string]bool)
	for _, r := range ds {
		seen[r.Value(f)] = true
	}
	var out []string
	for _, v := range f.Domain() {
		if seen[v] {
			out = append(out, v)
		}
	}
	return out
}
