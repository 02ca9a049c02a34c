package types

import "fmt"

// Dataset is the ordered collection of responses as persisted. Order is
// submission order, or the edited order after a bulk edit.
type Dataset []Response

// Columns returns the fixed header of the dataset. An empty dataset still
// has all five columns.
func (d Dataset) Columns() []string {
	return Columns()
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d)
}

// Empty reports whether the dataset has no rows.
func (d Dataset) Empty() bool {
	return len(d) == 0
}

// Column returns the display values of field f for every row.
func (d Dataset) Column(f Field) []string {
	out := make([]string, len(d))
	for i, r := range d {
		out[i] = r.Value(f)
	}
	return out
}

// Clone returns a copy that shares no backing array with d.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Validate checks every row against the schema.
func (d Dataset) Validate() error {
	for i, r := range d {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// SetCell returns a copy of d with one cell replaced. row is 0-based.
func (d Dataset) SetCell(row int, f Field, raw string) (Dataset, error) {
	if row < 0 || row >= len(d) {
		return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowOutOfRange, row, len(d))
	}
	out := d.Clone()
	if err := out[row].Set(f, raw); err != nil {
		return nil, fmt.Errorf("row %d: %w", row, err)
	}
	return out, nil
}

// DeleteRow returns a copy of d without the given row.
func (d Dataset) DeleteRow(row int) (Dataset, error) {
	if row < 0 || row >= len(d) {
		return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowOutOfRange, row, len(d))
	}
	out := make(Dataset, 0, len(d)-1)
	out = append(out, d[:row]...)
	return append(out, d[row+1:]...), nil
}

// InsertRow returns a copy of d with r inserted before row. row == Len()
// appends.
func (d Dataset) InsertRow(row int, r Response) (Dataset, error) {
	if row < 0 || row > len(d) {
		return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowOutOfRange, row, len(d))
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := make(Dataset, 0, len(d)+1)
	out = append(out, d[:row]...)
	out = append(out, r)
	return append(out, d[row:]...), nil
}
