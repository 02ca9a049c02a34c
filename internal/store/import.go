package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Decode reads a CSV export produced elsewhere (a spreadsheet, an older
// copy of the data file) into a dataset. Columns are matched by header name,
// so their order may differ from the persisted layout. Every row must pass
// schema validation.
func Decode(r io.Reader) (types.Dataset, error) {
	var rows []*types.Response
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return types.Dataset{}, nil
		}
		return nil, fmt.Errorf("decoding csv: %w", err)
	}

	ds := make(types.Dataset, 0, len(rows))
	for _, r := range rows {
		ds = append(ds, *r)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Encode writes ds as CSV with header to w, in the persisted layout.
func Encode(w io.Writer, ds types.Dataset) error {
	if err := writeHeader(w); err != nil {
		return err
	}
	if len(ds) == 0 {
		return nil
	}
	rows := make([]*types.Response, len(ds))
	for i := range ds {
		rows[i] = &ds[i]
	}
	if err := gocsv.MarshalWithoutHeaders(rows, w); err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	return nil
}
