package store

import "github.com/mesh-intelligence/bisurvey/pkg/types"

// csvRow is the on-disk shape of a response. Values stay as text so that a
// bad cell is reported with its line number instead of failing inside the
// decoder.
type csvRow struct {
	Tool       string `csv:"PREG1"`
	Frequency  string `csv:"PREG2"`
	Quality    string `csv:"PREG3"`
	Improved   string `csv:"PREG4"`
	Difficulty string `csv:"PREG5"`
}

func newCSVRow(r types.Response) *csvRow {
	return &csvRow{
		Tool:       r.Value(types.FieldTool),
		Frequency:  r.Value(types.FieldFrequency),
		Quality:    r.Value(types.FieldQuality),
		Improved:   r.Value(types.FieldImproved),
		Difficulty: r.Value(types.FieldDifficulty),
	}
}

func (c *csvRow) response() (types.Response, error) {
	return types.ParseResponse([]string{c.Tool, c.Frequency, c.Quality, c.Improved, c.Difficulty})
}
