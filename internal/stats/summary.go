package stats

import (
	"slices"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Descriptive holds summary statistics of a numeric field.
type Descriptive struct {
	Field  string  `json:"field" yaml:"field"`
	Count  int     `json:"count" yaml:"count"`
	Min    int     `json:"min" yaml:"min"`
	Max    int     `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
}

// Summary returns count, min, max, mean and median of numeric field f.
func Summary(ds types.Dataset, f types.Field) (Descriptive, error) {
	if err := checkNumeric(ds, f); err != nil {
		return Descriptive{}, err
	}

	values := make([]int, len(ds))
	sum := 0
	for i, r := range ds {
		values[i], _ = r.Number(f)
		sum += values[i]
	}
	slices.Sort(values)

	n := len(values)
	median := float64(values[n/2])
	if n%2 == 0 {
		median = float64(values[n/2-1]+values[n/2]) / 2
	}
	return Descriptive{
		Field:  f.String(),
		Count:  n,
		Min:    values[0],
		Max:    values[n-1],
		Mean:   float64(sum) / float64(n),
		Median: median,
	}, nil
}
