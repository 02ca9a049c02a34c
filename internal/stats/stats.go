// Package stats computes the per-question and cross-question aggregates
// rendered by the survey views. Every function is pure: it reads a loaded
// dataset and returns a fresh result. An empty dataset yields ErrNoData.
package stats

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Aggregation errors.
var (
	ErrNoData             = errors.New("no data")
	ErrNotNumeric         = errors.New("field is not numeric")
	ErrInvalidBucketCount = errors.New("bucket count must be positive")
	ErrEmptyPath          = errors.New("hierarchy path must not be empty")
)

// ValueCount is the number of rows holding one value of a field.
type ValueCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// ValueCounts counts each distinct value of f. Entries are ordered by count
// descending, ties broken by the field's domain order. The counts sum to
// ds.Len().
func ValueCounts(ds types.Dataset, f types.Field) ([]ValueCount, error) {
	if err := checkField(ds, f); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range ds {
		counts[r.Value(f)]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	rank := domainRank(f)
	slices.SortFunc(out, func(a, b ValueCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return rank(a.Value) - rank(b.Value)
	})
	return out, nil
}

// Bucket is one equal-width slice of a numeric field's observed range.
// Lower is inclusive; Upper is exclusive except for the last bucket.
type Bucket struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Count int     `json:"count" yaml:"count"`
}

// HistogramBuckets splits the [min, max] range of numeric field f into
// bucketCount equal-width buckets and counts the rows in each. When every
// value is equal the width is 1.
func HistogramBuckets(ds types.Dataset, f types.Field, bucketCount int) ([]Bucket, error) {
	if err := checkNumeric(ds, f); err != nil {
		return nil, err
	}
	if bucketCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBucketCount, bucketCount)
	}

	values := numbers(ds, f)
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	width := (hi - lo) / float64(bucketCount)
	if width == 0 {
		width = 1
	}

	buckets := make([]Bucket, bucketCount)
	for i := range buckets {
		buckets[i].Lower = lo + float64(i)*width
		buckets[i].Upper = lo + float64(i+1)*width
	}
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bucketCount {
			i = bucketCount - 1
		}
		buckets[i].Count++
	}
	return buckets, nil
}

// Point is one record projected for a bubble chart.
type Point struct {
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
	Size  int    `json:"size" yaml:"size"`
	Color string `json:"color" yaml:"color"`
}

// ScatterTriples projects every record to (x, y, size, color) in dataset
// order. x, y and size must be numeric; color may be any field.
func ScatterTriples(ds types.Dataset, x, y, size, color types.Field) ([]Point, error) {
	for _, f := range []types.Field{x, y, size} {
		if err := checkNumeric(ds, f); err != nil {
			return nil, err
		}
	}
	if err := checkField(ds, color); err != nil {
		return nil, err
	}

	out := make([]Point, len(ds))
	for i, r := range ds {
		px, _ := r.Number(x)
		py, _ := r.Number(y)
		ps, _ := r.Number(size)
		out[i] = Point{X: px, Y: py, Size: ps, Color: r.Value(color)}
	}
	return out, nil
}

// Leaf is one distinct combination of values along a hierarchy path.
type Leaf struct {
	Path  []string `json:"path" yaml:"path"`
	Value int      `json:"value" yaml:"value"`
	Count int      `json:"count" yaml:"count"`
}

// HierarchicalCounts groups records by their values along path and sums the
// numeric value field per group. Leaves are returned in order of first
// appearance.
func HierarchicalCounts(ds types.Dataset, path []types.Field, value types.Field) ([]Leaf, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	for _, f := range path {
		if err := checkField(ds, f); err != nil {
			return nil, err
		}
	}
	if err := checkNumeric(ds, value); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var leaves []Leaf
	for _, r := range ds {
		key := make([]string, len(path))
		for i, f := range path {
			key[i] = r.Value(f)
		}
		k := joinKey(key)
		n, _ := r.Number(value)

		i, ok := index[k]
		if !ok {
			i = len(leaves)
			index[k] = i
			leaves = append(leaves, Leaf{Path: key})
		}
		leaves[i].Value += n
		leaves[i].Count++
	}
	return leaves, nil
}

func checkField(ds types.Dataset, f types.Field) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %s", types.ErrUnknownField, f)
	}
	if ds.Empty() {
		return ErrNoData
	}
	return nil
}

func checkNumeric(ds types.Dataset, f types.Field) error {
	if err := checkField(ds, f); err != nil {
		return err
	}
	if !f.Numeric() {
		return fmt.Errorf("%w: %s", ErrNotNumeric, f)
	}
	return nil
}

func numbers(ds types.Dataset, f types.Field) []float64 {
	out := make([]float64, len(ds))
	for i, r := range ds {
		n, _ := r.Number(f)
		out[i] = float64(n)
	}
	return out
}

// domainRank returns the position of a value in the field's declared domain.
func domainRank(f types.Field) func(string) int {
	domain := f.Domain()
	return func(v string) int {
		if i := slices.Index(domain, v); i >= 0 {
			return i
		}
		return len(domain)
	}
}

// joinKey builds a map key from path values; \x1f cannot appear in a value.
func joinKey(parts []string) string {
	return strings.Join(parts, "\x1f")
}
