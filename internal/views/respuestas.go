package views

import (
	"fmt"

	"github.com/mesh-intelligence/bisurvey/internal/stats"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// NoResponses is shown by the per-question view on an empty dataset.
const NoResponses = "No hay datos registrados aún."

// HistogramBuckets is the bucket count of the satisfaction histogram.
const HistogramBuckets = 5

// Chart kinds, a hint for the rendering surface.
const (
	ChartPie       = "pie"
	ChartBar       = "bar"
	ChartHistogram = "histogram"
	ChartFunnel    = "funnel"
)

// QuestionStats is the chart data of one question.
type QuestionStats struct {
	Field    string             `json:"field" yaml:"field"`
	Question string             `json:"question" yaml:"question"`
	Chart    string             `json:"chart" yaml:"chart"`
	Empty    bool               `json:"empty" yaml:"empty"`
	Notice   string             `json:"notice,omitempty" yaml:"notice,omitempty"`
	Counts   []stats.ValueCount `json:"counts,omitempty" yaml:"counts,omitempty"`
	Buckets  []stats.Bucket     `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Summary  *stats.Descriptive `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// RespuestasView is the per-question statistics view.
type RespuestasView struct {
	Rows      int             `json:"rows" yaml:"rows"`
	Empty     bool            `json:"empty" yaml:"empty"`
	Notice    string          `json:"notice,omitempty" yaml:"notice,omitempty"`
	Questions []QuestionStats `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// defaultCharts pairs each question with its chart, as on the dashboard:
// tool pie, frequency bars, satisfaction histogram, decision funnel,
// difficulty bars.
var defaultCharts = []struct {
	field types.Field
	chart string
}{
	{types.FieldTool, ChartPie},
	{types.FieldFrequency, ChartBar},
	{types.FieldQuality, ChartHistogram},
	{types.FieldImproved, ChartFunnel},
	{types.FieldDifficulty, ChartBar},
}

// BuildRespuestas computes every question's chart data.
func BuildRespuestas(ds types.Dataset) (RespuestasView, error) {
	v := RespuestasView{Rows: ds.Len()}
	if ds.Empty() {
		v.Empty = true
		v.Notice = NoResponses
		return v, nil
	}
	for _, c := range defaultCharts {
		q, err := questionStats(ds, c.field, c.chart)
		if err != nil {
			return RespuestasView{}, err
		}
		v.Questions = append(v.Questions, q)
	}
	return v, nil
}

// BuildQuestion computes the chart data of one field: histogram for the
// satisfaction score, bars for other numeric fields, pie for categorical.
// An empty dataset yields the question with Empty set and no counts.
func BuildQuestion(ds types.Dataset, f types.Field) (QuestionStats, error) {
	if !f.Valid() {
		return QuestionStats{}, fmt.Errorf("%w: %d", types.ErrUnknownField, int(f))
	}
	chart := ChartPie
	for _, c := range defaultCharts {
		if c.field == f {
			chart = c.chart
		}
	}
	if ds.Empty() {
		return QuestionStats{
			Field:    f.String(),
			Question: f.Question(),
			Chart:    chart,
			Empty:    true,
			Notice:   NoResponses,
		}, nil
	}
	return questionStats(ds, f, chart)
}

func questionStats(ds types.Dataset, f types.Field, chart string) (QuestionStats, error) {
	q := QuestionStats{Field: f.String(), Question: f.Question(), Chart: chart}

	counts, err := stats.ValueCounts(ds, f)
	if err != nil {
		return QuestionStats{}, err
	}
	q.Counts = counts

	if f.Numeric() {
		if chart == ChartHistogram {
			if q.Buckets, err = stats.HistogramBuckets(ds, f, HistogramBuckets); err != nil {
				return QuestionStats{}, err
			}
		}
		sum, err := stats.Summary(ds, f)
		if err != nil {
			return QuestionStats{}, err
		}
		q.Summary = &sum
	}
	return q, nil
}
