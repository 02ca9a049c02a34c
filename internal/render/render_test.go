package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bisurvey/internal/stats"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestBarsScaleToPeak(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Bars([]stats.ValueCount{
		{Value: "Power BI", Count: 4},
		{Value: "Excel", Count: 2},
		{Value: "Qlik", Count: 0},
	})

	out := lines(&buf)
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[0], "Power BI"))
	assert.Equal(t, BarWidth, strings.Count(out[0], "█"))
	assert.Equal(t, BarWidth/2, strings.Count(out[1], "█"))
	assert.Equal(t, 0, strings.Count(out[2], "█"))
	assert.True(t, strings.HasSuffix(out[0], " 4"))
}

func TestHistogramLabels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Histogram([]stats.Bucket{
		{Lower: 1, Upper: 3, Count: 1},
		{Lower: 3, Upper: 5, Count: 3},
	})

	out := lines(&buf)
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "[1.0, 3.0)")
	assert.Contains(t, out[1], "[3.0, 5.0]")
}

func TestDatasetTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Dataset(types.Dataset{
		{Tool: types.ToolPowerBI, Frequency: 4, Quality: 5, Improved: types.AnswerYes, Difficulty: 3},
	})

	out := lines(&buf)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"#", "PREG1", "PREG2", "PREG3", "PREG4", "PREG5"}, strings.Fields(out[0]))
	assert.Equal(t, []string{"0", "Power", "BI", "4", "5", "Si", "3"}, strings.Fields(out[1]))
	assert.Equal(t, strings.Index(out[0], "PREG2"), strings.Index(out[1], "4"), "columns must align")
}

func TestCrosstabTotals(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Crosstab(stats.Table{
		RowField:  "PREG1",
		ColField:  "PREG4",
		Rows:      []string{"Excel"},
		Cols:      []string{"Si", "No"},
		Counts:    [][]int{{1, 2}},
		RowTotals: []int{3},
		ColTotals: []int{1, 2},
		Total:     3,
	})

	out := lines(&buf)
	require.Len(t, out, 3)
	assert.Contains(t, out[0], "PREG1 \\ PREG4")
	assert.Equal(t, []string{"Excel", "1", "2", "3"}, strings.Fields(out[1]))
	assert.Equal(t, []string{"Total", "1", "2", "3"}, strings.Fields(out[2]))
}

func TestSunburstTree(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sunburst([]*stats.Node{
		{Label: "Excel", Value: 6, Count: 2, Children: []*stats.Node{
			{Label: "Si", Value: 5, Count: 1},
			{Label: "No", Value: 1, Count: 1},
		}},
	})

	out := lines(&buf)
	require.Len(t, out, 3)
	assert.Equal(t, "└─ Excel (6, n=2)", out[0])
	assert.Equal(t, "   ├─ Si (5, n=1)", out[1])
	assert.Equal(t, "   └─ No (1, n=1)", out[2])
}

func TestScatterGrid(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Scatter([]stats.Point{
		{X: 5, Y: 3, Size: 4, Color: "Power BI"},
		{X: 5, Y: 3, Size: 2, Color: "Excel"},
	}, "Satisfacción", "Dificultad")

	out := buf.String()
	assert.Contains(t, out, " 2/6")
	assert.Contains(t, out, "Satisfacción")
	assert.Contains(t, out, "Dificultad")
}

func TestLegendCountsColors(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Legend([]stats.Point{
		{Color: "Power BI"}, {Color: "Excel"}, {Color: "Power BI"},
	})
	assert.Contains(t, buf.String(), "● Power BI (2)")
	assert.Contains(t, buf.String(), "● Excel (1)")
}

func TestNoticeAndTitle(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Title("Respuestas")
	r.Notice("No hay datos registrados aún.")
	assert.Equal(t, "Respuestas\nNo hay datos registrados aún.\n", buf.String())
}
