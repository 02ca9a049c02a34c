// Package render draws survey aggregates as text charts for the terminal.
// Colors are applied only when the writer is a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/bisurvey/internal/stats"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Chart palette, one color per tool in domain order.
var (
	Primary = lipgloss.Color("#1E3A8A")
	Accent  = lipgloss.Color("#29b09d")
	Muted   = lipgloss.Color("#6b7280")
	Warning = lipgloss.Color("#FFC107")

	palette = []lipgloss.Color{
		lipgloss.Color("#88CCEE"),
		lipgloss.Color("#CC6677"),
		lipgloss.Color("#DDCC77"),
		lipgloss.Color("#117733"),
		lipgloss.Color("#332288"),
	}
)

// BarWidth is the length of the longest bar.
const BarWidth = 30

// Renderer writes charts to one writer.
type Renderer struct {
	w      io.Writer
	title  lipgloss.Style
	label  lipgloss.Style
	bar    lipgloss.Style
	muted  lipgloss.Style
	notice lipgloss.Style
	cell   lipgloss.Style
	header lipgloss.Style
	lr     *lipgloss.Renderer
}

// New returns a Renderer for w.
func New(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:      w,
		lr:     lr,
		title:  lr.NewStyle().Bold(true).Foreground(Primary),
		label:  lr.NewStyle(),
		bar:    lr.NewStyle().Foreground(Accent),
		muted:  lr.NewStyle().Foreground(Muted),
		notice: lr.NewStyle().Foreground(Warning).Bold(true),
		cell:   lr.NewStyle().PaddingRight(2),
		header: lr.NewStyle().Bold(true).PaddingRight(2),
	}
}

// Title writes a section heading.
func (r *Renderer) Title(s string) {
	fmt.Fprintln(r.w, r.title.Render(s))
}

// Notice writes a warning line such as the no-data message.
func (r *Renderer) Notice(s string) {
	fmt.Fprintln(r.w, r.notice.Render(s))
}

// Bars draws one horizontal bar per value count.
func (r *Renderer) Bars(counts []stats.ValueCount) {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	for i, c := range counts {
		labels[i] = c.Value
		values[i] = c.Count
	}
	r.bars(labels, values)
}

// Histogram draws one bar per bucket, labelled with its range.
func (r *Renderer) Histogram(buckets []stats.Bucket) {
	labels := make([]string, len(buckets))
	values := make([]int, len(buckets))
	for i, b := range buckets {
		closing := ")"
		if i == len(buckets)-1 {
			closing = "]"
		}
		labels[i] = fmt.Sprintf("[%.1f, %.1f%s", b.Lower, b.Upper, closing)
		values[i] = b.Count
	}
	r.bars(labels, values)
}

// Summary writes the descriptive statistics of one numeric field.
func (r *Renderer) Summary(d stats.Descriptive) {
	fmt.Fprintln(r.w, r.muted.Render(fmt.Sprintf("n=%d  min=%d  max=%d  media=%.2f  mediana=%.1f",
		d.Count, d.Min, d.Max, d.Mean, d.Median)))
}

// Dataset writes the rows as a table with a leading row index.
func (r *Renderer) Dataset(ds types.Dataset) {
	header := append([]string{"#"}, ds.Columns()...)
	rows := make([][]string, len(ds))
	for i, resp := range ds {
		rows[i] = append([]string{fmt.Sprint(i)}, resp.Values()...)
	}
	r.Table(header, rows)
}

// Table writes rows under header with aligned columns.
func (r *Renderer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(c)
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
	}

	fmt.Fprintln(r.w, line(header, r.header))
	for _, row := range rows {
		fmt.Fprintln(r.w, line(row, r.cell))
	}
}

// Crosstab writes a contingency table with totals.
func (r *Renderer) Crosstab(t stats.Table) {
	header := append([]string{t.RowField + " \\ " + t.ColField}, t.Cols...)
	header = append(header, "Total")
	rows := make([][]string, 0, len(t.Rows)+1)
	for i, name := range t.Rows {
		row := []string{name}
		for _, n := range t.Counts[i] {
			row = append(row, fmt.Sprint(n))
		}
		rows = append(rows, append(row, fmt.Sprint(t.RowTotals[i])))
	}
	totals := []string{"Total"}
	for _, n := range t.ColTotals {
		totals = append(totals, fmt.Sprint(n))
	}
	rows = append(rows, append(totals, fmt.Sprint(t.Total)))
	r.Table(header, rows)
}

// Sunburst writes the hierarchy as an indented tree with values.
func (r *Renderer) Sunburst(nodes []*stats.Node) {
	r.tree(nodes, "")
}

func (r *Renderer) tree(nodes []*stats.Node, indent string) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(r.w, "%s%s%s %s\n", indent, branch, r.label.Render(n.Label),
			r.muted.Render(fmt.Sprintf("(%d, n=%d)", n.Value, n.Count)))
		r.tree(n.Children, indent+next)
	}
}

// Scatter draws a 5x5 grid of score pairs. Each cell shows how many records
// fall on it and the summed size of their bubbles.
func (r *Renderer) Scatter(points []stats.Point, xLabel, yLabel string) {
	type cell struct{ n, size int }
	var grid [types.MaxScore + 1][types.MaxScore + 1]cell
	for _, p := range points {
		if p.X < int(types.MinScore) || p.X > int(types.MaxScore) || p.Y < int(types.MinScore) || p.Y > int(types.MaxScore) {
			continue
		}
		grid[p.Y][p.X].n++
		grid[p.Y][p.X].size += p.Size
	}

	fmt.Fprintln(r.w, r.muted.Render(yLabel+" ↑"))
	for y := types.MaxScore; y >= types.MinScore; y-- {
		var b strings.Builder
		fmt.Fprintf(&b, "%d │", y)
		for x := types.MinScore; x <= types.MaxScore; x++ {
			c := grid[y][x]
			if c.n == 0 {
				b.WriteString(r.muted.Render("   ·    "))
				continue
			}
			b.WriteString(r.bar.Render(fmt.Sprintf(" %2d/%-3d ", c.n, c.size)))
		}
		fmt.Fprintln(r.w, b.String())
	}
	var axis strings.Builder
	axis.WriteString("  └")
	for x := types.MinScore; x <= types.MaxScore; x++ {
		fmt.Fprintf(&axis, "───%d────", x)
	}
	fmt.Fprintln(r.w, axis.String()+" → "+xLabel)
}

// Legend writes the color legend of the scatter's color field.
func (r *Renderer) Legend(points []stats.Point) {
	seen := make(map[string]int)
	var order []string
	for _, p := range points {
		if _, ok := seen[p.Color]; !ok {
			order = append(order, p.Color)
		}
		seen[p.Color]++
	}
	parts := make([]string, len(order))
	for i, c := range order {
		style := r.lr.NewStyle().Foreground(palette[i%len(palette)])
		parts[i] = style.Render("● " + c + fmt.Sprintf(" (%d)", seen[c]))
	}
	fmt.Fprintln(r.w, strings.Join(parts, "  "))
}

func (r *Renderer) bars(labels []string, values []int) {
	width := 0
	peak := 0
	for i, l := range labels {
		width = max(width, lipgloss.Width(l))
		peak = max(peak, values[i])
	}
	for i, l := range labels {
		n := 0
		if peak > 0 {
			n = values[i] * BarWidth / peak
		}
		if values[i] > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(r.w, "%s %s %d\n",
			r.label.Width(width).Render(l),
			r.bar.Render(strings.Repeat("█", n)),
			values[i])
	}
}
