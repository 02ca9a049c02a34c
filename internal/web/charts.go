package web

import (
	"net/http"

	"github.com/mesh-intelligence/bisurvey/internal/stats"
	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Tool colors, in tool domain order.
var palette = []string{"#88CCEE", "#CC6677", "#DDCC77", "#117733", "#332288", "#AA4499"}

// Bubble chart geometry in SVG user units.
const (
	plotSize   = 400
	plotMargin = 40
	maxRadius  = 18.0
)

type bubble struct {
	CX, CY, R float64
	Color     string
	Label     string
}

type legendEntry struct {
	Label string
	Color string
}

type respuestasData struct {
	View  views.RespuestasView
	Total int
}

type analisisData struct {
	View    views.AnalisisView
	Bubbles []bubble
	Legend  []legendEntry
	Size    int
	Margin  int
	Ticks   []tick
}

// tick is an axis label; X places it on the horizontal axis, Y on the
// vertical one.
type tick struct {
	Label string
	X, Y  float64
}

func (s *Server) handleRespuestas(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.loadError(w, views.Respuestas, err)
		return
	}
	v, err := views.BuildRespuestas(ds)
	if err != nil {
		s.loadError(w, views.Respuestas, err)
		return
	}
	p := newPage(views.Respuestas, respuestasData{View: v, Total: ds.Len()})
	if v.Empty {
		p = p.with(noticeWarning, v.Notice)
	}
	s.render(w, http.StatusOK, views.Respuestas, p)
}

func (s *Server) handleAnalisis(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.loadError(w, views.Analisis, err)
		return
	}
	v, err := views.BuildAnalisis(ds)
	if err != nil {
		s.loadError(w, views.Analisis, err)
		return
	}
	data := analisisData{View: v, Size: plotSize, Margin: plotMargin}
	if !v.Empty {
		data.Bubbles, data.Legend = bubbles(v.Points)
		data.Ticks = ticks()
	}
	p := newPage(views.Analisis, data)
	if v.Empty {
		p = p.with(noticeWarning, v.Notice)
	}
	s.render(w, http.StatusOK, views.Analisis, p)
}

// scale maps a 1-5 score onto the plot area.
func scale(score int) float64 {
	span := float64(types.MaxScore - types.MinScore)
	return plotMargin + float64(score-int(types.MinScore))/span*(plotSize-2*plotMargin)
}

func ticks() []tick {
	var out []tick
	for n := types.MinScore; n <= types.MaxScore; n++ {
		out = append(out, tick{Label: n.String(), X: scale(int(n)), Y: plotSize - scale(int(n))})
	}
	return out
}

// bubbles lays out one circle per point. Radius is proportional to size;
// color follows the point's tool.
func bubbles(points []stats.Point) ([]bubble, []legendEntry) {
	colors := make(map[string]string)
	var legend []legendEntry
	for _, t := range types.Tools {
		for _, p := range points {
			if p.Color == string(t) {
				colors[p.Color] = palette[len(legend)%len(palette)]
				legend = append(legend, legendEntry{Label: p.Color, Color: colors[p.Color]})
				break
			}
		}
	}
	for _, p := range points {
		if _, ok := colors[p.Color]; !ok {
			colors[p.Color] = palette[len(legend)%len(palette)]
			legend = append(legend, legendEntry{Label: p.Color, Color: colors[p.Color]})
		}
	}

	out := make([]bubble, len(points))
	for i, p := range points {
		out[i] = bubble{
			CX:    scale(p.X),
			CY:    plotSize - scale(p.Y),
			R:     maxRadius * float64(p.Size) / float64(types.MaxScore),
			Color: colors[p.Color],
			Label: p.Color,
		}
	}
	return out, legend
}
