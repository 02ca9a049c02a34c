package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFiles = map[views.View]string{
	views.Encuesta:       "templates/encuesta.html",
	views.EditarEncuesta: "templates/editar.html",
	views.Respuestas:     "templates/respuestas.html",
	views.Analisis:       "templates/analisis.html",
}

var funcs = template.FuncMap{
	"pct": func(n, total int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) * 100 / float64(total)
	},
	"add": func(a, b int) int { return a + b },
}

// parsePages parses one template set per view, each sharing the layout.
func parsePages() (map[views.View]*template.Template, error) {
	pages := make(map[views.View]*template.Template, len(pageFiles))
	for v, file := range pageFiles {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, err
		}
		pages[v] = t
	}
	return pages, nil
}

// Notice kinds.
const (
	noticeSuccess = "success"
	noticeWarning = "warning"
	noticeError   = "error"
)

type notice struct {
	Kind string
	Text string
}

type menuItem struct {
	Title  string
	Path   string
	Active bool
}

// page is the data handed to the layout.
type page struct {
	AppTitle    string
	MenuTitle   string
	MenuPrompt  string
	Topic       string
	LogoCaption string
	Menu        []menuItem
	Heading     string
	Notice      *notice
	Data        any
}

func newPage(v views.View, data any) page {
	menu := make([]menuItem, len(views.Menu))
	for i, m := range views.Menu {
		menu[i] = menuItem{Title: m.Title(), Path: m.Path(), Active: m == v}
	}
	return page{
		AppTitle:    views.AppTitle,
		MenuTitle:   views.MenuTitle,
		MenuPrompt:  views.MenuPrompt,
		Topic:       views.Topic,
		LogoCaption: views.LogoCaption,
		Menu:        menu,
		Heading:     v.Heading(),
		Data:        data,
	}
}

func (p page) with(kind, text string) page {
	p.Notice = &notice{Kind: kind, Text: text}
	return p
}

// render executes the view's template into a buffer so a template error
// never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, v views.View, p page) {
	var buf bytes.Buffer
	if err := s.pages[v].Execute(&buf, p); err != nil {
		s.logger.Error("render page", zap.String("view", string(v)), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// loadError renders a failed load of the survey file.
func (s *Server) loadError(w http.ResponseWriter, v views.View, err error) {
	s.logger.Error("load dataset", zap.Error(err))
	s.render(w, http.StatusInternalServerError, v,
		newPage(v, nil).with(noticeError, fmt.Sprintf("No se pudo leer el archivo de datos: %v", err)))
}

func (s *Server) load() (types.Dataset, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.metrics.rows.Set(float64(ds.Len()))
	return ds, nil
}
