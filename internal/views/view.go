// Package views defines the survey menu and assembles the data each menu
// view renders. A view is computed from a freshly loaded dataset; nothing
// is kept between interactions.
package views

import (
	"fmt"
	"strings"
)

// View is the selected menu item, the only state of the presentation shell.
type View string

// Menu items in display order.
const (
	Encuesta       View = "Encuesta"
	EditarEncuesta View = "EditarEncuesta"
	Respuestas     View = "Respuestas"
	Analisis       View = "Analisis"
)

// Menu lists the views in the order the sidebar shows them.
var Menu = []View{Encuesta, EditarEncuesta, Respuestas, Analisis}

var viewInfo = map[View]struct {
	slug, title, heading string
}{
	Encuesta:       {"encuesta", "Encuesta", "Registro de Nueva Encuesta"},
	EditarEncuesta: {"editar", "Editar Encuesta", "Edición de Registros"},
	Respuestas:     {"respuestas", "Respuestas", "Estadísticas por Pregunta"},
	Analisis:       {"analisis", "Analisis", "Análisis de Relaciones"},
}

// Default is the view shown when nothing is selected.
const Default = Encuesta

// Topic is the sidebar caption.
const Topic = "Temática: Uso de herramientas BI en la empresa."

// Shell captions.
const (
	AppTitle    = "Aplicación de Encuesta"
	MenuTitle   = "Menú de Encuesta"
	MenuPrompt  = "Seleccione una sección:"
	LogoCaption = "Logo Empresa"
)

// Slug returns the URL path segment of the view.
func (v View) Slug() string { return viewInfo[v].slug }

// Title returns the menu label.
func (v View) Title() string { return viewInfo[v].title }

// Heading returns the subheader shown above the view.
func (v View) Heading() string { return viewInfo[v].heading }

// Path returns the URL path of the view.
func (v View) Path() string { return "/" + v.Slug() }

// ParseView accepts a view name, menu label, or slug in any case.
func ParseView(s string) (View, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, v := range Menu {
		info := viewInfo[v]
		if key == strings.ToLower(string(v)) || key == info.slug ||
			key == strings.ToLower(strings.ReplaceAll(info.title, " ", "")) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}
