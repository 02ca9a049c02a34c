package views

import (
	"github.com/mesh-intelligence/bisurvey/internal/stats"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// NoAnalysis is shown by the cross-question view on an empty dataset.
const NoAnalysis = "No hay datos para analizar."

// Axis choices of the bubble chart and the sunburst hierarchy.
var (
	ScatterX     = types.FieldQuality
	ScatterY     = types.FieldDifficulty
	ScatterSize  = types.FieldFrequency
	ScatterColor = types.FieldTool

	SunburstPath  = []types.Field{types.FieldTool, types.FieldImproved, types.FieldQuality}
	SunburstValue = types.FieldFrequency

	CrosstabRow = types.FieldTool
	CrosstabCol = types.FieldImproved
)

// Axis names a chart dimension.
type Axis struct {
	Field string `json:"field" yaml:"field"`
	Label string `json:"label" yaml:"label"`
}

// AnalisisView is the cross-question relations view.
type AnalisisView struct {
	Rows     int    `json:"rows" yaml:"rows"`
	Empty    bool   `json:"empty" yaml:"empty"`
	Notice   string `json:"notice,omitempty" yaml:"notice,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`

	ScatterTitle string        `json:"scatter_title,omitempty" yaml:"scatter_title,omitempty"`
	X            Axis          `json:"x" yaml:"x"`
	Y            Axis          `json:"y" yaml:"y"`
	Size         Axis          `json:"size" yaml:"size"`
	Color        Axis          `json:"color" yaml:"color"`
	Points       []stats.Point `json:"points,omitempty" yaml:"points,omitempty"`

	HierarchyTitle string        `json:"hierarchy_title,omitempty" yaml:"hierarchy_title,omitempty"`
	Leaves         []stats.Leaf  `json:"leaves,omitempty" yaml:"leaves,omitempty"`
	Sunburst       []*stats.Node `json:"sunburst,omitempty" yaml:"sunburst,omitempty"`

	Crosstab *stats.Table `json:"crosstab,omitempty" yaml:"crosstab,omitempty"`
}

func axis(f types.Field) Axis {
	return Axis{Field: f.String(), Label: f.Label()}
}

// BuildAnalisis computes the bubble chart, the sunburst hierarchy and the
// tool by decision crosstab.
func BuildAnalisis(ds types.Dataset) (AnalisisView, error) {
	v := AnalisisView{
		Rows:  ds.Len(),
		X:     axis(ScatterX),
		Y:     axis(ScatterY),
		Size:  axis(ScatterSize),
		Color: axis(ScatterColor),
	}
	if ds.Empty() {
		v.Empty = true
		v.Notice = NoAnalysis
		return v, nil
	}

	var err error
	v.Subtitle = "Análisis de Satisfacción vs Dificultad por Herramienta"
	v.ScatterTitle = "Relación Satisfacción, Dificultad y Frecuencia de Uso"
	if v.Points, err = stats.ScatterTriples(ds, ScatterX, ScatterY, ScatterSize, ScatterColor); err != nil {
		return AnalisisView{}, err
	}

	v.HierarchyTitle = "Jerarquía: Herramienta > Mejora Decisiones > Nivel Satisfacción"
	if v.Leaves, err = stats.HierarchicalCounts(ds, SunburstPath, SunburstValue); err != nil {
		return AnalisisView{}, err
	}
	v.Sunburst = stats.Sunburst(v.Leaves)

	ct, err := stats.Crosstab(ds, CrosstabRow, CrosstabCol)
	if err != nil {
		return AnalisisView{}, err
	}
	v.Crosstab = &ct
	return v, nil
}
