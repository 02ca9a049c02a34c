package types

import (
	"fmt"
	"strings"
)

// Field identifies one of the five survey answers. The numeric value is the
// column position in the persisted file.
type Field int

// Survey fields in persisted column order.
const (
	FieldTool       Field = iota // PREG1
	FieldFrequency               // PREG2
	FieldQuality                 // PREG3
	FieldImproved                // PREG4
	FieldDifficulty              // PREG5
)

// Fields lists every field in column order.
var Fields = []Field{
	FieldTool,
	FieldFrequency,
	FieldQuality,
	FieldImproved,
	FieldDifficulty,
}

var fieldNames = [...]string{"PREG1", "PREG2", "PREG3", "PREG4", "PREG5"}

var fieldLabels = [...]string{"Uso", "Frecuencia", "Satisfacción", "Mejora decisiones", "Dificultad"}

var fieldQuestions = [...]string{
	"¿Qué herramienta de BI utiliza principalmente? (Power BI, Tableau, Excel)",
	"Frecuencia de uso de herramientas BI al día (1 al 5)",
	"Nivel de satisfacción con la calidad de los datos (1 al 5)",
	"¿Considera que BI ha mejorado la toma de decisiones? (Si, No)",
	"Nivel de dificultad para aprender la herramienta (1 al 5)",
}

// Columns returns the header row of the persisted file.
func Columns() []string {
	cols := make([]string, len(fieldNames))
	copy(cols, fieldNames[:])
	return cols
}

// Valid reports whether f is one of the five declared fields.
func (f Field) Valid() bool {
	return f >= FieldTool && f <= FieldDifficulty
}

// String returns the column name (PREG1..PREG5).
func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label returns the short axis label used by charts.
func (f Field) Label() string {
	if !f.Valid() {
		return f.String()
	}
	return fieldLabels[f]
}

// Question returns the full question text shown on the form.
func (f Field) Question() string {
	if !f.Valid() {
		return ""
	}
	return fieldQuestions[f]
}

// Numeric reports whether the field holds a 1-5 score.
func (f Field) Numeric() bool {
	return f == FieldFrequency || f == FieldQuality || f == FieldDifficulty
}

// Domain returns the allowed display values of the field in declared order.
func (f Field) Domain() []string {
	switch f {
	case FieldTool:
		out := make([]string, len(Tools))
		for i, t := range Tools {
			out[i] = string(t)
		}
		return out
	case FieldImproved:
		return []string{string(AnswerYes), string(AnswerNo)}
	case FieldFrequency, FieldQuality, FieldDifficulty:
		out := make([]string, 0, MaxScore-MinScore+1)
		for s := MinScore; s <= MaxScore; s++ {
			out = append(out, s.String())
		}
		return out
	default:
		return nil
	}
}

// ParseField accepts a column name (PREG3, case-insensitive) or its 1-based
// position ("3"). Returns ErrUnknownField otherwise.
func ParseField(s string) (Field, error) {
	s = strings.TrimSpace(s)
	for i, name := range fieldNames {
		if strings.EqualFold(s, name) || s == fmt.Sprint(i+1) {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}
