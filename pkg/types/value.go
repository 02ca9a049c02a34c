package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Tool is the primary BI tool (PREG1).
type Tool string

// Tool values in the order the form offers them.
const (
	ToolPowerBI Tool = "Power BI"
	ToolTableau Tool = "Tableau"
	ToolExcel   Tool = "Excel"
	ToolQlik    Tool = "Qlik"
	ToolOther   Tool = "Otros"
)

// Tools lists the tool domain in declared order.
var Tools = []Tool{ToolPowerBI, ToolTableau, ToolExcel, ToolQlik, ToolOther}

// ParseTool matches s against the tool domain ignoring case and spaces, so
// "PowerBI" and "power bi" both yield ToolPowerBI.
func ParseTool(s string) (Tool, error) {
	key := squash(s)
	for _, t := range Tools {
		if squash(string(t)) == key {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: tool %q", ErrInvalidValue, s)
}

// Valid reports whether t is in the tool domain.
func (t Tool) Valid() bool {
	for _, v := range Tools {
		if t == v {
			return true
		}
	}
	return false
}

// MarshalCSV implements the gocsv TypeMarshaller interface.
func (t Tool) MarshalCSV() (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: tool %q", ErrInvalidValue, string(t))
	}
	return string(t), nil
}

// UnmarshalCSV implements the gocsv TypeUnmarshaller interface.
func (t *Tool) UnmarshalCSV(s string) error {
	v, err := ParseTool(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Answer is a yes/no answer (PREG4).
type Answer string

// Answer values.
const (
	AnswerYes Answer = "Si"
	AnswerNo  Answer = "No"
)

// ParseAnswer accepts Si/No in any case; "sí" is folded to Si.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí":
		return AnswerYes, nil
	case "no":
		return AnswerNo, nil
	}
	return "", fmt.Errorf("%w: answer %q", ErrInvalidValue, s)
}

// Valid reports whether a is Si or No.
func (a Answer) Valid() bool {
	return a == AnswerYes || a == AnswerNo
}

// MarshalCSV implements the gocsv TypeMarshaller interface.
func (a Answer) MarshalCSV() (string, error) {
	if !a.Valid() {
		return "", fmt.Errorf("%w: answer %q", ErrInvalidValue, string(a))
	}
	return string(a), nil
}

// UnmarshalCSV implements the gocsv TypeUnmarshaller interface.
func (a *Answer) UnmarshalCSV(s string) error {
	v, err := ParseAnswer(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Score is a 1-5 rating (PREG2, PREG3, PREG5).
type Score int

// Score bounds, inclusive.
const (
	MinScore Score = 1
	MaxScore Score = 5
)

// NewScore returns n as a Score, or ErrInvalidValue when n is outside 1-5.
func NewScore(n int) (Score, error) {
	s := Score(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: score %d (want %d-%d)", ErrInvalidValue, n, MinScore, MaxScore)
	}
	return s, nil
}

// ParseScore parses decimal text into a Score. Pandas-style "4.0" is
// accepted when the fraction is zero.
func ParseScore(s string) (Score, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%w: score %q", ErrInvalidValue, s)
		}
		n = int(f)
	}
	return NewScore(n)
}

// Valid reports whether s is within 1-5.
func (s Score) Valid() bool {
	return s >= MinScore && s <= MaxScore
}

func (s Score) String() string {
	return strconv.Itoa(int(s))
}

// MarshalCSV implements the gocsv TypeMarshaller interface.
func (s Score) MarshalCSV() (string, error) {
	if !s.Valid() {
		return "", fmt.Errorf("%w: score %d", ErrInvalidValue, int(s))
	}
	return s.String(), nil
}

// UnmarshalCSV implements the gocsv TypeUnmarshaller interface.
func (s *Score) UnmarshalCSV(text string) error {
	v, err := ParseScore(text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func squash(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
