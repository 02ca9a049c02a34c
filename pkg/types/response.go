package types

import "fmt"

// Response is one complete survey submission. The csv tags fix the header
// names and column order of the persisted file.
type Response struct {
	Tool       Tool   `csv:"PREG1" json:"PREG1" yaml:"PREG1"`
	Frequency  Score  `csv:"PREG2" json:"PREG2" yaml:"PREG2"`
	Quality    Score  `csv:"PREG3" json:"PREG3" yaml:"PREG3"`
	Improved   Answer `csv:"PREG4" json:"PREG4" yaml:"PREG4"`
	Difficulty Score  `csv:"PREG5" json:"PREG5" yaml:"PREG5"`
}

// NewResponse builds a Response, rejecting any value outside its domain
// with ErrInvalidValue.
func NewResponse(tool Tool, frequency, quality int, improved Answer, difficulty int) (Response, error) {
	r := Response{Tool: tool, Improved: improved}
	if !tool.Valid() {
		return Response{}, fmt.Errorf("%w: tool %q", ErrInvalidValue, string(tool))
	}
	if !improved.Valid() {
		return Response{}, fmt.Errorf("%w: answer %q", ErrInvalidValue, string(improved))
	}
	var err error
	if r.Frequency, err = NewScore(frequency); err != nil {
		return Response{}, fmt.Errorf("%s: %w", FieldFrequency, err)
	}
	if r.Quality, err = NewScore(quality); err != nil {
		return Response{}, fmt.Errorf("%s: %w", FieldQuality, err)
	}
	if r.Difficulty, err = NewScore(difficulty); err != nil {
		return Response{}, fmt.Errorf("%s: %w", FieldDifficulty, err)
	}
	return r, nil
}

// ParseResponse builds a Response from display-form values in column order.
func ParseResponse(values []string) (Response, error) {
	if len(values) != len(Fields) {
		return Response{}, fmt.Errorf("%w: got %d values, want %d", ErrSchemaMismatch, len(values), len(Fields))
	}
	var r Response
	for i, f := range Fields {
		if err := r.Set(f, values[i]); err != nil {
			return Response{}, err
		}
	}
	return r, nil
}

// Validate returns ErrInvalidValue if any field is outside its domain.
func (r Response) Validate() error {
	_, err := NewResponse(r.Tool, int(r.Frequency), int(r.Quality), r.Improved, int(r.Difficulty))
	return err
}

// Value returns the display form of field f.
func (r Response) Value(f Field) string {
	switch f {
	case FieldTool:
		return string(r.Tool)
	case FieldFrequency:
		return r.Frequency.String()
	case FieldQuality:
		return r.Quality.String()
	case FieldImproved:
		return string(r.Improved)
	case FieldDifficulty:
		return r.Difficulty.String()
	default:
		return ""
	}
}

// Number returns the score of a numeric field. ok is false for
// categorical fields.
func (r Response) Number(f Field) (n int, ok bool) {
	switch f {
	case FieldFrequency:
		return int(r.Frequency), true
	case FieldQuality:
		return int(r.Quality), true
	case FieldDifficulty:
		return int(r.Difficulty), true
	default:
		return 0, false
	}
}

// Values returns the display form of every field in column order.
func (r Response) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = r.Value(f)
	}
	return out
}

// Set parses raw into field f. The response is unchanged on error.
func (r *Response) Set(f Field, raw string) error {
	switch f {
	case FieldTool:
		t, err := ParseTool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		r.Tool = t
	case FieldImproved:
		a, err := ParseAnswer(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		r.Improved = a
	case FieldFrequency, FieldQuality, FieldDifficulty:
		s, err := ParseScore(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		switch f {
		case FieldFrequency:
			r.Frequency = s
		case FieldQuality:
			r.Quality = s
		default:
			r.Difficulty = s
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}
