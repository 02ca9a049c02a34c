package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	tests := []struct {
		name       string
		tool       Tool
		frequency  int
		quality    int
		improved   Answer
		difficulty int
		wantErr    bool
	}{
		{name: "valid", tool: ToolPowerBI, frequency: 4, quality: 5, improved: AnswerYes, difficulty: 3},
		{name: "bounds", tool: ToolOther, frequency: 1, quality: 5, improved: AnswerNo, difficulty: 1},
		{name: "unknown tool", tool: "Looker", frequency: 1, quality: 1, improved: AnswerNo, difficulty: 1, wantErr: true},
		{name: "frequency zero", tool: ToolExcel, frequency: 0, quality: 1, improved: AnswerNo, difficulty: 1, wantErr: true},
		{name: "quality six", tool: ToolExcel, frequency: 1, quality: 6, improved: AnswerNo, difficulty: 1, wantErr: true},
		{name: "bad answer", tool: ToolExcel, frequency: 1, quality: 1, improved: "Maybe", difficulty: 1, wantErr: true},
		{name: "difficulty negative", tool: ToolExcel, frequency: 1, quality: 1, improved: AnswerYes, difficulty: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResponse(tt.tool, tt.frequency, tt.quality, tt.improved, tt.difficulty)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				assert.Equal(t, Response{}, r)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, r.Validate())
			assert.Equal(t, tt.tool, r.Tool)
			assert.Equal(t, Score(tt.difficulty), r.Difficulty)
		})
	}
}

func TestParseResponse(t *testing.T) {
	r, err := ParseResponse([]string{"Power BI", "4", "5", "Si", "3"})
	require.NoError(t, err)
	assert.Equal(t, Response{Tool: ToolPowerBI, Frequency: 4, Quality: 5, Improved: AnswerYes, Difficulty: 3}, r)
	assert.Equal(t, []string{"Power BI", "4", "5", "Si", "3"}, r.Values())

	_, err = ParseResponse([]string{"Excel", "1"})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = ParseResponse([]string{"Excel", "1", "2", "Quizás", "3"})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "PREG4")
}

func TestResponseNumber(t *testing.T) {
	r := Response{Tool: ToolQlik, Frequency: 2, Quality: 3, Improved: AnswerNo, Difficulty: 5}

	n, ok := r.Number(FieldQuality)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = r.Number(FieldTool)
	assert.False(t, ok)

	assert.Equal(t, "No", r.Value(FieldImproved))
	assert.Equal(t, "", r.Value(Field(42)))
}

func TestResponseSetLeavesValueOnError(t *testing.T) {
	r := Response{Tool: ToolQlik, Frequency: 2, Quality: 3, Improved: AnswerNo, Difficulty: 5}

	require.NoError(t, r.Set(FieldTool, "excel"))
	assert.Equal(t, ToolExcel, r.Tool)

	err := r.Set(FieldFrequency, "7")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, Score(2), r.Frequency)

	assert.ErrorIs(t, r.Set(Field(7), "x"), ErrUnknownField)
}
