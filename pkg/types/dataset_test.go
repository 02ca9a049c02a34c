package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		{Tool: ToolPowerBI, Frequency: 4, Quality: 5, Improved: AnswerYes, Difficulty: 3},
		{Tool: ToolTableau, Frequency: 2, Quality: 3, Improved: AnswerNo, Difficulty: 5},
		{Tool: ToolExcel, Frequency: 5, Quality: 1, Improved: AnswerYes, Difficulty: 2},
	}
}

func TestEmptyDatasetHasAllColumns(t *testing.T) {
	var d Dataset
	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, []string{"PREG1", "PREG2", "PREG3", "PREG4", "PREG5"}, d.Columns())
	assert.NoError(t, d.Validate())
}

func TestDatasetColumn(t *testing.T) {
	d := sampleDataset()
	assert.Equal(t, []string{"Power BI", "Tableau", "Excel"}, d.Column(FieldTool))
	assert.Equal(t, []string{"5", "3", "1"}, d.Column(FieldQuality))
}

func TestDatasetSetCell(t *testing.T) {
	d := sampleDataset()

	got, err := d.SetCell(1, FieldImproved, "si")
	require.NoError(t, err)
	assert.Equal(t, AnswerYes, got[1].Improved)
	assert.Equal(t, AnswerNo, d[1].Improved, "original must be untouched")

	_, err = d.SetCell(3, FieldImproved, "Si")
	assert.ErrorIs(t, err, ErrRowOutOfRange)

	_, err = d.SetCell(0, FieldFrequency, "11")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDatasetDeleteRow(t *testing.T) {
	d := sampleDataset()

	got, err := d.DeleteRow(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ToolTableau, got[0].Tool)
	assert.Len(t, d, 3)

	_, err = d.DeleteRow(-1)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestDatasetInsertRow(t *testing.T) {
	d := sampleDataset()
	r := Response{Tool: ToolQlik, Frequency: 1, Quality: 1, Improved: AnswerNo, Difficulty: 1}

	got, err := d.InsertRow(1, r)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, ToolQlik, got[1].Tool)
	assert.Equal(t, ToolTableau, got[2].Tool)

	got, err = d.InsertRow(d.Len(), r)
	require.NoError(t, err)
	assert.Equal(t, ToolQlik, got[3].Tool)

	_, err = d.InsertRow(0, Response{})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = d.InsertRow(5, r)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestDatasetValidateReportsRow(t *testing.T) {
	d := sampleDataset()
	d[2].Quality = 0
	err := d.Validate()
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "row 2")
}
