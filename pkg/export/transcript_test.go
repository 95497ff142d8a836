package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Title:    "Academic Transcript",
		Preamble: []string{"Student: Ada Obi"},
		Headers:  []string{"Semester", "Course", "Mark", "Grade"},
		Rows: [][]string{
			{"2024-2025-1", "CSC101", "85.00", "A"},
			{"2024-2025-1", "MTH101"},
		},
		Summary: [][2]string{{"CGPA", "4.50"}},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestRenderCSV(t *testing.T) {
	payload, err := RenderCSV(sampleDocument())
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Semester", "Course", "Mark", "Grade"}, records[0])
	assert.Equal(t, []string{"2024-2025-1", "MTH101", "", ""}, records[2])
	assert.Equal(t, []string{"CGPA", "4.50"}, records[3])
}

func TestRenderPDF(t *testing.T) {
	payload, err := Render(sampleDocument(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestRenderRequiresHeaders(t *testing.T) {
	_, err := RenderCSV(Document{})
	assert.Error(t, err)
	_, err = RenderPDF(Document{})
	assert.Error(t, err)
}
