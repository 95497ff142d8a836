package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

func newExportServiceForTest(results []models.StudentCourseResult) *ExportService {
	store := &resultStoreMock{results: results}
	students := studentStoreMock{"stu-1": {ID: "stu-1", FullName: "Ada Obi"}}
	svc := NewExportService(store, students, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, time.May, 4, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceTranscriptCSV(t *testing.T) {
	svc := newExportServiceForTest([]models.StudentCourseResult{
		storedResult("2024-2025-1", "CSC101", 5, 3),
		storedResult("2024-2025-1", "MTH101", 3, 2),
		storedResult("2024-2025-2", "PHY101", 0, 4),
	})

	result, err := svc.Transcript(context.Background(), "stu-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "transcript_stu-1_20250504.csv", result.Filename)

	reader := csv.NewReader(bytes.NewReader(result.Payload))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, transcriptHeaders, records[0])
	assert.Equal(t, []string{"2024-2025-1", "CSC101", "CSC101 title", "70.00", "B", "5.00", "3", "15.00"}, records[1])
	assert.Equal(t, []string{"GPA 2024-2025-1", "4.20"}, records[4])
	assert.Equal(t, []string{"GPA 2024-2025-2", "0.00"}, records[5])
	assert.Equal(t, []string{"Total credit units", "9"}, records[6])
	assert.Equal(t, []string{"CGPA", "2.33"}, records[7])
}

func TestExportServiceTranscriptPDF(t *testing.T) {
	svc := newExportServiceForTest([]models.StudentCourseResult{storedResult("2024-2025-1", "CSC101", 5, 3)})

	result, err := svc.Transcript(context.Background(), "stu-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestExportServiceTranscriptErrors(t *testing.T) {
	svc := newExportServiceForTest(nil)

	_, err := svc.Transcript(context.Background(), "stu-1", "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Transcript(context.Background(), "stu-404", "csv")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
