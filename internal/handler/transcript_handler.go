package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grading-engine/internal/service"
	"github.com/noah-isme/grading-engine/pkg/response"
)

type transcriptExporter interface {
	Transcript(ctx context.Context, studentID, format string) (*service.ExportResult, error)
}

// TranscriptHandler streams rendered transcripts.
type TranscriptHandler struct {
	exporter transcriptExporter
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(exporter transcriptExporter) *TranscriptHandler {
	return &TranscriptHandler{exporter: exporter}
}

// Download godoc
// @Summary Download the transcript of a student
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /students/{id}/transcript [get]
func (h *TranscriptHandler) Download(c *gin.Context) {
	result, err := h.exporter.Transcript(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}
