package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grading-engine/internal/grading"
	"github.com/noah-isme/grading-engine/internal/service"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
	"github.com/noah-isme/grading-engine/pkg/response"
)

type finalGradeService interface {
	Calculate(ctx context.Context, studentID, courseID string) (*service.FinalGradeResult, error)
	ValidateWeights(ctx context.Context, courseID string) (*grading.WeightValidation, error)
}

type recalculationService interface {
	EnqueueCourse(ctx context.Context, courseID string, req service.RecalculationRequest) (*service.RecalculationBatch, error)
}

// FinalGradeHandler exposes course level final grade endpoints.
type FinalGradeHandler struct {
	finals        finalGradeService
	recalculation recalculationService
}

// NewFinalGradeHandler constructs FinalGradeHandler.
func NewFinalGradeHandler(finals finalGradeService, recalculation recalculationService) *FinalGradeHandler {
	return &FinalGradeHandler{finals: finals, recalculation: recalculation}
}

// Weights godoc
// @Summary Validate the assessment weights of a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/assessments/weights [get]
func (h *FinalGradeHandler) Weights(c *gin.Context) {
	report, err := h.finals.ValidateWeights(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Calculate godoc
// @Summary Compute the final grade of a student in a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.FinalGradeRequest true "Student"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/final-grades [post]
func (h *FinalGradeHandler) Calculate(c *gin.Context) {
	var req service.FinalGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.finals.Calculate(c.Request.Context(), req.StudentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Recalculate godoc
// @Summary Queue final grade recalculation for every active enrollment of a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.RecalculationRequest false "Semester"
// @Success 202 {object} response.Envelope
// @Router /courses/{id}/final-grades/recalculate [post]
func (h *FinalGradeHandler) Recalculate(c *gin.Context) {
	var req service.RecalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	batch, err := h.recalculation.EnqueueCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, batch)
}
