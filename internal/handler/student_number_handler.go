package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grading-engine/internal/service"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
	"github.com/noah-isme/grading-engine/pkg/response"
)

type studentNumberService interface {
	GenerateStudentNumber(ctx context.Context, req service.StudentNumberRequest) (*service.StudentNumberResult, error)
}

// StudentNumberHandler issues student numbers for enrollments.
type StudentNumberHandler struct {
	numbers studentNumberService
}

// NewStudentNumberHandler constructs StudentNumberHandler.
func NewStudentNumberHandler(numbers studentNumberService) *StudentNumberHandler {
	return &StudentNumberHandler{numbers: numbers}
}

// Generate godoc
// @Summary Issue the student number of an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.StudentNumberRequest true "Enrollment"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /enrollments/student-number [post]
func (h *StudentNumberHandler) Generate(c *gin.Context) {
	var req service.StudentNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.numbers.GenerateStudentNumber(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Allocated {
		response.Created(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
