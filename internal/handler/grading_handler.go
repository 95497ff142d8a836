package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grading-engine/internal/models"
	"github.com/noah-isme/grading-engine/internal/service"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
	"github.com/noah-isme/grading-engine/pkg/response"
)

type gradingService interface {
	ProcessStudentGrade(ctx context.Context, req service.ProcessGradeRequest) (*service.ProcessGradeResponse, error)
	CalculateSemesterGPA(ctx context.Context, studentID, semester string) (*service.GradeSummary, error)
	CalculateCGPA(ctx context.Context, studentID string) (*service.GradeSummary, error)
	GetAcademicClassification(ctx context.Context, studentID, programLevelID string) (*models.ClassificationResult, error)
	GetAcademicStanding(ctx context.Context, studentID string) (*models.StandingResult, error)
	GetCompleteGradeReport(ctx context.Context, studentID, programLevelID string) (*models.CompleteGradeReport, error)
	GetEnrollmentGradeReport(ctx context.Context, enrollmentID, semester string) (*models.EnrollmentGradeReport, error)
}

// GradingHandler exposes course result and GPA endpoints.
type GradingHandler struct {
	grading gradingService
}

// NewGradingHandler constructs GradingHandler.
func NewGradingHandler(grading gradingService) *GradingHandler {
	return &GradingHandler{grading: grading}
}

// Process godoc
// @Summary Grade a percentage mark and store the course result
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.ProcessGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/process [post]
func (h *GradingHandler) Process(c *gin.Context) {
	var req service.ProcessGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.grading.ProcessStudentGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SemesterGPA godoc
// @Summary Semester GPA of a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param semester query string true "Semester label"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/gpa [get]
func (h *GradingHandler) SemesterGPA(c *gin.Context) {
	summary, err := h.grading.CalculateSemesterGPA(c.Request.Context(), c.Param("id"), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// CGPA godoc
// @Summary Cumulative GPA of a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/cgpa [get]
func (h *GradingHandler) CGPA(c *gin.Context) {
	summary, err := h.grading.CalculateCGPA(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Classification godoc
// @Summary Honours classification of a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param programLevelId query string true "Program level"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/classification [get]
func (h *GradingHandler) Classification(c *gin.Context) {
	result, err := h.grading.GetAcademicClassification(c.Request.Context(), c.Param("id"), c.Query("programLevelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Standing godoc
// @Summary Academic standing of a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/standing [get]
func (h *GradingHandler) Standing(c *gin.Context) {
	result, err := h.grading.GetAcademicStanding(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Report godoc
// @Summary Complete grade report of a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param programLevelId query string true "Program level"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/report [get]
func (h *GradingHandler) Report(c *gin.Context) {
	report, err := h.grading.GetCompleteGradeReport(c.Request.Context(), c.Param("id"), c.Query("programLevelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// EnrollmentReport godoc
// @Summary Semester grade report of an enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param semester query string false "Semester label, defaults to the current semester"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id}/report [get]
func (h *GradingHandler) EnrollmentReport(c *gin.Context) {
	report, err := h.grading.GetEnrollmentGradeReport(c.Request.Context(), c.Param("id"), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, map[string]interface{}{"course_count": len(report.CourseResults)})
}
