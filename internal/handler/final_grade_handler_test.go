package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/grading"
	"github.com/noah-isme/grading-engine/internal/service"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

type finalGradeServiceMock struct {
	studentID string
	courseID  string
	result    *service.FinalGradeResult
	weights   *grading.WeightValidation
	err       error
}

func (m *finalGradeServiceMock) Calculate(ctx context.Context, studentID, courseID string) (*service.FinalGradeResult, error) {
	m.studentID = studentID
	m.courseID = courseID
	return m.result, m.err
}

func (m *finalGradeServiceMock) ValidateWeights(ctx context.Context, courseID string) (*grading.WeightValidation, error) {
	m.courseID = courseID
	return m.weights, m.err
}

type recalculationServiceMock struct {
	courseID string
	req      service.RecalculationRequest
	err      error
}

func (m *recalculationServiceMock) EnqueueCourse(ctx context.Context, courseID string, req service.RecalculationRequest) (*service.RecalculationBatch, error) {
	m.courseID = courseID
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &service.RecalculationBatch{CourseID: courseID, Semester: req.Semester, Queued: 2, JobIDs: []string{"j1", "j2"}}, nil
}

func TestFinalGradeHandlerCalculate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	finals := &finalGradeServiceMock{result: &service.FinalGradeResult{StudentID: "stu-1", CourseID: "course-1", FinalGrade: 0, WeightedGrade: 53}}
	h := NewFinalGradeHandler(finals, &recalculationServiceMock{})

	c, w := newGinContext(http.MethodPost, "/courses/course-1/final-grades", []byte(`{"student_id":"stu-1"}`))
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}
	h.Calculate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stu-1", finals.studentID)
	assert.Equal(t, "course-1", finals.courseID)

	var result service.FinalGradeResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.Equal(t, 53.0, result.WeightedGrade)
}

func TestFinalGradeHandlerCalculateInvalidWeights(t *testing.T) {
	gin.SetMode(gin.TestMode)
	finals := &finalGradeServiceMock{err: appErrors.Clone(appErrors.ErrInvalidWeights, "total weight 70.00 does not equal expected total 100.00")}
	h := NewFinalGradeHandler(finals, &recalculationServiceMock{})

	c, w := newGinContext(http.MethodPost, "/courses/course-1/final-grades", []byte(`{"student_id":"stu-1"}`))
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}
	h.Calculate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrInvalidWeights.Code, env.Error.Code)
}

func TestFinalGradeHandlerWeights(t *testing.T) {
	gin.SetMode(gin.TestMode)
	finals := &finalGradeServiceMock{weights: &grading.WeightValidation{Valid: true, TotalWeight: 100, ExpectedTotal: 100, ItemsWithWeight: 2}}
	h := NewFinalGradeHandler(finals, &recalculationServiceMock{})

	c, w := newGinContext(http.MethodGet, "/courses/course-1/assessments/weights", nil)
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}
	h.Weights(c)

	require.Equal(t, http.StatusOK, w.Code)
	var report grading.WeightValidation
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &report))
	assert.True(t, report.Valid)
	assert.Equal(t, 2, report.ItemsWithWeight)
}

func TestFinalGradeHandlerRecalculate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recalc := &recalculationServiceMock{}
	h := NewFinalGradeHandler(&finalGradeServiceMock{}, recalc)

	c, w := newGinContext(http.MethodPost, "/courses/course-1/final-grades/recalculate", nil)
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}
	h.Recalculate(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "course-1", recalc.courseID)
	assert.Empty(t, recalc.req.Semester)

	c, w = newGinContext(http.MethodPost, "/courses/course-1/final-grades/recalculate", []byte(`{"semester":"2025-2026-2"}`))
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}
	h.Recalculate(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	var batch service.RecalculationBatch
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &batch))
	assert.Equal(t, "2025-2026-2", batch.Semester)
	assert.Equal(t, 2, batch.Queued)
}

func TestFinalGradeHandlerRecalculateUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewFinalGradeHandler(&finalGradeServiceMock{}, &recalculationServiceMock{err: appErrors.Clone(appErrors.ErrServiceUnavailable, "recalculation queue is not configured")})

	c, w := newGinContext(http.MethodPost, "/courses/course-1/final-grades/recalculate", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}
	h.Recalculate(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
