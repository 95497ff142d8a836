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

type ruleService interface {
	RuleTable(ctx context.Context, programLevelID string) (*service.RuleTable, error)
	ReplaceRules(ctx context.Context, programLevelID string, req service.ReplaceRulesRequest) (*service.RuleTable, error)
	Classifications(ctx context.Context, programLevelID string) ([]models.AcademicClassification, error)
	ReplaceClassifications(ctx context.Context, programLevelID string, req service.ReplaceClassificationsRequest) ([]models.AcademicClassification, error)
}

// GradingRuleHandler administers the grading tables of program levels.
type GradingRuleHandler struct {
	rules ruleService
}

// NewGradingRuleHandler constructs GradingRuleHandler.
func NewGradingRuleHandler(rules ruleService) *GradingRuleHandler {
	return &GradingRuleHandler{rules: rules}
}

// Rules godoc
// @Summary Effective boundary table of a program level
// @Tags ProgramLevels
// @Produce json
// @Param id path string true "Program level ID"
// @Success 200 {object} response.Envelope
// @Router /program-levels/{id}/grading-rules [get]
func (h *GradingRuleHandler) Rules(c *gin.Context) {
	table, err := h.rules.RuleTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, table, nil)
}

// ReplaceRules godoc
// @Summary Replace the boundary table of a program level
// @Tags ProgramLevels
// @Accept json
// @Produce json
// @Param id path string true "Program level ID"
// @Param payload body service.ReplaceRulesRequest true "Bands"
// @Success 200 {object} response.Envelope
// @Router /program-levels/{id}/grading-rules [put]
func (h *GradingRuleHandler) ReplaceRules(c *gin.Context) {
	var req service.ReplaceRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	table, err := h.rules.ReplaceRules(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, table, nil)
}

// Classifications godoc
// @Summary Configured classification bands of a program level
// @Tags ProgramLevels
// @Produce json
// @Param id path string true "Program level ID"
// @Success 200 {object} response.Envelope
// @Router /program-levels/{id}/classifications [get]
func (h *GradingRuleHandler) Classifications(c *gin.Context) {
	bands, err := h.rules.Classifications(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bands, nil)
}

// ReplaceClassifications godoc
// @Summary Replace the classification bands of a program level
// @Tags ProgramLevels
// @Accept json
// @Produce json
// @Param id path string true "Program level ID"
// @Param payload body service.ReplaceClassificationsRequest true "Bands"
// @Success 200 {object} response.Envelope
// @Router /program-levels/{id}/classifications [put]
func (h *GradingRuleHandler) ReplaceClassifications(c *gin.Context) {
	var req service.ReplaceClassificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bands, err := h.rules.ReplaceClassifications(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bands, nil)
}
