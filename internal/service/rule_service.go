package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/grading"
	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

type gradingRuleStore interface {
	ListRules(ctx context.Context, programLevelID string) ([]models.GradingRule, error)
	ReplaceRules(ctx context.Context, programLevelID string, rules []models.GradingRule) error
	ListClassifications(ctx context.Context, programLevelID string) ([]models.AcademicClassification, error)
	ReplaceClassifications(ctx context.Context, programLevelID string, bands []models.AcademicClassification) error
}

type programLevelReader interface {
	FindByID(ctx context.Context, id string) (*models.ProgramLevel, error)
}

// RuleTableSource tells whether a table came from configuration or the compiled-in defaults.
type RuleTableSource string

const (
	RuleSourceConfigured RuleTableSource = "configured"
	RuleSourceDefault    RuleTableSource = "default"
)

// RuleTable is the effective boundary table of a program level.
type RuleTable struct {
	ProgramLevelID string               `json:"program_level_id"`
	Source         RuleTableSource      `json:"source"`
	Rules          []models.GradingRule `json:"rules"`
}

// ReplaceRulesRequest carries a full boundary table.
type ReplaceRulesRequest struct {
	Rules []models.GradingRule `json:"rules" validate:"required,min=1,dive"`
}

// ReplaceClassificationsRequest carries a full classification table.
type ReplaceClassificationsRequest struct {
	Classifications []models.AcademicClassification `json:"classifications" validate:"required,min=1,dive"`
}

// RuleService loads and administers per program level grading tables.
// Tables are cached in Redis because every graded course reads them.
type RuleService struct {
	store     gradingRuleStore
	levels    programLevelReader
	cache     *CacheService
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRuleService constructs RuleService. A nil cache disables caching.
func NewRuleService(store gradingRuleStore, levels programLevelReader, cache *CacheService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *RuleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleService{store: store, levels: levels, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

func rulesCacheKey(programLevelID string) string {
	return "grading:rules:" + programLevelID
}

func classificationsCacheKey(programLevelID string) string {
	return "grading:classifications:" + programLevelID
}

// Rules returns the configured bands of a program level; an empty slice means the defaults apply.
func (s *RuleService) Rules(ctx context.Context, programLevelID string) ([]models.GradingRule, error) {
	key := rulesCacheKey(programLevelID)
	var cached []models.GradingRule
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	rules, err := s.store.ListRules(ctx, programLevelID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grading rules")
	}
	if rules == nil {
		rules = []models.GradingRule{}
	}
	_ = s.cache.Set(ctx, key, rules, s.ttl)
	return rules, nil
}

// RuleTable returns the effective boundary table, falling back to the defaults.
func (s *RuleService) RuleTable(ctx context.Context, programLevelID string) (*RuleTable, error) {
	if _, err := s.level(ctx, programLevelID); err != nil {
		return nil, err
	}
	rules, err := s.Rules(ctx, programLevelID)
	if err != nil {
		return nil, err
	}
	table := &RuleTable{ProgramLevelID: programLevelID, Source: RuleSourceConfigured, Rules: grading.SortRules(rules)}
	if len(rules) == 0 {
		table.Source = RuleSourceDefault
		table.Rules = grading.DefaultGradingRules()
	}
	return table, nil
}

// Classifications returns configured classification bands of a program level, possibly empty.
func (s *RuleService) Classifications(ctx context.Context, programLevelID string) ([]models.AcademicClassification, error) {
	key := classificationsCacheKey(programLevelID)
	var cached []models.AcademicClassification
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	bands, err := s.store.ListClassifications(ctx, programLevelID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic classifications")
	}
	if bands == nil {
		bands = []models.AcademicClassification{}
	}
	_ = s.cache.Set(ctx, key, bands, s.ttl)
	return bands, nil
}

// ReplaceRules validates and stores a complete boundary table.
func (s *RuleService) ReplaceRules(ctx context.Context, programLevelID string, req ReplaceRulesRequest) (*RuleTable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if problems := grading.ValidateRuleTable(req.Rules); len(problems) > 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidRules, "invalid grading rules: "+strings.Join(problems, "; "))
	}
	if _, err := s.level(ctx, programLevelID); err != nil {
		return nil, err
	}
	for i := range req.Rules {
		req.Rules[i].LetterGrade = strings.ToUpper(strings.TrimSpace(req.Rules[i].LetterGrade))
	}
	if err := s.store.ReplaceRules(ctx, programLevelID, req.Rules); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store grading rules")
	}
	_ = s.cache.Evict(ctx, rulesCacheKey(programLevelID))
	s.logger.Info("grading rules replaced", zap.String("program_level_id", programLevelID), zap.Int("bands", len(req.Rules)))
	return &RuleTable{ProgramLevelID: programLevelID, Source: RuleSourceConfigured, Rules: grading.SortRules(req.Rules)}, nil
}

// ReplaceClassifications validates and stores a complete classification table.
func (s *RuleService) ReplaceClassifications(ctx context.Context, programLevelID string, req ReplaceClassificationsRequest) ([]models.AcademicClassification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if problems := grading.ValidateClassificationTable(req.Classifications); len(problems) > 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidRules, "invalid classification bands: "+strings.Join(problems, "; "))
	}
	if _, err := s.level(ctx, programLevelID); err != nil {
		return nil, err
	}
	if err := s.store.ReplaceClassifications(ctx, programLevelID, req.Classifications); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store academic classifications")
	}
	_ = s.cache.Evict(ctx, classificationsCacheKey(programLevelID))
	s.logger.Info("academic classifications replaced", zap.String("program_level_id", programLevelID), zap.Int("bands", len(req.Classifications)))
	return req.Classifications, nil
}

func (s *RuleService) level(ctx context.Context, programLevelID string) (*models.ProgramLevel, error) {
	level, err := s.levels.FindByID(ctx, programLevelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("program level %s not found", programLevelID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program level")
	}
	return level, nil
}
