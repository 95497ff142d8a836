package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/grading-engine/api/swagger"
	"github.com/noah-isme/grading-engine/internal/middleware"
	"github.com/noah-isme/grading-engine/internal/service"
	"github.com/noah-isme/grading-engine/pkg/logger"
	corsmiddleware "github.com/noah-isme/grading-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/grading-engine/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Grading        *GradingHandler
	FinalGrades    *FinalGradeHandler
	StudentNumbers *StudentNumberHandler
	Rules          *GradingRuleHandler
	Transcripts    *TranscriptHandler
	Metrics        *MetricsHandler
}

// RouterConfig carries the cross-cutting concerns of the HTTP stack.
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	// EnableDocs serves the Swagger UI under /docs; off in production.
	EnableDocs     bool
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/grades/process", h.Grading.Process)

	students := api.Group("/students/:id")
	students.GET("/gpa", h.Grading.SemesterGPA)
	students.GET("/cgpa", h.Grading.CGPA)
	students.GET("/classification", h.Grading.Classification)
	students.GET("/standing", h.Grading.Standing)
	students.GET("/report", h.Grading.Report)
	students.GET("/transcript", h.Transcripts.Download)

	api.GET("/enrollments/:id/report", h.Grading.EnrollmentReport)
	api.POST("/enrollments/student-number", h.StudentNumbers.Generate)

	courses := api.Group("/courses/:id")
	courses.GET("/assessments/weights", h.FinalGrades.Weights)
	courses.POST("/final-grades", h.FinalGrades.Calculate)
	courses.POST("/final-grades/recalculate", h.FinalGrades.Recalculate)

	levels := api.Group("/program-levels/:id")
	levels.GET("/grading-rules", h.Rules.Rules)
	levels.PUT("/grading-rules", h.Rules.ReplaceRules)
	levels.GET("/classifications", h.Rules.Classifications)
	levels.PUT("/classifications", h.Rules.ReplaceClassifications)

	return r
}
