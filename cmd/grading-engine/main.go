package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/handler"
	"github.com/noah-isme/grading-engine/internal/repository"
	"github.com/noah-isme/grading-engine/internal/service"
	"github.com/noah-isme/grading-engine/pkg/cache"
	"github.com/noah-isme/grading-engine/pkg/config"
	"github.com/noah-isme/grading-engine/pkg/database"
	"github.com/noah-isme/grading-engine/pkg/jobs"
	"github.com/noah-isme/grading-engine/pkg/logger"
)

const recalculationQueue = "final_grade_recalculation"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	readiness := map[string]handler.ReadinessCheck{"database": db.PingContext}

	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, grading table cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		readiness["redis"] = cache.Ready(redisClient)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	policy := cfg.Grading.Policy()

	levels := repository.NewProgramLevelRepository(db)
	courses := repository.NewCourseRepository(db)
	students := repository.NewStudentRepository(db)
	rules := repository.NewGradingRuleRepository(db)
	results := repository.NewCourseResultRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	assessments := repository.NewAssessmentRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Grading.RulesCacheTTL, logr, cfg.Grading.CacheEnabled)
	ruleSvc := service.NewRuleService(rules, levels, cacheSvc, cfg.Grading.RulesCacheTTL, validate, logr)
	gradingSvc := service.NewGradingService(service.GradingServiceDeps{
		Results:     results,
		Enrollments: enrollments,
		Courses:     courses,
		Students:    students,
		Levels:      levels,
		Tables:      ruleSvc,
		Metrics:     metrics,
		Validator:   validate,
		Logger:      logr,
	}, policy)
	finalGradeSvc := service.NewFinalGradeService(assessments, policy, metrics, logr)
	studentNumberSvc := service.NewStudentNumberService(enrollments, courses, metrics, validate, logr)
	exportSvc := service.NewExportService(results, students, logr)

	recalcSvc := service.NewRecalculationService(enrollments, nil, finalGradeSvc, gradingSvc, logr)
	worker := service.NewRecalculationWorker(recalcSvc, logr)
	queue := jobs.NewQueue(recalculationQueue, worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		BufferSize: cfg.Jobs.BufferSize,
		MaxRetries: cfg.Jobs.Retries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
		Observer:   service.JobObserver(metrics),
	})
	recalcSvc.AttachQueue(queue)

	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()
	queue.Start(queueCtx)

	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
		Metrics:        metrics,
		EnableDocs:     cfg.Env != config.EnvProduction,
	}, handler.Handlers{
		Grading:        handler.NewGradingHandler(gradingSvc),
		FinalGrades:    handler.NewFinalGradeHandler(finalGradeSvc, recalcSvc),
		StudentNumbers: handler.NewStudentNumberHandler(studentNumberSvc),
		Rules:          handler.NewGradingRuleHandler(ruleSvc),
		Transcripts:    handler.NewTranscriptHandler(exportSvc),
		Metrics:        handler.NewMetricsHandler(metrics, readiness),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
	queue.Stop()
	logr.Info("server exited", zap.Int("pending_recalculations", queue.Pending()))
}
