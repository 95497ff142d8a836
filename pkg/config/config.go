package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/grading-engine/internal/grading"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Grading  GradingConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GradingConfig carries the institutional policy constants and rule cache tuning.
type GradingConfig struct {
	ExamThreshold       float64
	RetakeCapPoints     float64
	RetakeCapGrade      string
	ExpectedWeightTotal float64
	ContinuationCGPA    float64
	GraduationCGPA      float64
	RequireExam         bool
	CacheEnabled        bool
	RulesCacheTTL       time.Duration
}

// Policy converts the configuration into the engine policy, filling defaults.
func (g GradingConfig) Policy() grading.Policy {
	return grading.Policy{
		ExamThreshold:        g.ExamThreshold,
		RetakeCap:            grading.RetakeCap{Points: g.RetakeCapPoints, Grade: g.RetakeCapGrade},
		ExpectedWeightTotal:  g.ExpectedWeightTotal,
		ContinuationCGPA:     g.ContinuationCGPA,
		GraduationCGPA:       g.GraduationCGPA,
		RequireExamComponent: g.RequireExam,
	}.WithDefaults()
}

// JobsConfig sizes the background recalculation queue.
type JobsConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
	BufferSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:        v.GetString("REDIS_HOST"),
		Port:        v.GetInt("REDIS_PORT"),
		Password:    v.GetString("REDIS_PASSWORD"),
		DB:          v.GetInt("REDIS_DB"),
		PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
		DialTimeout: parseDuration(v.GetString("REDIS_DIAL_TIMEOUT"), 3*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Grading = GradingConfig{
		ExamThreshold:       v.GetFloat64("GRADING_EXAM_THRESHOLD"),
		RetakeCapPoints:     v.GetFloat64("GRADING_RETAKE_CAP_POINTS"),
		RetakeCapGrade:      strings.ToUpper(strings.TrimSpace(v.GetString("GRADING_RETAKE_CAP_GRADE"))),
		ExpectedWeightTotal: v.GetFloat64("GRADING_EXPECTED_WEIGHT_TOTAL"),
		ContinuationCGPA:    v.GetFloat64("GRADING_CONTINUATION_CGPA"),
		GraduationCGPA:      v.GetFloat64("GRADING_GRADUATION_CGPA"),
		RequireExam:         v.GetBool("GRADING_REQUIRE_EXAM_COMPONENT"),
		CacheEnabled:        v.GetBool("GRADING_CACHE_ENABLED"),
		RulesCacheTTL:       parseDuration(v.GetString("GRADING_RULES_CACHE_TTL"), 15*time.Minute),
	}

	cfg.Jobs = JobsConfig{
		Workers:    v.GetInt("RECALC_WORKERS"),
		Retries:    v.GetInt("RECALC_RETRIES"),
		RetryDelay: parseDuration(v.GetString("RECALC_RETRY_DELAY"), 2*time.Second),
		BufferSize: v.GetInt("RECALC_BUFFER_SIZE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "grading_engine")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "3s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GRADING_EXAM_THRESHOLD", grading.DefaultExamThreshold)
	v.SetDefault("GRADING_RETAKE_CAP_POINTS", grading.DefaultRetakeCapPoints)
	v.SetDefault("GRADING_RETAKE_CAP_GRADE", grading.DefaultRetakeCapGrade)
	v.SetDefault("GRADING_EXPECTED_WEIGHT_TOTAL", grading.DefaultExpectedWeightTotal)
	v.SetDefault("GRADING_CONTINUATION_CGPA", grading.DefaultContinuationCGPA)
	v.SetDefault("GRADING_GRADUATION_CGPA", grading.DefaultGraduationCGPA)
	v.SetDefault("GRADING_REQUIRE_EXAM_COMPONENT", false)
	v.SetDefault("GRADING_CACHE_ENABLED", true)
	v.SetDefault("GRADING_RULES_CACHE_TTL", "15m")

	v.SetDefault("RECALC_WORKERS", 2)
	v.SetDefault("RECALC_RETRIES", 3)
	v.SetDefault("RECALC_RETRY_DELAY", "2s")
	v.SetDefault("RECALC_BUFFER_SIZE", 256)
}

// isMissingFile treats an absent .env file as optional; SetConfigFile makes
// viper report a path error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
