package config

import (
	"time"

	"creditline-service/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, admin key, etc.), security settings
// - default: Values common across all environments (tick interval, TTL, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	Admin  AdminConfig
	CORS   CORSConfig
	Log    LogConfig
	Queue  QueueConfig
	Risk   RiskConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type AdminConfig struct {
	Key string `envconfig:"ADMIN_API_KEY" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Admin-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type QueueConfig struct {
	TickInterval       time.Duration `envconfig:"QUEUE_TICK_INTERVAL" default:"50ms"`
	RetryBackoff       time.Duration `envconfig:"QUEUE_RETRY_BACKOFF" default:"5s"`
	DefaultMaxAttempts int           `envconfig:"QUEUE_DEFAULT_MAX_ATTEMPTS" default:"3"`
}

type RiskConfig struct {
	EvaluationTTL        time.Duration `envconfig:"RISK_EVALUATION_TTL" default:"24h"`
	BaseCreditLimitCents int64         `envconfig:"RISK_BASE_CREDIT_LIMIT_CENTS" default:"1000000"`
	BaseRateBps          int           `envconfig:"RISK_BASE_RATE_BPS" default:"500"`
}

func LoadConfig() (Config, error) {
	// .env is optional; real environments inject variables directly
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, errs.Wrap(err, "failed to process env config")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Admin: AdminConfig{
			Key: "test-admin-key",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Queue: QueueConfig{
			TickInterval:       50 * time.Millisecond,
			RetryBackoff:       5 * time.Second,
			DefaultMaxAttempts: 3,
		},
		Risk: RiskConfig{
			EvaluationTTL:        24 * time.Hour,
			BaseCreditLimitCents: 1000000,
			BaseRateBps:          500,
		},
	}
}
