package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// BackendBaseURL points at the association's REST backend; the default is
	// the production deployment.
	BackendBaseURL string `envconfig:"BACKEND_BASE_URL" default:"https://vksum1qvxl.execute-api.us-east-2.amazonaws.com"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	// The single operator account. There is exactly one credential pair; any
	// other input is rejected with the same generic error.
	AdminName     string `envconfig:"ADMIN_NAME" default:"Pawan Gold"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"pawangold@gmail.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"pawangold@123"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.BackendBaseURL == "" {
		return nil, errors.New("backend base url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
