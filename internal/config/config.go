package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/vibecoding/vibe-backend/internal/entity"
	pkgRetry "github.com/vibecoding/vibe-backend/internal/pkg/retry"
)

const (
	tokenPrefix    = "sk-"
	tokenMinLength = 20
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8000"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"5m"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	// Request limits
	MaxPromptLength int `env:"MAX_PROMPT_LENGTH" envDefault:"8000"`

	// External service configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Optional metered key for DOCX export
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
	Model               string               `env:"MODEL" envDefault:"meta-llama/llama-3-8b-instruct:free"`
	Referer             string               `env:"REFERER" envDefault:"http://localhost:5173"`
	Title               string               `env:"TITLE" envDefault:"Vibe Coder"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// LoadConfig reads the -env flag, loads the matching .env file if present and
// parses the process environment.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return Parse(*envFlag, env.Options{})
}

// Parse builds and validates a Config. opts.Environment, when set, replaces
// the process environment.
func Parse(environment string, opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	cfg.LLMConnectorCfg.Token = strings.TrimSpace(cfg.LLMConnectorCfg.Token)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	llm := cfg.LLMConnectorCfg

	// Mock connectors never reach the upstream service.
	if !cfg.EnableMocks {
		if llm.Token == "" {
			return &entity.ConfigError{Field: "LLM_TOKEN", Reason: "is missing"}
		}
		if !strings.HasPrefix(llm.Token, tokenPrefix) || len(llm.Token) < tokenMinLength {
			return &entity.ConfigError{Field: "LLM_TOKEN", Reason: "has an invalid format"}
		}
	}

	if llm.Url == "" {
		return &entity.ConfigError{Field: "LLM_SERVICE_URL", Reason: "is missing"}
	}

	if llm.Model == "" {
		return &entity.ConfigError{Field: "LLM_MODEL", Reason: "is missing"}
	}

	if llm.Retry.Attempts < 1 || llm.Retry.Attempts > 10 {
		return &entity.ConfigError{
			Field:  "LLM_RETRY_ATTEMPTS",
			Reason: fmt.Sprintf("must be between 1 and 10, got %d", llm.Retry.Attempts),
		}
	}

	if cfg.MaxPromptLength < 1 {
		return &entity.ConfigError{
			Field:  "MAX_PROMPT_LENGTH",
			Reason: fmt.Sprintf("must be positive, got %d", cfg.MaxPromptLength),
		}
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
