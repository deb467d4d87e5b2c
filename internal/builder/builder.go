package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/unidoc/unioffice/common/license"
	"github.com/vibecoding/vibe-backend/internal/api"
	generationapi "github.com/vibecoding/vibe-backend/internal/api/generation"
	"github.com/vibecoding/vibe-backend/internal/config"
	"github.com/vibecoding/vibe-backend/internal/integration/llm"
	"github.com/vibecoding/vibe-backend/internal/pkg/logger"
	"github.com/vibecoding/vibe-backend/internal/pkg/validator"
	"github.com/vibecoding/vibe-backend/internal/usecase/generation"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return BuildWithConfig(cfg)
}

// BuildWithConfig wires the application from an already loaded configuration.
func BuildWithConfig(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("model", cfg.LLMConnectorCfg.Model),
	)

	if cfg.UnidocLicenseKey != "" {
		if err := license.SetMeteredKey(cfg.UnidocLicenseKey); err != nil {
			return nil, fmt.Errorf("set unidoc license: %w", err)
		}
		log.Info("DOCX export license configured")
	}

	var llmConnector generation.LLMConnector
	if cfg.EnableMocks {
		log.Info("Using mock connector for the LLM service")
		llmConnector = llm.NewMockConnector(log)
	} else {
		log.Info("Using real connector for the LLM service", zap.String("url", cfg.LLMConnectorCfg.Url))
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, log)
	}

	generationUC := generation.NewUsecase(llmConnector, cfg.LLMConnectorCfg.Model)
	log.Info("Use cases initialized")

	generationHandler := generationapi.NewHandler(generationUC, validator.NewValidator(cfg.MaxPromptLength))
	router := api.SetupRouter(generationHandler, cfg.CORSAllowedOrigins, log)
	log.Info("HTTP router configured")

	// WriteTimeout must cover all three upstream calls of one generation.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}
