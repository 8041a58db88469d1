// Package app is the composition root: it loads config, builds the LLM
// client chain, and wires the service and HTTP layers together.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"illustrator/internal/config"
	"illustrator/internal/constraint"
	"illustrator/internal/generate"
	"illustrator/internal/illustration"
	llmclient "illustrator/internal/llm/client"
	llmmw "illustrator/internal/llm/middleware"
	"illustrator/internal/server"
	"illustrator/internal/server/handler"
	"illustrator/internal/template"
)

type App struct {
	server *server.Server
	llm    llmclient.LLMClient
	log    *zap.Logger
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := newLogger(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	llm := newLLMClient(ctx, cfg.LLM, log)
	llm = llmmw.Chain(llm,
		llmmw.WithTimeout(cfg.LLM.Timeout),
		llmmw.WithMetrics(),
		llmmw.WithLogging(log),
	)

	store, err := constraint.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build spec store: %w", err)
	}
	gen := generate.New(llm, cfg.LLM.MaxAttempts, log)
	filler := template.NewFiller(log)
	svc := illustration.NewService(store, gen, filler, log)

	illustrations := handler.NewIllustration(svc, log)
	mux := server.NewMux(illustrations, log)
	srv := server.New(cfg.Port, mux, log)

	return &App{server: srv, llm: llm, log: log}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.llm.Close(); cerr != nil && err == nil {
		err = cerr
	}
	_ = a.log.Sync()
	return err
}

func (a *App) Logger() *zap.Logger { return a.log }

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newLLMClient never fails startup: a misconfigured provider degrades to a
// client that rejects every call, so health and capabilities stay up.
func newLLMClient(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) llmclient.LLMClient {
	var (
		cli llmclient.LLMClient
		err error
	)
	switch cfg.Provider {
	case "openai":
		cli, err = llmclient.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBaseURL)
	case "mock":
		cli = llmclient.MockClient{}
	default:
		cli, err = llmclient.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	}
	if err != nil {
		if errors.Is(err, llmclient.ErrNotConfigured) {
			log.Warn("LLM provider not configured, generation requests will fail",
				zap.String("provider", cfg.Provider))
		} else {
			log.Error("LLM client init failed, generation requests will fail",
				zap.String("provider", cfg.Provider), zap.Error(err))
		}
		return llmclient.NewUnconfigured(cfg.Provider)
	}
	log.Info("LLM client ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cli.Model()),
	)
	return cli
}
