package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "HRPolicyGateway/docs"
	"HRPolicyGateway/internal/auth"
	"HRPolicyGateway/internal/config"
	"HRPolicyGateway/internal/gateway"
	"HRPolicyGateway/internal/handler"
	"HRPolicyGateway/internal/llm"
	"HRPolicyGateway/internal/logging"
	"HRPolicyGateway/internal/metrics"
	"HRPolicyGateway/internal/ports"
	"HRPolicyGateway/internal/retriever"
	"HRPolicyGateway/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.UsingDevKey {
		logger.Warn("JWT_SECRET_KEY is not set, using the development signing key")
	}
	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	seed, err := storage.LoadSeed(cfg.ProfileSeedPath)
	if err != nil {
		return err
	}
	profiles, err := storage.LoadProfileStore(ctx, db, seed)
	if err != nil {
		return err
	}
	logger.Info("profiles loaded", zap.Int("count", profiles.Len()), zap.String("db", cfg.DBPath))

	policy, err := newRetriever(cfg, logger)
	if err != nil {
		return err
	}
	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	gw := gateway.New(gateway.Deps{
		Profiles:  profiles,
		Retriever: policy,
		Completer: completer,
		Logger:    logger,
		Metrics:   m,
		TopK:      cfg.PolicyTopK,
	})

	deps := handler.Deps{
		Tokens:  auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Service: gw,
		Metrics: m,
		Logger:  logger,
	}
	if cfg.RequirePassword {
		deps.Passwords = db
	}
	router := handler.NewRouter(handler.New(deps), handler.RouterOptions{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Swagger:        true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("llm_provider", cfg.LLMProvider))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRetriever(cfg config.Config, logger *zap.Logger) (ports.Retriever, error) {
	if cfg.PolicyIndexURL != "" {
		logger.Info("using remote policy index", zap.String("url", cfg.PolicyIndexURL))
		return retriever.NewIndexClient(cfg.PolicyIndexURL, cfg.LLMTimeout), nil
	}
	docs, err := retriever.LoadDocuments(cfg.PolicyDir)
	if err != nil {
		return nil, err
	}
	logger.Info("using in-process policy index", zap.Int("documents", len(docs)))
	return retriever.NewKeywordIndex(docs...), nil
}

func newCompleter(ctx context.Context, cfg config.Config) (ports.Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		return llm.NewClient(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAPIKey, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}
