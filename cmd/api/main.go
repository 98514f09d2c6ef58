package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eaglechat/eaglechat/internal/config"
	"github.com/eaglechat/eaglechat/internal/handler"
	"github.com/eaglechat/eaglechat/internal/model/persona"
	"github.com/eaglechat/eaglechat/internal/service/ai"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn("failed to load .env file, continuing with system environment variables only", zap.Error(err))
	}

	cfg, err := config.Load(os.Getenv("EAGLECHAT_CONFIG"))
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	assistant, ok := personaStore.FindByID(persona.DefaultID)
	if !ok {
		logger.Fatal("default persona missing", zap.String("persona", persona.DefaultID))
	}

	completer, err := ai.NewCompleter(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("failed to initialize provider", zap.Error(err), zap.String("provider", cfg.AI.Provider))
	}
	gateway := ai.NewService(completer, assistant, logger.Named("gateway"))
	logger.Info("completion gateway ready", zap.String("provider", cfg.AI.Provider))

	srv := newServer(cfg.Server)
	srv.Handler = handler.NewRouter(personaStore, gateway, logger.Named("http"),
		handler.WithShutdownHook(srv.RegisterOnShutdown))

	startServer(ctx, logger, srv)
}

func newServer(serverCfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              serverCfg.Addr,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func startServer(ctx context.Context, logger *zap.Logger, srv *http.Server) {
	logger.Info("EagleChat gateway listening", zap.String("addr", srv.Addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
