package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eaglechat/eaglechat/internal/client"
	"github.com/eaglechat/eaglechat/internal/config"
	chatService "github.com/eaglechat/eaglechat/internal/service/chat"
	"github.com/eaglechat/eaglechat/internal/ui/chat"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "eaglechat:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("EAGLECHAT_CONFIG"))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file when requested.
	logger := zap.NewNop()
	if path := os.Getenv("EAGLECHAT_LOG_FILE"); path != "" {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.OutputPaths = []string{path}
		zcfg.ErrorOutputPaths = []string{path}
		if logger, err = zcfg.Build(); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := chatService.NewController(
		client.New(cfg.Client.ServerURL),
		chatService.WithLogger(logger),
	)

	opts := []chat.Option{}
	if renderer, err := chat.NewMarkdownRenderer("", 78); err != nil {
		logger.Warn("markdown renderer unavailable, showing plain text", zap.Error(err))
	} else {
		opts = append(opts, chat.WithRenderer(renderer))
	}

	logger.Info("starting terminal client", zap.String("server", cfg.Client.ServerURL))
	program := tea.NewProgram(chat.New(ctx, controller, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
