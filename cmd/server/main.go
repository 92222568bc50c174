package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vovakirdan/chatrelay-server/internal/app"
	"github.com/vovakirdan/chatrelay-server/internal/config"
	"github.com/vovakirdan/chatrelay-server/internal/log"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to config.yaml")
		addr         = flag.String("addr", "", "listen address override")
		confirmDelay = flag.Duration("confirm-delay", 0, "delivery confirmation delay override")
	)
	flag.Parse()

	logger := log.New("info")

	cfg, path, err := config.Load(logger, *configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *confirmDelay > 0 {
		cfg.DeliveryConfirmDelay = *confirmDelay
	}

	logger = log.New(cfg.LogLevel)
	logger.Info().Str("config", path).Str("addr", cfg.Addr).Dur("confirm_delay", cfg.DeliveryConfirmDelay).Msg("starting chatrelay server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}
