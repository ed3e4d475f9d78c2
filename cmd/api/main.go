package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pkpd-profile/internal/app"
	"pkpd-profile/internal/platform/config"
	"pkpd-profile/internal/platform/logger"
	"pkpd-profile/internal/platform/server"
	"pkpd-profile/internal/router"
)

// @title PK/PD Profile API
// @version 1.0
// @description Concentración plasmática bajo dosis repetidas (un compartimento) comparada contra el MIC.
// @BasePath /
func main() {
	log := logger.NewFromEnv()
	if err := run(log); err != nil {
		log.Error("server exited", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	r := router.NewRouter(router.Options{
		Logger:   log,
		Drugs:    a.Drugs,
		Profiles: a.Profiles,
		Ready:    a.Ping,
	})

	return server.Run(ctx, ":"+cfg.Port, r, log)
}
