package main

import (
	"context"
	"os"

	"github.com/pharmago/clientkit/internal/devserver"
	"github.com/pharmago/clientkit/pkg/config"
	"github.com/pharmago/clientkit/pkg/logger"
)

func main() {
	log := logger.New(logger.WithFormat(logger.FormatText))

	var cfg devserver.Config
	if err := config.Load(&cfg); err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	srv := devserver.New(cfg)
	log.Info("demo accounts seeded",
		"customer", devserver.DemoCustomerEmail,
		"admin", devserver.DemoAdminEmail)

	if err := srv.Run(context.Background(), log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
