package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/opengovaccess/votewatch/internal/router"
	"github.com/opengovaccess/votewatch/internal/server"
	"github.com/opengovaccess/votewatch/internal/storage/factory"
	pkgserver "github.com/opengovaccess/votewatch/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	reader, err := factory.NewReader(context.Background(), &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage reader", "error", err)
		os.Exit(1)
	}

	var healthChecker pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
	if pinger, ok := reader.(pkgserver.Pinger); ok {
		healthChecker = pkgserver.NewPingHealthChecker(pinger)
	}
	s := server.New(sCfg, healthChecker)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Votewatch API is running")
	})

	votesRouter := router.NewVotesRouter(s.Echo, reader)
	votesRouter.Bind()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
