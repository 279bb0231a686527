package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/starfieldlab/cosmobot/external/config"
	gatewayimpl "github.com/starfieldlab/cosmobot/external/gateway"
	repositoryimpl "github.com/starfieldlab/cosmobot/external/repository"
	scraperimpl "github.com/starfieldlab/cosmobot/external/scraper"
	"github.com/samber/do/v2"
	"github.com/starfieldlab/cosmobot/internal/command"
	"github.com/starfieldlab/cosmobot/internal/config"
	"github.com/starfieldlab/cosmobot/internal/content"
	gatewaypkg "github.com/starfieldlab/cosmobot/internal/gateway"
	"github.com/starfieldlab/cosmobot/internal/session"
	"github.com/starfieldlab/cosmobot/internal/verify"
)

const gatewayConnectTimeout = 20 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching bot")
	runBot(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	gatewayimpl.RegisterDI(injector)
	scraperimpl.RegisterDI(injector)
	content.RegisterDI(injector)
	verify.RegisterDI(injector)
	session.RegisterDI(injector)
	command.RegisterDI(injector)

	return injector
}

func runBot(injector do.Injector) {
	gw, err := do.Invoke[gatewaypkg.Client](injector)
	if err != nil {
		slog.Error("failed to resolve gateway client", "error", err)
		os.Exit(1)
	}
	manager, err := do.Invoke[*command.Manager](injector)
	if err != nil {
		slog.Error("failed to resolve command manager", "error", err)
		os.Exit(1)
	}
	gate, err := do.Invoke[*verify.Gate](injector)
	if err != nil {
		slog.Error("failed to resolve verification gate", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), gatewayConnectTimeout)
	defer cancel()

	slog.Info("startup: connecting to gateway")
	if err := gw.Connect(ctx); err != nil {
		slog.Error("gateway connect failed", "error", err)
		os.Exit(1)
	}
	slog.Info("startup: gateway connected")

	botUserID, err := gw.GetBotUserID()
	if err != nil {
		slog.Error("failed to resolve bot user id", "error", err)
		os.Exit(1)
	}
	manager.SetBotUserID(botUserID)

	if err := gate.Prefill(context.Background()); err != nil {
		slog.Error("failed to prefill verification cache", "error", err)
		os.Exit(1)
	}

	gw.RegisterMessageHandler(manager.HandleMessage)
	gw.RegisterButtonHandler(manager.HandleButton)
	slog.Info("gateway handlers registered", "bot_user_id", botUserID)
	defer func() {
		if err := gw.Close(); err != nil {
			slog.Error("gateway close failed", "error", err)
		}
	}()

	presenceCtx, stopPresence := context.WithCancel(context.Background())
	defer stopPresence()
	manager.StartPresenceRotation(presenceCtx)

	done := make(chan struct{})
	go func() {
		slog.Info("startup: entering gateway run loop")
		if err := gw.Run(); err != nil {
			slog.Error("gateway run failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-done:
	}
}
