package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/folio/internal/catalog"
	"github.com/Versifine/folio/internal/config"
	"github.com/Versifine/folio/internal/event"
	"github.com/Versifine/folio/internal/frame"
	"github.com/Versifine/folio/internal/frontend"
	"github.com/Versifine/folio/internal/frontend/console"
	"github.com/Versifine/folio/internal/frontend/window"
	"github.com/Versifine/folio/internal/input"
	"github.com/Versifine/folio/internal/locomotion"
	"github.com/Versifine/folio/internal/logger"
	"github.com/Versifine/folio/internal/panel"
	"github.com/Versifine/folio/internal/player"
	"github.com/Versifine/folio/internal/pose"
	"github.com/Versifine/folio/internal/scene"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file")
	exportDir := flag.String("export", "", "write panel images as WebP to this directory and exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		slog.Error("Failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logger.Close()

	cat, fallback := catalog.LoadOrDefault(cfg.World.Projects)
	if fallback {
		slog.Warn("Using built-in project catalog", "path", cfg.World.Projects)
	}

	if *exportDir != "" {
		if err := export(*exportDir, cat); err != nil {
			os.Exit(1)
		}
		return
	}
	if cfg.Export.Dir != "" {
		if err := export(cfg.Export.Dir, cat); err != nil {
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cat); err != nil {
		slog.Error("Frontend stopped", "error", err)
		os.Exit(1)
	}
}

func export(dir string, cat *catalog.Catalog) error {
	results, err := panel.ExportWebP(dir, cat)
	for _, r := range results {
		if r.Error == "" {
			slog.Info("Exported panel", "project", r.ProjectID, "path", r.Path)
		}
	}
	if err != nil {
		slog.Error("Failed to export panels", "error", err)
	}
	return err
}

func run(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) error {
	pc := locomotion.PlayerConfig{
		Height:      cfg.Player.Height,
		Speed:       cfg.Player.Speed,
		JumpImpulse: cfg.Player.JumpImpulse,
	}
	kind := pose.KindCamera
	if cfg.Frontend.FreeCamera {
		kind = pose.KindFreeCamera
	}

	bus := event.NewBus()
	bus.Subscribe(event.EventLanded, func(raw any) {
		if evt, ok := raw.(event.LandedEvent); ok {
			slog.Debug("Landed", "airtime", evt.Airtime)
		}
	})
	bus.Subscribe(event.EventProjectNear, func(raw any) {
		if evt, ok := raw.(event.ProjectNearEvent); ok && evt.ProjectID != "" {
			slog.Info("Near project", "project", evt.ProjectID)
		}
	})

	world := scene.Build(cat, cfg.World.Seed)
	p := player.New(pc, pose.New(kind, pose.Spawn(pc.Height), cfg.Frontend.Sensitivity), bus)

	mode := cfg.Frontend.Mode
	if mode == config.ModeAuto || mode == config.ModeWindow {
		keyboard := input.NewKeyboard()
		err := window.Run(ctx, frontend.NewSession(p, world, keyboard, bus, nil), keyboard, cfg.Frontend.TPS)
		if err == nil || mode == config.ModeWindow {
			return err
		}
		if !errors.Is(err, window.ErrUnavailable) {
			slog.Warn("Window frontend failed, falling back", "error", err)
		}
	}

	if mode == config.ModeConsole || console.Available() {
		pulse := input.NewPulse(input.DefaultPulse)
		session := frontend.NewSession(p, world, pulse, bus, nil)
		return console.NewConsole(session, pulse, cfg.Frontend.TPS, cfg.Frontend.Sensitivity).Start(ctx)
	}

	// Nothing to draw to or read from: keep the world ticking until stopped.
	slog.Info("No window or terminal, running headless")
	session := frontend.NewSession(p, world, input.NewKeyboard(), bus, nil)
	ticker := frame.NewTicker(cfg.Frontend.TPS)
	err := ticker.Run(ctx, session.Frame)
	slog.Info("Headless loop stopped", "ticks", ticker.Ticks())
	return err
}
