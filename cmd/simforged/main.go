package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simforge/server/internal/config"
	"github.com/simforge/server/internal/core/event"
	coresys "github.com/simforge/server/internal/core/system"
	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
	"github.com/simforge/server/internal/data"
	"github.com/simforge/server/internal/editor"
	"github.com/simforge/server/internal/persist"
	"github.com/simforge/server/internal/scripting"
	"github.com/simforge/server/internal/singleton"
	"github.com/simforge/server/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("SIMFORGE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Optional Postgres audit trail
	var sink persist.Sink = persist.NopSink{}
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		sink = persist.NewAuditRepo(db)
		log.Info("audit trail enabled")
	}

	// 4. Lua engine + script-driven class registration
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()

	graph := typegraph.NewGraph("Actor")
	classCount, err := engine.RegisterClasses(graph)
	if err != nil {
		return fmt.Errorf("register classes: %w", err)
	}
	log.Info("actor classes registered", zap.Int("count", classCount))

	// 5. Create world and subsystems. Mode picks the duplicate retirement
	// strategy: editor worlds go through selection+delete, simulation
	// worlds destroy directly.
	mode := world.ModeSimulation
	if cfg.Runtime.Mode == "editor" {
		mode = world.ModeEditor
	}
	w := world.New(cfg.Runtime.WorldName, mode, log)
	bus := event.NewBus()

	var retirer singleton.Retirer
	if mode == world.ModeEditor {
		ed, err := editor.Install(w, log, nil)
		if err != nil {
			return fmt.Errorf("editor subsystem: %w", err)
		}
		retirer = &editor.Retirer{Editor: ed}
	}
	if _, err := singleton.Install(w, graph, log, bus, retirer); err != nil {
		return fmt.Errorf("singleton subsystem: %w", err)
	}

	// 6. Populate the scene before subsystem init. These spawns happen with
	// the singleton registry not yet ready; the catch-up sweep inside
	// InitSubsystems resolves them.
	scene, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	spawned := scene.Populate(w, graph, log)
	log.Info("scene populated", zap.Int("actors", spawned))

	w.InitSubsystems()
	engine.BindWorld(w, graph)

	// 7. Register tick systems
	runner := coresys.NewRunner()
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(system.NewDeferredSystem(w))
	auditSys := system.NewAuditSystem(bus, sink, log)
	runner.Register(auditSys)
	runner.Register(system.NewCleanupSystem(w))

	// 8. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Runtime.TickRate)
	defer ticker.Stop()

	log.Info("runtime ready",
		zap.String("world", w.Name()),
		zap.String("mode", w.Mode().String()),
		zap.Duration("tick", cfg.Runtime.TickRate))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Runtime.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := auditSys.Flush(flushCtx); err != nil {
				log.Error("final audit flush failed", zap.Error(err))
			}
			log.Info("runtime stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
