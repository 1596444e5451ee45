package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MONGU38/kkokko-project/internal/core/service"
	"github.com/MONGU38/kkokko-project/internal/infra/buildinfo"
	"github.com/MONGU38/kkokko-project/internal/infra/confloader"
	"github.com/MONGU38/kkokko-project/internal/infra/shutdown"
	"github.com/MONGU38/kkokko-project/internal/relay"
	"github.com/MONGU38/kkokko-project/internal/server/config"
	"github.com/MONGU38/kkokko-project/internal/server/httpserver"
	"github.com/MONGU38/kkokko-project/internal/storage"
	"github.com/MONGU38/kkokko-project/internal/telemetry/logger"
	"github.com/MONGU38/kkokko-project/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kkokko-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting kkokko-server",
		"version", buildinfo.Version,
		"config", *configFile)

	metrics := metric.New()

	store, err := storage.New(storage.Config{
		DataDir:      cfg.Storage.DataDir,
		SaveInterval: cfg.Storage.SaveInterval,
		Logger:       log,
		OnSave:       metrics.SnapshotSave,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	store.Start()

	participants, answerSets, matchRecords := store.Counts()
	log.Info("records restored",
		"participants", participants,
		"answer_sets", answerSets,
		"match_records", matchRecords,
		"data_dir", cfg.Storage.DataDir)

	hub := relay.NewHub(log, metrics)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ParticipantService: service.NewParticipantService(store),
		AnswerService:      service.NewAnswerService(store),
		MatchService:       service.NewMatchService(store),
		Hub:                hub,
		Metrics:            metrics,
		Logger:             log,
		RateLimit:          cfg.Server.HTTP.RateLimit,
	})
	httpServer := httpserver.New(cfg.Server.HTTP, router)

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	shutdownHandler.OnShutdown(func(context.Context) error {
		log.Info("flushing records")
		return store.Close()
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("configuration watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and sets it as default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// startConfigWatcher re-applies the log level when the configuration
// file changes. Other settings require a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		if filepath.Base(path) != filepath.Base(configFile) {
			return
		}

		// Editors replace rather than rewrite; give the new file a moment.
		time.Sleep(100 * time.Millisecond)

		cfg := config.Default()
		if err := confloader.NewLoader(confloader.WithConfigFile(configFile)).Load(cfg); err != nil {
			log.Warn("configuration reload failed", "error", err)
			return
		}

		if cfg.Log.Level != logger.GetLevel() {
			log.Info("log level changed", "from", logger.GetLevel(), "to", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})

	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}
	watcher.StartAsync()
	return watcher, nil
}
