// Package main is the entry point for the scribe document service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/event"
	"github.com/dshills/scribe/internal/logging"
	"github.com/dshills/scribe/internal/server"
	"github.com/dshills/scribe/internal/store"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scribed - rich-text document service\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scribed [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed with %s override the file.\n", config.EnvPrefix)
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("scribed %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithFile(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	logger, level, err := logging.NewAtomic(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.Store, logger.Named("store"))
	if err != nil {
		logger.Error("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		return 1
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()

	bus := event.NewBus()
	if _, err := bus.Subscribe("document.*", auditHandler(logger.Named("audit"))); err != nil {
		logger.Error("failed to subscribe", zap.Error(err))
		return 1
	}

	if configPath != "" {
		w, err := config.Watch(func(next *config.Config, err error) {
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				return
			}
			if lvl, err := logging.ParseLevel(next.Log.Level); err == nil {
				level.SetLevel(lvl)
			}
			logger.Info("config reloaded", zap.String("log_level", next.Log.Level))
		}, opts...)
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	srv := server.New(cfg.Server, st, server.WithLogger(logger.Named("http")), server.WithBus(bus))

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
		return 1
	}
	logger.Info("server stopped")
	return 0
}

// auditHandler logs every document event.
func auditHandler(logger *zap.Logger) event.HandlerFunc {
	return func(_ context.Context, topic event.Topic, payload any) error {
		saved, ok := payload.(event.DocumentSaved)
		if !ok {
			return nil
		}
		if saved.Err != nil {
			logger.Warn(string(topic), zap.String("document", saved.DocumentID), zap.Error(saved.Err))
			return nil
		}
		logger.Info(string(topic), zap.String("document", saved.DocumentID), zap.Int("bytes", len(saved.Content)))
		return nil
	}
}
