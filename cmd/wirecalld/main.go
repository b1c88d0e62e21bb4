package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/wirecall/wirecall/internal/config"
	"github.com/wirecall/wirecall/internal/domain"
	"github.com/wirecall/wirecall/internal/events"
	directevents "github.com/wirecall/wirecall/internal/events/direct"
	natsevents "github.com/wirecall/wirecall/internal/events/nats"
	"github.com/wirecall/wirecall/internal/registration"
	"github.com/wirecall/wirecall/internal/registry"
	"github.com/wirecall/wirecall/internal/server"
	"github.com/wirecall/wirecall/internal/storage"
	"github.com/wirecall/wirecall/internal/storage/memory"
	"github.com/wirecall/wirecall/internal/storage/sqldb"
	"github.com/wirecall/wirecall/internal/telemetry"
	"github.com/wirecall/wirecall/internal/transport"
)

func main() {
	// .env is optional; real config comes from file + environment.
	_ = godotenv.Load()

	configPath := os.Getenv("WIRECALL_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer("wirecall", logger)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
		defer shutdown(context.Background())
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	publisher, err := newPublisher(cfg, store)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	if publisher != nil {
		defer publisher.Close()
	}

	reg := registry.New()
	registration.RegisterBuiltins(reg, store)

	var router domain.Router = reg
	if publisher != nil {
		router = events.NewRecordingRouter(reg, publisher, logger)
	}

	handler, err := transport.New(transport.Options{
		Router:        router,
		AllowBatching: cfg.RPC.AllowBatching,
		MaxBatchSize:  cfg.RPC.MaxBatchSize,
		Logger:        logger,
		CreateContext: func(r *http.Request) (any, error) {
			return map[string]any{
				"request_id":  server.GetRequestID(r.Context()),
				"remote_addr": r.RemoteAddr,
			}, nil
		},
		OnError: func(d transport.ErrorDetails) {
			logger.Warn("call failed",
				slog.String("path", d.Path),
				slog.String("code", string(d.Err.Code)),
				slog.String("message", d.Err.Message),
			)
			if d.Request != nil {
				server.AddError(d.Request.Context(), d.Err)
			}
		},
	})
	if err != nil {
		log.Fatalf("Failed to build transport: %v", err)
	}

	srv := server.New(cfg.Server.Port, cfg.Server.RequestTimeout, logger)
	srv.MountHandler(cfg.RPC.BasePath, handler)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

func newStore(cfg *config.Config) (storage.CallLogStore, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		return sqldb.New(cfg.Storage.SQLite.Path)
	case "none":
		return nil, nil
	default:
		return memory.New(), nil
	}
}

func newPublisher(cfg *config.Config, store storage.CallLogStore) (events.Publisher, error) {
	switch cfg.Events.Type {
	case "nats":
		return natsevents.Connect(cfg.Events.NATS.URL, "wirecall", cfg.Events.NATS.Subject)
	case "none":
		return nil, nil
	default:
		if store == nil {
			return nil, nil
		}
		return directevents.NewPublisher(store)
	}
}
