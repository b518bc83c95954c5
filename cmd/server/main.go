package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tallyup/tallyup/internal/config"
	"github.com/tallyup/tallyup/internal/ledger"
	"github.com/tallyup/tallyup/internal/server"
	"github.com/tallyup/tallyup/internal/storage/sqlite"
	"github.com/tallyup/tallyup/pkg/logging"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	led := ledger.New(store, slog.Default())

	// Restore the previous session's state. A read failure is not fatal: the
	// in-memory ledger stays authoritative and starts fresh.
	people, groups, expenses, err := store.LoadState(context.Background())
	if err != nil {
		slog.Error("Failed to load persisted state", "error", err)
	} else if len(people) > 0 || len(expenses) > 0 {
		led.Load(people, groups, expenses)
		slog.Info("State restored",
			"people", len(people),
			"groups", len(groups),
			"expenses", len(expenses),
		)
	}

	srv := server.New(led, slog.Default())

	// h2c enables HTTP/2 without TLS.
	handler := h2c.NewHandler(srv.Handler(), &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
