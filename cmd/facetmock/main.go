package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/facetdev/facet/internal/mockd"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("FACET_MOCK_ADDR", "127.0.0.1:8642"), "listen address")
	seed := flag.Int("seed", 10, "number of generated profiles beyond the well-known ids")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	}))

	server := mockd.New(*seed, logger)

	ids := server.IDs()
	sort.Strings(ids)
	logger.Info("mock profile service ready", "addr", *addr, "profiles", len(ids))
	for _, id := range ids {
		logger.Debug("seeded profile", "id", id)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "facetmock: %v\n", err)
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
