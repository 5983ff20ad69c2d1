package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/facetdev/facet/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override facet config path (optional)")
	userID := flag.String("user", "", "profile id to bind on startup (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional)")
	debugLog := flag.String("debug", "", "write a debug log to this file (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		UserID:     *userID,
		DebugLog:   *debugLog,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "facet: %v\n", err)
		return 1
	}
	return 0
}
