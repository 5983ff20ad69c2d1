// Package app provides the orchestration layer for the Facet application.
//
// # Overview
//
// This package wires together configuration, the profile service client,
// the controller, the background poller, and the UI. It is the composition
// root; business logic lives in the domain packages.
//
// # Startup Sequence
//
//  1. Load ~/.config/facet/config.toml (env vars override)
//  2. Load user preferences (theme, last viewed profile)
//  3. Open the debug log when requested (slog + tint into a file; the TUI
//     owns the terminal, so nothing may print to stderr)
//  4. Build the profile service client and the controller
//  5. Launch the background poller
//  6. Bind the startup identity (flag > config > remembered last user)
//  7. Start the TUI and block until the user quits or the context cancels
//
// # Polling Behavior
//
// The poller periodically refetches the bound profile so the display tracks
// remote changes. Consecutive failures back the cadence off exponentially
// (capped); the first success restores it. Ticks are skipped while an edit
// or submit is active so background syncs never race the edit overlay.
// Stale results are impossible regardless: the controller discards any
// settled operation that a newer one has superseded.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable or invalid config, debug log
// file cannot be opened, client initialization failure. Everything the
// remote service does wrong at runtime is recoverable and surfaces through
// controller snapshots, never as a crash.
package app
