// Package config handles loading Facet's configuration file.
//
// The Load function resolves ~/.config/facet/config.toml (or an explicit
// path), falls back to hardcoded defaults when the file is missing, honors
// a .env file in the working directory, and lets the FACET_SERVER_URL and
// FACET_USER environment variables override everything. Missing config
// files are not an error; Facet works out of the box against a local
// profile service.
//
// Example config.toml:
//
//	server_url = "127.0.0.1:8642"
//	default_user = "u1"
//	poll_seconds = 15
package config
