// Package api provides an HTTP client for the profile service.
//
// # Overview
//
// This package defines the client Facet uses to talk to the remote profile
// service. It handles HTTP communication, JSON serialization, and type-safe
// representation of profiles, patches, and service failures.
//
// # Endpoints
//
// The client supports the two calls the rest of the application needs:
//
//   - GET /users/{id}: Fetch the full profile for an identity
//   - PATCH /users/{id}: Apply a partial update of editable fields and
//     receive the full authoritative profile back
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: facet/0.1 headers
//   - Carry a fresh X-Request-ID (UUID) for server-side correlation
//   - Have a 5-second timeout (configurable via http.Client)
//
// # Error Handling
//
// Failures with an HTTP response are returned as *APIError carrying a kind
// (not_found, forbidden, validation, unavailable), the status code, and the
// standard status text. Transport-level failures (connection refused, DNS,
// timeout) are *APIError with kind network and no status. Everything else
// (encode/decode problems) is a plain wrapped error.
//
// The controller uses errors.As to recover the structured form when
// deriving user-facing messages; callers that don't care can treat every
// failure as an opaque error.
//
// # Patch Semantics
//
// Patch uses pointer fields so "not edited" and "set to empty" stay
// distinguishable on the wire. Nil fields are omitted from the JSON body
// and the service leaves them untouched. The service, not the client,
// computes server-owned fields (role, timestamps) on update.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
package api
