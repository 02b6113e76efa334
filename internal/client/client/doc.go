// Package client talks to the conference portal REST backend.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) covering authentication,
//     papers, contributions, reference data, reviewer and admin endpoints.
//  2. A concrete HTTP implementation (see HTTPClient). A bearer transport
//     attaches the stored token to every request and stamps a correlation id.
//     Non-2xx statuses are mapped to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI
//     session cache: SQLite plus embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict,
// ErrBadRequest. Server-supplied messages travel in *APIError; UserMessage
// extracts them for display.
//
// Calls are never retried and carry no client-side timeout. Cancel through
// the context.
package client
