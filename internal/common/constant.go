// Package common contains constants, validation errors and small helpers
// shared by the portal client packages.
package common

const (
	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token inside AuthorizationHeader.
	BearerPrefix = "Bearer "
	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)
