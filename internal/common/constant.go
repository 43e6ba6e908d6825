// Package common contains shared constants and sentinel errors used across
// trivia quiz components.
package common

// AuthorizationHeaderName carries the bearer access token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed on every response so log lines can be matched
// with client reports.
const RequestIDHeaderName = "X-Request-ID"
