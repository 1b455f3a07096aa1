// Package graph issues authenticated requests against the Microsoft Graph
// REST API.
//
// Every call resolves to either a decoded payload or a typed *APIError
// carrying the HTTP status and an actionable message; the client never
// panics and never returns an untyped failure. Transport-level errors are
// normalized to status 0. Callers pick between the stable v1.0 surface and
// the beta surface per request.
package graph
