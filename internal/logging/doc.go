// Package logging provides structured logging utilities for the teamscribe
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "graph.get")
//	logger.Info("request completed",
//	    logging.Status(logging.StatusSuccess))
//
// # Security Considerations
//
// Tokens are never logged directly; use SanitizeToken to log a length
// indicator instead of token content.
package logging
