// Package server holds the long-lived state behind the MCP server: the
// loaded configuration, the credential store, the token manager, and the
// Graph-backed domain clients that tool handlers call into.
//
// It also runs the optional metrics listener. The MCP transport itself is
// stdio, so Prometheus metrics get their own port.
package server
