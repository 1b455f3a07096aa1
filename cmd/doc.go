// Package cmd implements the command-line interface for teamscribe.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Microsoft 365 tools over stdio
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
