// Package auth_tools registers the MCP tools for inspecting and resetting
// the stored Microsoft account credential.
package auth_tools
