// Package calendar_tools registers the MCP tools for reading the user's
// Outlook calendar.
package calendar_tools
