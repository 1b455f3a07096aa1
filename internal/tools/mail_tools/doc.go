// Package mail_tools registers the MCP tools for reading the user's
// Outlook inbox.
package mail_tools
