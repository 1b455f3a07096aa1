package auth_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mbeutel/teamscribe/internal/credentials"
	"github.com/mbeutel/teamscribe/internal/server"
	"github.com/mbeutel/teamscribe/internal/tools/common"
)

// RegisterAuthTools registers the authentication tools with the MCP server.
func RegisterAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("auth_status",
		mcp.WithDescription("Show whether a Microsoft account is connected and when its token expires"),
	)
	s.AddTool(statusTool, common.InstrumentedToolHandler("auth_status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthStatus(ctx, sc)
		}))

	resetTool := mcp.NewTool("auth_reset",
		mcp.WithDescription("Disconnect the Microsoft account by deleting the stored credential. The next tool call will trigger a fresh browser sign-in."),
	)
	s.AddTool(resetTool, common.InstrumentedToolHandler("auth_reset", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthReset(ctx, sc)
		}))

	return nil
}

func handleAuthStatus(_ context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	rec, ok := sc.CredentialStore().Load()
	if !ok {
		return mcp.NewToolResultText("No Microsoft account connected. The next tool call that needs Microsoft Graph will open a browser sign-in."), nil
	}
	return mcp.NewToolResultText(formatStatus(rec, time.Now())), nil
}

func handleAuthReset(_ context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if err := sc.CredentialStore().Delete(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete stored credential: %v", err)), nil
	}
	return mcp.NewToolResultText("Stored credential deleted. The next tool call that needs Microsoft Graph will open a browser sign-in."), nil
}

func formatStatus(rec *credentials.Record, now time.Time) string {
	state := "expired"
	if rec.ExpiresAt.After(now) {
		state = fmt.Sprintf("valid for %s", rec.ExpiresAt.Sub(now).Round(time.Second))
	}

	result := "Microsoft account connected.\n"
	result += fmt.Sprintf("Access token: %s (expires %s)\n", state, rec.ExpiresAt.Format(time.RFC3339))
	if rec.Scope != "" {
		result += fmt.Sprintf("Granted scopes: %s\n", rec.Scope)
	}
	return result
}
