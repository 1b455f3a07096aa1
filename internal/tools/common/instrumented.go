package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mbeutel/teamscribe/internal/logging"
	"github.com/mbeutel/teamscribe/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with invocation metrics.
// A handler that returns an error result (not a transport error) counts as
// an error invocation too. The unnamed signature matches what the MCP
// server's AddTool accepts.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := logging.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = logging.StatusError
		}
		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)

		return result, err
	}
}

// StringArg extracts a string argument, returning fallback when absent,
// empty, or of the wrong type.
func StringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// IntArg extracts a numeric argument. JSON numbers decode as float64, so
// both float64 and int are accepted; anything else yields fallback.
func IntArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
