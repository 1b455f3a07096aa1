package calendar_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mbeutel/teamscribe/internal/calendar"
	"github.com/mbeutel/teamscribe/internal/server"
	"github.com/mbeutel/teamscribe/internal/tools/common"
)

// RegisterCalendarTools registers the calendar tools with the MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List calendar events within a time range. Recurring meetings appear as individual occurrences."),
		mcp.WithString("startDateTime",
			mcp.Required(),
			mcp.Description("Start of the range (RFC3339 format, e.g. '2025-06-22T00:00:00Z')"),
		),
		mcp.WithString("endDateTime",
			mcp.Required(),
			mcp.Description("End of the range (RFC3339 format, e.g. '2025-06-29T00:00:00Z')"),
		),
	)
	s.AddTool(listTool, common.InstrumentedToolHandler("calendar_list_events", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	getTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of one calendar event"),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to retrieve"),
		),
	)
	s.AddTool(getTool, common.InstrumentedToolHandler("calendar_get_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvent(ctx, request, sc)
		}))

	return nil
}

// parseRange validates the startDateTime/endDateTime arguments.
func parseRange(args map[string]any) (time.Time, time.Time, error) {
	startStr := common.StringArg(args, "startDateTime", "")
	if startStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("startDateTime is required")
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDateTime format: %v", err)
	}

	endStr := common.StringArg(args, "endDateTime", "")
	if endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("endDateTime is required")
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDateTime format: %v", err)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("endDateTime must be after startDateTime")
	}
	return start, end, nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start, end, err := parseRange(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := sc.Calendar().ListEvents(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventList(events)), nil
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	eventID := common.StringArg(request.GetArguments(), "eventId", "")
	if eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	event, err := sc.Calendar().GetEvent(ctx, eventID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get event: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEvent(*event)), nil
}

func formatEventList(events []calendar.Event) string {
	if len(events) == 0 {
		return "No events found in the requested range."
	}

	result := fmt.Sprintf("Found %d events:\n\n", len(events))
	for i, event := range events {
		result += fmt.Sprintf("%d. %s\n", i+1, event.DisplaySubject())
		result += fmt.Sprintf("   ID: %s\n", event.ID)
		result += fmt.Sprintf("   Start: %s\n", event.StartTime())
		result += fmt.Sprintf("   End: %s\n", event.EndTime())
		if event.IsOnlineMeeting {
			result += "   Online meeting: yes\n"
		}
		result += "\n"
	}
	return result
}

func formatEvent(event calendar.Event) string {
	result := fmt.Sprintf("Subject: %s\n", event.DisplaySubject())
	result += fmt.Sprintf("ID: %s\n", event.ID)
	result += fmt.Sprintf("Start: %s\n", event.StartTime())
	result += fmt.Sprintf("End: %s\n", event.EndTime())
	result += fmt.Sprintf("Organizer: %s\n", event.OrganizerName())
	result += fmt.Sprintf("Location: %s\n", event.LocationName())
	if len(event.Attendees) > 0 {
		result += fmt.Sprintf("Attendees: %d\n", len(event.Attendees))
	}
	if url := event.JoinURL(); url != "" {
		result += fmt.Sprintf("Teams join link: %s\n", url)
	}
	if event.BodyPreview != "" {
		result += fmt.Sprintf("\n%s\n", event.BodyPreview)
	}
	return result
}
