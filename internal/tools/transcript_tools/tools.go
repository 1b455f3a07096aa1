package transcript_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mbeutel/teamscribe/internal/calendar"
	"github.com/mbeutel/teamscribe/internal/server"
	"github.com/mbeutel/teamscribe/internal/tools/common"
	"github.com/mbeutel/teamscribe/internal/transcripts"
)

// RegisterTranscriptTools registers the transcript tools with the MCP
// server.
func RegisterTranscriptTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("transcript_list",
		mcp.WithDescription("List Teams meeting transcripts for calendar events in a date range. Each transcript is matched to the meeting occurrence it was recorded in."),
		mcp.WithString("startDateTime",
			mcp.Required(),
			mcp.Description("Start of the range (RFC3339 format, e.g. '2025-06-22T00:00:00Z')"),
		),
		mcp.WithString("endDateTime",
			mcp.Required(),
			mcp.Description("End of the range (RFC3339 format, e.g. '2025-06-29T00:00:00Z')"),
		),
	)
	s.AddTool(listTool, common.InstrumentedToolHandler("transcript_list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTranscripts(ctx, request, sc)
		}))

	getTool := mcp.NewTool("transcript_get_content",
		mcp.WithDescription("Download the text of one meeting transcript"),
		mcp.WithString("transcriptRef",
			mcp.Required(),
			mcp.Description("Transcript reference in the form {meetingId}/{transcriptId}, as returned by transcript_list"),
		),
	)
	s.AddTool(getTool, common.InstrumentedToolHandler("transcript_get_content", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetContent(ctx, request, sc)
		}))

	return nil
}

func handleListTranscripts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	startStr := common.StringArg(args, "startDateTime", "")
	if startStr == "" {
		return mcp.NewToolResultError("startDateTime is required"), nil
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid startDateTime format: %v", err)), nil
	}

	endStr := common.StringArg(args, "endDateTime", "")
	if endStr == "" {
		return mcp.NewToolResultError("endDateTime is required"), nil
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid endDateTime format: %v", err)), nil
	}

	events, err := sc.Calendar().ListEvents(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	occs := occurrencesFromEvents(events)
	if len(occs) == 0 {
		return mcp.NewToolResultText("No online meetings found in the requested range."), nil
	}

	results, err := sc.Transcripts().ListForOccurrences(ctx, occs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list transcripts: %v", err)), nil
	}

	return mcp.NewToolResultText(formatResults(results)), nil
}

func handleGetContent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	refStr := common.StringArg(request.GetArguments(), "transcriptRef", "")
	if refStr == "" {
		return mcp.NewToolResultError("transcriptRef is required"), nil
	}

	ref, err := transcripts.ParseRef(refStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := sc.Transcripts().GetContent(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch transcript content: %v", err)), nil
	}

	return mcp.NewToolResultText(content), nil
}

// occurrencesFromEvents keeps the events that carry a Teams join link.
func occurrencesFromEvents(events []calendar.Event) []transcripts.Occurrence {
	var occs []transcripts.Occurrence
	for _, event := range events {
		joinURL := event.JoinURL()
		if joinURL == "" {
			continue
		}
		occs = append(occs, transcripts.Occurrence{
			EventID: event.ID,
			Subject: event.DisplaySubject(),
			Start:   event.StartTime(),
			JoinURL: joinURL,
		})
	}
	return occs
}

func formatResults(results []transcripts.OccurrenceTranscripts) string {
	total := 0
	for _, res := range results {
		total += len(res.Transcripts)
	}

	result := fmt.Sprintf("Checked %d meeting occurrences, found %d transcripts:\n\n", len(results), total)
	for i, res := range results {
		result += fmt.Sprintf("%d. %s\n", i+1, res.Occurrence.Subject)
		result += fmt.Sprintf("   Start: %s\n", res.Occurrence.Start)
		switch {
		case res.MeetingID == "":
			result += "   No Teams meeting identity could be derived for this event.\n"
		case len(res.Transcripts) == 0:
			result += "   No transcript recorded for this occurrence.\n"
		default:
			for _, tx := range res.Transcripts {
				result += fmt.Sprintf("   Transcript: %s\n", transcripts.FormatRef(res.MeetingID, tx.ID))
				if tx.CreatedDateTime != "" {
					result += fmt.Sprintf("   Recorded: %s\n", tx.CreatedDateTime)
				}
			}
		}
		result += "\n"
	}
	result += "Use transcript_get_content with a transcript reference to download the text."
	return result
}
