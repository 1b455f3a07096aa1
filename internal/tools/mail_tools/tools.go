package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mbeutel/teamscribe/internal/mail"
	"github.com/mbeutel/teamscribe/internal/server"
	"github.com/mbeutel/teamscribe/internal/tools/common"
)

// RegisterMailTools registers the mail tools with the MCP server.
func RegisterMailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("mail_list_messages",
		mcp.WithDescription("List the newest messages in the inbox"),
		mcp.WithNumber("count",
			mcp.Description(fmt.Sprintf("How many messages to return (default %d, max 50)", mail.DefaultListCount)),
		),
	)
	s.AddTool(listTool, common.InstrumentedToolHandler("mail_list_messages", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMessages(ctx, request, sc)
		}))

	getTool := mcp.NewTool("mail_get_message",
		mcp.WithDescription("Read one message including its full body as plain text"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to read"),
		),
	)
	s.AddTool(getTool, common.InstrumentedToolHandler("mail_get_message", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	return nil
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	count := common.IntArg(request.GetArguments(), "count", mail.DefaultListCount)

	msgs, err := sc.Mail().ListMessages(ctx, count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	return mcp.NewToolResultText(formatMessageList(msgs)), nil
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	messageID := common.StringArg(request.GetArguments(), "messageId", "")
	if messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	msg, err := sc.Mail().GetMessage(ctx, messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	return mcp.NewToolResultText(formatMessage(*msg)), nil
}

func formatMessageList(msgs []mail.Message) string {
	if len(msgs) == 0 {
		return "The inbox is empty."
	}

	result := fmt.Sprintf("Found %d messages:\n\n", len(msgs))
	for i, msg := range msgs {
		unread := ""
		if !msg.IsRead {
			unread = " [unread]"
		}
		result += fmt.Sprintf("%d. %s%s\n", i+1, msg.DisplaySubject(), unread)
		result += fmt.Sprintf("   ID: %s\n", msg.ID)
		result += fmt.Sprintf("   From: %s\n", msg.Sender())
		result += fmt.Sprintf("   Received: %s\n", msg.ReceivedDateTime)
		if msg.BodyPreview != "" {
			result += fmt.Sprintf("   Preview: %s\n", msg.BodyPreview)
		}
		result += "\n"
	}
	return result
}

func formatMessage(msg mail.Message) string {
	result := fmt.Sprintf("Subject: %s\n", msg.DisplaySubject())
	result += fmt.Sprintf("From: %s\n", msg.Sender())
	result += fmt.Sprintf("Received: %s\n", msg.ReceivedDateTime)
	result += "\n" + msg.BodyText() + "\n"
	return result
}
