package mail_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbeutel/teamscribe/internal/mail"
)

func TestFormatMessageList(t *testing.T) {
	assert.Equal(t, "The inbox is empty.", formatMessageList(nil))

	msgs := []mail.Message{
		{
			ID:               "msg-1",
			Subject:          "Status update",
			From:             &mail.Recipient{EmailAddress: mail.EmailAddress{Name: "Dana", Address: "dana@contoso.com"}},
			ReceivedDateTime: "2025-06-22T08:15:00Z",
			BodyPreview:      "Here is the",
		},
		{ID: "msg-2", IsRead: true},
	}

	out := formatMessageList(msgs)
	assert.Contains(t, out, "Found 2 messages")
	assert.Contains(t, out, "1. Status update [unread]")
	assert.Contains(t, out, "From: Dana <dana@contoso.com>")
	assert.Contains(t, out, "Preview: Here is the")
	assert.Contains(t, out, "2. (no subject)")
	assert.NotContains(t, out, "2. (no subject) [unread]")
}

func TestFormatMessage(t *testing.T) {
	msg := mail.Message{
		Subject:          "Agenda",
		ReceivedDateTime: "2025-06-22T08:15:00Z",
		Body:             &mail.ItemBody{ContentType: "html", Content: "<p>See attached</p>"},
	}

	out := formatMessage(msg)
	assert.Contains(t, out, "Subject: Agenda")
	assert.Contains(t, out, "From: Unknown")
	assert.Contains(t, out, "See attached")
	assert.NotContains(t, out, "<p>")
}
