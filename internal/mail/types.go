package mail

import "strings"

// EmailAddress identifies a mailbox participant.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Recipient wraps an email address the way Graph nests it.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// ItemBody is a message body with its content type.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Message is an Outlook mail message.
type Message struct {
	ID               string     `json:"id"`
	Subject          string     `json:"subject"`
	From             *Recipient `json:"from"`
	ReceivedDateTime string     `json:"receivedDateTime"`
	BodyPreview      string     `json:"bodyPreview"`
	IsRead           bool       `json:"isRead"`
	Body             *ItemBody  `json:"body"`
}

// DisplaySubject returns the subject, or "(no subject)" when empty.
func (m Message) DisplaySubject() string {
	if m.Subject == "" {
		return "(no subject)"
	}
	return m.Subject
}

// Sender returns a "Name <address>" string for the message sender, or
// "Unknown" when Graph omits the from field.
func (m Message) Sender() string {
	if m.From == nil {
		return "Unknown"
	}
	addr := m.From.EmailAddress
	switch {
	case addr.Name != "" && addr.Address != "":
		return addr.Name + " <" + addr.Address + ">"
	case addr.Address != "":
		return addr.Address
	case addr.Name != "":
		return addr.Name
	default:
		return "Unknown"
	}
}

// BodyText returns the message body as plain text, stripping HTML markup
// when the body is HTML.
func (m Message) BodyText() string {
	if m.Body == nil {
		return m.BodyPreview
	}
	if strings.EqualFold(m.Body.ContentType, "html") {
		return StripHTML(m.Body.Content)
	}
	return m.Body.Content
}
