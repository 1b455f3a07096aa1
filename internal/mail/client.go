package mail

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mbeutel/teamscribe/internal/graph"
)

// DefaultListCount is how many messages a listing returns when the caller
// does not say.
const DefaultListCount = 10

// maxListCount caps a single listing request.
const maxListCount = 50

// Client reads inbox messages through the Graph fetch layer.
type Client struct {
	auth graph.TokenSource
	api  *graph.Client
}

// NewClient creates a mail client.
func NewClient(auth graph.TokenSource, api *graph.Client) *Client {
	return &Client{auth: auth, api: api}
}

type listResponse struct {
	Value []Message `json:"value"`
}

// ListMessages returns the newest messages from the user's inbox. top is
// clamped to [1, 50]; zero or negative means DefaultListCount.
func (c *Client) ListMessages(ctx context.Context, top int) ([]Message, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	if top <= 0 {
		top = DefaultListCount
	}
	if top > maxListCount {
		top = maxListCount
	}

	q := url.Values{}
	q.Set("$top", strconv.Itoa(top))
	q.Set("$orderby", "receivedDateTime desc")
	q.Set("$select", "id,subject,from,receivedDateTime,bodyPreview,isRead")
	path := "me/mailFolders/inbox/messages?" + q.Encode()

	var out listResponse
	if apiErr := c.api.Get(ctx, token, path, graph.RequestOptions{}, &out); apiErr != nil {
		return nil, apiErr
	}
	return out.Value, nil
}

// GetMessage retrieves one message including its full body.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var out Message
	path := "me/messages/" + url.PathEscape(messageID)
	if apiErr := c.api.Get(ctx, token, path, graph.RequestOptions{}, &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}
