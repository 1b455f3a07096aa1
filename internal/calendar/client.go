package calendar

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/mbeutel/teamscribe/internal/graph"
)

// maxEventsPerPage bounds a single calendarView response.
const maxEventsPerPage = 100

// Client reads calendar events through the Graph fetch layer.
type Client struct {
	auth graph.TokenSource
	api  *graph.Client
}

// NewClient creates a calendar client.
func NewClient(auth graph.TokenSource, api *graph.Client) *Client {
	return &Client{auth: auth, api: api}
}

type listResponse struct {
	Value []Event `json:"value"`
}

// ListEvents returns the user's calendar occurrences between from and to,
// ordered by start time. Recurring series are expanded into individual
// occurrences by the calendarView endpoint.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("startDateTime", from.Format(time.RFC3339))
	q.Set("endDateTime", to.Format(time.RFC3339))
	q.Set("$orderby", "start/dateTime")
	q.Set("$top", strconv.Itoa(maxEventsPerPage))
	path := "me/calendarView?" + q.Encode()

	var out listResponse
	if apiErr := c.api.Get(ctx, token, path, graph.RequestOptions{}, &out); apiErr != nil {
		return nil, apiErr
	}
	return out.Value, nil
}

// GetEvent retrieves a single event by its calendar event id.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var out Event
	path := "me/events/" + url.PathEscape(eventID)
	if apiErr := c.api.Get(ctx, token, path, graph.RequestOptions{}, &out); apiErr != nil {
		return nil, apiErr
	}
	return &out, nil
}
