package transcripts

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/mbeutel/teamscribe/internal/graph"
	"github.com/mbeutel/teamscribe/internal/logging"
)

// Client fetches transcripts for online meetings through the Graph fetch
// layer.
type Client struct {
	auth graph.TokenSource
	api  *graph.Client
}

// NewClient creates a transcripts client.
func NewClient(auth graph.TokenSource, api *graph.Client) *Client {
	return &Client{auth: auth, api: api}
}

type listResponse struct {
	Value []Transcript `json:"value"`
}

// retriableOnAlternate reports whether a failed call should be replayed
// once against the preview surface. Tenant policy sometimes answers 403 or
// 400 on the stable surface for transcript endpoints that work on beta;
// every other status is terminal.
func retriableOnAlternate(status int) bool {
	return status == 403 || status == 400
}

// ListForMeeting returns all transcripts recorded under one meeting
// identity.
func (c *Client) ListForMeeting(ctx context.Context, meetingID string) ([]Transcript, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.listWithToken(ctx, token, meetingID)
}

func (c *Client) listWithToken(ctx context.Context, token, meetingID string) ([]Transcript, error) {
	path := "me/onlineMeetings/" + url.PathEscape(meetingID) + "/transcripts"

	var out listResponse
	apiErr := c.api.Get(ctx, token, path, graph.RequestOptions{}, &out)
	if apiErr != nil && retriableOnAlternate(apiErr.Status) {
		out = listResponse{}
		apiErr = c.api.Get(ctx, token, path, graph.RequestOptions{Beta: true}, &out)
	}
	if apiErr != nil {
		return nil, apiErr
	}
	return out.Value, nil
}

// GetContent retrieves the subtitle-track text of one transcript.
func (c *Client) GetContent(ctx context.Context, ref Ref) (string, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	path := "me/onlineMeetings/" + url.PathEscape(ref.MeetingID) +
		"/transcripts/" + url.PathEscape(ref.TranscriptID) +
		"/content?$format=text/vtt"

	content, apiErr := c.api.GetRaw(ctx, token, path, graph.RequestOptions{})
	if apiErr != nil && retriableOnAlternate(apiErr.Status) {
		content, apiErr = c.api.GetRaw(ctx, token, path, graph.RequestOptions{Beta: true})
	}
	if apiErr != nil {
		return "", apiErr
	}
	return content, nil
}

// ListForOccurrences resolves transcripts for a set of calendar-event
// occurrences within one listing call.
//
// The transcript list for a given meeting identity is fetched at most once
// and shared by every occurrence of that identity; distinct identities are
// fetched concurrently. One identity's fetch failure does not abort the
// others: its occurrences simply report no transcripts.
func (c *Client) ListForOccurrences(ctx context.Context, occs []Occurrence) ([]OccurrenceTranscripts, error) {
	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	logger := logging.WithOperation(slog.Default(), "transcripts.list")

	// Derive meeting identities up front; non-correlatable occurrences
	// are reported with no identity and no transcripts.
	meetingIDs := make([]string, len(occs))
	unique := make(map[string]struct{})
	for i, occ := range occs {
		if id, ok := MeetingIDFromJoinURL(occ.JoinURL); ok {
			meetingIDs[i] = id
			unique[id] = struct{}{}
		}
	}

	// Fan out one fetch per distinct identity, fan in before correlating.
	fetched := make(map[string][]Transcript, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for id := range unique {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			ts, err := c.listWithToken(ctx, token, id)
			if err != nil {
				logger.Warn("transcript fetch failed for meeting",
					logging.Meeting(id), logging.Err(err))
				ts = nil
			}
			mu.Lock()
			fetched[id] = ts
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	results := make([]OccurrenceTranscripts, len(occs))
	for i, occ := range occs {
		res := OccurrenceTranscripts{Occurrence: occ, MeetingID: meetingIDs[i]}
		if res.MeetingID != "" {
			res.Transcripts = MatchOccurrence(fetched[res.MeetingID], occ.Start)
		}
		results[i] = res
	}
	return results, nil
}
