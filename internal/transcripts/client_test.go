package transcripts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeutel/teamscribe/internal/graph"
)

// graphFake serves transcript endpoints on a stable and a beta surface,
// counting hits per surface and path.
type graphFake struct {
	mu     sync.Mutex
	hits   map[string]int
	stable http.HandlerFunc
	beta   http.HandlerFunc

	stableSrv *httptest.Server
	betaSrv   *httptest.Server
}

func newGraphFake(t *testing.T, stable, beta http.HandlerFunc) *graphFake {
	t.Helper()
	f := &graphFake{hits: make(map[string]int), stable: stable, beta: beta}
	f.stableSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.count("stable:" + r.URL.Path)
		f.stable(w, r)
	}))
	f.betaSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.count("beta:" + r.URL.Path)
		if f.beta != nil {
			f.beta(w, r)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.stableSrv.Close)
	t.Cleanup(f.betaSrv.Close)
	return f
}

func (f *graphFake) count(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[key]++
}

func (f *graphFake) totalHits(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for k, n := range f.hits {
		if strings.HasPrefix(k, prefix) {
			total += n
		}
	}
	return total
}

func (f *graphFake) client() *Client {
	api := graph.NewClient(graph.ClientConfig{
		BaseURL: f.stableSrv.URL,
		BetaURL: f.betaSrv.URL,
	})
	return NewClient(graph.StaticTokenSource("test-token"), api)
}

func listBody(ids ...string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = `{"id":"` + id + `","createdDateTime":"2025-06-22T10:03:00Z"}`
	}
	return `{"value":[` + strings.Join(parts, ",") + `]}`
}

func TestListForMeetingRetriesOnBetaFor403(t *testing.T) {
	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(listBody("tx-1")))
		},
	)

	ts, err := f.client().ListForMeeting(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "tx-1", ts[0].ID)

	assert.Equal(t, 1, f.totalHits("stable:"))
	assert.Equal(t, 1, f.totalHits("beta:"))
}

func TestListForMeetingRetriesOnBetaFor400(t *testing.T) {
	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(listBody("tx-1")))
		},
	)

	_, err := f.client().ListForMeeting(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.totalHits("beta:"))
}

func TestListForMeeting500IsTerminal(t *testing.T) {
	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		nil,
	)

	_, err := f.client().ListForMeeting(context.Background(), "m1")
	require.Error(t, err)

	var apiErr *graph.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)

	// 500 must trigger zero retries against the alternate surface.
	assert.Equal(t, 1, f.totalHits("stable:"))
	assert.Equal(t, 0, f.totalHits("beta:"))
}

func TestGetContentWithBetaFallback(t *testing.T) {
	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("WEBVTT\n\n00:00.000 --> 00:04.000\n<v Alice>hello</v>"))
		},
	)

	content, err := f.client().GetContent(context.Background(), Ref{MeetingID: "m1", TranscriptID: "t1"})
	require.NoError(t, err)
	assert.Contains(t, content, "WEBVTT")
	assert.Equal(t, 1, f.totalHits("beta:"))
}

func TestListForOccurrencesFetchesEachIdentityOnce(t *testing.T) {
	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(listBody("tx-1")))
		},
		nil,
	)

	recurring := joinURL("19:meeting_series@thread.v2", `{"Tid":"t","Oid":"o"}`)
	other := joinURL("19:meeting_other@thread.v2", `{"Tid":"t","Oid":"o"}`)

	occs := []Occurrence{
		{EventID: "e1", Start: "2025-06-15T10:00:00Z", JoinURL: recurring},
		{EventID: "e2", Start: "2025-06-22T10:00:00Z", JoinURL: recurring},
		{EventID: "e3", Start: "2025-06-22T11:00:00Z", JoinURL: other},
	}

	results, err := f.client().ListForOccurrences(context.Background(), occs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Two occurrences share one meeting identity: one fetch, not two.
	assert.Equal(t, 2, f.totalHits("stable:"))

	assert.Equal(t, results[0].MeetingID, results[1].MeetingID)
	assert.NotEqual(t, results[0].MeetingID, results[2].MeetingID)
}

func TestListForOccurrencesFailureIsolation(t *testing.T) {
	okSeries := joinURL("19:meeting_ok@thread.v2", `{"Tid":"t","Oid":"o"}`)
	badSeries := joinURL("19:meeting_bad@thread.v2", `{"Tid":"t","Oid":"o"}`)
	badID, _ := MeetingIDFromJoinURL(badSeries)

	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, badID) {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(listBody("tx-1")))
		},
		nil,
	)

	occs := []Occurrence{
		{EventID: "e1", Start: "2025-06-22T10:00:00Z", JoinURL: badSeries},
		{EventID: "e2", Start: "2025-06-22T10:00:00Z", JoinURL: okSeries},
	}

	results, err := f.client().ListForOccurrences(context.Background(), occs)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The failing identity yields no transcripts; the healthy one is
	// unaffected.
	assert.Empty(t, results[0].Transcripts)
	assert.Len(t, results[1].Transcripts, 1)
}

func TestListForOccurrencesSkipsNonCorrelatable(t *testing.T) {
	f := newGraphFake(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(listBody("tx-1")))
		},
		nil,
	)

	occs := []Occurrence{
		{EventID: "e1", Start: "2025-06-22T10:00:00Z", JoinURL: ""},
	}

	results, err := f.client().ListForOccurrences(context.Background(), occs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].MeetingID)
	assert.Empty(t, results[0].Transcripts)
	assert.Equal(t, 0, f.totalHits("stable:"))
}
