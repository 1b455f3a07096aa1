package transcripts

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinURL(threadID, context string) string {
	u := "https://teams.microsoft.com/l/meetup-join/" + url.PathEscape(threadID) + "/0"
	if context != "" {
		u += "?context=" + url.QueryEscape(context)
	}
	return u
}

func TestMeetingIDFromJoinURL(t *testing.T) {
	threadID := "19:meeting_NzAwZg@thread.v2"
	ctx := `{"Tid":"tenant-guid","Oid":"organizer-guid"}`

	id, ok := MeetingIDFromJoinURL(joinURL(threadID, ctx))
	require.True(t, ok)

	decoded, err := base64.StdEncoding.DecodeString(id)
	require.NoError(t, err)
	assert.Equal(t, "1*organizer-guid*0**19:meeting_NzAwZg@thread.v2", string(decoded))
}

func TestMeetingIDDeterministic(t *testing.T) {
	u := joinURL("19:meeting_abc@thread.v2", `{"Tid":"t","Oid":"o"}`)

	first, ok1 := MeetingIDFromJoinURL(u)
	second, ok2 := MeetingIDFromJoinURL(u)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestMeetingIDNotDerivable(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty URL", ""},
		{"no meetup-join segment", "https://teams.microsoft.com/l/channel/19:abc/General"},
		{"meetup-join without following segment", "https://teams.microsoft.com/l/meetup-join"},
		{"missing context parameter", joinURL("19:meeting_abc@thread.v2", "")},
		{"context without organizer id", joinURL("19:meeting_abc@thread.v2", `{"Tid":"t"}`)},
		{"context not JSON", joinURL("19:meeting_abc@thread.v2", "not-json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := MeetingIDFromJoinURL(tt.url)
			assert.False(t, ok)
			assert.Empty(t, id)
		})
	}
}
