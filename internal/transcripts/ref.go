package transcripts

import (
	"fmt"
	"strings"
)

// Ref is the externally visible compound identifier for one transcript:
// the meeting identity and the transcript id joined by a slash.
type Ref struct {
	MeetingID    string
	TranscriptID string
}

// FormatRef builds the compound identifier handed out by listing tools.
func FormatRef(meetingID, transcriptID string) string {
	return meetingID + "/" + transcriptID
}

// ParseRef splits a compound identifier on its first slash. Both sides
// must be non-empty; transcript ids containing further slashes stay intact
// on the right-hand side.
func ParseRef(s string) (Ref, error) {
	meetingID, transcriptID, found := strings.Cut(s, "/")
	if !found || meetingID == "" || transcriptID == "" {
		return Ref{}, fmt.Errorf("invalid transcript reference %q: expected {meetingId}/{transcriptId}", s)
	}
	return Ref{MeetingID: meetingID, TranscriptID: transcriptID}, nil
}
