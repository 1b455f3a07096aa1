package transcripts

import "time"

// Transcript is one recorded artifact for a meeting identity.
type Transcript struct {
	ID              string `json:"id"`
	MeetingID       string `json:"meetingId"`
	CreatedDateTime string `json:"createdDateTime"`
}

// Created parses the transcript's creation timestamp. ok is false when the
// timestamp is absent or unparseable; such candidates are excluded from
// correlation rather than treated as zero-distance.
func (t Transcript) Created() (time.Time, bool) {
	if t.CreatedDateTime == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, t.CreatedDateTime)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Occurrence is one calendar-event occurrence a caller wants transcripts
// for. Start is the raw timestamp string as reported by the calendar API;
// it may be empty or unparseable.
type Occurrence struct {
	EventID string
	Subject string
	Start   string
	JoinURL string
}

// OccurrenceTranscripts pairs an occurrence with the transcripts correlated
// to it. MeetingID is empty when no identity could be derived from the
// occurrence's join URL.
type OccurrenceTranscripts struct {
	Occurrence  Occurrence
	MeetingID   string
	Transcripts []Transcript
}

// startTimeLayouts are the formats Graph reports event start times in:
// RFC 3339 when an offset is present, otherwise a local wall-clock time in
// the user's preferred timezone (interpreted as UTC; the correlation
// window absorbs the offset).
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// parseStart parses an occurrence start timestamp.
func parseStart(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
