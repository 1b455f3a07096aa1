package transcripts

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// joinContext is the context query parameter embedded in a Teams join URL.
type joinContext struct {
	Tid string `json:"Tid"`
	Oid string `json:"Oid"`
}

// MeetingIDFromJoinURL derives the stable-per-series meeting identity from
// a Teams join URL of the form
//
//	.../meetup-join/{threadId}/...?context={"Tid":...,"Oid":organizerId}
//
// The identity is the base64 encoding of "1*{organizerId}*0**{threadId}"
// with the thread id URL-decoded first. Any missing piece yields ok=false,
// never an error: the occurrence is simply not correlatable.
func MeetingIDFromJoinURL(joinURL string) (string, bool) {
	if joinURL == "" {
		return "", false
	}
	u, err := url.Parse(joinURL)
	if err != nil {
		return "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	threadID := ""
	for i, seg := range segments {
		if seg == "meetup-join" && i+1 < len(segments) && segments[i+1] != "" {
			threadID = segments[i+1]
			break
		}
	}
	if threadID == "" {
		return "", false
	}
	if decoded, err := url.PathUnescape(threadID); err == nil {
		threadID = decoded
	}

	rawContext := u.Query().Get("context")
	if rawContext == "" {
		return "", false
	}
	var ctx joinContext
	if err := json.Unmarshal([]byte(rawContext), &ctx); err != nil || ctx.Oid == "" {
		return "", false
	}

	raw := fmt.Sprintf("1*%s*0**%s", ctx.Oid, threadID)
	return base64.StdEncoding.EncodeToString([]byte(raw)), true
}
