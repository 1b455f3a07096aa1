package calendar

// DateTimeZone is Graph's split representation of a wall-clock time.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// EmailAddress identifies a mailbox participant.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Recipient wraps an email address the way Graph nests it.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Location is the event's location descriptor.
type Location struct {
	DisplayName string `json:"displayName"`
}

// OnlineMeetingInfo carries the Teams join link for an online meeting.
type OnlineMeetingInfo struct {
	JoinURL string `json:"joinUrl"`
}

// Event is a calendar event or a single occurrence of a recurring series.
type Event struct {
	ID              string             `json:"id"`
	Subject         string             `json:"subject"`
	Start           *DateTimeZone      `json:"start"`
	End             *DateTimeZone      `json:"end"`
	Organizer       *Recipient         `json:"organizer"`
	Location        *Location          `json:"location"`
	Attendees       []Recipient        `json:"attendees"`
	IsOnlineMeeting bool               `json:"isOnlineMeeting"`
	OnlineMeeting   *OnlineMeetingInfo `json:"onlineMeeting"`
	BodyPreview     string             `json:"bodyPreview"`
}

// DisplaySubject returns the subject, or "Unknown" when the event has none.
func (e Event) DisplaySubject() string {
	if e.Subject == "" {
		return "Unknown"
	}
	return e.Subject
}

// StartTime returns the raw start wall-clock string, empty when absent.
func (e Event) StartTime() string {
	if e.Start == nil {
		return ""
	}
	return e.Start.DateTime
}

// EndTime returns the raw end wall-clock string, empty when absent.
func (e Event) EndTime() string {
	if e.End == nil {
		return ""
	}
	return e.End.DateTime
}

// OrganizerName returns the organizer's display name, or "N/A".
func (e Event) OrganizerName() string {
	if e.Organizer == nil || e.Organizer.EmailAddress.Name == "" {
		return "N/A"
	}
	return e.Organizer.EmailAddress.Name
}

// LocationName returns the location display name, or "N/A".
func (e Event) LocationName() string {
	if e.Location == nil || e.Location.DisplayName == "" {
		return "N/A"
	}
	return e.Location.DisplayName
}

// JoinURL returns the Teams join link, empty when the event has no online
// meeting attached.
func (e Event) JoinURL() string {
	if e.OnlineMeeting == nil {
		return ""
	}
	return e.OnlineMeeting.JoinURL
}
