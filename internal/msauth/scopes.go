package msauth

// Scopes is the full delegated permission set requested during
// authorization. offline_access is what makes Azure AD return a refresh
// token at all.
var Scopes = []string{
	"User.Read",
	"Calendars.Read",
	"Mail.Read",
	"OnlineMeetings.Read",
	"OnlineMeetingTranscript.Read.All",
	"offline_access",
}
