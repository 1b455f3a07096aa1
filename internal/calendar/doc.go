// Package calendar provides access to the user's Outlook calendar through
// Microsoft Graph.
//
// Events are read through the me/calendarView endpoint, which expands
// recurring series into concrete occurrences within a time range. Event
// start and end times arrive in the timezone requested by the Graph fetch
// layer's Prefer header.
//
// Most event fields are optional on the wire; accessors default missing
// values so callers can format events without nil checks.
package calendar
