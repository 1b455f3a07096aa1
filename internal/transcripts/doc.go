// Package transcripts lists and retrieves Teams meeting transcripts and
// correlates them with calendar event occurrences.
//
// A meeting identity is shared by every occurrence of a recurring series,
// so a transcript cannot be joined to a single occurrence exactly. The
// correlation here is a closest-timestamp heuristic: among the candidates
// for one meeting identity, the transcript whose creation time is nearest
// to the occurrence start wins, provided it is within 24 hours. The window
// absorbs timezone offsets (event starts are reported in the user's
// preferred timezone, transcript creation times in UTC) while still
// separating occurrences of meetings that recur daily or less often.
package transcripts
