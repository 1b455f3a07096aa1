// Package transcript_tools registers the MCP tools for finding and
// fetching Teams meeting transcripts.
//
// transcript_list walks the calendar for a date range, derives a meeting
// identity from each occurrence's Teams join link, and correlates the
// transcripts recorded under that identity back to the individual
// occurrences. transcript_get_content downloads one transcript's subtitle
// track by its compound reference.
package transcript_tools
