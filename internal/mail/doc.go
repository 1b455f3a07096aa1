// Package mail provides read access to the user's Outlook inbox through
// Microsoft Graph.
//
// Message bodies arrive as HTML for most mailboxes; BodyText flattens them
// to plain text so tool output stays readable in an agent transcript.
package mail
