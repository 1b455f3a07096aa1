package mail

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries become line breaks in the
// flattened text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true, "blockquote": true,
}

// skippedTags are elements whose text content carries no message content.
var skippedTags = map[string]bool{
	"style": true, "script": true, "head": true, "title": true,
}

// StripHTML flattens an HTML document to plain text. Block-level element
// boundaries become newlines, invisible elements are dropped, and runs of
// blank lines are collapsed.
func StripHTML(src string) string {
	tz := html.NewTokenizer(strings.NewReader(src))

	var b strings.Builder
	skipDepth := 0
	for {
		tt := tz.Next()
		switch tt {
		case html.ErrorToken:
			// Malformed markup ends the stream early; keep what we have.
			return collapseBlankLines(b.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tz.TagName()
			tag := string(name)
			if skippedTags[tag] && tt == html.StartTagToken {
				skipDepth++
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			tag := string(name)
			if skippedTags[tag] && skipDepth > 0 {
				skipDepth--
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if text := strings.TrimSpace(string(tz.Text())); text != "" {
				b.WriteString(text)
				b.WriteByte(' ')
			}
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
