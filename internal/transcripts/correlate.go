package transcripts

import "time"

// correlationWindow is the maximum distance between a transcript's
// creation time and an occurrence's start for the two to be considered the
// same meeting instance. Wide enough to absorb any timezone offset, narrow
// enough to separate occurrences recurring daily or less often. Sub-daily
// recurrences inside one window remain ambiguous; closest-wins is the
// accepted behavior there.
const correlationWindow = 24 * time.Hour

// MatchOccurrence selects the transcripts belonging to one occurrence of a
// recurring meeting from the full candidate set sharing its meeting
// identity.
//
// With zero or one candidate there is nothing to disambiguate. When the
// occurrence start is unparseable, or no candidate has a parseable
// creation time, the full set is returned unchanged: the caller treats
// every candidate as belonging (deliberate permissive fallback). Otherwise
// the candidate closest to the start wins if it is within the window; a
// closest candidate beyond the window means this occurrence has no
// matching transcript, and the result is empty rather than a guess from a
// different occurrence.
func MatchOccurrence(candidates []Transcript, start string) []Transcript {
	if len(candidates) <= 1 {
		return candidates
	}

	startTime, ok := parseStart(start)
	if !ok {
		return candidates
	}

	bestIdx := -1
	var bestDiff time.Duration
	for i, cand := range candidates {
		created, ok := cand.Created()
		if !ok {
			continue
		}
		diff := created.Sub(startTime)
		if diff < 0 {
			diff = -diff
		}
		if bestIdx == -1 || diff < bestDiff {
			bestIdx = i
			bestDiff = diff
		}
	}

	if bestIdx == -1 {
		return candidates
	}
	if bestDiff > correlationWindow {
		return []Transcript{}
	}
	return []Transcript{candidates[bestIdx]}
}
