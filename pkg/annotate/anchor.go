package annotate

import (
	"strings"
)

// AnchorPolicy declares what happens to feedback whose excerpt cannot be
// located in the document. Callers must pick one explicitly.
type AnchorPolicy int

const (
	// PolicyFallback synthesizes a deterministic placeholder anchor for
	// unmatched excerpts, so every feedback item yields a comment.
	PolicyFallback AnchorPolicy = iota

	// PolicyDropUnmatched silently discards feedback whose excerpt has no
	// exact or prefix match.
	PolicyDropUnmatched
)

// How many characters of document text a synthetic fallback excerpt covers.
const fallbackExcerptLen = 30

// AnchorResult is the resolved span for one feedback item, plus the excerpt
// actually used (which may be shorter than the requested one, or synthetic).
type AnchorResult struct {
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Excerpt  string `json:"excerpt"`
	Matched  bool   `json:"matched"` // false when the positional fallback was used
}

// AnchorExcerpt resolves excerpt against the document with a three-tier
// policy: exact case-insensitive match, then the excerpt's first three
// whitespace-separated words, then a positional fallback that spreads the
// batch's unmatched comments evenly across the document. ordinal and total
// describe the item's place in its batch and only influence the fallback
// position. The second return value is false iff the item should be dropped
// under PolicyDropUnmatched.
func AnchorExcerpt(idx *PositionIndex, excerpt string, ordinal, total int, policy AnchorPolicy) (AnchorResult, bool) {
	if occ, found := idx.FindFirst(excerpt); found {
		return AnchorResult{
			Position: occ.Position,
			Length:   len(excerpt),
			Excerpt:  excerpt,
			Matched:  true,
		}, true
	}

	if fields := strings.Fields(excerpt); len(fields) > 3 {
		prefix := strings.Join(fields[:3], " ")
		if occ, found := idx.FindFirst(prefix); found {
			return AnchorResult{
				Position: occ.Position,
				Length:   len(prefix),
				Excerpt:  prefix,
				Matched:  true,
			}, true
		}
	}

	if policy == PolicyDropUnmatched {
		return AnchorResult{}, false
	}

	if total < 1 {
		total = 1
	}
	pos := idx.Len() * (ordinal + 1) / (total + 1)
	if pos >= idx.Len() && idx.Len() > 0 {
		pos = idx.Len() - 1
	}
	synthetic := idx.Slice(pos, fallbackExcerptLen)
	return AnchorResult{
		Position: pos,
		Length:   len(synthetic),
		Excerpt:  synthetic,
		Matched:  false,
	}, true
}
