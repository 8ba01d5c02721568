package annotate

import (
	"strings"
)

// Occurrence is one location of a needle inside a document.
type Occurrence struct {
	Position int `json:"position"` // absolute character offset
	Line     int `json:"line"`     // zero-based line index
	Column   int `json:"column"`   // character offset within the line
}

// PositionIndex locates substrings inside a document, case-insensitively,
// and maps absolute offsets to line/column coordinates. The document is
// split on "\n" for line purposes.
type PositionIndex struct {
	text       string
	folded     string
	lineStarts []int
}

func NewPositionIndex(text string) *PositionIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &PositionIndex{
		text:       text,
		folded:     strings.ToLower(text),
		lineStarts: starts,
	}
}

func (idx *PositionIndex) Len() int {
	return len(idx.text)
}

// FindFirst returns the first case-insensitive occurrence of needle.
func (idx *PositionIndex) FindFirst(needle string) (Occurrence, bool) {
	if needle == "" {
		return Occurrence{}, false
	}
	pos := strings.Index(idx.folded, strings.ToLower(needle))
	if pos < 0 {
		return Occurrence{}, false
	}
	return idx.occurrenceAt(pos), true
}

// FindAll enumerates every case-insensitive occurrence of needle in order.
// Matches do not overlap: the scan resumes after the end of each match.
func (idx *PositionIndex) FindAll(needle string) []Occurrence {
	if needle == "" {
		return nil
	}
	folded := strings.ToLower(needle)
	var out []Occurrence
	from := 0
	for {
		rel := strings.Index(idx.folded[from:], folded)
		if rel < 0 {
			return out
		}
		pos := from + rel
		out = append(out, idx.occurrenceAt(pos))
		from = pos + len(folded)
	}
}

// Slice returns the document text at [pos, pos+length), clamped to bounds.
func (idx *PositionIndex) Slice(pos, length int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(idx.text) {
		pos = len(idx.text)
	}
	end := pos + length
	if end > len(idx.text) {
		end = len(idx.text)
	}
	return idx.text[pos:end]
}

func (idx *PositionIndex) occurrenceAt(pos int) Occurrence {
	// Binary search for the last line start <= pos
	lo, hi := 0, len(idx.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lineStarts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Occurrence{
		Position: pos,
		Line:     lo,
		Column:   pos - idx.lineStarts[lo],
	}
}
