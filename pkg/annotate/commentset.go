package annotate

import (
	"sort"

	"github.com/google/uuid"
)

// CommentSet holds the accumulated anchored comments for the active document
// revision. It is not synchronized; the owning session serializes access.
type CommentSet struct {
	comments []Comment
	seen     map[uuid.UUID]struct{}
}

func NewCommentSet() *CommentSet {
	return &CommentSet{seen: make(map[uuid.UUID]struct{})}
}

// Add appends comments in order. Content duplicates are allowed; only an
// explicitly reused id is skipped.
func (s *CommentSet) Add(comments ...Comment) {
	for _, c := range comments {
		if _, dup := s.seen[c.Id]; dup {
			continue
		}
		s.seen[c.Id] = struct{}{}
		s.comments = append(s.comments, c)
	}
}

// All returns every comment in insertion order, overlaps included. The
// feedback sidebar renders this list.
func (s *CommentSet) All() []Comment {
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

func (s *CommentSet) Len() int {
	return len(s.comments)
}

// OrderedNonOverlapping returns comments sorted ascending by position with
// overlapping spans resolved first-wins: a comment starting before the
// previously retained comment's span ends is dropped. Used for the inline
// rendering representation, which requires disjoint spans.
func (s *CommentSet) OrderedNonOverlapping() []Comment {
	ordered := s.All()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	out := ordered[:0]
	prevEnd := -1
	for _, c := range ordered {
		if c.Position < prevEnd {
			continue
		}
		out = append(out, c)
		prevEnd = c.end()
	}
	return out
}

// Clear empties the set entirely. Partial deletion is not supported.
func (s *CommentSet) Clear() {
	s.comments = nil
	s.seen = make(map[uuid.UUID]struct{})
}

// Resolve marks the comment resolved without removing it. Returns false if
// the id is unknown.
func (s *CommentSet) Resolve(id uuid.UUID) bool {
	for i := range s.comments {
		if s.comments[i].Id == id {
			s.comments[i].Resolved = true
			return true
		}
	}
	return false
}
