package annotate

import (
	"testing"

	"github.com/google/uuid"
)

func span(pos, length int) Comment {
	return Comment{Id: uuid.New(), Position: pos, Length: length}
}

func TestCommentSetAddAndDedup(t *testing.T) {
	s := NewCommentSet()

	c := span(0, 5)
	s.Add(c, span(10, 5))
	s.Add(c) // same id again
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	// Identical content under a fresh id is a distinct comment.
	dup := c
	dup.Id = uuid.New()
	s.Add(dup)
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestCommentSetAllKeepsInsertionOrder(t *testing.T) {
	s := NewCommentSet()
	late := span(50, 5)
	early := span(0, 5)
	s.Add(late, early)

	all := s.All()
	if all[0].Id != late.Id || all[1].Id != early.Id {
		t.Error("All must keep insertion order")
	}
}

func TestOrderedNonOverlapping(t *testing.T) {
	s := NewCommentSet()
	a := span(0, 10)   // kept
	b := span(5, 10)   // overlaps a, dropped
	c := span(10, 5)   // starts exactly at a's end, kept
	d := span(12, 3)   // overlaps c, dropped
	e := span(100, 20) // kept
	s.Add(e, d, c, b, a) // insertion order is irrelevant

	out := s.OrderedNonOverlapping()
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	wantIds := []uuid.UUID{a.Id, c.Id, e.Id}
	for i, id := range wantIds {
		if out[i].Id != id {
			t.Errorf("out[%d].Id mismatch", i)
		}
	}
}

func TestOrderedNonOverlappingFirstWinsOnTie(t *testing.T) {
	s := NewCommentSet()
	first := span(5, 10)
	second := span(5, 3)
	s.Add(first, second)

	out := s.OrderedNonOverlapping()
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Id != first.Id {
		t.Error("earlier-added comment must win a position tie")
	}
}

func TestClearAndResolve(t *testing.T) {
	s := NewCommentSet()
	c := span(0, 4)
	s.Add(c)

	if !s.Resolve(c.Id) {
		t.Error("Resolve on a known id must return true")
	}
	if !s.All()[0].Resolved {
		t.Error("comment must be marked resolved")
	}
	if s.Resolve(uuid.New()) {
		t.Error("Resolve on an unknown id must return false")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}

	// The id space resets with the set.
	s.Add(c)
	if s.Len() != 1 {
		t.Error("previously seen id must be insertable after Clear")
	}
}
