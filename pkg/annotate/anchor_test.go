package annotate

import (
	"strings"
	"testing"
)

const anchorDoc = "ShopSphere checkout abandonment is high. The mobile funnel loses " +
	"most shoppers at the payment step, and guest checkout is still missing."

func TestAnchorExcerptExactMatch(t *testing.T) {
	idx := NewPositionIndex(anchorDoc)

	res, keep := AnchorExcerpt(idx, "checkout abandonment", 0, 1, PolicyFallback)
	if !keep {
		t.Fatal("exact match must be kept")
	}
	if !res.Matched {
		t.Error("Matched = false, want true")
	}
	if res.Position != 11 {
		t.Errorf("Position = %d, want 11", res.Position)
	}
	if res.Length != 20 {
		t.Errorf("Length = %d, want 20", res.Length)
	}
	if res.Excerpt != "checkout abandonment" {
		t.Errorf("Excerpt = %q", res.Excerpt)
	}
}

func TestAnchorExcerptPrefixMatch(t *testing.T) {
	idx := NewPositionIndex(anchorDoc)

	// Only the first three words exist in the document.
	res, keep := AnchorExcerpt(idx, "guest checkout is broken beyond repair", 0, 1, PolicyFallback)
	if !keep {
		t.Fatal("prefix match must be kept")
	}
	if !res.Matched {
		t.Error("Matched = false, want true")
	}
	if res.Excerpt != "guest checkout is" {
		t.Errorf("Excerpt = %q, want the three-word prefix", res.Excerpt)
	}
	if got := idx.Slice(res.Position, res.Length); !strings.EqualFold(got, "guest checkout is") {
		t.Errorf("resolved span = %q", got)
	}
}

func TestAnchorExcerptShortExcerptSkipsPrefixTier(t *testing.T) {
	idx := NewPositionIndex(anchorDoc)

	// Three words or fewer: no prefix tier, straight to the fallback.
	res, keep := AnchorExcerpt(idx, "guest checkout gone", 0, 1, PolicyFallback)
	if !keep {
		t.Fatal("fallback must be kept under PolicyFallback")
	}
	if res.Matched {
		t.Error("Matched = true, want false")
	}
}

func TestAnchorExcerptFallbackSpread(t *testing.T) {
	idx := NewPositionIndex(anchorDoc)

	// Three unmatched items spread evenly: len*(i+1)/4.
	for i := 0; i < 3; i++ {
		res, keep := AnchorExcerpt(idx, "no such text anywhere at all", i, 3, PolicyFallback)
		if !keep {
			t.Fatalf("item %d dropped", i)
		}
		want := idx.Len() * (i + 1) / 4
		if res.Position != want {
			t.Errorf("item %d Position = %d, want %d", i, res.Position, want)
		}
		if res.Matched {
			t.Errorf("item %d Matched = true", i)
		}
		if res.Excerpt != idx.Slice(want, 30) {
			t.Errorf("item %d Excerpt = %q", i, res.Excerpt)
		}
		if res.Length != len(res.Excerpt) {
			t.Errorf("item %d Length = %d, excerpt len %d", i, res.Length, len(res.Excerpt))
		}
	}
}

func TestAnchorExcerptFallbackClamped(t *testing.T) {
	idx := NewPositionIndex("tiny")

	res, keep := AnchorExcerpt(idx, "absent excerpt text here", 5, 1, PolicyFallback)
	if !keep {
		t.Fatal("dropped")
	}
	if res.Position >= idx.Len() {
		t.Errorf("Position = %d, must stay inside the document", res.Position)
	}
}

func TestAnchorExcerptDropPolicy(t *testing.T) {
	idx := NewPositionIndex(anchorDoc)

	if _, keep := AnchorExcerpt(idx, "no such text anywhere at all", 0, 1, PolicyDropUnmatched); keep {
		t.Error("unmatched excerpt must be dropped under PolicyDropUnmatched")
	}
	if _, keep := AnchorExcerpt(idx, "checkout abandonment", 0, 1, PolicyDropUnmatched); !keep {
		t.Error("matched excerpt must survive PolicyDropUnmatched")
	}
}
