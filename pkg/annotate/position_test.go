package annotate

import (
	"testing"
)

func TestFindFirst(t *testing.T) {
	doc := "ShopSphere checkout abandonment is high.\nGuest checkout is missing."
	idx := NewPositionIndex(doc)

	tests := []struct {
		name     string
		needle   string
		wantPos  int
		wantLine int
		wantCol  int
		wantOk   bool
	}{
		{
			name:     "exact match",
			needle:   "checkout abandonment",
			wantPos:  11,
			wantLine: 0,
			wantCol:  11,
			wantOk:   true,
		},
		{
			name:     "case insensitive",
			needle:   "CHECKOUT ABANDONMENT",
			wantPos:  11,
			wantLine: 0,
			wantCol:  11,
			wantOk:   true,
		},
		{
			name:     "second line",
			needle:   "guest checkout",
			wantPos:  41,
			wantLine: 1,
			wantCol:  0,
			wantOk:   true,
		},
		{
			name:   "no match",
			needle: "refund policy",
			wantOk: false,
		},
		{
			name:   "empty needle",
			needle: "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, ok := idx.FindFirst(tt.needle)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if occ.Position != tt.wantPos {
				t.Errorf("Position = %d, want %d", occ.Position, tt.wantPos)
			}
			if occ.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", occ.Line, tt.wantLine)
			}
			if occ.Column != tt.wantCol {
				t.Errorf("Column = %d, want %d", occ.Column, tt.wantCol)
			}
		})
	}
}

func TestFindAll(t *testing.T) {
	idx := NewPositionIndex("checkout, Checkout, CHECKOUT")

	occs := idx.FindAll("checkout")
	if len(occs) != 3 {
		t.Fatalf("len = %d, want 3", len(occs))
	}
	wantPositions := []int{0, 10, 20}
	for i, occ := range occs {
		if occ.Position != wantPositions[i] {
			t.Errorf("occ[%d].Position = %d, want %d", i, occ.Position, wantPositions[i])
		}
	}
}

func TestFindAllNonOverlapping(t *testing.T) {
	idx := NewPositionIndex("aaaa")

	occs := idx.FindAll("aa")
	if len(occs) != 2 {
		t.Fatalf("len = %d, want 2 (matches must not overlap)", len(occs))
	}
	if occs[0].Position != 0 || occs[1].Position != 2 {
		t.Errorf("positions = %d,%d, want 0,2", occs[0].Position, occs[1].Position)
	}
}

func TestSliceClamping(t *testing.T) {
	idx := NewPositionIndex("short")

	tests := []struct {
		name   string
		pos    int
		length int
		want   string
	}{
		{name: "in bounds", pos: 0, length: 5, want: "short"},
		{name: "length past end", pos: 3, length: 10, want: "rt"},
		{name: "negative pos", pos: -2, length: 2, want: "sh"},
		{name: "pos past end", pos: 99, length: 3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Slice(tt.pos, tt.length); got != tt.want {
				t.Errorf("Slice(%d, %d) = %q, want %q", tt.pos, tt.length, got, tt.want)
			}
		})
	}
}
