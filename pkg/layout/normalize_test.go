package layout

import "testing"

func TestNormalizeEmptyResult(t *testing.T) {
	if got := Normalize(nil, nil); got != nil {
		t.Fatalf("expected nil blocks for nil result, got %v", got)
	}
	if got := Normalize(&RawResult{}, nil); got != nil {
		t.Fatalf("expected nil blocks for empty result, got %v", got)
	}
	// A word list without blocks (or vice versa) also yields zero blocks.
	raw := &RawResult{Words: []Word{{BBox: NewBBox(0, 0, 10, 10), Text: "x"}}}
	if got := Normalize(raw, nil); got != nil {
		t.Fatalf("expected nil blocks when block list is missing, got %v", got)
	}
	raw = &RawResult{Blocks: []RawBlock{{Label: "text", BBox: NewBBox(0, 0, 100, 100)}}}
	if got := Normalize(raw, nil); got != nil {
		t.Fatalf("expected nil blocks when word list is missing, got %v", got)
	}
}

func TestNormalizeAssignsWordsByContainment(t *testing.T) {
	raw := &RawResult{
		Words: []Word{
			{BBox: NewBBox(10, 10, 40, 20), Text: "inside"},
			{BBox: NewBBox(210, 10, 240, 20), Text: "outside"},
		},
		Blocks: []RawBlock{
			{Label: "text", BBox: NewBBox(0, 0, 100, 100)},
		},
	}
	blocks := Normalize(raw, nil)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Words) != 1 || blocks[0].Words[0].Text != "inside" {
		t.Fatalf("unexpected words in block: %v", blocks[0].Words)
	}
}

// reverseResolver returns the indices in reverse, so tests can verify the
// resolver's answer is preserved verbatim.
type reverseResolver struct {
	gotDir Direction
}

func (r *reverseResolver) Order(boxes []BBox, dir Direction) []int {
	r.gotDir = dir
	out := make([]int, len(boxes))
	for i := range out {
		out[i] = len(boxes) - 1 - i
	}
	return out
}

func TestNormalizeKeepsResolverOrder(t *testing.T) {
	raw := &RawResult{
		Words: []Word{
			{BBox: NewBBox(10, 10, 40, 20), Text: "a"},
			{BBox: NewBBox(50, 10, 80, 20), Text: "b"},
		},
		Blocks: []RawBlock{
			{Label: "text", BBox: NewBBox(0, 0, 100, 100)},
		},
	}
	r := &reverseResolver{}
	blocks := Normalize(raw, r)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Words[0].Text != "b" || blocks[0].Words[1].Text != "a" {
		t.Fatalf("resolver order not preserved: %v", blocks[0].Words)
	}
	if r.gotDir != Horizontal {
		t.Fatalf("expected horizontal direction for text block, got %q", r.gotDir)
	}
}

func TestNormalizeVerticalLabels(t *testing.T) {
	for _, label := range []string{"table", "seal", "chart"} {
		raw := &RawResult{
			Words: []Word{
				{BBox: NewBBox(10, 10, 40, 20), Text: "a"},
			},
			Blocks: []RawBlock{
				{Label: label, BBox: NewBBox(0, 0, 100, 100)},
			},
		}
		r := &reverseResolver{}
		Normalize(raw, r)
		if r.gotDir != Vertical {
			t.Errorf("label %q: expected vertical direction, got %q", label, r.gotDir)
		}
	}
	if BlockDirection("paragraph") != Horizontal {
		t.Errorf("paragraph blocks must read horizontally")
	}
}

func TestReadingOrderHorizontal(t *testing.T) {
	// Two rows, two words each, given out of order.
	boxes := []BBox{
		NewBBox(60, 40, 90, 50), // row 2, word 2
		NewBBox(10, 10, 40, 20), // row 1, word 1
		NewBBox(10, 40, 40, 50), // row 2, word 1
		NewBBox(60, 10, 90, 20), // row 1, word 2
	}
	got := ReadingOrder{}.Order(boxes, Horizontal)
	want := []int{1, 3, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReadingOrderVertical(t *testing.T) {
	// Two columns; vertical direction reads each column top to bottom.
	boxes := []BBox{
		NewBBox(60, 40, 90, 50), // col 2, below
		NewBBox(10, 10, 40, 20), // col 1, top
		NewBBox(60, 10, 90, 20), // col 2, top
		NewBBox(10, 40, 40, 50), // col 1, below
	}
	got := ReadingOrder{}.Order(boxes, Vertical)
	want := []int{1, 3, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
