package docai

import (
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

func anchor(start, end int64) *documentaipb.Document_TextAnchor {
	return &documentaipb.Document_TextAnchor{
		TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
			{StartIndex: start, EndIndex: end},
		},
	}
}

func poly(x1, y1, x2, y2 float32) *documentaipb.BoundingPoly {
	return &documentaipb.BoundingPoly{
		NormalizedVertices: []*documentaipb.NormalizedVertex{
			{X: x1, Y: y1},
			{X: x2, Y: y1},
			{X: x2, Y: y2},
			{X: x1, Y: y2},
		},
	}
}

func sampleDocument() *documentaipb.Document {
	return &documentaipb.Document{
		Text: "Hello world\n",
		Pages: []*documentaipb.Document_Page{
			{
				Dimension: &documentaipb.Document_Page_Dimension{Width: 200, Height: 100},
				Tokens: []*documentaipb.Document_Page_Token{
					{
						Layout: &documentaipb.Document_Page_Layout{
							TextAnchor:   anchor(0, 6),
							BoundingPoly: poly(0.05, 0.1, 0.45, 0.3),
							Confidence:   0.95,
						},
					},
					{
						Layout: &documentaipb.Document_Page_Layout{
							TextAnchor:   anchor(6, 12),
							BoundingPoly: poly(0.5, 0.1, 0.95, 0.3),
							Confidence:   0.9,
						},
					},
				},
				Blocks: []*documentaipb.Document_Page_Block{
					{
						Layout: &documentaipb.Document_Page_Layout{
							TextAnchor:   anchor(0, 12),
							BoundingPoly: poly(0, 0, 1, 1),
						},
					},
				},
			},
		},
	}
}

func TestResultFromDocument(t *testing.T) {
	result := resultFromDocument(sampleDocument())
	if len(result.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(result.Words))
	}
	if result.Words[0].Text != "Hello" {
		t.Errorf("word 0 text = %q, want Hello", result.Words[0].Text)
	}
	if result.Words[1].Text != "world" {
		t.Errorf("word 1 text = %q, want world", result.Words[1].Text)
	}

	bbox := result.Words[0].BBox
	if bbox.X1 != 10 || bbox.Y1 != 10 || bbox.X2 != 90 || bbox.Y2 != 30 {
		t.Errorf("word 0 bbox = %+v, want 10 10 90 30", bbox)
	}
	if got := result.Words[0].Score; got < 0.94 || got > 0.96 {
		t.Errorf("word 0 score = %v, want ~0.95", got)
	}

	if len(result.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(result.Blocks))
	}
	blk := result.Blocks[0]
	if blk.BBox.X2 != 200 || blk.BBox.Y2 != 100 {
		t.Errorf("block bbox = %+v, want full page", blk.BBox)
	}
	if blk.Content != "Hello world" {
		t.Errorf("block content = %q", blk.Content)
	}
}

func TestResultFromDocumentNil(t *testing.T) {
	result := resultFromDocument(nil)
	if len(result.Words) != 0 || len(result.Blocks) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestResultSkipsTokensWithoutGeometry(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "x",
		Pages: []*documentaipb.Document_Page{
			{
				Dimension: &documentaipb.Document_Page_Dimension{Width: 10, Height: 10},
				Tokens: []*documentaipb.Document_Page_Token{
					{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(0, 1)}},
				},
			},
		},
	}
	result := resultFromDocument(doc)
	if len(result.Words) != 0 {
		t.Fatalf("expected token without bounding poly to be skipped, got %d words", len(result.Words))
	}
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(sampleDocument())
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(out, "Hello world") {
		t.Errorf("proto JSON missing text: %s", out)
	}

	out, err = ToJSON(map[string]int{"pages": 1})
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(out, "\"pages\": 1") {
		t.Errorf("struct JSON = %s", out)
	}
}
