// Package layout holds the normalized result model produced by an OCR/layout
// inference engine: pages are divided into labeled blocks, each block carrying
// the recognized words that fall inside it, ordered by visual reading
// direction.
//
// The package is the boundary between engine adapters (pkg/paddle, pkg/docai),
// which produce a RawResult, and the PDF synthesis pipeline (pkg/sandwich),
// which consumes []Block.
//
// Main Functions:
//
// - Normalize: converts a RawResult into ordered Blocks
// - ReadingOrder: the built-in XY-cut reading-order resolver
package layout

// BBox is an axis-aligned rectangle in pixel space.
// X1, Y1 is the top-left corner and X2, Y2 the bottom-right corner,
// matching the bbox convention of the inference engines.
type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewBBox creates a bounding box from the x1, y1, x2, y2 values reported by
// an inference engine.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Valid reports whether the box has positive width and height.
func (b BBox) Valid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y2 - b.Y1 }

// Contains reports whether the center of o lies inside b. Engines report
// word boxes that may poke slightly outside their parent block, so center
// containment is the practical membership test.
func (b BBox) Contains(o BBox) bool {
	cx := (o.X1 + o.X2) / 2
	cy := (o.Y1 + o.Y2) / 2
	return cx >= b.X1 && cx <= b.X2 && cy >= b.Y1 && cy <= b.Y2
}

// Word is a single recognized word with its pixel bounding box, label and
// recognition confidence in [0,1]. Words are immutable once produced by
// Normalize.
type Word struct {
	BBox  BBox
	Text  string
	Label string
	Score float64
}

// Block is a labeled layout region (paragraph, table, seal, ...) containing
// recognized words in reading order. The word order is established once by
// Normalize and is never re-sorted downstream.
type Block struct {
	Label   string
	BBox    BBox
	Content string
	Words   []Word
}

// RawBlock is a layout region as reported by an inference engine, before
// words have been assigned to it.
type RawBlock struct {
	Label   string
	BBox    BBox
	Content string
}

// RawResult is the unprocessed output of an inference engine: the overall
// word-recognition list and the detected layout blocks. Block order is the
// engine's reading order and is preserved as-is.
type RawResult struct {
	Words  []Word
	Blocks []RawBlock
}
