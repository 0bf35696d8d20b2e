package layout

// Direction is the reading direction hint passed to a Resolver.
type Direction string

const (
	// Horizontal orders words left to right, top to bottom.
	Horizontal Direction = "horizontal"
	// Vertical orders words top to bottom, left to right, used for
	// tabular or stamped content.
	Vertical Direction = "vertical"
)

// Resolver orders word bounding boxes by visual reading direction.
// Order returns a permutation of the indices 0..len(boxes)-1.
type Resolver interface {
	Order(boxes []BBox, dir Direction) []int
}

// verticalLabels are the block labels whose content reads top to bottom.
var verticalLabels = map[string]bool{
	"table": true,
	"seal":  true,
	"chart": true,
}

// BlockDirection returns the reading direction for a block label.
func BlockDirection(label string) Direction {
	if verticalLabels[label] {
		return Vertical
	}
	return Horizontal
}

// Normalize converts a raw inference result into ordered blocks. For each
// raw block it collects the recognized words whose boxes fall inside the
// block, asks the resolver to order them by the block's reading direction,
// and keeps that order. Block order is the engine's and is left untouched.
//
// A nil result, or one missing either the word list or the block list,
// yields zero blocks. Callers must treat an empty slice as "no text layer",
// not as an error. A nil resolver falls back to the built-in ReadingOrder.
func Normalize(raw *RawResult, r Resolver) []Block {
	if raw == nil || len(raw.Words) == 0 || len(raw.Blocks) == 0 {
		return nil
	}
	if r == nil {
		r = ReadingOrder{}
	}

	blocks := make([]Block, 0, len(raw.Blocks))
	for _, rb := range raw.Blocks {
		var words []Word
		for _, w := range raw.Words {
			if rb.BBox.Contains(w.BBox) {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			boxes := make([]BBox, len(words))
			for i, w := range words {
				boxes[i] = w.BBox
			}
			perm := r.Order(boxes, BlockDirection(rb.Label))
			ordered := make([]Word, 0, len(words))
			for _, idx := range perm {
				if idx >= 0 && idx < len(words) {
					ordered = append(ordered, words[idx])
				}
			}
			words = ordered
		}
		blocks = append(blocks, Block{
			Label:   rb.Label,
			BBox:    rb.BBox,
			Content: rb.Content,
			Words:   words,
		})
	}
	return blocks
}
