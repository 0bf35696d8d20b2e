// Package hocr generates and parses hOCR, the HTML-based interchange
// format for OCR results. It maps the block/word layout model onto the
// hOCR hierarchy: pages (class 'ocr_page') contain content areas
// ('ocr_carea'), which contain recognized words ('ocrx_word') with their
// bounding boxes and confidences.
//
// Main Functions:
//
// - FromBlocks: converts normalized layout blocks into an hOCR page
// - Generate: renders an HOCR structure as hOCR HTML
// - Parse: reads hOCR HTML back into the structure
package hocr

import (
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// HOCR is a complete hOCR document.
type HOCR struct {
	Title  string
	System string // ocr-system metadata value
	Pages  []Page
}

// Page is one recognized page, class 'ocr_page'.
type Page struct {
	ID     string
	Image  string // source image filename
	Number int    // zero-based page index
	BBox   layout.BBox
	Blocks []Block
}

// Block is a content area, class 'ocr_carea'. The engine's block label is
// kept so a round trip preserves reading-direction decisions.
type Block struct {
	ID    string
	Label string
	BBox  layout.BBox
	Words []Word
}

// Word is a recognized word, class 'ocrx_word'. Confidence is the
// hOCR x_wconf percentage in [0,100].
type Word struct {
	ID         string
	Text       string
	BBox       layout.BBox
	Confidence float64
}

// FromBlocks builds a single-page hOCR document from normalized layout
// blocks. Width and height are the page image's pixel dimensions.
func FromBlocks(image string, width, height int, blocks []layout.Block) *HOCR {
	page := Page{
		ID:    "page_1",
		Image: image,
		BBox:  layout.NewBBox(0, 0, float64(width), float64(height)),
	}
	wordNo := 1
	for i, b := range blocks {
		hb := Block{
			ID:    blockID(i + 1),
			Label: b.Label,
			BBox:  b.BBox,
		}
		for _, w := range b.Words {
			hb.Words = append(hb.Words, Word{
				ID:         wordID(wordNo),
				Text:       w.Text,
				BBox:       w.BBox,
				Confidence: w.Score * 100,
			})
			wordNo++
		}
		page.Blocks = append(page.Blocks, hb)
	}
	return &HOCR{
		System: "OCRmyPDF-PaddlePaddle",
		Pages:  []Page{page},
	}
}

// ToBlocks converts a parsed page back into the layout model. Word scores
// come back in [0,1].
func (p *Page) ToBlocks() []layout.Block {
	var blocks []layout.Block
	for _, hb := range p.Blocks {
		b := layout.Block{
			Label: hb.Label,
			BBox:  hb.BBox,
		}
		for _, w := range hb.Words {
			b.Words = append(b.Words, layout.Word{
				BBox:  w.BBox,
				Text:  w.Text,
				Label: hb.Label,
				Score: w.Confidence / 100,
			})
		}
		blocks = append(blocks, b)
	}
	return blocks
}
