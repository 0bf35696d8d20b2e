package docai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// resultFromDocument flattens a Document AI response into the raw layout
// model. Tokens become words and page blocks become layout blocks, both in
// pixel coordinates of the page image.
func resultFromDocument(doc *documentaipb.Document) *layout.RawResult {
	result := &layout.RawResult{}
	if doc == nil {
		return result
	}
	for _, page := range doc.Pages {
		dim := page.Dimension
		for _, token := range page.Tokens {
			text := strings.TrimRight(textFromLayout(token.Layout, doc.Text), " \n")
			bbox, ok := bboxFromLayout(token.Layout, dim)
			if !ok {
				continue
			}
			result.Words = append(result.Words, layout.Word{
				BBox:  bbox,
				Text:  text,
				Label: "text",
				Score: float64(token.Layout.GetConfidence()),
			})
		}
		for _, block := range page.Blocks {
			bbox, ok := bboxFromLayout(block.Layout, dim)
			if !ok {
				continue
			}
			result.Blocks = append(result.Blocks, layout.RawBlock{
				BBox:    bbox,
				Label:   "text",
				Content: strings.TrimSpace(textFromLayout(block.Layout, doc.Text)),
			})
		}
	}
	return result
}

// textFromLayout extracts text from a layout's text anchor segments.
func textFromLayout(l *documentaipb.Document_Page_Layout, fullText string) string {
	if l == nil || l.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	var b strings.Builder
	for _, seg := range l.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > end {
			start = end
		}
		b.WriteString(string(runes[start:end]))
	}
	return b.String()
}

// bboxFromLayout scales a layout's normalized vertices to pixel space.
func bboxFromLayout(l *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) (layout.BBox, bool) {
	if l == nil || l.BoundingPoly == nil || dim == nil {
		return layout.BBox{}, false
	}
	vertices := l.BoundingPoly.NormalizedVertices
	if len(vertices) < 4 {
		return layout.BBox{}, false
	}
	return layout.NewBBox(
		float64(vertices[0].X*dim.Width),
		float64(vertices[0].Y*dim.Height),
		float64(vertices[2].X*dim.Width),
		float64(vertices[2].Y*dim.Height),
	), true
}
