package hocr

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// Generate renders the document as hOCR HTML and writes it to w.
func (h *HOCR) Generate(w io.Writer) error {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Transitional//EN\" \"http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd\">\n")
	b.WriteString("<html xmlns=\"http://www.w3.org/1999/xhtml\">\n")
	b.WriteString("<head>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(h.Title))
	b.WriteString("<meta http-equiv=\"Content-Type\" content=\"text/html;charset=utf-8\"/>\n")
	fmt.Fprintf(&b, "<meta name=\"ocr-system\" content=\"%s\"/>\n", html.EscapeString(h.System))
	b.WriteString("<meta name=\"ocr-capabilities\" content=\"ocr_page ocr_carea ocrx_word\"/>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	for i, p := range h.Pages {
		writePage(&b, i, &p)
	}
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writePage(b *strings.Builder, index int, p *Page) {
	id := p.ID
	if id == "" {
		id = fmt.Sprintf("page_%d", index+1)
	}
	fmt.Fprintf(b, "<div class=\"ocr_page\" id=\"%s\" title=\"image %s; bbox %s; ppageno %d\">\n",
		html.EscapeString(id), html.EscapeString(quoteImage(p.Image)), bboxProp(p.BBox), p.Number)
	for _, blk := range p.Blocks {
		writeBlock(b, &blk)
	}
	b.WriteString("</div>\n")
}

func writeBlock(b *strings.Builder, blk *Block) {
	title := fmt.Sprintf("bbox %s", bboxProp(blk.BBox))
	if blk.Label != "" {
		title += fmt.Sprintf("; x_label %s", blk.Label)
	}
	fmt.Fprintf(b, "<div class=\"ocr_carea\" id=\"%s\" title=\"%s\">\n",
		html.EscapeString(blk.ID), html.EscapeString(title))
	for _, w := range blk.Words {
		fmt.Fprintf(b, "<span class=\"ocrx_word\" id=\"%s\" title=\"bbox %s; x_wconf %.0f\">%s</span>\n",
			html.EscapeString(w.ID), bboxProp(w.BBox), w.Confidence, html.EscapeString(w.Text))
	}
	b.WriteString("</div>\n")
}

func quoteImage(name string) string {
	return "\"" + name + "\""
}

func bboxProp(b layout.BBox) string {
	return fmt.Sprintf("%d %d %d %d", int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

func blockID(n int) string {
	return fmt.Sprintf("block_1_%d", n)
}

func wordID(n int) string {
	return fmt.Sprintf("word_1_%d", n)
}
