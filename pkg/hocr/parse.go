package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// Parse converts raw hOCR data into a structured HOCR document.
func Parse(data []byte) (*HOCR, error) {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	result := &HOCR{}
	extractMeta(result, doc)

	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			result.Pages = append(result.Pages, parsePage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

func extractMeta(h *HOCR, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					h.Title = n.FirstChild.Data
				}
			case "meta":
				if attr(n, "name") == "ocr-system" {
					h.System = attr(n, "content")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

func parsePage(n *html.Node) Page {
	title := ParseTitle(attr(n, "title"))
	page := Page{
		ID:   attr(n, "id"),
		BBox: bboxFromTitle(title),
	}
	if img, ok := title["image"]; ok && len(img) > 0 {
		page.Image = strings.Trim(strings.Join(img, " "), "\"")
	}
	if no, ok := title["ppageno"]; ok && len(no) > 0 {
		page.Number, _ = strconv.Atoi(no[0])
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBlocks(c, &page)
	}
	return page
}

func walkBlocks(n *html.Node, page *Page) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_carea") {
		page.Blocks = append(page.Blocks, parseBlock(n))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBlocks(c, page)
	}
}

func parseBlock(n *html.Node) Block {
	title := ParseTitle(attr(n, "title"))
	blk := Block{
		ID:   attr(n, "id"),
		BBox: bboxFromTitle(title),
	}
	if label, ok := title["x_label"]; ok && len(label) > 0 {
		blk.Label = label[0]
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			blk.Words = append(blk.Words, parseWord(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return blk
}

func parseWord(n *html.Node) Word {
	title := ParseTitle(attr(n, "title"))
	word := Word{
		ID:   attr(n, "id"),
		Text: textContent(n),
		BBox: bboxFromTitle(title),
	}
	if conf, ok := title["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	return word
}

// ParseTitle breaks down an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_wconf 95".
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(strings.TrimSpace(part))
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

func bboxFromTitle(title map[string][]string) layout.BBox {
	bbox, ok := title["bbox"]
	if !ok || len(bbox) < 4 {
		return layout.BBox{}
	}
	x1, _ := strconv.ParseFloat(bbox[0], 64)
	y1, _ := strconv.ParseFloat(bbox[1], 64)
	x2, _ := strconv.ParseFloat(bbox[2], 64)
	y2, _ := strconv.ParseFloat(bbox[3], 64)
	return layout.NewBBox(x1, y1, x2, y2)
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
