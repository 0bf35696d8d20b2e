package sandwich

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/pdfgen"
)

// GenerateTextContent converts normalized blocks into the invisible text
// layer's instruction sequence. The whole stream is bracketed by a single
// save/restore pair; every emitted word gets its own BT..ET text object
// wrapped in a Span marked-content sequence with a monotonically
// increasing id. Words failing the skip invariant are logged and consume
// no marked-content id. Zero blocks yield just the q/Q bracket.
func GenerateTextContent(blocks []layout.Block, scale Scale, height float64, cfg Config) *ContentStream {
	log := cfg.logger()

	cs := NewContentStream()
	cs.SaveState()

	mcid := 0
	for _, block := range blocks {
		if len(block.Words) == 0 {
			log.Debug("block has no words, skipping", "label", block.Label)
			continue
		}
		for _, word := range block.Words {
			run, ok := runFromWord(word, scale, height)
			if !ok {
				log.Warn("skipping word with degenerate geometry",
					"text", word.Text, "bbox", word.BBox)
				continue
			}
			emitRun(cs, run, word.Text, mcid, cfg.Boxes)
			mcid++
		}
	}

	cs.RestoreState()
	return cs
}

// emitRun appends one invisible glyph run, and in debug mode the stroked
// rectangle covering the same box.
func emitRun(cs *ContentStream, run TextRun, text string, mcid int, boxes bool) {
	cos, sin := math.Cos(run.Angle), math.Sin(run.Angle)

	cs.BeginText()
	cs.BeginMarkedContent("Span", mcid)
	cs.SetRenderMode(renderModeInvisible)
	cs.SetTextMatrix(cos, -sin, sin, cos, run.X, run.Y)
	cs.SetFont(FontResourceName, run.FontSize)
	cs.SetHorizontalScale(run.Stretch)
	cs.ShowText(text)
	cs.EndMarkedContent()
	cs.EndText()

	if boxes {
		runWidth := run.Stretch / horizontalScaleBase * run.FontSize / charAspect * float64(utf8.RuneCountInString(text))
		cs.SaveState()
		cs.Concat(cos, -sin, sin, cos, run.X, run.Y)
		cs.Rect(0, 0, runWidth, run.FontSize)
		cs.SetStrokeColor(1, 0, 0)
		cs.CloseAndStroke()
		cs.RestoreState()
	}
}

// GeneratePDF synthesizes the single-page sandwich document for one source
// image and writes it to outputPath. The page is sized so that the image's
// pixel grid maps exactly onto it at the declared DPI; the content is the
// invisible text layer only. An empty block list still produces a valid,
// blank page.
func GeneratePDF(imagePath string, blocks []layout.Block, outputPath string, cfg Config) error {
	if cfg.ImageScale <= 0 {
		return fmt.Errorf("invalid image scale %v, must be positive", cfg.ImageScale)
	}

	info, err := ProbeImage(imagePath)
	if err != nil {
		return fmt.Errorf("opening image %s: %w", imagePath, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", info.Width, info.Height)
	}

	scale := NewScale(info.DPIX, info.DPIY, cfg.ImageScale)

	if len(blocks) == 0 {
		cfg.logger().Warn("no OCR blocks, creating blank page", "image", imagePath)
	}

	cs := GenerateTextContent(blocks, scale, float64(info.Height), cfg)
	content, err := cs.Bytes()
	if err != nil {
		return fmt.Errorf("serializing content stream: %w", err)
	}

	w, err := pdfgen.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writeSinglePage(w, info, scale, content); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// WritePDF is like GeneratePDF but writes to an arbitrary pdfgen.Writer,
// which tests use to target a buffer instead of a file.
func WritePDF(w *pdfgen.Writer, info ImageInfo, blocks []layout.Block, cfg Config) error {
	if cfg.ImageScale <= 0 {
		return fmt.Errorf("invalid image scale %v, must be positive", cfg.ImageScale)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", info.Width, info.Height)
	}
	scale := NewScale(info.DPIX, info.DPIY, cfg.ImageScale)
	cs := GenerateTextContent(blocks, scale, float64(info.Height), cfg)
	content, err := cs.Bytes()
	if err != nil {
		return fmt.Errorf("serializing content stream: %w", err)
	}
	return writeSinglePage(w, info, scale, content)
}

// writeSinglePage assembles the document skeleton: catalog, page tree with
// one page sized to the scaled image, the font resource, and the content
// stream. The writer is closed on success.
func writeSinglePage(w *pdfgen.Writer, info ImageInfo, scale Scale, content []byte) error {
	catalog := w.Alloc()
	pages := w.Alloc()
	page := w.Alloc()
	contents := w.Alloc()

	font, err := embedGlyphlessFont(w)
	if err != nil {
		return fmt.Errorf("embedding font: %w", err)
	}

	pageW := float64(info.Width) * scale.X
	pageH := float64(info.Height) * scale.Y

	if err := w.Put(catalog, pdfgen.Dict{
		"Type":  pdfgen.Name("Catalog"),
		"Pages": pages,
	}); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := w.Put(pages, pdfgen.Dict{
		"Type":  pdfgen.Name("Pages"),
		"Count": pdfgen.Integer(1),
		"Kids":  pdfgen.Array{page},
	}); err != nil {
		return fmt.Errorf("writing page tree: %w", err)
	}
	if err := w.Put(page, pdfgen.Dict{
		"Type":     pdfgen.Name("Page"),
		"Parent":   pages,
		"MediaBox": pdfgen.Array{pdfgen.Integer(0), pdfgen.Integer(0), pdfgen.Real(pageW), pdfgen.Real(pageH)},
		"Resources": pdfgen.Dict{
			"Font": pdfgen.Dict{
				pdfgen.Name(FontResourceName): font,
			},
		},
		"Contents": contents,
	}); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	if err := w.PutStream(contents, nil, content); err != nil {
		return fmt.Errorf("writing content stream: %w", err)
	}

	if err := w.Close(catalog); err != nil {
		return fmt.Errorf("finalizing document: %w", err)
	}
	return nil
}
