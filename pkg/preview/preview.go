// Package preview builds proofing PDFs where the recognized text is drawn
// with a standard font on top of the page image. Unlike the production
// sandwich output it uses visible or alpha-blended text, which makes it
// easy to eyeball recognition quality in any viewer.
//
// Main Functions:
//
// - Assemble: renders one page image with its words into a PDF
package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// FontConfig contains font settings for the overlay text.
type FontConfig struct {
	Name        string  // font name, e.g. "Helvetica"
	Style       string  // font style ("", "B", "I", "BI")
	Size        float64 // default font size
	AscentRatio float64 // vertical positioning ratio
}

// DefaultFont is Helvetica, which covers the latin1 range the overlay
// re-encodes into.
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

// Config controls preview rendering.
type Config struct {
	Debug     bool // draw text in red with word outlines instead of alpha 0
	LayerName string
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LayerName: "OCR Preview",
		Font:      DefaultFont,
	}
}

// Assemble builds a single-page PDF from the page image and its words.
// The page takes the image's pixel dimensions in points, so word bounding
// boxes can be used as PDF coordinates directly.
func Assemble(imageData []byte, blocks []layout.Block, cfg Config) ([]byte, error) {
	cfgImg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image config: %w", err)
	}
	w, h := float64(cfgImg.Width), float64(cfgImg.Height)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: strings.ToUpper(format)}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(imageData))
	pdf.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	if err := drawOverlay(pdf, blocks, cfg); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// drawOverlay draws all words onto a named layer, visible in debug mode
// and fully transparent otherwise.
func drawOverlay(pdf *fpdf.Fpdf, blocks []layout.Block, cfg Config) error {
	layer := pdf.AddLayer(cfg.LayerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)

	if cfg.Debug {
		pdf.SetTextColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal")
	}

	encodingErrors := 0
	wordCount := 0
	for _, block := range blocks {
		for _, word := range block.Words {
			drawWord(pdf, word, cfg, &encodingErrors)
			wordCount++
		}
	}
	pdf.EndLayer()

	if wordCount > 0 && encodingErrors > wordCount/10 {
		return fmt.Errorf("character encoding issues in %d of %d words",
			encodingErrors, wordCount)
	}
	return nil
}

// drawWord renders a single word, scaled so its string width matches the
// bounding box width.
func drawWord(pdf *fpdf.Fpdf, word layout.Word, cfg Config, encodingErrors *int) {
	x, y := word.BBox.X1, word.BBox.Y1
	wordWidth := word.BBox.Width()

	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		*encodingErrors++
		latin1 = word.Text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 {
		pdf.SetFontSize(cfg.Font.Size * wordWidth / strWidth)
	}

	fontSize, _ := pdf.GetFontSize()
	y += fontSize * cfg.Font.AscentRatio

	pdf.Text(x, y, latin1)
	pdf.SetFontSize(cfg.Font.Size)

	if cfg.Debug {
		pdf.Rect(word.BBox.X1, word.BBox.Y1, wordWidth, word.BBox.Height(), "D")
	}
}
