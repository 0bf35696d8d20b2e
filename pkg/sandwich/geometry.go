package sandwich

import (
	"math"
	"unicode/utf8"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

const (
	// pointsPerInch is the PDF user-space unit density.
	pointsPerInch = 72.0

	// charAspect is the fixed width:height design ratio (1:2) of the
	// embedded glyphless font. The horizontal stretch compensates for it.
	charAspect = 2

	// angleSnapRad is the threshold below which text is treated as
	// perfectly horizontal, suppressing jitter from quantization noise.
	angleSnapRad = 0.01

	// renderModeInvisible positions and measures glyphs without painting.
	renderModeInvisible = 3

	// horizontalScaleBase is the neutral Tz percentage.
	horizontalScaleBase = 100.0
)

// Scale converts pixel distances to PDF points, one factor per axis.
type Scale struct {
	X float64
	Y float64
}

// NewScale derives the pixel-to-point scale from the image DPI and the
// caller-supplied image scale factor.
func NewScale(dpiX, dpiY, imageScale float64) Scale {
	return Scale{
		X: pointsPerInch / dpiX / imageScale,
		Y: pointsPerInch / dpiY / imageScale,
	}
}

// quad is a quadrilateral as 8 flattened coordinates, clockwise from the
// top-left corner: x0,y0 (top-left), x1,y1 (top-right), x2,y2
// (bottom-right), x3,y3 (bottom-left).
type quad [8]float64

// quadFromBBox expands an axis-aligned box to its four corners.
func quadFromBBox(b layout.BBox) quad {
	return quad{
		b.X1, b.Y1,
		b.X2, b.Y1,
		b.X2, b.Y2,
		b.X1, b.Y2,
	}
}

// toPoints maps every pixel coordinate pair into PDF user space. The
// vertical axis flips because pixel origin is top-left while PDF origin is
// bottom-left; height is the page height in pixels.
func (q quad) toPoints(s Scale, height float64) quad {
	var out quad
	for i := 0; i < 8; i += 2 {
		out[i] = q[i] * s.X
		out[i+1] = (height - q[i+1]) * s.Y
	}
	return out
}

// TextRun is the placement of one invisible glyph run: the origin of the
// text matrix in points, the rotation in radians, the font size, and the
// horizontal scale percentage that makes the run cover the word's box
// regardless of character count.
type TextRun struct {
	X        float64
	Y        float64
	Angle    float64
	FontSize float64
	Stretch  float64
}

// runFromWord derives the glyph-run geometry for one word. It reports
// false for words that must be skipped: empty text, or geometry yielding a
// non-positive font size or run width.
func runFromWord(w layout.Word, s Scale, height float64) (TextRun, bool) {
	chars := utf8.RuneCountInString(w.Text)
	if chars == 0 {
		return TextRun{}, false
	}

	q := quadFromBBox(w.BBox).toPoints(s, height)

	// Rotation follows the bottom edge, bottom-left to bottom-right.
	angle := -math.Atan2(q[5]-q[7], q[4]-q[6])
	if math.Abs(angle) < angleSnapRad {
		angle = 0
	}

	fontSize := math.Hypot(q[0]-q[6], q[1]-q[7])
	runWidth := math.Hypot(q[4]-q[6], q[5]-q[7])
	if fontSize <= 0 || runWidth <= 0 {
		return TextRun{}, false
	}

	stretch := horizontalScaleBase * runWidth / float64(chars) / fontSize * charAspect

	return TextRun{
		X:        q[6],
		Y:        q[7],
		Angle:    angle,
		FontSize: fontSize,
		Stretch:  stretch,
	}, true
}
