package sandwich

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/pdfgen"
)

// FontResourceName is the resource name under which the glyphless font is
// registered on every page, and which each Tf instruction selects.
const FontResourceName = "f-0-0"

// glyphlessFont is the embedded glyph program: a minimal TrueType font
// whose single glyph traces nothing. It exists only so viewers can shape
// and hide the invisible text without falling back to a substitute font;
// no computation depends on its contents.
//
//go:embed resources/glyphless.ttf
var glyphlessFont []byte

// toUnicodeCMap maps the entire 16-bit CID space back to the identical
// UTF-16BE code units, so copy/paste recovers the shown text unchanged.
var toUnicodeCMap = []byte(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo
<<
  /Registry (Adobe)
  /Ordering (UCS)
  /Supplement 0
>> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0000> <FFFF> <0000>
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`)

// embedGlyphlessFont writes the composite font object graph into w and
// returns the reference to the Type0 font dictionary. Construction is
// two-phase: all references are allocated first, then each object is
// populated, so forward references (descendant font, descriptor, streams)
// need no backfilling.
//
// The font is CID-keyed with Identity-H encoding: a raw 65536-entry
// CIDToGIDMap sends every CID to the font's single invisible glyph, and
// the descriptor flags the font fixed-pitch and symbolic with a 1:2
// width:height glyph box.
func embedGlyphlessFont(w *pdfgen.Writer) (pdfgen.Reference, error) {
	baseFont := w.Alloc()
	descendant := w.Alloc()
	cidToGID := w.Alloc()
	toUnicode := w.Alloc()
	descriptor := w.Alloc()
	fontFile := w.Alloc()

	err := w.Put(baseFont, pdfgen.Dict{
		"Type":            pdfgen.Name("Font"),
		"Subtype":         pdfgen.Name("Type0"),
		"BaseFont":        pdfgen.Name("GlyphLessFont"),
		"Encoding":        pdfgen.Name("Identity-H"),
		"DescendantFonts": pdfgen.Array{descendant},
		"ToUnicode":       toUnicode,
	})
	if err != nil {
		return pdfgen.Reference{}, fmt.Errorf("writing base font: %w", err)
	}

	err = w.Put(descendant, pdfgen.Dict{
		"Type":     pdfgen.Name("Font"),
		"Subtype":  pdfgen.Name("CIDFontType2"),
		"BaseFont": pdfgen.Name("GlyphLessFont"),
		"CIDSystemInfo": pdfgen.Dict{
			"Registry":   pdfgen.String("Adobe"),
			"Ordering":   pdfgen.String("Identity"),
			"Supplement": pdfgen.Integer(0),
		},
		"CIDToGIDMap":    cidToGID,
		"FontDescriptor": descriptor,
		"DW":             pdfgen.Integer(1000 / charAspect),
	})
	if err != nil {
		return pdfgen.Reference{}, fmt.Errorf("writing descendant font: %w", err)
	}

	if err := w.PutStream(cidToGID, nil, identityCIDToGIDMap()); err != nil {
		return pdfgen.Reference{}, fmt.Errorf("writing CIDToGIDMap: %w", err)
	}
	if err := w.PutStream(toUnicode, nil, toUnicodeCMap); err != nil {
		return pdfgen.Reference{}, fmt.Errorf("writing ToUnicode map: %w", err)
	}

	err = w.Put(descriptor, pdfgen.Dict{
		"Type":     pdfgen.Name("FontDescriptor"),
		"FontName": pdfgen.Name("GlyphLessFont"),
		// Fixed pitch and symbolic.
		"Flags":       pdfgen.Integer(5),
		"FontBBox":    pdfgen.Array{pdfgen.Integer(0), pdfgen.Integer(0), pdfgen.Integer(1000 / charAspect), pdfgen.Integer(1000)},
		"Ascent":      pdfgen.Integer(1000),
		"CapHeight":   pdfgen.Integer(1000),
		"Descent":     pdfgen.Integer(-1),
		"ItalicAngle": pdfgen.Integer(0),
		"StemV":       pdfgen.Integer(80),
		"FontFile2":   fontFile,
	})
	if err != nil {
		return pdfgen.Reference{}, fmt.Errorf("writing font descriptor: %w", err)
	}

	err = w.PutStream(fontFile, pdfgen.Dict{
		"Length1": pdfgen.Integer(len(glyphlessFont)),
	}, glyphlessFont)
	if err != nil {
		return pdfgen.Reference{}, fmt.Errorf("writing glyph program: %w", err)
	}

	return baseFont, nil
}

// identityCIDToGIDMap builds the raw two-byte-per-CID table covering the
// full 16-bit CID space: the entry 0x0001 repeated 65536 times, pointing
// every CID at the font's single invisible glyph. Glyph 0 stays reserved
// for notdef.
func identityCIDToGIDMap() []byte {
	return bytes.Repeat([]byte{0x00, 0x01}, 65536)
}
