package sandwich

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/pdfgen"
)

// Instruction is one content stream instruction: an operator preceded by
// its operand list.
type Instruction struct {
	Operands []pdfgen.Object
	Operator string
}

// ContentStream is a strictly append-only instruction accumulator. Each
// method appends exactly one instruction and returns the accumulator, so
// calls chain fluently. Nothing re-validates or reorders history; the
// emitted sequence is exactly the call sequence.
type ContentStream struct {
	instructions []Instruction
}

// NewContentStream returns an empty accumulator.
func NewContentStream() *ContentStream {
	return &ContentStream{}
}

func (cs *ContentStream) add(op string, operands ...pdfgen.Object) *ContentStream {
	cs.instructions = append(cs.instructions, Instruction{Operands: operands, Operator: op})
	return cs
}

// SaveState appends a q instruction, saving the graphics state.
func (cs *ContentStream) SaveState() *ContentStream {
	return cs.add("q")
}

// RestoreState appends a Q instruction, restoring the graphics state.
func (cs *ContentStream) RestoreState() *ContentStream {
	return cs.add("Q")
}

// Concat appends a cm instruction, concatenating a matrix onto the current
// transformation matrix.
func (cs *ContentStream) Concat(a, b, c, d, e, f float64) *ContentStream {
	return cs.add("cm",
		pdfgen.Real(a), pdfgen.Real(b), pdfgen.Real(c),
		pdfgen.Real(d), pdfgen.Real(e), pdfgen.Real(f))
}

// BeginText appends a BT instruction, opening a text object.
func (cs *ContentStream) BeginText() *ContentStream {
	return cs.add("BT")
}

// EndText appends an ET instruction, closing the text object.
func (cs *ContentStream) EndText() *ContentStream {
	return cs.add("ET")
}

// BeginMarkedContent appends a BDC instruction with the given tag and
// marked-content id.
func (cs *ContentStream) BeginMarkedContent(tag string, mcid int) *ContentStream {
	return cs.add("BDC",
		pdfgen.Name(tag),
		pdfgen.Dict{"MCID": pdfgen.Integer(mcid)})
}

// EndMarkedContent appends an EMC instruction.
func (cs *ContentStream) EndMarkedContent() *ContentStream {
	return cs.add("EMC")
}

// SetFont appends a Tf instruction selecting the named font resource at
// the given size.
func (cs *ContentStream) SetFont(name string, size float64) *ContentStream {
	return cs.add("Tf", pdfgen.Name(name), pdfgen.Real(size))
}

// SetTextMatrix appends a Tm instruction.
func (cs *ContentStream) SetTextMatrix(a, b, c, d, e, f float64) *ContentStream {
	return cs.add("Tm",
		pdfgen.Real(a), pdfgen.Real(b), pdfgen.Real(c),
		pdfgen.Real(d), pdfgen.Real(e), pdfgen.Real(f))
}

// SetRenderMode appends a Tr instruction setting the text rendering mode.
func (cs *ContentStream) SetRenderMode(mode int) *ContentStream {
	return cs.add("Tr", pdfgen.Integer(mode))
}

// SetHorizontalScale appends a Tz instruction setting the horizontal
// scaling percentage.
func (cs *ContentStream) SetHorizontalScale(scale float64) *ContentStream {
	return cs.add("Tz", pdfgen.Real(scale))
}

// ShowText appends a TJ instruction showing text, encoded as UTF-16BE so
// the identity ToUnicode map recovers it unchanged on copy/paste.
func (cs *ContentStream) ShowText(text string) *ContentStream {
	encoded := encodeUTF16BE(text)
	return cs.add("TJ", pdfgen.Array{pdfgen.HexString(encoded)})
}

// Rect appends a re instruction defining a rectangle path.
func (cs *ContentStream) Rect(x, y, w, h float64) *ContentStream {
	return cs.add("re",
		pdfgen.Real(x), pdfgen.Real(y), pdfgen.Real(w), pdfgen.Real(h))
}

// SetStrokeColor appends an RG instruction setting the RGB stroke color.
func (cs *ContentStream) SetStrokeColor(r, g, b float64) *ContentStream {
	return cs.add("RG", pdfgen.Real(r), pdfgen.Real(g), pdfgen.Real(b))
}

// CloseAndStroke appends an s instruction, closing and stroking the path.
func (cs *ContentStream) CloseAndStroke() *ContentStream {
	return cs.add("s")
}

// Build returns the accumulated instructions verbatim, with no
// optimization pass.
func (cs *ContentStream) Build() []Instruction {
	return cs.instructions
}

// Bytes serializes the accumulated instructions into content stream data,
// one instruction per line.
func (cs *ContentStream) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, in := range cs.instructions {
		for _, op := range in.Operands {
			if err := op.PDF(&buf); err != nil {
				return nil, err
			}
			buf.WriteByte(' ')
		}
		buf.WriteString(in.Operator)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// encodeUTF16BE converts text to UTF-16BE code units without a byte order
// mark.
func encodeUTF16BE(text string) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		// The UTF-16 encoder replaces invalid runes rather than failing;
		// an error here means the input was not valid UTF-8 at all.
		return nil
	}
	return out
}
