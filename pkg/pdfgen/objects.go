// Package pdfgen implements the small subset of PDF file synthesis needed to
// produce single-page documents: the basic object types with their file
// representation, and a writer that assembles indirect objects into a valid
// PDF with a cross-reference table and trailer.
//
// Object graphs with forward references are built in two phases: allocate
// references up front with Writer.Alloc, then populate them with Writer.Put
// or Writer.PutStream once the dependent objects exist.
package pdfgen

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Object is a value with a PDF file representation.
type Object interface {
	// PDF writes the file representation of the object to w.
	PDF(w io.Writer) error
}

// Boolean represents a PDF boolean.
type Boolean bool

// PDF implements the Object interface.
func (x Boolean) PDF(w io.Writer) error {
	s := "false"
	if x {
		s = "true"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Integer represents a PDF integer.
type Integer int64

// PDF implements the Object interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a PDF real number.
type Real float64

// PDF implements the Object interface.
func (x Real) PDF(w io.Writer) error {
	v := float64(x)
	if v == 0 {
		// Normalize negative zero.
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += "."
	}
	_, err := io.WriteString(w, s)
	return err
}

// Name represents a PDF name object, without the leading slash.
type Name string

// PDF implements the Object interface. Characters outside the printable
// ASCII range and PDF delimiters are written in #xx form.
func (x Name) PDF(w io.Writer) error {
	var b strings.Builder
	b.WriteByte('/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			fmt.Fprintf(&b, "#%02x", c)
		} else {
			b.WriteByte(c)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// String represents a PDF string. The byte content is written verbatim; the
// character encoding is determined by context.
type String []byte

// PDF implements the Object interface. Content that is mostly binary is
// written as a hex string, otherwise as a literal string with the special
// characters escaped.
func (x String) PDF(w io.Writer) error {
	binary := 0
	for _, c := range x {
		if c < 32 || c > 126 {
			binary++
		}
	}
	if 3*binary > len(x) {
		_, err := fmt.Fprintf(w, "<%X>", []byte(x))
		return err
	}

	var b strings.Builder
	b.WriteByte('(')
	for _, c := range x {
		switch c {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 32 || c > 126 {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte(')')
	_, err := io.WriteString(w, b.String())
	return err
}

// HexString represents a PDF string that is always written in <...> hex
// form, e.g. UTF-16BE encoded text shown by a TJ operator.
type HexString []byte

// PDF implements the Object interface.
func (x HexString) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "<%X>", []byte(x))
	return err
}

// Array represents a PDF array.
type Array []Object

// PDF implements the Object interface.
func (x Array) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, obj := range x {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if err := writeObject(w, obj); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// Dict represents a PDF dictionary. Keys are written in sorted order so the
// output is deterministic.
type Dict map[Name]Object

// PDF implements the Object interface.
func (x Dict) PDF(w io.Writer) error {
	keys := make([]Name, 0, len(x))
	for k, v := range x {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := k.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := writeObject(w, x[k]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n>>")
	return err
}

// Reference identifies an indirect object by number and generation.
type Reference struct {
	Number     int
	Generation int
}

// PDF implements the Object interface.
func (x Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", x.Number, x.Generation)
	return err
}

func writeObject(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return obj.PDF(w)
}
