package pdfgen

import (
	"fmt"
	"io"
	"os"
)

// Writer assembles a PDF file from indirect objects. References may be
// allocated before the objects they point to exist, so object graphs with
// forward references (fonts, page trees) can be built in two phases.
type Writer struct {
	w       *offsetWriter
	xref    map[int]int64
	nextNum int
	closed  bool
}

// NewWriter prepares a PDF file for writing and emits the file header.
func NewWriter(w io.Writer) (*Writer, error) {
	pw := &Writer{
		w:       &offsetWriter{w: w},
		xref:    make(map[int]int64),
		nextNum: 1,
	}
	if _, err := fmt.Fprintf(pw.w, "%%PDF-1.5\n%%\xe2\xe3\xcf\xd3\n"); err != nil {
		return nil, err
	}
	return pw, nil
}

// Create creates the named file and prepares it for PDF output. Close must
// be called to write the trailer and close the underlying file.
func Create(name string) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return NewWriter(fd)
}

// Alloc reserves an object number for an indirect object that will be
// written later with Put or PutStream.
func (pw *Writer) Alloc() Reference {
	ref := Reference{Number: pw.nextNum}
	pw.nextNum++
	return ref
}

// Put writes obj as the indirect object identified by ref. Writing the same
// reference twice is an error.
func (pw *Writer) Put(ref Reference, obj Object) error {
	if _, seen := pw.xref[ref.Number]; seen {
		return fmt.Errorf("object %d already written", ref.Number)
	}
	pw.xref[ref.Number] = pw.w.pos
	if _, err := fmt.Fprintf(pw.w, "%d %d obj\n", ref.Number, ref.Generation); err != nil {
		return err
	}
	if err := writeObject(pw.w, obj); err != nil {
		return err
	}
	_, err := io.WriteString(pw.w, "\nendobj\n")
	return err
}

// PutStream writes a stream object with the given dictionary and content.
// The Length entry is filled in from the content; any Length already present
// in dict is overridden.
func (pw *Writer) PutStream(ref Reference, dict Dict, content []byte) error {
	if _, seen := pw.xref[ref.Number]; seen {
		return fmt.Errorf("object %d already written", ref.Number)
	}
	if dict == nil {
		dict = Dict{}
	}
	dict["Length"] = Integer(len(content))

	pw.xref[ref.Number] = pw.w.pos
	if _, err := fmt.Fprintf(pw.w, "%d %d obj\n", ref.Number, ref.Generation); err != nil {
		return err
	}
	if err := dict.PDF(pw.w); err != nil {
		return err
	}
	if _, err := io.WriteString(pw.w, "\nstream\n"); err != nil {
		return err
	}
	if _, err := pw.w.Write(content); err != nil {
		return err
	}
	_, err := io.WriteString(pw.w, "\nendstream\nendobj\n")
	return err
}

// Close writes the cross-reference table and trailer. If the underlying
// writer is an io.Closer (e.g. a file from Create) it is closed as well.
func (pw *Writer) Close(catalog Reference) error {
	if pw.closed {
		return fmt.Errorf("writer already closed")
	}
	pw.closed = true

	if _, written := pw.xref[catalog.Number]; !written {
		return fmt.Errorf("catalog object %d was never written", catalog.Number)
	}

	xrefPos := pw.w.pos
	if _, err := fmt.Fprintf(pw.w, "xref\n0 %d\n", pw.nextNum); err != nil {
		return err
	}
	if _, err := io.WriteString(pw.w, "0000000000 65535 f \n"); err != nil {
		return err
	}
	for n := 1; n < pw.nextNum; n++ {
		pos, written := pw.xref[n]
		if !written {
			// Allocated but never populated: mark as free so readers
			// resolve it to null.
			if _, err := io.WriteString(pw.w, "0000000000 65535 f \n"); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(pw.w, "%010d %05d n \n", pos, 0); err != nil {
			return err
		}
	}

	trailer := Dict{
		"Size": Integer(pw.nextNum),
		"Root": catalog,
	}
	if _, err := io.WriteString(pw.w, "trailer\n"); err != nil {
		return err
	}
	if err := trailer.PDF(pw.w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(pw.w, "\nstartxref\n%d\n%%%%EOF\n", xrefPos); err != nil {
		return err
	}

	if c, ok := pw.w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// offsetWriter tracks the byte offset of everything written, which the
// cross-reference table needs.
type offsetWriter struct {
	w   io.Writer
	pos int64
}

func (w *offsetWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
