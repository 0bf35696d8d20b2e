// Package sandwich synthesizes single-page PDF files that carry an OCR
// result as an invisible, precisely positioned, selectable text layer
// ("OCR sandwich"). The visible pixels of the scanned page are left to the
// caller; the documents produced here contain only the text layer, sized to
// match the source image so a downstream merge lines up exactly.
//
// The pipeline is: pixel-space word boxes from pkg/layout are mapped into
// PDF user space (72 points per inch, origin bottom-left), a rotation,
// font size and horizontal stretch are derived so the invisible glyph run
// covers each word's box, and the resulting instruction stream is written
// to a one-page document together with an embedded glyphless CID font.
//
// Main Functions:
//
// - GeneratePDF: image + normalized blocks -> single-page sandwich PDF
// - GenerateTextContent: blocks -> content stream instructions
package sandwich
