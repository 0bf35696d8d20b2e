package sandwich

import (
	"math"
	"testing"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

func TestNewScale(t *testing.T) {
	s := NewScale(96, 96, 1.0)
	if s.X != 0.75 || s.Y != 0.75 {
		t.Fatalf("scale = %+v, want 0.75 on both axes", s)
	}
	s = NewScale(72, 72, 2.0)
	if s.X != 0.5 || s.Y != 0.5 {
		t.Fatalf("scale with image scale 2 = %+v, want 0.5", s)
	}
}

func TestQuadRoundTrip(t *testing.T) {
	bbox := layout.NewBBox(13, 29, 241, 83)
	scale := NewScale(96, 96, 1.0)
	const height = 600.0

	q := quadFromBBox(bbox).toPoints(scale, height)

	// Inverse-map the bottom-left (p4), top-left (p1) and bottom-right
	// (p2) corners back to pixel space.
	inv := func(x, y float64) (float64, float64) {
		return x / scale.X, height - y/scale.Y
	}
	const tol = 1e-9
	x, y := inv(q[6], q[7])
	if math.Abs(x-bbox.X1) > tol || math.Abs(y-bbox.Y2) > tol {
		t.Errorf("p4 round trip = (%v, %v), want (%v, %v)", x, y, bbox.X1, bbox.Y2)
	}
	x, y = inv(q[0], q[1])
	if math.Abs(x-bbox.X1) > tol || math.Abs(y-bbox.Y1) > tol {
		t.Errorf("p1 round trip = (%v, %v), want (%v, %v)", x, y, bbox.X1, bbox.Y1)
	}
	x, y = inv(q[4], q[5])
	if math.Abs(x-bbox.X2) > tol || math.Abs(y-bbox.Y2) > tol {
		t.Errorf("p2 round trip = (%v, %v), want (%v, %v)", x, y, bbox.X2, bbox.Y2)
	}
}

func TestRunFromWordScenario(t *testing.T) {
	// 200x100 image at 96 DPI: bbox [10,10,90,30] maps to a run with
	// origin (7.5, 52.5), font size 15, width 60, stretch 400 for the
	// two-character text "Hi".
	word := layout.Word{BBox: layout.NewBBox(10, 10, 90, 30), Text: "Hi", Score: 0.99}
	scale := NewScale(96, 96, 1.0)

	run, ok := runFromWord(word, scale, 100)
	if !ok {
		t.Fatalf("expected valid run")
	}
	if run.X != 7.5 || run.Y != 52.5 {
		t.Errorf("origin = (%v, %v), want (7.5, 52.5)", run.X, run.Y)
	}
	if run.Angle != 0 {
		t.Errorf("angle = %v, want exactly 0", run.Angle)
	}
	if run.FontSize != 15 {
		t.Errorf("font size = %v, want 15", run.FontSize)
	}
	if run.Stretch != 400 {
		t.Errorf("stretch = %v, want 400", run.Stretch)
	}
}

func TestRunAngleSnap(t *testing.T) {
	// An axis-aligned box always yields angle 0; the snap threshold also
	// covers quantization noise below 0.01 rad, which cannot arise from
	// an axis-aligned bbox, so verify the exact-zero contract instead.
	word := layout.Word{BBox: layout.NewBBox(5, 5, 105, 25), Text: "abc"}
	run, ok := runFromWord(word, NewScale(72, 72, 1.0), 50)
	if !ok {
		t.Fatalf("expected valid run")
	}
	if run.Angle != 0 {
		t.Errorf("angle = %v, want exactly 0", run.Angle)
	}
	if math.Signbit(run.Angle) {
		t.Errorf("angle is negative zero")
	}
}

func TestRunFromWordSkips(t *testing.T) {
	scale := NewScale(72, 72, 1.0)

	// Empty text.
	if _, ok := runFromWord(layout.Word{BBox: layout.NewBBox(0, 0, 10, 10)}, scale, 100); ok {
		t.Errorf("empty text must be skipped")
	}
	// Zero-width box: run width would be 0.
	if _, ok := runFromWord(layout.Word{BBox: layout.NewBBox(10, 0, 10, 10), Text: "x"}, scale, 100); ok {
		t.Errorf("zero-width box must be skipped")
	}
	// Zero-height box: font size would be 0.
	if _, ok := runFromWord(layout.Word{BBox: layout.NewBBox(0, 10, 10, 10), Text: "x"}, scale, 100); ok {
		t.Errorf("zero-height box must be skipped")
	}
}

func TestStretchUsesRuneCount(t *testing.T) {
	scale := NewScale(72, 72, 1.0)
	ascii := layout.Word{BBox: layout.NewBBox(0, 80, 40, 100), Text: "ab", Score: 1}
	cjk := layout.Word{BBox: layout.NewBBox(0, 80, 40, 100), Text: "你好", Score: 1}

	runASCII, ok := runFromWord(ascii, scale, 100)
	if !ok {
		t.Fatalf("ascii run invalid")
	}
	runCJK, ok := runFromWord(cjk, scale, 100)
	if !ok {
		t.Fatalf("cjk run invalid")
	}
	// Both words have two characters, so the stretch must match even
	// though the byte lengths differ.
	if runASCII.Stretch != runCJK.Stretch {
		t.Errorf("stretch %v != %v for equal character counts", runASCII.Stretch, runCJK.Stretch)
	}
}
