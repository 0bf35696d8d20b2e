package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func testBlocks() []layout.Block {
	return []layout.Block{{
		Label: "text",
		BBox:  layout.NewBBox(10, 10, 190, 40),
		Words: []layout.Word{
			{BBox: layout.NewBBox(10, 10, 90, 30), Text: "Hello", Score: 0.98},
			{BBox: layout.NewBBox(100, 10, 190, 30), Text: "world", Score: 0.95},
		},
	}}
}

func TestAssemble(t *testing.T) {
	data, err := Assemble(testImage(t, 200, 100), testBlocks(), DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF header")
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Errorf("output missing EOF marker")
	}
}

func TestAssembleDebug(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	data, err := Assemble(testImage(t, 200, 100), testBlocks(), cfg)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestAssembleNoWords(t *testing.T) {
	data, err := Assemble(testImage(t, 50, 50), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF header")
	}
}

func TestAssembleBadImage(t *testing.T) {
	if _, err := Assemble([]byte("not an image"), testBlocks(), DefaultConfig()); err == nil {
		t.Fatal("expected error for undecodable image")
	}
}
