package sandwich

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
)

// ImageInfo describes a source page image: pixel dimensions and the
// declared resolution. Images without resolution metadata report the PDF
// default of 72 DPI on both axes.
type ImageInfo struct {
	Width  int
	Height int
	DPIX   float64
	DPIY   float64
}

// ProbeImage reads pixel dimensions and DPI from an image file without
// decoding the pixel data. The standard image package exposes no
// resolution metadata, so the PNG pHYs chunk and the JPEG JFIF header are
// read directly.
func ProbeImage(path string) (ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("reading image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decoding image header: %w", err)
	}

	info := ImageInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		DPIX:   pointsPerInch,
		DPIY:   pointsPerInch,
	}
	if x, y, ok := pngDPI(data); ok {
		info.DPIX, info.DPIY = x, y
	} else if x, y, ok := jpegDPI(data); ok {
		info.DPIX, info.DPIY = x, y
	}
	return info, nil
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngDPI extracts the resolution from a PNG pHYs chunk, if one is present
// with the pixels-per-meter unit.
func pngDPI(data []byte) (x, y float64, ok bool) {
	if !bytes.HasPrefix(data, pngMagic) {
		return 0, 0, false
	}
	pos := len(pngMagic)
	for pos+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		tag := string(data[pos+4 : pos+8])
		if tag == "pHYs" && length == 9 && pos+8+9 <= len(data) {
			ppmX := binary.BigEndian.Uint32(data[pos+8:])
			ppmY := binary.BigEndian.Uint32(data[pos+12:])
			unit := data[pos+16]
			if unit == 1 && ppmX > 0 && ppmY > 0 {
				// Meters to inches, rounded the way imaging libraries
				// report DPI.
				return math.Round(float64(ppmX) * 0.0254), math.Round(float64(ppmY) * 0.0254), true
			}
			return 0, 0, false
		}
		if tag == "IDAT" || tag == "IEND" {
			return 0, 0, false
		}
		pos += 12 + length
	}
	return 0, 0, false
}

// jpegDPI extracts the density from a JPEG JFIF APP0 segment when it is
// declared in dots per inch or dots per centimeter.
func jpegDPI(data []byte) (x, y float64, ok bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0, false
	}
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 0, 0, false
		}
		marker := data[pos+1]
		if marker == 0xD8 || (marker >= 0xD0 && marker <= 0xD9) {
			pos += 2
			continue
		}
		length := int(binary.BigEndian.Uint16(data[pos+2:]))
		if marker == 0xE0 && length >= 16 && pos+4+length-2 <= len(data) {
			seg := data[pos+4 : pos+2+length]
			if bytes.HasPrefix(seg, []byte("JFIF\x00")) {
				unit := seg[7]
				dx := float64(binary.BigEndian.Uint16(seg[8:]))
				dy := float64(binary.BigEndian.Uint16(seg[10:]))
				switch {
				case unit == 1 && dx > 0 && dy > 0:
					return dx, dy, true
				case unit == 2 && dx > 0 && dy > 0:
					return math.Round(dx * 2.54), math.Round(dy * 2.54), true
				}
			}
			return 0, 0, false
		}
		if marker == 0xDA {
			// Start of scan, no metadata past this point.
			return 0, 0, false
		}
		pos += 2 + length
	}
	return 0, 0, false
}
