// Package pxg implements the PXG compact binary pixel-art format.
//
// A PXG file stores a small palette-indexed raster image at minimal byte
// cost: a 9-byte header, an RGB palette, and a bit-packed array of
// per-pixel palette indices. The package decodes that representation and
// re-encodes it as an exact-pixel SVG image by greedily merging horizontal
// runs of identically-colored pixels into rectangles.
//
// The renderer is deterministic: identical input bytes always produce
// byte-identical SVG output.
package pxg

import (
	"errors"
	"math/bits"
)

// Format limits and layout constants.
const (
	// Version is the PXG format version this package reads and writes.
	Version = 1

	// HeaderSize is the fixed size of a PXG header in bytes.
	HeaderSize = 9

	// MaxDimension is the largest accepted width or height. It bounds the
	// worst-case render output (one rectangle per pixel) so buffer sizing
	// stays predictable.
	MaxDimension = 1024

	// MaxColors is the largest accepted palette size.
	MaxColors = 255
)

// Header flag bits.
const (
	flagBackground = 1 << 0
	flagCompressed = 1 << 1
)

// Decode and validation errors.
var (
	// ErrMalformedHeader is returned when a byte stream is too short to
	// contain a header, or declares an unknown format version.
	ErrMalformedHeader = errors.New("pxg: malformed header")

	// ErrInvalidHeader is returned when a decoded header violates
	// structural bounds (zero dimensions, oversized canvas, empty palette,
	// background index past the palette).
	ErrInvalidHeader = errors.New("pxg: invalid header")

	// ErrTruncatedData is returned when the header implies more payload
	// bytes than are present.
	ErrTruncatedData = errors.New("pxg: truncated data")

	// ErrPaletteIndexOutOfRange is returned when a pixel references a
	// color index at or past the palette length.
	ErrPaletteIndexOutOfRange = errors.New("pxg: palette index out of range")
)

// Header holds the fixed-position structural metadata at the start of a
// PXG byte stream. It is immutable once decoded.
type Header struct {
	Version         int
	Width           int
	Height          int
	Scale           int // 0 means auto-compute, see EffectiveScale
	NumColors       int
	TotalPixels     int // always Width*Height for a decoded header
	HasBackground   bool
	BackgroundIndex int // valid only when HasBackground
	Compressed      bool
}

// Palette is the ordered list of distinct colors used by an image, as
// lowercase 6-hex-digit RGB tokens ("ff0000"). Pixel indices reference it
// by position.
type Palette []string

// RenderContext aggregates everything one render call needs: the decoded
// header, palette, and row-major pixel color indices. It is owned by a
// single caller and must not be shared across goroutines.
type RenderContext struct {
	Header  Header
	Palette Palette

	// Pixels holds one palette index per pixel in row-major order
	// (index = y*Width + x).
	Pixels []uint8

	// numText caches the decimal text of 0..max(Width,Height), built on
	// first render.
	numText []string
}

// EffectiveScale returns the display scale factor. An explicit header
// scale is used verbatim; scale 0 auto-computes 512/max(w,h)+1 so the
// larger dimension renders to at least ~512 display units.
func (h Header) EffectiveScale() int {
	if h.Scale != 0 {
		return h.Scale
	}
	m := h.Width
	if h.Height > m {
		m = h.Height
	}
	return 512/m + 1
}

// BitsPerPixel returns the packed size of one pixel index: the minimum
// bit count that can represent every palette index, at least 1.
func (h Header) BitsPerPixel() int {
	if h.NumColors <= 2 {
		return 1
	}
	return bits.Len(uint(h.NumColors - 1))
}

// pixelDataSize returns the byte length of the bit-packed pixel index
// array.
func (h Header) pixelDataSize() int {
	return (h.TotalPixels*h.BitsPerPixel() + 7) / 8
}

// paletteDataSize returns the byte length of the encoded palette.
func (h Header) paletteDataSize() int {
	return h.NumColors * 3
}
