package pxg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/pxgfmt/go-pxg/internal/bitpack"
)

// DecodeHeader decodes the 9-byte header at the start of data. It fails
// with ErrMalformedHeader if data is too short or declares an unknown
// version; it performs no semantic validation (see Header.Validate).
func DecodeHeader(data []byte) (Header, error) {
	r := bitpack.NewReader(data)
	version, err := r.ReadByte()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedHeader, version)
	}
	flags, err := r.ReadByte()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	width, err := r.ReadUint16()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	height, err := r.ReadUint16()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	scale, err := r.ReadByte()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	colors, err := r.ReadByte()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	background, err := r.ReadByte()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	h := Header{
		Version:         int(version),
		Width:           int(width),
		Height:          int(height),
		Scale:           int(scale),
		NumColors:       int(colors),
		BackgroundIndex: int(background),
		HasBackground:   flags&flagBackground != 0,
		Compressed:      flags&flagCompressed != 0,
	}
	h.TotalPixels = h.Width * h.Height
	return h, nil
}

// DecodePalette decodes the palette from payload, the (decompressed)
// bytes following the header. Each entry becomes a lowercase 6-hex-digit
// RGB token.
func DecodePalette(payload []byte, h Header) (Palette, error) {
	need := h.paletteDataSize()
	raw, err := bitpack.NewReader(payload).ReadBytes(need)
	if err != nil {
		return nil, fmt.Errorf("%w: palette needs %d bytes, have %d", ErrTruncatedData, need, len(payload))
	}
	pal := make(Palette, h.NumColors)
	for i := range pal {
		o := i * 3
		pal[i] = colorToken(raw[o], raw[o+1], raw[o+2])
	}
	return pal, nil
}

// DecodePixels decodes the bit-packed pixel index array from data, the
// (decompressed) bytes following the palette. It returns exactly
// h.TotalPixels entries and fails with ErrPaletteIndexOutOfRange if any
// unpacked index is not a valid palette index.
func DecodePixels(data []byte, h Header) ([]uint8, error) {
	pixels, err := unpackPixels(data, h)
	if err != nil {
		return nil, err
	}
	for i, v := range pixels {
		if int(v) >= h.NumColors {
			return nil, fmt.Errorf("%w: pixel %d has index %d, palette has %d colors",
				ErrPaletteIndexOutOfRange, i, v, h.NumColors)
		}
	}
	return pixels, nil
}

// unpackPixels expands the bit stream without checking index bounds.
func unpackPixels(data []byte, h Header) ([]uint8, error) {
	need := h.pixelDataSize()
	if len(data) < need {
		return nil, fmt.Errorf("%w: pixel data needs %d bytes, have %d", ErrTruncatedData, need, len(data))
	}
	bpp := uint(h.BitsPerPixel())
	r := bitpack.NewReader(data)
	pixels := make([]uint8, h.TotalPixels)
	for i := range pixels {
		v, err := r.ReadBits(bpp)
		if err != nil {
			return nil, fmt.Errorf("%w: pixel %d: %v", ErrTruncatedData, i, err)
		}
		pixels[i] = v
	}
	return pixels, nil
}

// Decode fully decodes and validates a PXG byte stream, returning
// structures ready to render. Callers that only need the SVG output can
// use RenderDocument or RenderFragment instead.
func Decode(data []byte) (*RenderContext, error) {
	return decode(data, true)
}

func decode(data []byte, validate bool) (*RenderContext, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if err := ValidateDataLength(h, data); err != nil {
			return nil, err
		}
	}
	payload, err := payloadBytes(data, h)
	if err != nil {
		return nil, err
	}
	pal, err := DecodePalette(payload, h)
	if err != nil {
		return nil, err
	}
	var pixels []uint8
	if validate {
		pixels, err = DecodePixels(payload[h.paletteDataSize():], h)
	} else {
		pixels, err = unpackPixels(payload[h.paletteDataSize():], h)
	}
	if err != nil {
		return nil, err
	}
	return &RenderContext{Header: h, Palette: pal, Pixels: pixels}, nil
}

// payloadBytes returns the palette+pixel bytes after the header, inflating
// the zlib stream for compressed files.
func payloadBytes(data []byte, h Header) ([]byte, error) {
	raw := data[HeaderSize:]
	if !h.Compressed {
		return raw, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: bad zlib stream: %v", ErrTruncatedData, err)
	}
	defer zr.Close()
	// The header pins the exact payload size; inflation past it means a
	// corrupt or hostile stream, so reading stops one byte beyond.
	need := h.paletteDataSize() + h.pixelDataSize()
	payload, err := io.ReadAll(io.LimitReader(zr, int64(need)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrTruncatedData, err)
	}
	if len(payload) > need {
		return nil, fmt.Errorf("%w: inflated payload exceeds the %d bytes the header implies", ErrTruncatedData, need)
	}
	return payload, nil
}

const hexDigits = "0123456789abcdef"

// colorToken formats an RGB triple as a lowercase 6-hex-digit token.
func colorToken(r, g, b byte) string {
	return string([]byte{
		hexDigits[r>>4], hexDigits[r&0x0f],
		hexDigits[g>>4], hexDigits[g&0x0f],
		hexDigits[b>>4], hexDigits[b&0x0f],
	})
}
