package pxg

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/pxgfmt/go-pxg/internal/bitpack"
)

// Encode builds a PXG byte stream from a header, palette, and row-major
// pixel index array. Width, Height, Scale, HasBackground, BackgroundIndex
// and Compressed are taken from h; Version, NumColors and TotalPixels are
// derived. Palette entries must be 6-hex-digit RGB tokens.
func Encode(h Header, palette Palette, pixels []uint8) ([]byte, error) {
	h.Version = Version
	h.NumColors = len(palette)
	h.TotalPixels = h.Width * h.Height
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(pixels) != h.TotalPixels {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d canvas", ErrInvalidHeader, len(pixels), h.Width, h.Height)
	}

	payload := bitpack.NewBufferWriter(h.paletteDataSize() + h.pixelDataSize())
	for _, tok := range palette {
		rgb, err := parseColorToken(tok)
		if err != nil {
			return nil, err
		}
		payload.WriteBytes(rgb)
	}
	bpp := uint(h.BitsPerPixel())
	for i, v := range pixels {
		if int(v) >= h.NumColors {
			return nil, fmt.Errorf("%w: pixel %d has index %d, palette has %d colors",
				ErrPaletteIndexOutOfRange, i, v, h.NumColors)
		}
		payload.WriteBits(v, bpp)
	}
	payload.AlignByte()

	body := payload.Bytes()
	if h.Compressed {
		var zbuf bytes.Buffer
		zw := zlib.NewWriter(&zbuf)
		if _, err := zw.Write(body); err != nil {
			return nil, fmt.Errorf("pxg: zlib: %v", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("pxg: zlib: %v", err)
		}
		body = zbuf.Bytes()
	}

	out := bitpack.NewBufferWriter(HeaderSize + len(body))
	out.WriteByte(Version)
	var flags byte
	if h.HasBackground {
		flags |= flagBackground
	}
	if h.Compressed {
		flags |= flagCompressed
	}
	out.WriteByte(flags)
	out.WriteUint16(uint16(h.Width))
	out.WriteUint16(uint16(h.Height))
	out.WriteByte(byte(h.Scale))
	out.WriteByte(byte(h.NumColors))
	out.WriteByte(byte(h.BackgroundIndex))
	out.WriteBytes(body)
	return out.Bytes(), nil
}

// parseColorToken parses a 6-hex-digit RGB token into its three bytes.
func parseColorToken(tok string) ([]byte, error) {
	if len(tok) != 6 {
		return nil, fmt.Errorf("pxg: invalid palette color %q", tok)
	}
	rgb, err := hex.DecodeString(tok)
	if err != nil {
		return nil, fmt.Errorf("pxg: invalid palette color %q", tok)
	}
	return rgb, nil
}
