package pxg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// rawPXG assembles an uncompressed PXG byte stream by hand so decode
// tests don't depend on the encoder.
func rawPXG(flags byte, width, height uint16, scale, colors, background byte, payload ...byte) []byte {
	data := []byte{
		Version, flags,
		byte(width), byte(width >> 8),
		byte(height), byte(height >> 8),
		scale, colors, background,
	}
	return append(data, payload...)
}

func TestDecodeHeader(t *testing.T) {
	data := rawPXG(flagBackground, 300, 2, 7, 5, 3)
	h, err := DecodeHeader(data)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	want := Header{
		Version: 1, Width: 300, Height: 2, Scale: 7,
		NumColors: 5, TotalPixels: 600,
		HasBackground: true, BackgroundIndex: 3,
	}
	if h != want {
		t.Errorf("header = %+v, want %+v", h, want)
	}
	if h.BitsPerPixel() != 3 {
		t.Errorf("BitsPerPixel = %d, want 3", h.BitsPerPixel())
	}
}

func TestDecodeHeaderShort(t *testing.T) {
	full := rawPXG(0, 2, 1, 1, 2, 0)
	for n := 0; n < HeaderSize; n++ {
		if _, err := DecodeHeader(full[:n]); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("DecodeHeader with %d bytes: err = %v, want ErrMalformedHeader", n, err)
		}
	}
}

func TestDecodeHeaderBadVersion(t *testing.T) {
	data := rawPXG(0, 2, 1, 1, 2, 0)
	data[0] = 2
	if _, err := DecodeHeader(data); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("err = %v, want ErrMalformedHeader", err)
	}
}

func TestDecodePalette(t *testing.T) {
	h := Header{NumColors: 2}
	pal, err := DecodePalette([]byte{0xff, 0x00, 0x00, 0x00, 0xff, 0x00}, h)
	if err != nil {
		t.Fatalf("DecodePalette: %v", err)
	}
	if len(pal) != 2 || pal[0] != "ff0000" || pal[1] != "00ff00" {
		t.Errorf("palette = %v, want [ff0000 00ff00]", pal)
	}

	if _, err := DecodePalette([]byte{0xff, 0x00}, h); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("short palette: err = %v, want ErrTruncatedData", err)
	}
}

func TestDecodePixelsBitWidths(t *testing.T) {
	tests := []struct {
		name   string
		colors int
		total  int
		data   []byte
		want   []uint8
	}{
		{"1bpp", 2, 2, []byte{0x40}, []uint8{0, 1}},
		{"1bpp single color", 1, 4, []byte{0x00}, []uint8{0, 0, 0, 0}},
		{"2bpp", 3, 4, []byte{0x18}, []uint8{0, 1, 2, 0}},
		{"3bpp", 5, 3, []byte{0x88, 0x80}, []uint8{4, 2, 1}},
		{"4bpp", 16, 2, []byte{0x0f}, []uint8{0, 15}},
		{"8bpp", 255, 3, []byte{0x00, 0x7f, 0xfe}, []uint8{0, 127, 254}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Header{NumColors: tt.colors, TotalPixels: tt.total}
			got, err := DecodePixels(tt.data, h)
			if err != nil {
				t.Fatalf("DecodePixels: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("pixels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodePixelsIndexOutOfRange(t *testing.T) {
	// 2 bpp allows index 3 but the palette only has 3 entries.
	h := Header{NumColors: 3, TotalPixels: 2}
	if _, err := DecodePixels([]byte{0x30}, h); !errors.Is(err, ErrPaletteIndexOutOfRange) {
		t.Errorf("err = %v, want ErrPaletteIndexOutOfRange", err)
	}
}

func TestDecodePixelsTruncated(t *testing.T) {
	h := Header{NumColors: 255, TotalPixels: 4}
	if _, err := DecodePixels([]byte{0x01, 0x02}, h); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("err = %v, want ErrTruncatedData", err)
	}
}

func TestDecode(t *testing.T) {
	data := rawPXG(0, 2, 1, 1, 2, 0,
		0xff, 0x00, 0x00, 0x00, 0xff, 0x00, // palette
		0x40, // pixels [0,1]
	)
	ctx, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ctx.Header.Width != 2 || ctx.Header.Height != 1 {
		t.Errorf("dimensions = %dx%d, want 2x1", ctx.Header.Width, ctx.Header.Height)
	}
	if !bytes.Equal(ctx.Pixels, []uint8{0, 1}) {
		t.Errorf("pixels = %v, want [0 1]", ctx.Pixels)
	}
	if ctx.Palette[0] != "ff0000" || ctx.Palette[1] != "00ff00" {
		t.Errorf("palette = %v", ctx.Palette)
	}
}

func TestDecodeCompressed(t *testing.T) {
	h := Header{Width: 4, Height: 4, Scale: 1, Compressed: true}
	pixels := []uint8{
		0, 0, 1, 1,
		0, 0, 1, 1,
		1, 1, 0, 0,
		1, 1, 0, 0,
	}
	data, err := Encode(h, Palette{"112233", "445566"}, pixels)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	ctx, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ctx.Header.Compressed {
		t.Error("decoded header lost the compressed flag")
	}
	if !bytes.Equal(ctx.Pixels, pixels) {
		t.Errorf("pixels = %v, want %v", ctx.Pixels, pixels)
	}
}

func TestDecodeCompressedGarbage(t *testing.T) {
	data := rawPXG(flagCompressed, 2, 1, 1, 2, 0, 0xde, 0xad, 0xbe, 0xef)
	if _, err := Decode(data); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("err = %v, want ErrTruncatedData", err)
	}
}

func TestDecodeCompressedOversizedPayload(t *testing.T) {
	// The 1x1 single-color header implies a 4-byte payload (3 palette
	// bytes + 1 pixel byte). A stream that inflates past that must be
	// rejected without materializing the excess, whether it is a stray
	// trailing byte or a highly compressible multi-megabyte expansion.
	tests := []struct {
		name    string
		padding int
	}{
		{"one extra byte", 1},
		{"zlib bomb", 8 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := append([]byte{0x10, 0x20, 0x30, 0x00}, make([]byte, tt.padding)...)
			var zbuf bytes.Buffer
			zw := zlib.NewWriter(&zbuf)
			if _, err := zw.Write(payload); err != nil {
				t.Fatal(err)
			}
			if err := zw.Close(); err != nil {
				t.Fatal(err)
			}
			data := rawPXG(flagCompressed, 1, 1, 1, 1, 0, zbuf.Bytes()...)
			if _, err := Decode(data); !errors.Is(err, ErrTruncatedData) {
				t.Errorf("err = %v, want ErrTruncatedData", err)
			}
		})
	}
}
