// Package pxgutil provides higher-level helpers for working with PXG
// files: file summaries, file-based render/decode wrappers, and
// conversion of standard library images into PXG bytes.
//
// Example usage:
//
//	info, _ := pxgutil.GetFileInfo("sprite.pxg")
//	fmt.Printf("Size: %dx%d, Colors: %d\n", info.Width, info.Height, info.Colors)
//
//	svg, _ := pxgutil.RenderFile("sprite.pxg", false)
package pxgutil

import (
	"errors"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"

	"github.com/pxgfmt/go-pxg/pxg"
)

// ErrTooManyColors is returned by FromImage when an image uses more
// distinct colors than a PXG palette can hold.
var ErrTooManyColors = errors.New("pxgutil: image has more than 255 distinct colors")

// FileInfo provides a summary of a PXG file.
type FileInfo struct {
	Path          string
	Width         int
	Height        int
	Scale         int
	Colors        int
	BitsPerPixel  int
	HasBackground bool
	Compressed    bool
	FileSize      int64
}

// GetFileInfo returns summary information about a PXG file without
// decoding its pixel data.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := pxg.DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &FileInfo{
		Path:          path,
		Width:         h.Width,
		Height:        h.Height,
		Scale:         h.Scale,
		Colors:        h.NumColors,
		BitsPerPixel:  h.BitsPerPixel(),
		HasBackground: h.HasBackground,
		Compressed:    h.Compressed,
		FileSize:      stat.Size(),
	}, nil
}

// ReadFile decodes and validates the PXG file at path.
func ReadFile(path string) (*pxg.RenderContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pxg.Decode(data)
}

// RenderFile renders the PXG file at path to SVG text, as a document or
// a bare rectangle fragment.
func RenderFile(path string, fragment bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if fragment {
		return pxg.RenderFragment(data, true)
	}
	return pxg.RenderDocument(data, true)
}

// FromImageOptions controls FromImage conversion.
type FromImageOptions struct {
	// Scale is stored in the header verbatim; 0 selects auto-scaling at
	// render time.
	Scale int

	// MaxSize, when positive, downscales images whose larger dimension
	// exceeds it, using nearest-neighbor so no new colors are introduced.
	MaxSize int

	// Background, when set, stores the most frequent color as a
	// full-canvas background fill so the renderer can skip matching runs.
	Background bool

	// Compress stores the payload as a zlib stream.
	Compress bool
}

// FromImage quantizes img into a PXG palette plus index array and encodes
// it. Alpha is ignored; every distinct RGB value becomes one palette
// entry, so the image must use at most 255 distinct colors (after any
// MaxSize downscale).
func FromImage(img image.Image, opts *FromImageOptions) ([]byte, error) {
	if opts == nil {
		opts = &FromImageOptions{}
	}
	img = downscale(img, opts.MaxSize)

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("pxgutil: empty image")
	}
	if width > pxg.MaxDimension || height > pxg.MaxDimension {
		return nil, fmt.Errorf("pxgutil: image %dx%d exceeds %d per axis", width, height, pxg.MaxDimension)
	}

	indexOf := make(map[string]uint8)
	counts := make(map[string]int)
	var palette pxg.Palette
	pixels := make([]uint8, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			tok := fmt.Sprintf("%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
			idx, ok := indexOf[tok]
			if !ok {
				if len(palette) == pxg.MaxColors {
					return nil, ErrTooManyColors
				}
				idx = uint8(len(palette))
				indexOf[tok] = idx
				palette = append(palette, tok)
			}
			counts[tok]++
			pixels = append(pixels, idx)
		}
	}

	h := pxg.Header{
		Width:      width,
		Height:     height,
		Scale:      opts.Scale,
		Compressed: opts.Compress,
	}
	if opts.Background {
		h.HasBackground = true
		h.BackgroundIndex = int(indexOf[mostFrequent(counts, palette)])
	}
	return pxg.Encode(h, palette, pixels)
}

// downscale shrinks img so its larger dimension fits maxSize, preserving
// aspect ratio. Nearest-neighbor keeps the palette exact.
func downscale(img image.Image, maxSize int) image.Image {
	if maxSize <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}
	if w >= h {
		h = h * maxSize / w
		w = maxSize
	} else {
		w = w * maxSize / h
		h = maxSize
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// mostFrequent returns the palette token with the highest pixel count,
// breaking ties by palette order for determinism.
func mostFrequent(counts map[string]int, palette pxg.Palette) string {
	best := palette[0]
	for _, tok := range palette {
		if counts[tok] > counts[best] {
			best = tok
		}
	}
	return best
}
