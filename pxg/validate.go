package pxg

import "fmt"

// Validate checks the header against the format's structural bounds.
// A decoded header that passes Validate is safe to feed to the render
// loop, which performs no defensive checks of its own.
func (h Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: version %d", ErrInvalidHeader, h.Version)
	}
	if h.Width < 1 || h.Width > MaxDimension {
		return fmt.Errorf("%w: width %d outside 1-%d", ErrInvalidHeader, h.Width, MaxDimension)
	}
	if h.Height < 1 || h.Height > MaxDimension {
		return fmt.Errorf("%w: height %d outside 1-%d", ErrInvalidHeader, h.Height, MaxDimension)
	}
	if h.TotalPixels != h.Width*h.Height {
		return fmt.Errorf("%w: total pixels %d, want %d", ErrInvalidHeader, h.TotalPixels, h.Width*h.Height)
	}
	if h.Scale < 0 || h.Scale > 255 {
		return fmt.Errorf("%w: scale %d outside 0-255", ErrInvalidHeader, h.Scale)
	}
	if h.NumColors < 1 || h.NumColors > MaxColors {
		return fmt.Errorf("%w: %d colors outside 1-%d", ErrInvalidHeader, h.NumColors, MaxColors)
	}
	if h.HasBackground && (h.BackgroundIndex < 0 || h.BackgroundIndex >= h.NumColors) {
		return fmt.Errorf("%w: background index %d, palette has %d colors",
			ErrInvalidHeader, h.BackgroundIndex, h.NumColors)
	}
	return nil
}

// ValidateDataLength checks that data carries at least as many payload
// bytes as the header declares. For compressed files only the presence of
// a payload can be checked up front; the exact length is enforced after
// inflation by the decode path.
func ValidateDataLength(h Header, data []byte) error {
	if h.Compressed {
		if len(data) <= HeaderSize {
			return fmt.Errorf("%w: empty compressed payload", ErrTruncatedData)
		}
		return nil
	}
	need := HeaderSize + h.paletteDataSize() + h.pixelDataSize()
	if len(data) < need {
		return fmt.Errorf("%w: %d bytes, header implies %d", ErrTruncatedData, len(data), need)
	}
	return nil
}

// IsValidHeader reports whether data begins with a decodable,
// structurally valid header.
func IsValidHeader(data []byte) bool {
	h, err := DecodeHeader(data)
	if err != nil {
		return false
	}
	return h.Validate() == nil
}

// IsValid reports whether data is a fully decodable PXG file: valid
// header, complete payload, and every pixel index inside the palette.
func IsValid(data []byte) bool {
	_, err := Decode(data)
	return err == nil
}
