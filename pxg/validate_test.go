package pxg

import (
	"errors"
	"testing"
)

func validHeader() Header {
	return Header{
		Version: 1, Width: 4, Height: 2, Scale: 1,
		NumColors: 2, TotalPixels: 8,
	}
}

func TestValidate(t *testing.T) {
	if err := validHeader().Validate(); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Header)
	}{
		{"zero width", func(h *Header) { h.Width = 0 }},
		{"zero height", func(h *Header) { h.Height = 0 }},
		{"width too large", func(h *Header) { h.Width = MaxDimension + 1 }},
		{"height too large", func(h *Header) { h.Height = MaxDimension + 1 }},
		{"bad version", func(h *Header) { h.Version = 0 }},
		{"scale too large", func(h *Header) { h.Scale = 256 }},
		{"zero colors", func(h *Header) { h.NumColors = 0 }},
		{"too many colors", func(h *Header) { h.NumColors = MaxColors + 1 }},
		{"total pixels mismatch", func(h *Header) { h.TotalPixels = 9 }},
		{"background index past palette", func(h *Header) {
			h.HasBackground = true
			h.BackgroundIndex = 2
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeader()
			tt.mutate(&h)
			if err := h.Validate(); !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("err = %v, want ErrInvalidHeader", err)
			}
		})
	}
}

func TestValidateBackgroundIndexInRange(t *testing.T) {
	h := validHeader()
	h.HasBackground = true
	h.BackgroundIndex = 1
	if err := h.Validate(); err != nil {
		t.Errorf("background index 1 of 2 colors rejected: %v", err)
	}
}

func TestValidateDataLength(t *testing.T) {
	// 2 colors, 2x1: 6 palette bytes + 1 pixel byte after the header.
	data := rawPXG(0, 2, 1, 1, 2, 0,
		0xff, 0x00, 0x00, 0x00, 0xff, 0x00, 0x40)
	h, err := DecodeHeader(data)
	if err != nil {
		t.Fatal(err)
	}

	if err := ValidateDataLength(h, data); err != nil {
		t.Errorf("exact length rejected: %v", err)
	}
	if err := ValidateDataLength(h, append(data, 0x00)); err != nil {
		t.Errorf("trailing bytes rejected: %v", err)
	}
	if err := ValidateDataLength(h, data[:len(data)-1]); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("truncated: err = %v, want ErrTruncatedData", err)
	}
}

func TestValidateDataLengthCompressed(t *testing.T) {
	h := validHeader()
	h.Compressed = true
	if err := ValidateDataLength(h, make([]byte, HeaderSize)); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("empty compressed payload: err = %v, want ErrTruncatedData", err)
	}
	if err := ValidateDataLength(h, make([]byte, HeaderSize+1)); err != nil {
		t.Errorf("non-empty compressed payload rejected: %v", err)
	}
}

func TestIsValid(t *testing.T) {
	data := rawPXG(0, 2, 1, 1, 2, 0,
		0xff, 0x00, 0x00, 0x00, 0xff, 0x00, 0x40)
	if !IsValid(data) {
		t.Error("IsValid = false for a valid file")
	}
	if !IsValidHeader(data) {
		t.Error("IsValidHeader = false for a valid file")
	}

	if IsValid([]byte{0x01, 0x02}) {
		t.Error("IsValid = true for a short stream")
	}
	if IsValidHeader([]byte{0x01, 0x02}) {
		t.Error("IsValidHeader = true for a short stream")
	}

	bad := rawPXG(0, 0, 1, 1, 2, 0)
	if IsValid(bad) {
		t.Error("IsValid = true for zero width")
	}
	if IsValidHeader(bad) {
		t.Error("IsValidHeader = true for zero width")
	}

	truncated := data[:len(data)-1]
	if IsValid(truncated) {
		t.Error("IsValid = true for truncated data")
	}
	if !IsValidHeader(truncated) {
		t.Error("IsValidHeader = false, header itself is intact")
	}
}
