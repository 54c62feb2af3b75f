package pxg

import "testing"

// checkerboard is the worst case for run merging: one rectangle per pixel.
func checkerboardData(b *testing.B, size int) []byte {
	b.Helper()
	pixels := make([]uint8, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pixels[y*size+x] = uint8((x + y) % 2)
		}
	}
	data, err := Encode(Header{Width: size, Height: size, Scale: 1},
		Palette{"000000", "ffffff"}, pixels)
	if err != nil {
		b.Fatal(err)
	}
	return data
}

func BenchmarkRenderDocument(b *testing.B) {
	data := checkerboardData(b, 64)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RenderDocument(data, true); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderDocumentSolid(b *testing.B) {
	// Best case: whole rows merge into single rectangles.
	data, err := Encode(Header{Width: 64, Height: 64, Scale: 1},
		Palette{"336699"}, make([]uint8, 64*64))
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RenderDocument(data, true); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderFragmentUnsafe(b *testing.B) {
	data := checkerboardData(b, 64)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RenderFragment(data, false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	data := checkerboardData(b, 64)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
