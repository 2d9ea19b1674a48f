package stegimage

import "testing"

func TestNewImageIsZeroed(t *testing.T) {
	img := New(4, 3)
	if img.Width != 4 || img.Height != 3 {
		t.Fatalf("unexpected dimensions: %+v", img)
	}
	if img.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", img.Len())
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if p := img.At(x, y); p != (Pixel{}) {
				t.Fatalf("At(%d,%d) = %+v, want zero value", x, y, p)
			}
		}
	}
}

func TestSetAtRowMajor(t *testing.T) {
	img := New(3, 2)
	p := Pixel{R: 1, G: 2, B: 3, A: 4}
	img.Set(2, 1, p)
	if got := img.At(2, 1); got != p {
		t.Fatalf("At(2,1) = %+v, want %+v", got, p)
	}
	// row-major: pixel (2,1) is at flat index 1*3+2 = 5
	if img.Pix[5] != p {
		t.Fatalf("expected row-major layout, got %+v at index 5", img.Pix[5])
	}
}
