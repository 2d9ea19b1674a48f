// Package stegimage holds the pixel matrix that the filter engine
// produces and the steganographic codec consumes. It carries no
// knowledge of the container format or the compression stream; it is
// pure value data, the same shape fumin-png hands back from
// DecodeRow, generalized from a row-at-a-time stream into the
// single-buffer matrix spec.md requires instead of a jagged array of
// row pointers.
package stegimage

// Pixel is one truecolor-with-alpha sample: four unsigned 8-bit
// channels in (R, G, B, A) order. Pixels carry no reference to the
// image they came from.
type Pixel struct {
	R, G, B, A byte
}

// Image is a dense, row-major matrix of pixels backed by a single
// contiguous slice, avoiding the row-pointer lifetime issues of a
// jagged [][]Pixel.
type Image struct {
	Width, Height int
	Pix           []Pixel
}

// New allocates an Image of the given dimensions with zeroed pixels.
func New(width, height int) Image {
	return Image{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// At returns the pixel at (x, y). It panics if the flat index
// y*Width+x falls outside Pix; x is not checked against Width on its
// own, so an x past the row end reads a pixel of a later row.
func (img Image) At(x, y int) Pixel {
	return img.Pix[y*img.Width+x]
}

// Set writes the pixel at (x, y).
func (img Image) Set(x, y int, p Pixel) {
	img.Pix[y*img.Width+x] = p
}

// Len returns the total pixel count, width*height.
func (img Image) Len() int {
	return img.Width * img.Height
}
