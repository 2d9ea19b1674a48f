package pngcodec

import (
	"io"

	"github.com/callmeFilip/Steganography/internal/crc32check"
	"github.com/callmeFilip/Steganography/internal/endian"
	"github.com/callmeFilip/Steganography/internal/stegerr"
)

// Writer serializes the signature and chunks of one output container.
// Like Reader, all state is instance-owned.
type Writer struct {
	w io.Writer
}

// Create returns a Writer that has not yet written anything. The
// signature is emitted by the first call to WriteIHDR.
func Create(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) writeChunk(typeTag [4]byte, body []byte) error {
	lenField := endian.BEFromHost32(uint32(len(body)))
	if _, err := w.w.Write(lenField[:]); err != nil {
		return &stegerr.IOError{Op: "write chunk length", Err: err}
	}
	if _, err := w.w.Write(typeTag[:]); err != nil {
		return &stegerr.IOError{Op: "write chunk type", Err: err}
	}
	if len(body) > 0 {
		if _, err := w.w.Write(body); err != nil {
			return &stegerr.IOError{Op: "write chunk data", Err: err}
		}
	}
	crc := endian.BEFromHost32(crc32check.Checksum(typeTag, body))
	if _, err := w.w.Write(crc[:]); err != nil {
		return &stegerr.IOError{Op: "write chunk CRC", Err: err}
	}
	return nil
}

// WriteIHDR writes the signature followed by the IHDR chunk. The CRC-32
// is always recomputed from the body being written, never copied from
// an input IHDR's preserved Frame.CRC32 — spec.md §9 flags the source
// implementation's CRC preservation as unsafe once any field can
// differ from the input, and resolves the open question in favor of
// always recomputing.
func (w *Writer) WriteIHDR(h IHDR) error {
	if err := h.validate(); err != nil {
		return err
	}
	if _, err := w.w.Write(Signature[:]); err != nil {
		return &stegerr.IOError{Op: "write signature", Err: err}
	}
	body := make([]byte, ihdrBodyLength)
	widthField := endian.BEFromHost32(h.Width)
	heightField := endian.BEFromHost32(h.Height)
	copy(body[0:4], widthField[:])
	copy(body[4:8], heightField[:])
	body[8] = h.BitDepth
	body[9] = h.ColorType
	body[10] = h.CompressionMethod
	body[11] = h.FilterMethod
	body[12] = h.InterlaceMethod
	return w.writeChunk(TypeIHDR, body)
}

// WriteIDAT emits a single IDAT chunk whose body is data. Per spec.md
// §4.9, the encoder always emits exactly one IDAT chunk even though
// readers must tolerate many.
func (w *Writer) WriteIDAT(data []byte) error {
	return w.writeChunk(TypeIDAT, data)
}

// WriteIEND writes the empty-bodied terminator chunk. Its CRC is always
// the fixed constant crc32check.IEND, since the body (and hence the
// CRC-32 input) never varies.
func (w *Writer) WriteIEND() error {
	return w.writeChunk(TypeIEND, nil)
}
