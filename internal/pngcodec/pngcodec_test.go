package pngcodec

import (
	"bytes"
	"testing"

	"github.com/callmeFilip/Steganography/internal/crc32check"
	"github.com/callmeFilip/Steganography/internal/endian"
	"github.com/callmeFilip/Steganography/internal/stegerr"
)

func sampleIHDR(width, height uint32) IHDR {
	return IHDR{
		Width:             width,
		Height:            height,
		BitDepth:          requiredBitDepth,
		ColorType:         requiredColorType,
		CompressionMethod: requiredCompressionMethod,
		FilterMethod:      requiredFilterMethod,
		InterlaceMethod:   requiredInterlaceMethod,
	}
}

func TestWriteReadIHDRRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := Create(&buf)
	h := sampleIHDR(8, 8)
	if err := w.WriteIHDR(h); err != nil {
		t.Fatalf("WriteIHDR: %+v", err)
	}
	if err := w.WriteIDAT([]byte("stand-in-compressed-bytes")); err != nil {
		t.Fatalf("WriteIDAT: %+v", err)
	}
	if err := w.WriteIEND(); err != nil {
		t.Fatalf("WriteIEND: %+v", err)
	}

	r, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open: %+v", err)
	}
	got, err := r.ReadIHDR()
	if err != nil {
		t.Fatalf("ReadIHDR: %+v", err)
	}
	if got.Width != h.Width || got.Height != h.Height || got.ColorType != h.ColorType {
		t.Fatalf("ReadIHDR = %+v, want fields matching %+v", got, h)
	}

	data, err := r.ReadAllIDAT()
	if err != nil {
		t.Fatalf("ReadAllIDAT: %+v", err)
	}
	if string(data) != "stand-in-compressed-bytes" {
		t.Fatalf("ReadAllIDAT = %q", data)
	}
}

func TestReadAllIDATConcatenatesSplitChunks(t *testing.T) {
	var buf bytes.Buffer
	w := Create(&buf)
	h := sampleIHDR(8, 8)
	if err := w.WriteIHDR(h); err != nil {
		t.Fatalf("WriteIHDR: %+v", err)
	}
	parts := []string{"abc", "def", "ghi"}
	for _, p := range parts {
		if err := w.WriteIDAT([]byte(p)); err != nil {
			t.Fatalf("WriteIDAT: %+v", err)
		}
	}
	if err := w.WriteIEND(); err != nil {
		t.Fatalf("WriteIEND: %+v", err)
	}

	r, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open: %+v", err)
	}
	if _, err := r.ReadIHDR(); err != nil {
		t.Fatalf("ReadIHDR: %+v", err)
	}
	data, err := r.ReadAllIDAT()
	if err != nil {
		t.Fatalf("ReadAllIDAT: %+v", err)
	}
	if string(data) != "abcdefghi" {
		t.Fatalf("ReadAllIDAT = %q, want %q", data, "abcdefghi")
	}
}

func TestIENDChecksumMatchesConstant(t *testing.T) {
	var buf bytes.Buffer
	w := Create(&buf)
	if err := w.WriteIEND(); err != nil {
		t.Fatalf("WriteIEND: %+v", err)
	}
	crc := endian.HostFromBE32(buf.Bytes()[buf.Len()-4:])
	if crc != crc32check.IEND {
		t.Fatalf("IEND CRC = %#08x, want %#08x", crc, crc32check.IEND)
	}
}

func TestOpenRejectsBadSignature(t *testing.T) {
	_, err := Open(bytes.NewReader([]byte("not a png file at all")))
	if err == nil {
		t.Fatalf("expected an error for a bad signature")
	}
	if _, ok := err.(*stegerr.CorruptContainer); !ok {
		t.Fatalf("got %T, want *stegerr.CorruptContainer", err)
	}
}

func TestWriteIHDRRejectsUnsupportedColorType(t *testing.T) {
	var buf bytes.Buffer
	w := Create(&buf)
	h := sampleIHDR(4, 4)
	h.ColorType = 3 // indexed color, not supported
	err := w.WriteIHDR(h)
	if err == nil {
		t.Fatalf("expected an error for an unsupported color type")
	}
	if _, ok := err.(*stegerr.UnsupportedImage); !ok {
		t.Fatalf("got %T, want *stegerr.UnsupportedImage", err)
	}
}

func TestReadIHDRDetectsCorruptCRC(t *testing.T) {
	var buf bytes.Buffer
	w := Create(&buf)
	if err := w.WriteIHDR(sampleIHDR(4, 4)); err != nil {
		t.Fatalf("WriteIHDR: %+v", err)
	}
	b := buf.Bytes()
	// Flip every bit of the first IHDR body byte (the body begins after
	// the 8-byte signature and 8-byte length/type header, at offset 16)
	// without updating its CRC trailer.
	b[16] ^= 0xFF

	r, err := Open(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Open: %+v", err)
	}
	if _, err := r.ReadIHDR(); err == nil {
		t.Fatalf("expected a CRC mismatch error")
	} else if _, ok := err.(*stegerr.CorruptContainer); !ok {
		t.Fatalf("got %T, want *stegerr.CorruptContainer", err)
	}
}

func TestChunkSeekYieldsNullPastIEND(t *testing.T) {
	var buf bytes.Buffer
	w := Create(&buf)
	if err := w.WriteIHDR(sampleIHDR(4, 4)); err != nil {
		t.Fatalf("WriteIHDR: %+v", err)
	}
	if err := w.WriteIDAT([]byte("x")); err != nil {
		t.Fatalf("WriteIDAT: %+v", err)
	}
	if err := w.WriteIEND(); err != nil {
		t.Fatalf("WriteIEND: %+v", err)
	}

	r, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open: %+v", err)
	}
	frame, err := r.ChunkSeek(TypeIDAT, true)
	if err != nil {
		t.Fatalf("ChunkSeek: %+v", err)
	}
	if frame.Type != TypeIDAT {
		t.Fatalf("ChunkSeek found %v, want IDAT", frame.Type)
	}
	frame, err = r.ChunkSeek(TypeIDAT, false)
	if err != nil {
		t.Fatalf("ChunkSeek: %+v", err)
	}
	if frame.Type != TypeNULL {
		t.Fatalf("ChunkSeek past IEND = %v, want TypeNULL", frame.Type)
	}
}
