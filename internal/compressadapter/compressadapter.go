// Package compressadapter is the pluggable deflate/inflate provider
// spec.md treats as an external collaborator. It is deliberately thin:
// no internal buffering, no streaming API, just two calls sized by
// their caller. Grounded on zanicar-stegano's cmd-level
// compress/decompress helpers (same zlib.NewWriter/zlib.NewReader
// shape) and on the go-openexr DWA compressor's use of
// github.com/klauspost/compress/zlib as a drop-in for compress/zlib.
package compressadapter

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/callmeFilip/Steganography/internal/stegerr"
)

// Inflate decompresses compressed and returns exactly expectedLen
// bytes. It fails if the provider produces a different length than the
// filtered uncompressed stream's expected size
// (height * (1 + width*4)).
func Inflate(compressed []byte, expectedLen int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &stegerr.CompressionError{Msg: "could not open zlib stream: " + err.Error()}
	}
	defer zr.Close()

	out := make([]byte, expectedLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, &stegerr.CompressionError{Msg: "inflate produced fewer bytes than expected: " + err.Error()}
	}
	// Confirm there is nothing left over: a well-formed stream ends
	// exactly at expectedLen.
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n > 0 {
		return nil, &stegerr.CompressionError{Msg: "inflate produced more bytes than expected"}
	}
	return out, nil
}

// Deflate compresses raw and returns the compressed bytes.
func Deflate(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, &stegerr.CompressionError{Msg: "deflate write failed: " + err.Error()}
	}
	if err := zw.Close(); err != nil {
		return nil, &stegerr.CompressionError{Msg: "deflate close failed: " + err.Error()}
	}
	return buf.Bytes(), nil
}
