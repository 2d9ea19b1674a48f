// Package pngcodec reads and writes the chunked container format: the
// 8-byte signature, length/type/CRC chunk framing, the IHDR header
// chunk, and the concatenated IDAT payload. It knows nothing about
// compression, filtering, or the steganographic payload those bytes
// eventually carry; those are separate components. Grounded on
// fumin-png's from-scratch chunk reader (scoped, like this package, to
// the truecolor+alpha 8-bit non-interlaced subset) and rmamba-image's
// writer, which frames chunks with the same
// length/type/CRC-over-type-and-data layout this package writes.
package pngcodec

import "github.com/callmeFilip/Steganography/internal/stegerr"

// Signature is the fixed 8-byte PNG file signature.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const (
	requiredBitDepth           = 8
	requiredColorType          = 6 // truecolor with alpha
	requiredCompressionMethod  = 0
	requiredFilterMethod       = 0
	requiredInterlaceMethod    = 0
	ihdrBodyLength             = 13
)

// Chunk type tags this codec cares about. Any other tag is skipped on
// read and never emitted on write.
var (
	TypeIHDR = [4]byte{'I', 'H', 'D', 'R'}
	TypeIDAT = [4]byte{'I', 'D', 'A', 'T'}
	TypeIEND = [4]byte{'I', 'E', 'N', 'D'}
	TypeNULL = [4]byte{} // sentinel: yielded by ChunkSeek past IEND
)

// ChunkFrame is the framing metadata for one chunk: its declared
// length, type tag, CRC-32, and the byte offset at which its length
// field began. EntryOffset lets a caller re-seek to the chunk body
// without the scanner having buffered it.
type ChunkFrame struct {
	DataLength  uint32
	Type        [4]byte
	CRC32       uint32
	EntryOffset int64
}

// NextOffset returns the byte offset of the chunk immediately
// following this one.
func (f ChunkFrame) NextOffset() int64 {
	return f.EntryOffset + 8 + int64(f.DataLength) + 4
}

// IHDR is the parsed header chunk plus the framing record of the
// chunk it came from, so a rewrite can recompute (rather than blindly
// preserve) its CRC-32.
type IHDR struct {
	Width              uint32
	Height             uint32
	BitDepth           byte
	ColorType          byte
	CompressionMethod  byte
	FilterMethod       byte
	InterlaceMethod    byte
	Frame              ChunkFrame
}

// validate rejects any IHDR outside the truecolor+alpha, 8-bit,
// non-interlaced, zlib-compressed, filter-method-0 subset this codec
// supports.
func (h IHDR) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return &stegerr.CorruptContainer{Msg: "IHDR declares a zero dimension"}
	}
	if h.BitDepth != requiredBitDepth {
		return &stegerr.UnsupportedImage{Field: "bit_depth", Msg: "only 8-bit channels are supported"}
	}
	if h.ColorType != requiredColorType {
		return &stegerr.UnsupportedImage{Field: "color_type", Msg: "only truecolor-with-alpha (6) is supported"}
	}
	if h.CompressionMethod != requiredCompressionMethod {
		return &stegerr.UnsupportedImage{Field: "compression_method", Msg: "only method 0 is supported"}
	}
	if h.FilterMethod != requiredFilterMethod {
		return &stegerr.UnsupportedImage{Field: "filter_method", Msg: "only method 0 is supported"}
	}
	if h.InterlaceMethod != requiredInterlaceMethod {
		return &stegerr.UnsupportedImage{Field: "interlace_method", Msg: "interlacing is not supported"}
	}
	return nil
}
