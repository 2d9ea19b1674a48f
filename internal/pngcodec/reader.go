package pngcodec

import (
	"io"

	"github.com/callmeFilip/Steganography/internal/crc32check"
	"github.com/callmeFilip/Steganography/internal/endian"
	"github.com/callmeFilip/Steganography/internal/stegerr"
)

// Reader scans the chunks of one open container. Unlike the source
// implementation this was distilled from, which kept the active file
// handle and scan cursor as process-wide globals, every piece of scan
// state here is a field on the Reader instance (spec §9's redesign
// flag): two Readers over two files never share state.
type Reader struct {
	r io.ReadSeeker

	// chunkSeek cursor.
	lastAddress int64
	atEnd       bool
}

// Open verifies the 8-byte signature and returns a Reader positioned
// to scan the chunks that follow it.
func Open(r io.ReadSeeker) (*Reader, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, &stegerr.CorruptContainer{Msg: "file is too short to contain a signature"}
		}
		return nil, &stegerr.IOError{Op: "read signature", Err: err}
	}
	if sig != Signature {
		return nil, &stegerr.CorruptContainer{Msg: "signature mismatch: not a PNG file"}
	}
	return &Reader{r: r, lastAddress: 8}, nil
}

// readFrameHeader reads the 8-byte length+type header at offset, then
// skips the chunk's data and reads its CRC trailer without buffering
// the data, returning the complete framing record.
func (r *Reader) readFrameHeader(offset int64) (ChunkFrame, error) {
	if _, err := r.r.Seek(offset, io.SeekStart); err != nil {
		return ChunkFrame{}, &stegerr.IOError{Op: "seek chunk header", Err: err}
	}
	var hdr [8]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		return ChunkFrame{}, &stegerr.CorruptContainer{Msg: "truncated chunk header"}
	}
	length := endian.HostFromBE32(hdr[:4])
	var typeTag [4]byte
	copy(typeTag[:], hdr[4:8])

	if _, err := r.r.Seek(int64(length), io.SeekCurrent); err != nil {
		return ChunkFrame{}, &stegerr.IOError{Op: "skip chunk data", Err: err}
	}
	var crcBuf [4]byte
	if _, err := io.ReadFull(r.r, crcBuf[:]); err != nil {
		return ChunkFrame{}, &stegerr.CorruptContainer{Msg: "truncated chunk CRC"}
	}

	return ChunkFrame{
		DataLength:  length,
		Type:        typeTag,
		CRC32:       endian.HostFromBE32(crcBuf[:]),
		EntryOffset: offset,
	}, nil
}

// readBody reads and CRC-verifies the data bytes of a chunk already
// identified by frame.
func (r *Reader) readBody(frame ChunkFrame) ([]byte, error) {
	if _, err := r.r.Seek(frame.EntryOffset+8, io.SeekStart); err != nil {
		return nil, &stegerr.IOError{Op: "seek chunk body", Err: err}
	}
	body := make([]byte, frame.DataLength)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return nil, &stegerr.CorruptContainer{Msg: "truncated chunk body"}
	}
	if crc32check.Checksum(frame.Type, body) != frame.CRC32 {
		return nil, &stegerr.CorruptContainer{Msg: "CRC-32 mismatch for chunk " + string(frame.Type[:])}
	}
	return body, nil
}

// ReadIHDR locates the first chunk after the signature, requires it to
// be IHDR, and parses its 13-byte body.
func (r *Reader) ReadIHDR() (IHDR, error) {
	frame, err := r.readFrameHeader(8)
	if err != nil {
		return IHDR{}, err
	}
	if frame.Type != TypeIHDR {
		return IHDR{}, &stegerr.CorruptContainer{Msg: "missing IHDR chunk"}
	}
	if frame.DataLength != ihdrBodyLength {
		return IHDR{}, &stegerr.CorruptContainer{Msg: "bad IHDR length"}
	}
	body, err := r.readBody(frame)
	if err != nil {
		return IHDR{}, err
	}

	h := IHDR{
		Width:             endian.HostFromBE32(body[0:4]),
		Height:            endian.HostFromBE32(body[4:8]),
		BitDepth:          body[8],
		ColorType:         body[9],
		CompressionMethod: body[10],
		FilterMethod:      body[11],
		InterlaceMethod:   body[12],
		Frame:             frame,
	}
	if err := h.validate(); err != nil {
		return IHDR{}, err
	}
	return h, nil
}

// ReadAllIDAT walks chunks forward from immediately after the
// signature, accumulating the bodies of every IDAT chunk, in file
// order, into one buffer. It stops at the first IEND chunk. Unlike the
// writer, which always emits a single IDAT, the reader tolerates many.
func (r *Reader) ReadAllIDAT() ([]byte, error) {
	var out []byte
	offset := int64(8)
	for {
		frame, err := r.readFrameHeader(offset)
		if err != nil {
			return nil, err
		}
		switch frame.Type {
		case TypeIDAT:
			body, err := r.readBody(frame)
			if err != nil {
				return nil, err
			}
			out = append(out, body...)
		case TypeIEND:
			return out, nil
		}
		offset = frame.NextOffset()
	}
}

// ChunkSeek is a stateful iterator over framing records filtered by
// type. reset=true rewinds to the first post-signature chunk;
// reset=false resumes after the most recently yielded record. Once
// scanning has passed IEND, every subsequent call yields a sentinel
// record of type TypeNULL.
func (r *Reader) ChunkSeek(typeTag [4]byte, reset bool) (ChunkFrame, error) {
	if reset {
		r.lastAddress = 8
		r.atEnd = false
	}
	for {
		if r.atEnd {
			return ChunkFrame{Type: TypeNULL}, nil
		}
		frame, err := r.readFrameHeader(r.lastAddress)
		if err != nil {
			return ChunkFrame{}, err
		}
		r.lastAddress = frame.NextOffset()
		if frame.Type == TypeIEND {
			r.atEnd = true
		}
		if frame.Type == typeTag {
			return frame, nil
		}
		if r.atEnd {
			return ChunkFrame{Type: TypeNULL}, nil
		}
	}
}
