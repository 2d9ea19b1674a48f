// Package endian isolates every big-endian/host-endian conversion the
// container codec needs. No other package reads or writes a width,
// height, chunk length, or CRC-32 field directly from raw bytes; they
// all route through here, matching the teacher's practice (fumin-png,
// rmamba-image) of funneling PNG integer fields through
// encoding/binary.BigEndian rather than hand-rolled shifts.
package endian

import "encoding/binary"

// HostFromBE32 interprets the first 4 bytes of b as a big-endian u32 and
// returns its value. On every platform Go runs on, the numeric result is
// the same regardless of host byte order; the name documents the
// direction of the conversion this container format requires.
func HostFromBE32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// BEFromHost32 returns the big-endian on-wire encoding of v.
func BEFromHost32(v uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b
}

// ReverseBytes reverses b in place. It is its own inverse:
// ReverseBytes(ReverseBytes(b)) == b for any b.
func ReverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
