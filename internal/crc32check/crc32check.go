// Package crc32check computes the container's mandated CRC-32 (IEEE
// 802.3 polynomial 0xEDB88320, reflected, init 0xFFFFFFFF, final XOR
// 0xFFFFFFFF) over a chunk's type tag and data. It is grounded on the
// png.adpollak.net example decoder, which validates chunk CRCs the same
// way: via github.com/snksoft/crc rather than hash/crc32.
package crc32check

import "github.com/snksoft/crc"

// IEND is the well-known CRC-32 of an IEND chunk, whose body is always
// empty: CRC("IEND" ‖ "").
const IEND uint32 = 0xAE426082

// Checksum returns the CRC-32 of typeTag‖data, in host order. The
// container serializer converts the result to big-endian before writing
// it.
func Checksum(typeTag [4]byte, data []byte) uint32 {
	buf := make([]byte, 0, 4+len(data))
	buf = append(buf, typeTag[:]...)
	buf = append(buf, data...)
	return uint32(crc.CalculateCRC(crc.CRC32, buf))
}
