// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package firmware

import (
	"encoding/binary"
)

// All multi-byte values in the image are little-endian. The accessors
// panic if offs+width runs past the end of buf; callers bounds-check the
// section first (see Image.Section).

func ReadU16(buf []byte, offs int) uint16 {
	return binary.LittleEndian.Uint16(buf[offs : offs+2])
}

func ReadU32(buf []byte, offs int) uint32 {
	return binary.LittleEndian.Uint32(buf[offs : offs+4])
}

func WriteU16(buf []byte, offs int, val uint16) {
	binary.LittleEndian.PutUint16(buf[offs:offs+2], val)
}

func WriteU32(buf []byte, offs int, val uint32) {
	binary.LittleEndian.PutUint32(buf[offs:offs+4], val)
}
