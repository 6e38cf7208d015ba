// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package firmware

import (
	"bytes"
)

const (
	// "LBrc" (LANE Boys RC) in little endian
	magicLen  = 4
	headerLen = magicLen + 2 + 2

	SupportedVersion uint16 = 1
)

var magic = []byte{0x4c, 0x42, 0x72, 0x63}

// Locate scans data for section markers and returns the payload offset
// of each known section. Markers with an unknown tag are skipped and
// returned separately. A known section with an unsupported version
// fails the whole scan.
//
// If a section appears more than once, the last marker wins.
func Locate(data []byte) (map[SectionKind]int, []*UnknownSectionError, error) {
	offsets := make(map[SectionKind]int)
	var skipped []*UnknownSectionError

	for i := 0; i+headerLen < len(data); i++ {
		if !bytes.Equal(data[i:i+magicLen], magic) {
			continue
		}

		id := ReadU16(data, i+4)
		version := ReadU16(data, i+6)

		kind, ok := ParseSectionKind(id)
		if !ok {
			skipped = append(skipped, &UnknownSectionError{Offset: i, ID: id})
			continue
		}

		if version != SupportedVersion {
			return nil, skipped, &VersionMismatchError{
				Kind:     kind,
				Offset:   i,
				Expected: SupportedVersion,
				Actual:   version,
			}
		}

		offsets[kind] = i + headerLen
	}

	return offsets, skipped, nil
}
