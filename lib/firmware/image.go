// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package firmware

import (
	"fmt"
	"sort"

	"github.com/sigurn/crc16"
)

// Image is a flat firmware image plus the location of each section
// found in it. The codecs read from and write into the same buffer.
type Image struct {
	data    []byte
	offsets map[SectionKind]int
	skipped []*UnknownSectionError
}

// NewImage scans data for sections. The image takes ownership of data.
func NewImage(data []byte) (*Image, error) {
	offsets, skipped, err := Locate(data)
	if err != nil {
		return nil, err
	}

	return &Image{
		data:    data,
		offsets: offsets,
		skipped: skipped,
	}, nil
}

func (img *Image) Bytes() []byte {
	return img.data
}

func (img *Image) Len() int {
	return len(img.data)
}

func (img *Image) Has(kind SectionKind) bool {
	_, ok := img.offsets[kind]
	return ok
}

// Offset returns the payload offset of a section.
func (img *Image) Offset(kind SectionKind) (int, error) {
	offs, ok := img.offsets[kind]
	if !ok {
		return 0, &MissingSectionError{Kind: kind}
	}
	return offs, nil
}

// Section returns the payload offset of a section after checking that
// length bytes starting there lie within the image.
func (img *Image) Section(kind SectionKind, length int) (int, error) {
	offs, err := img.Offset(kind)
	if err != nil {
		return 0, err
	}

	if err := img.CheckRange(kind, offs, length); err != nil {
		return 0, err
	}

	return offs, nil
}

// CheckRange checks that [offs, offs+length) is inside the image. kind
// is only used for the error.
func (img *Image) CheckRange(kind SectionKind, offs, length int) error {
	if offs < 0 || length < 0 || offs+length > len(img.data) {
		return &TruncatedSectionError{
			Kind:   kind,
			Offset: offs,
			Length: length,
			Size:   len(img.data),
		}
	}
	return nil
}

// Sections returns the located sections, ordered by offset.
func (img *Image) Sections() []SectionKind {
	kinds := make([]SectionKind, 0, len(img.offsets))
	for k := range img.offsets {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return img.offsets[kinds[i]] < img.offsets[kinds[j]]
	})
	return kinds
}

// Skipped returns the markers with unrecognised section tags.
func (img *Image) Skipped() []*UnknownSectionError {
	return img.skipped
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	c := &Image{
		data:    make([]byte, len(img.data)),
		offsets: make(map[SectionKind]int, len(img.offsets)),
		skipped: img.skipped,
	}
	copy(c.data, img.data)
	for k, v := range img.offsets {
		c.offsets[k] = v
	}
	return c
}

// CopyFrom overwrites the image contents with those of other, which
// must have the same size.
func (img *Image) CopyFrom(other *Image) error {
	if len(other.data) != len(img.data) {
		return fmt.Errorf("image size mismatch: %d vs %d", len(other.data), len(img.data))
	}
	copy(img.data, other.data)
	return nil
}

// Checksum is the CRC16/XMODEM of the whole image.
func (img *Image) Checksum() uint16 {
	crct := crc16.MakeTable(crc16.CRC16_XMODEM)
	return crc16.Checksum(img.data, crct)
}

func (img *Image) String() string {
	str := ""
	str += fmt.Sprintf("Size:     %d (0x%x) bytes\n", len(img.data), len(img.data))
	str += fmt.Sprintf("CRC16:    0x%04x", img.Checksum())
	for _, k := range img.Sections() {
		str += fmt.Sprintf("\nSection:  %-16s 0x%06x", k, img.offsets[k])
	}
	for _, s := range img.skipped {
		str += fmt.Sprintf("\nSkipped:  0x%04x at 0x%06x", s.ID, s.Offset)
	}
	return str
}
