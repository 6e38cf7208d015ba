// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package firmware

import (
	"fmt"
)

// UnknownSectionError describes a marker whose section tag isn't
// recognised. It is never returned from Locate; skipped markers are
// collected instead.
type UnknownSectionError struct {
	Offset int
	ID     uint16
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section 0x%04x at offset 0x%x", e.ID, e.Offset)
}

type VersionMismatchError struct {
	Kind     SectionKind
	Offset   int
	Expected uint16
	Actual   uint16
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("section '%s' at offset 0x%x: unsupported version %d (expected %d)",
		e.Kind, e.Offset, e.Actual, e.Expected)
}

type MissingSectionError struct {
	Kind SectionKind
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("section '%s' not found in image", e.Kind)
}

type CapacityExceededError struct {
	Kind     SectionKind
	Count    int
	Capacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("section '%s': count %d exceeds capacity %d", e.Kind, e.Count, e.Capacity)
}

// TruncatedSectionError means a section's layout runs past the end of
// the image.
type TruncatedSectionError struct {
	Kind   SectionKind
	Offset int
	Length int
	Size   int
}

func (e *TruncatedSectionError) Error() string {
	return fmt.Sprintf("section '%s': %d bytes at offset 0x%x overrun image of %d bytes",
		e.Kind, e.Length, e.Offset, e.Size)
}
