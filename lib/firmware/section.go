// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package firmware

import (
	"fmt"
)

type SectionKind uint16

const (
	Configuration SectionKind = 0x01
	Gamma         SectionKind = 0x02
	LocalLeds     SectionKind = 0x10
	SlaveLeds     SectionKind = 0x20
	LightPrograms SectionKind = 0x30
)

// Kinds lists every known section in tag order.
var Kinds = []SectionKind{Configuration, Gamma, LocalLeds, SlaveLeds, LightPrograms}

func (k SectionKind) String() string {
	switch k {
	case Configuration:
		return "Configuration"
	case Gamma:
		return "Gamma table"
	case LocalLeds:
		return "Local LEDs"
	case SlaveLeds:
		return "Slave LEDs"
	case LightPrograms:
		return "Light programs"
	}

	return fmt.Sprintf("Section(0x%02x)", uint16(k))
}

func (k SectionKind) Valid() bool {
	switch k {
	case Configuration, Gamma, LocalLeds, SlaveLeds, LightPrograms:
		return true
	}
	return false
}

// ParseSectionKind maps an on-disk section tag to its kind.
func ParseSectionKind(tag uint16) (SectionKind, bool) {
	k := SectionKind(tag)
	return k, k.Valid()
}
