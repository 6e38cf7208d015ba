// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
)

// Led holds the per-LED brightness levels. Each Weak* flag enables the
// weak ground simulation for the level of the same name. Flags and
// levels are independent of each other.
type Led struct {
	MaxChangePerSystick uint8 `json:"max_change_per_systick"`
	ReductionPercent    uint8 `json:"reduction_percent"`

	WeakLightSwitchPosition0 bool `json:"weak_light_switch_position0"`
	WeakLightSwitchPosition1 bool `json:"weak_light_switch_position1"`
	WeakLightSwitchPosition2 bool `json:"weak_light_switch_position2"`
	WeakLightSwitchPosition3 bool `json:"weak_light_switch_position3"`
	WeakLightSwitchPosition4 bool `json:"weak_light_switch_position4"`
	WeakLightSwitchPosition5 bool `json:"weak_light_switch_position5"`
	WeakLightSwitchPosition6 bool `json:"weak_light_switch_position6"`
	WeakLightSwitchPosition7 bool `json:"weak_light_switch_position7"`
	WeakLightSwitchPosition8 bool `json:"weak_light_switch_position8"`
	WeakTailLight            bool `json:"weak_tail_light"`
	WeakBrakeLight           bool `json:"weak_brake_light"`
	WeakReversingLight       bool `json:"weak_reversing_light"`
	WeakIndicatorLeft        bool `json:"weak_indicator_left"`
	WeakIndicatorRight       bool `json:"weak_indicator_right"`

	AlwaysOn             uint8 `json:"always_on"`
	LightSwitchPosition0 uint8 `json:"light_switch_position0"`
	LightSwitchPosition1 uint8 `json:"light_switch_position1"`
	LightSwitchPosition2 uint8 `json:"light_switch_position2"`
	LightSwitchPosition3 uint8 `json:"light_switch_position3"`
	LightSwitchPosition4 uint8 `json:"light_switch_position4"`
	LightSwitchPosition5 uint8 `json:"light_switch_position5"`
	LightSwitchPosition6 uint8 `json:"light_switch_position6"`
	LightSwitchPosition7 uint8 `json:"light_switch_position7"`
	LightSwitchPosition8 uint8 `json:"light_switch_position8"`
	TailLight            uint8 `json:"tail_light"`
	BrakeLight           uint8 `json:"brake_light"`
	ReversingLight       uint8 `json:"reversing_light"`
	IndicatorLeft        uint8 `json:"indicator_left"`
	IndicatorRight       uint8 `json:"indicator_right"`
}

// LedBank is the set of LEDs driven locally, or by a slave controller.
type LedBank struct {
	Leds []Led
}

func (b *LedBank) Count() int {
	return len(b.Leds)
}

const (
	// One TLC5940 per controller
	MaxLeds = 16

	LedLen = 20

	ledBankCountOffs = 0
	ledBankArrayOffs = 4
	LedBankHeaderLen = 8

	ledMaxChangeOffs = 0
	ledReductionOffs = 1
	ledFlagsOffs     = 2
)

// Shared by the local and slave banks, and by decode and encode.
var ledFlags = [...]struct {
	bit   uint
	field func(l *Led) *bool
}{
	{0, func(l *Led) *bool { return &l.WeakLightSwitchPosition0 }},
	{1, func(l *Led) *bool { return &l.WeakLightSwitchPosition1 }},
	{2, func(l *Led) *bool { return &l.WeakLightSwitchPosition2 }},
	{3, func(l *Led) *bool { return &l.WeakLightSwitchPosition3 }},
	{4, func(l *Led) *bool { return &l.WeakLightSwitchPosition4 }},
	{5, func(l *Led) *bool { return &l.WeakLightSwitchPosition5 }},
	{6, func(l *Led) *bool { return &l.WeakLightSwitchPosition6 }},
	{7, func(l *Led) *bool { return &l.WeakLightSwitchPosition7 }},
	{8, func(l *Led) *bool { return &l.WeakLightSwitchPosition8 }},
	{9, func(l *Led) *bool { return &l.WeakTailLight }},
	{10, func(l *Led) *bool { return &l.WeakBrakeLight }},
	{11, func(l *Led) *bool { return &l.WeakReversingLight }},
	{12, func(l *Led) *bool { return &l.WeakIndicatorLeft }},
	{13, func(l *Led) *bool { return &l.WeakIndicatorRight }},
}

// Byte 19 is padding.
var ledLevels = [...]struct {
	offs  int
	field func(l *Led) *uint8
}{
	{4, func(l *Led) *uint8 { return &l.AlwaysOn }},
	{5, func(l *Led) *uint8 { return &l.LightSwitchPosition0 }},
	{6, func(l *Led) *uint8 { return &l.LightSwitchPosition1 }},
	{7, func(l *Led) *uint8 { return &l.LightSwitchPosition2 }},
	{8, func(l *Led) *uint8 { return &l.LightSwitchPosition3 }},
	{9, func(l *Led) *uint8 { return &l.LightSwitchPosition4 }},
	{10, func(l *Led) *uint8 { return &l.LightSwitchPosition5 }},
	{11, func(l *Led) *uint8 { return &l.LightSwitchPosition6 }},
	{12, func(l *Led) *uint8 { return &l.LightSwitchPosition7 }},
	{13, func(l *Led) *uint8 { return &l.LightSwitchPosition8 }},
	{14, func(l *Led) *uint8 { return &l.TailLight }},
	{15, func(l *Led) *uint8 { return &l.BrakeLight }},
	{16, func(l *Led) *uint8 { return &l.ReversingLight }},
	{17, func(l *Led) *uint8 { return &l.IndicatorLeft }},
	{18, func(l *Led) *uint8 { return &l.IndicatorRight }},
}

func decodeLed(buf []byte) Led {
	var l Led

	l.MaxChangePerSystick = buf[ledMaxChangeOffs]
	l.ReductionPercent = buf[ledReductionOffs]

	flags := firmware.ReadU16(buf, ledFlagsOffs)
	for _, f := range ledFlags {
		*f.field(&l) = (flags>>f.bit)&1 != 0
	}

	for _, v := range ledLevels {
		*v.field(&l) = buf[v.offs]
	}

	return l
}

func encodeLed(buf []byte, l Led) {
	buf[ledMaxChangeOffs] = l.MaxChangePerSystick
	buf[ledReductionOffs] = l.ReductionPercent

	var flags uint16
	for _, f := range ledFlags {
		if *f.field(&l) {
			flags |= 1 << f.bit
		}
	}
	firmware.WriteU16(buf, ledFlagsOffs, flags)

	for _, v := range ledLevels {
		buf[v.offs] = *v.field(&l)
	}
}

func checkLedKind(kind firmware.SectionKind) error {
	if kind != firmware.LocalLeds && kind != firmware.SlaveLeds {
		return errors.Errorf("section '%s' is not an LED bank", kind)
	}
	return nil
}

// ledArray returns the offset of the LED array for a bank after checking
// count entries fit in the image. The array offset is stored in the
// bank header.
func ledArray(img *firmware.Image, kind firmware.SectionKind, count int) (int, error) {
	offs, err := img.Section(kind, LedBankHeaderLen)
	if err != nil {
		return 0, err
	}

	if count > MaxLeds {
		return 0, &firmware.CapacityExceededError{
			Kind:     kind,
			Count:    count,
			Capacity: MaxLeds,
		}
	}

	array := int(firmware.ReadU32(img.Bytes(), offs+ledBankArrayOffs))
	if err := img.CheckRange(kind, array, count*LedLen); err != nil {
		return 0, err
	}

	return array, nil
}

func DecodeLeds(img *firmware.Image, kind firmware.SectionKind) (LedBank, error) {
	if err := checkLedKind(kind); err != nil {
		return LedBank{}, err
	}

	offs, err := img.Section(kind, LedBankHeaderLen)
	if err != nil {
		return LedBank{}, err
	}

	data := img.Bytes()
	count := int(data[offs+ledBankCountOffs])

	array, err := ledArray(img, kind, count)
	if err != nil {
		return LedBank{}, err
	}

	bank := LedBank{
		Leds: make([]Led, count),
	}
	for i := range bank.Leds {
		start := array + i*LedLen
		bank.Leds[i] = decodeLed(data[start : start+LedLen])
	}

	return bank, nil
}

// EncodeLeds writes the bank count and exactly that many LEDs. The array
// offset in the bank header is left alone.
func EncodeLeds(img *firmware.Image, kind firmware.SectionKind, bank LedBank) error {
	if err := checkLedKind(kind); err != nil {
		return err
	}

	offs, err := img.Section(kind, LedBankHeaderLen)
	if err != nil {
		return err
	}

	array, err := ledArray(img, kind, bank.Count())
	if err != nil {
		return err
	}

	data := img.Bytes()
	data[offs+ledBankCountOffs] = byte(bank.Count())
	for i, l := range bank.Leds {
		start := array + i*LedLen
		encodeLed(data[start:start+LedLen], l)
	}

	return nil
}

func (b *LedBank) String() string {
	str := fmt.Sprintf("LEDs: %d", b.Count())
	for i, l := range b.Leds {
		str += fmt.Sprintf("\n   %2d: always_on %3d tail %3d brake %3d reversing %3d indicators %3d/%3d",
			i, l.AlwaysOn, l.TailLight, l.BrakeLight, l.ReversingLight, l.IndicatorLeft, l.IndicatorRight)
	}
	return str
}
