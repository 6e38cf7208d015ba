// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"testing"

	"github.com/usedbytes/lbrc-tools/lib/firmware"
	"github.com/usedbytes/lbrc-tools/lib/program"
)

// Layout of the synthetic image used by the tests
const (
	testConfigMarker   = 0x000
	testGammaMarker    = 0x040
	testLocalMarker    = 0x150
	testSlaveMarker    = 0x160
	testLocalArray     = 0x200
	testSlaveArray     = testLocalArray + MaxLeds*LedLen
	testProgramsMarker = testSlaveArray + MaxLeds*LedLen
	testImageLen       = 0x600
)

func putMarker(data []byte, offs int, kind firmware.SectionKind) int {
	copy(data[offs:], []byte{'L', 'B', 'r', 'c'})
	firmware.WriteU16(data, offs+4, uint16(kind))
	firmware.WriteU16(data, offs+6, 1)
	return offs + 8
}

var testPrograms = []uint32{
	0, 0x80000000, 0x3,
	program.Set(0, 1, 255),
	program.Wait(200),
	program.Goto(0),
	program.EndOfProgram,
	program.EndOfPrograms,
}

// newTestData builds a raw image with every section present, a 2-LED
// local bank and an empty slave bank.
func newTestData(t *testing.T) []byte {
	t.Helper()

	data := make([]byte, testImageLen)

	putMarker(data, testConfigMarker, firmware.Configuration)

	offs := putMarker(data, testGammaMarker, firmware.Gamma)
	copy(data[offs:], "100")
	for i := 0; i < 256; i++ {
		data[offs+4+i] = byte(i)
	}

	offs = putMarker(data, testLocalMarker, firmware.LocalLeds)
	data[offs] = 2
	firmware.WriteU32(data, offs+4, testLocalArray)
	data[testLocalArray+4] = 10
	data[testLocalArray+LedLen+14] = 128

	offs = putMarker(data, testSlaveMarker, firmware.SlaveLeds)
	firmware.WriteU32(data, offs+4, testSlaveArray)

	offs = putMarker(data, testProgramsMarker, firmware.LightPrograms)
	firmware.WriteU32(data, offs, 1)
	firmware.WriteU32(data, offs+4, uint32(offs+programsFirstOffs))
	for i, w := range testPrograms {
		firmware.WriteU32(data, offs+programsFirstOffs+i*4, w)
	}

	return data
}

func newTestImage(t *testing.T) *firmware.Image {
	t.Helper()

	img, err := firmware.NewImage(newTestData(t))
	if err != nil {
		t.Fatal(err)
	}
	return img
}
