// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package main

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/spf13/afero"
	"github.com/usedbytes/lbrc-tools/lib/codec"
	"github.com/usedbytes/lbrc-tools/lib/config"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
	"github.com/usedbytes/lbrc-tools/lib/gamma"
	"github.com/usedbytes/lbrc-tools/lib/program"
	"github.com/usedbytes/lbrc-tools/lib/snapshot"
)

const (
	testConfigOffs   = 0x000
	testGammaOffs    = 0x040
	testLocalOffs    = 0x150
	testSlaveOffs    = 0x160
	testProgramsOffs = 0x180
	testArrayOffs    = 0x200
	testImageLen     = 0x400
)

func putMarker(data []byte, offs int, kind firmware.SectionKind) {
	copy(data[offs:], "LBrc")
	firmware.WriteU16(data, offs+4, uint16(kind))
	firmware.WriteU16(data, offs+6, firmware.SupportedVersion)
}

func testImage(t *testing.T) []byte {
	data := make([]byte, testImageLen)

	putMarker(data, testConfigOffs, firmware.Configuration)
	firmware.WriteU32(data, testConfigOffs+8+44, uint32(codec.Baud115200))

	putMarker(data, testGammaOffs, firmware.Gamma)
	table, err := gamma.MakeTable("220")
	if err != nil {
		t.Fatal(err)
	}
	copy(data[testGammaOffs+8:], "220")
	copy(data[testGammaOffs+8+4:], table[:])

	putMarker(data, testLocalOffs, firmware.LocalLeds)
	firmware.WriteU32(data, testLocalOffs+8+4, testArrayOffs)

	putMarker(data, testSlaveOffs, firmware.SlaveLeds)
	firmware.WriteU32(data, testSlaveOffs+8+4, testArrayOffs)

	putMarker(data, testProgramsOffs, firmware.LightPrograms)
	firmware.WriteU32(data, testProgramsOffs+8+4+4*program.MaxPrograms, program.EndOfPrograms)

	return data
}

func TestDecodeEncodeFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := config.Defaults()
	cfg.Gamma.Default = "180"

	orig := testImage(t)
	if err := afero.WriteFile(fs, "/in.bin", orig, 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := decodeFile(fs, cfg, "/in.bin")
	if err != nil {
		t.Fatal(err)
	}

	// Unchanged snapshot gives an identical image
	if err := snapshot.Save(fs, "/snap.json", snap); err != nil {
		t.Fatal(err)
	}
	if err := encodeFiles(fs, cfg, "/in.bin", "/snap.json", "/same.bin"); err != nil {
		t.Fatal(err)
	}
	same, err := afero.ReadFile(fs, "/same.bin")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(same, orig) {
		t.Error("unchanged snapshot modified the image")
	}

	snap.Config.BlinkCounterValue = 42
	snap.LocalLeds.Leds = append(snap.LocalLeds.Leds, codec.Led{TailLight: 200, WeakTailLight: true})
	snap.Gamma.GammaValue = ""
	if err := snapshot.Save(fs, "/snap.json", snap); err != nil {
		t.Fatal(err)
	}

	if err := encodeFiles(fs, cfg, "/in.bin", "/snap.json", "/out.hex"); err != nil {
		t.Fatal(err)
	}

	back, err := decodeFile(fs, cfg, "/out.hex")
	if err != nil {
		t.Fatal(err)
	}

	if back.Config.BlinkCounterValue != 42 {
		t.Errorf("blink counter: got %d", back.Config.BlinkCounterValue)
	}
	if !reflect.DeepEqual(back.LocalLeds, snap.LocalLeds) {
		t.Errorf("local LEDs: got %+v want %+v", back.LocalLeds, snap.LocalLeds)
	}
	if back.Gamma.GammaValue != "180" {
		t.Errorf("gamma: got '%s' want default '180'", back.Gamma.GammaValue)
	}
}

func TestEncodeFilesInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := config.Defaults()

	if err := afero.WriteFile(fs, "/in.bin", testImage(t), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := decodeFile(fs, cfg, "/in.bin")
	if err != nil {
		t.Fatal(err)
	}

	snap.Config.Baudrate = 9600
	if err := snapshot.Save(fs, "/snap.json", snap); err != nil {
		t.Fatal(err)
	}

	if err := encodeFiles(fs, cfg, "/in.bin", "/snap.json", "/out.bin"); err == nil {
		t.Error("expected validation error")
	}
	if ok, _ := afero.Exists(fs, "/out.bin"); ok {
		t.Error("output written despite error")
	}
}
