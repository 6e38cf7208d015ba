// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"github.com/pkg/errors"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
	"github.com/usedbytes/lbrc-tools/lib/program"
)

const (
	programsCountOffs = 0
	programsTableOffs = 4
	programsFirstOffs = programsTableOffs + 4*program.MaxPrograms
)

// programWords returns the program count and every instruction word
// from the first program to the end of the image.
func programWords(img *firmware.Image) (int, []uint32, error) {
	offs, err := img.Section(firmware.LightPrograms, programsFirstOffs)
	if err != nil {
		return 0, nil, err
	}

	data := img.Bytes()
	count := int(firmware.ReadU32(data, offs+programsCountOffs))
	if count > program.MaxPrograms {
		return 0, nil, &firmware.CapacityExceededError{
			Kind:     firmware.LightPrograms,
			Count:    count,
			Capacity: program.MaxPrograms,
		}
	}

	start := offs + programsFirstOffs
	words := make([]uint32, 0, (len(data)-start)/4)
	for i := start; i+4 <= len(data); i += 4 {
		words = append(words, firmware.ReadU32(data, i))
	}

	return count, words, nil
}

// DecodeLightPrograms returns the disassembly of the light programs.
func DecodeLightPrograms(img *firmware.Image) (string, error) {
	count, words, err := programWords(img)
	if err != nil {
		return "", err
	}

	return program.Disassemble(count, words), nil
}

// EncodeLightPrograms accepts text only if it matches what is already in
// the image (or is empty), as there is no assembler.
func EncodeLightPrograms(img *firmware.Image, text string) error {
	current, err := DecodeLightPrograms(img)
	if err != nil {
		return err
	}

	if text == "" || text == current {
		return nil
	}

	_, err = program.Assemble(text)
	return errors.Wrap(err, "encoding light programs")
}
