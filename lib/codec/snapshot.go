// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
)

// Snapshot is the decoded content of every section of an image.
type Snapshot struct {
	Config        Configuration `json:"config"`
	LocalLeds     LedBank       `json:"local_leds"`
	SlaveLeds     LedBank       `json:"slave_leds"`
	Gamma         GammaSelector `json:"gamma"`
	LightPrograms string        `json:"light_programs"`
}

// DecodeAll decodes every section. It stops at the first error.
func DecodeAll(img *firmware.Image) (*Snapshot, error) {
	var s Snapshot
	var err error

	s.Config, err = DecodeConfiguration(img)
	if err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	s.Gamma, err = DecodeGamma(img)
	if err != nil {
		return nil, errors.Wrap(err, "decoding gamma")
	}

	s.LocalLeds, err = DecodeLeds(img, firmware.LocalLeds)
	if err != nil {
		return nil, errors.Wrap(err, "decoding local LEDs")
	}

	s.SlaveLeds, err = DecodeLeds(img, firmware.SlaveLeds)
	if err != nil {
		return nil, errors.Wrap(err, "decoding slave LEDs")
	}

	s.LightPrograms, err = DecodeLightPrograms(img)
	if err != nil {
		return nil, errors.Wrap(err, "decoding light programs")
	}

	return &s, nil
}

// EncodeAll writes every section of s into img. The sections are encoded
// into a copy of the image, which is only committed if they all succeed.
func EncodeAll(img *firmware.Image, s *Snapshot) error {
	work := img.Clone()

	err := EncodeConfiguration(work, s.Config)
	if err != nil {
		return errors.Wrap(err, "encoding configuration")
	}

	err = EncodeLeds(work, firmware.LocalLeds, s.LocalLeds)
	if err != nil {
		return errors.Wrap(err, "encoding local LEDs")
	}

	err = EncodeLeds(work, firmware.SlaveLeds, s.SlaveLeds)
	if err != nil {
		return errors.Wrap(err, "encoding slave LEDs")
	}

	err = EncodeLightPrograms(work, s.LightPrograms)
	if err != nil {
		return err
	}

	err = EncodeGamma(work, s.Gamma)
	if err != nil {
		return errors.Wrap(err, "encoding gamma")
	}

	return img.CopyFrom(work)
}

func (s *Snapshot) String() string {
	str := ""
	str += s.Config.String() + "\n"
	str += fmt.Sprintf("Gamma:       %s\n", s.Gamma.GammaValue)
	str += "Local " + s.LocalLeds.String() + "\n"
	str += "Slave " + s.SlaveLeds.String()
	return str
}
