// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"github.com/pkg/errors"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
	"github.com/usedbytes/lbrc-tools/lib/gamma"
)

// GammaSelector picks the gamma correction curve by a 3 character
// identifier.
type GammaSelector struct {
	GammaValue string `json:"gamma_value"`
}

const (
	gammaTableOffs = 4
	GammaLen       = gammaTableOffs + gamma.TableLen
)

func DecodeGamma(img *firmware.Image) (GammaSelector, error) {
	offs, err := img.Section(firmware.Gamma, gamma.IDLen)
	if err != nil {
		return GammaSelector{}, err
	}

	return GammaSelector{
		GammaValue: string(img.Bytes()[offs : offs+gamma.IDLen]),
	}, nil
}

// EncodeGamma writes the identifier and the lookup table generated from
// it. The table is never decoded.
func EncodeGamma(img *firmware.Image, g GammaSelector) error {
	offs, err := img.Section(firmware.Gamma, GammaLen)
	if err != nil {
		return err
	}

	id := g.GammaValue
	if len(id) != gamma.IDLen {
		return errors.Errorf("gamma value '%s' must be %d characters", id, gamma.IDLen)
	}
	for i := 0; i < len(id); i++ {
		if id[i] >= 0x80 {
			return errors.Errorf("gamma value '%s' must be ASCII", id)
		}
	}

	table, err := gamma.MakeTable(id)
	if err != nil {
		return errors.Wrap(err, "generating gamma table")
	}

	data := img.Bytes()
	copy(data[offs:offs+gamma.IDLen], id)
	copy(data[offs+gammaTableOffs:offs+GammaLen], table[:])

	return nil
}
