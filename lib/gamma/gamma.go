// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package gamma

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	TableLen = 256
	IDLen    = 3
)

// ParseValue converts a 3-character gamma identifier into the curve
// exponent. Identifiers are either three digits giving hundredths
// ("220" is 2.20) or a decimal ("2.2").
func ParseValue(id string) (float64, error) {
	if len(id) != IDLen {
		return 0, errors.Errorf("gamma identifier '%s' must be %d characters", id, IDLen)
	}

	var val float64
	if strings.ContainsRune(id, '.') {
		v, err := strconv.ParseFloat(id, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing gamma identifier '%s'", id)
		}
		val = v
	} else {
		v, err := strconv.ParseUint(id, 10, 16)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing gamma identifier '%s'", id)
		}
		val = float64(v) / 100
	}

	if val <= 0 {
		return 0, errors.Errorf("gamma identifier '%s' gives non-positive gamma", id)
	}

	return val, nil
}

// MakeTable builds the 8-bit lookup table for the gamma identifier id.
func MakeTable(id string) ([TableLen]byte, error) {
	var table [TableLen]byte

	g, err := ParseValue(id)
	if err != nil {
		return table, err
	}

	for i := range table {
		v := math.Pow(float64(i)/255, g) * 255
		table[i] = byte(math.Round(v))
	}

	return table, nil
}
