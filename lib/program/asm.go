// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package program

import (
	"github.com/pkg/errors"
)

var ErrNotImplemented = errors.New("light program assembly is not supported")

// Assemble would turn program text back into instruction words. There
// is no assembler yet.
func Assemble(text string) ([]uint32, error) {
	return nil, ErrNotImplemented
}
