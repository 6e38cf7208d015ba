// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package program

const (
	MaxPrograms  = 25
	MaxVariables = 100

	// Milliseconds per WAIT tick
	SystickMs = 20
)

type Opcode byte

const (
	OpGoto         Opcode = 0x01
	OpSet          Opcode = 0x02
	OpSetVariable  Opcode = 0x03
	OpFade         Opcode = 0x04
	OpFadeVariable Opcode = 0x05
	OpWait         Opcode = 0x06
	OpWaitVariable Opcode = 0x07

	OpAssign   Opcode = 0x08
	OpAdd      Opcode = 0x09
	OpSubtract Opcode = 0x0a
	OpMultiply Opcode = 0x0b
	OpDivide   Opcode = 0x0c

	OpSkipIfEq Opcode = 0x0d
	OpSkipIfNe Opcode = 0x0e
	OpSkipIfGe Opcode = 0x0f
	OpSkipIfGt Opcode = 0x10
	OpSkipIfLe Opcode = 0x11
	OpSkipIfLt Opcode = 0x12

	// The IF opcodes only use the top 3 bits, the rest is a run state
	OpIfAny  Opcode = 0x20
	OpIfAll  Opcode = 0x40
	OpIfNone Opcode = 0x80

	OpEndOfProgram  Opcode = 0xfe
	OpEndOfPrograms Opcode = 0xff
)

var mnemonics = map[Opcode]string{
	OpGoto:         "goto",
	OpSet:          "set",
	OpSetVariable:  "set_var",
	OpFade:         "fade",
	OpFadeVariable: "fade_var",
	OpWait:         "wait",
	OpWaitVariable: "wait_var",
	OpAssign:       "assign",
	OpAdd:          "add",
	OpSubtract:     "sub",
	OpMultiply:     "mul",
	OpDivide:       "div",
	OpSkipIfEq:     "skip_if_eq",
	OpSkipIfNe:     "skip_if_ne",
	OpSkipIfGe:     "skip_if_ge",
	OpSkipIfGt:     "skip_if_gt",
	OpSkipIfLe:     "skip_if_le",
	OpSkipIfLt:     "skip_if_lt",
}

func opcodeOf(w uint32) Opcode {
	return Opcode(w >> 24)
}

const (
	EndOfProgram  = uint32(OpEndOfProgram) << 24
	EndOfPrograms = uint32(OpEndOfPrograms) << 24

	runStateMask = 0x1fffffff
)

func Set(start, stop, value byte) uint32 {
	return uint32(OpSet)<<24 | uint32(stop)<<16 | uint32(start)<<8 | uint32(value)
}

func Fade(start, stop, value byte) uint32 {
	return uint32(OpFade)<<24 | uint32(stop)<<16 | uint32(start)<<8 | uint32(value)
}

func Wait(ms uint32) uint32 {
	return uint32(OpWait)<<24 | (ms / SystickMs)
}

func Goto(line uint32) uint32 {
	return uint32(OpGoto)<<24 | line
}
