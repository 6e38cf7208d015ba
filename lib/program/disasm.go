// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package program

import (
	"fmt"
	"strings"
)

// Each program starts with these header words
const (
	priorityStateOffset = 0
	runStateOffset      = 1
	ledsUsedOffset      = 2
	firstOpcodeOffset   = 3
)

type Program struct {
	PriorityState uint32
	RunState      uint32
	LedsUsed      uint32
	Instructions  []uint32
}

// Split breaks an instruction stream into at most count programs. The
// stream ends at END_OF_PROGRAMS, or when it runs out of words.
func Split(count int, words []uint32) []Program {
	var progs []Program

	i := 0
	for len(progs) < count && i < len(words) {
		if words[i] == EndOfPrograms {
			break
		}

		var p Program
		hdr := words[i:]
		if len(hdr) < firstOpcodeOffset {
			break
		}
		p.PriorityState = hdr[priorityStateOffset]
		p.RunState = hdr[runStateOffset]
		p.LedsUsed = hdr[ledsUsedOffset]
		i += firstOpcodeOffset

		for ; i < len(words); i++ {
			w := words[i]
			if w == EndOfProgram || w == EndOfPrograms {
				break
			}
			p.Instructions = append(p.Instructions, w)
		}
		if i < len(words) && words[i] == EndOfProgram {
			i++
		}

		progs = append(progs, p)
	}

	return progs
}

// Instruction renders a single instruction word.
func Instruction(w uint32) string {
	op := opcodeOf(w)
	operand := w & 0xffffff

	switch op {
	case OpEndOfProgram:
		return "end"
	case OpEndOfPrograms:
		return "end_of_programs"
	case OpGoto:
		return fmt.Sprintf("goto %d", operand)
	case OpSet, OpFade:
		start, stop, value := (w>>8)&0xff, (w>>16)&0xff, w&0xff
		return fmt.Sprintf("%s leds %d..%d %d", mnemonics[op], start, stop, value)
	case OpWait:
		return fmt.Sprintf("wait %d", operand*SystickMs)
	}

	if name, ok := mnemonics[op]; ok {
		return fmt.Sprintf("%s 0x%06x", name, operand)
	}

	switch Opcode((w >> 29) << 5) {
	case OpIfAny:
		return fmt.Sprintf("if any 0x%08x", w&runStateMask)
	case OpIfAll:
		return fmt.Sprintf("if all 0x%08x", w&runStateMask)
	case OpIfNone:
		return fmt.Sprintf("if none 0x%08x", w&runStateMask)
	}

	return fmt.Sprintf(".word 0x%08x", w)
}

func (p *Program) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "priority 0x%08x\n", p.PriorityState)
	fmt.Fprintf(&sb, "run      0x%08x\n", p.RunState)
	fmt.Fprintf(&sb, "leds     0x%08x\n", p.LedsUsed)
	for i, w := range p.Instructions {
		fmt.Fprintf(&sb, "%4d: %s\n", i, Instruction(w))
	}

	return sb.String()
}

// Disassemble renders up to count programs from an instruction stream.
func Disassemble(count int, words []uint32) string {
	var sb strings.Builder

	progs := Split(count, words)
	for i, p := range progs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "program %d\n", i)
		sb.WriteString(p.String())
		sb.WriteString("end\n")
	}

	return sb.String()
}
