// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import "fmt"

// Opcode is a Pike VM instruction kind: Char, Any, Range, NRange, Jump,
// Split, Save, Match.
type Opcode int

const (
	Char Opcode = iota
	Any
	Range
	NRange
	Jump
	Split
	Save
	Match
)

var opcodeNames = [...]string{
	Char: "char", Any: "any", Range: "range", NRange: "nrange",
	Jump: "jump", Split: "split", Save: "save", Match: "match",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// byteRange is an inclusive [Lo, Hi] byte range, one member of a Range
// or NRange instruction's operand block.
type byteRange struct {
	Lo, Hi byte
}

// Instruction is one Pike VM opcode. X and Y are absolute indices into
// the enclosing Program for Jump/Split; Ranges holds the inline byte-pair
// block for Range/NRange, a slice standing in for the original
// pointer+count pair.
type Instruction struct {
	Op     Opcode
	C      byte
	S      int
	X, Y   int
	Ranges []byteRange
}

func (in Instruction) String() string {
	switch in.Op {
	case Char:
		return fmt.Sprintf("char %q", in.C)
	case Any:
		return "any"
	case Range, NRange:
		return fmt.Sprintf("%s %v", in.Op, in.Ranges)
	case Jump:
		return fmt.Sprintf("jump %d", in.X)
	case Split:
		return fmt.Sprintf("split %d %d", in.X, in.Y)
	case Save:
		return fmt.Sprintf("save %d", in.S)
	case Match:
		return "match"
	default:
		return fmt.Sprintf("?(%v)", in.Op)
	}
}

// Program is a flat, fully-resolved instruction array: the output of
// code generation and the input to the VM.
type Program []Instruction

// NumCaptures returns the number of capture slots the program uses,
// i.e. (max Save slot seen + 1), rounded up to an even number so every
// group's open/close pair has a home.
func (prog Program) NumCaptures() int {
	max := -1
	for _, in := range prog {
		if in.Op == Save && in.S > max {
			max = in.S
		}
	}
	if max < 0 {
		return 0
	}
	n := max + 1
	if n%2 != 0 {
		n++
	}
	return n
}

func rangeContains(ranges []byteRange, c byte) bool {
	for _, r := range ranges {
		if r.Lo <= c && c <= r.Hi {
			return true
		}
	}
	return false
}
