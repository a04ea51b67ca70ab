// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cznic/internal/buffer"
)

var opcodeKeyword = map[Opcode]string{
	Char:   "char",
	Any:    "any",
	Range:  "range",
	NRange: "nrange",
	Jump:   "jump",
	Split:  "split",
	Save:   "save",
	Match:  "match",
}

var keywordOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeKeyword))
	for op, kw := range opcodeKeyword {
		m[kw] = op
	}
	return m
}()

// trimLine strips a trailing ';' comment and surrounding whitespace, and
// reports the line's last non-whitespace byte so the caller can classify
// it as blank, a label ("...:"), or code.
func trimLine(line string) (trimmed string, last byte) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", 0
	}
	return line, line[len(line)-1]
}

func parseByteLiteral(lineno int, tok string) (byte, error) {
	if len(tok) != 1 {
		return 0, &ProgramError{Line: lineno, msg: fmt.Sprintf("expected single-byte literal, got %q", tok)}
	}
	return tok[0], nil
}

// readInstr parses one already-trimmed, non-label code line into an
// Instruction. For Jump/Split the label operands are returned as text
// through labelX/labelY and X/Y are left unset; the caller resolves the
// labels to indices afterward.
func readInstr(lineno int, line string, labelX, labelY *string) (Instruction, error) {
	tokens := strings.Fields(line)
	op, ok := keywordOpcode[tokens[0]]
	if !ok {
		return Instruction{}, &ProgramError{Line: lineno, msg: fmt.Sprintf("unknown opcode %q", tokens[0])}
	}

	switch op {
	case Char:
		if len(tokens) != 2 {
			return Instruction{}, &ProgramError{Line: lineno, msg: "require 2 tokens for char"}
		}
		c, err := parseByteLiteral(lineno, tokens[1])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: Char, C: c}, nil

	case Any, Match:
		if len(tokens) != 1 {
			return Instruction{}, &ProgramError{Line: lineno, msg: fmt.Sprintf("require 1 token for %s", tokens[0])}
		}
		return Instruction{Op: op}, nil

	case Jump:
		if len(tokens) != 2 {
			return Instruction{}, &ProgramError{Line: lineno, msg: "require 2 tokens for jump"}
		}
		*labelX = tokens[1]
		return Instruction{Op: Jump}, nil

	case Split:
		if len(tokens) != 3 {
			return Instruction{}, &ProgramError{Line: lineno, msg: "require 3 tokens for split"}
		}
		*labelX = tokens[1]
		*labelY = tokens[2]
		return Instruction{Op: Split}, nil

	case Save:
		if len(tokens) != 2 {
			return Instruction{}, &ProgramError{Line: lineno, msg: "require 2 tokens for save"}
		}
		n, err := strconv.Atoi(tokens[1])
		if err != nil {
			return Instruction{}, &ProgramError{Line: lineno, msg: fmt.Sprintf("bad save operand %q", tokens[1])}
		}
		return Instruction{Op: Save, S: n}, nil

	case Range, NRange:
		if len(tokens) < 3 || len(tokens)%2 != 1 {
			return Instruction{}, &ProgramError{Line: lineno, msg: fmt.Sprintf("require an even, nonzero number of byte operands for %s", tokens[0])}
		}
		ranges := make([]byteRange, 0, (len(tokens)-1)/2)
		for i := 1; i < len(tokens); i += 2 {
			lo, err := parseByteLiteral(lineno, tokens[i])
			if err != nil {
				return Instruction{}, err
			}
			hi, err := parseByteLiteral(lineno, tokens[i+1])
			if err != nil {
				return Instruction{}, err
			}
			ranges = append(ranges, byteRange{lo, hi})
		}
		return Instruction{Op: op, Ranges: ranges}, nil

	default:
		return Instruction{}, &ProgramError{Line: lineno, msg: fmt.Sprintf("unknown opcode %q", tokens[0])}
	}
}

// ReadProgram parses the textual assembly format (blank lines, "Lname:"
// labels, ';'-prefixed comments, one instruction per code line) into a
// Program with fully resolved jump targets. Ported from
// original_source/src/instr.c's read_prog/read_instr, extended with
// any/range/nrange lines for the opcodes instr.c never emitted.
func ReadProgram(r io.Reader) (Program, error) {
	type pending struct {
		in     Instruction
		line   int
		labelX string
		labelY string
	}

	var code []pending
	labelIndex := map[string]int{}

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		text, last := trimLine(sc.Text())
		if last == 0 {
			continue
		}
		if last == ':' {
			name := strings.TrimSuffix(text, ":")
			labelIndex[name] = len(code)
			continue
		}

		var lx, ly string
		in, err := readInstr(lineno, text, &lx, &ly)
		if err != nil {
			return nil, err
		}
		code = append(code, pending{in: in, line: lineno, labelX: lx, labelY: ly})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	resolve := func(p pending, label string) (int, error) {
		idx, ok := labelIndex[label]
		if !ok {
			return 0, &ProgramError{Line: p.line, msg: fmt.Sprintf("label %q not found", label)}
		}
		return idx, nil
	}

	prog := make(Program, len(code))
	for i, p := range code {
		in := p.in
		if in.Op == Jump || in.Op == Split {
			x, err := resolve(p, p.labelX)
			if err != nil {
				return nil, err
			}
			in.X = x
		}
		if in.Op == Split {
			y, err := resolve(p, p.labelY)
			if err != nil {
				return nil, err
			}
			in.Y = y
		}
		prog[i] = in
	}
	return prog, nil
}

// WriteProgram writes prog in the textual assembly format understood by
// ReadProgram. Labels are emitted only for instructions that are the
// target of some Jump/Split, numbered densely L1, L2, … in instruction
// order — ported from original_source/src/instr.c's write_prog. Output
// is accumulated through buffer.Bytes rather than bytes.Buffer, the
// same growable-byte-slice type cznic-regexp itself builds generated
// text through.
func WriteProgram(w io.Writer, prog Program) error {
	labels := make([]int, len(prog))
	for _, in := range prog {
		if in.Op == Jump || in.Op == Split {
			labels[in.X] = 1
		}
		if in.Op == Split {
			labels[in.Y] = 1
		}
	}
	next := 1
	for i, has := range labels {
		if has != 0 {
			labels[i] = next
			next++
		}
	}

	var buf buffer.Bytes

	for i, in := range prog {
		if labels[i] != 0 {
			buf.WriteString(fmt.Sprintf("L%d:\n", labels[i]))
		}
		switch in.Op {
		case Char:
			buf.WriteString(fmt.Sprintf("    char %c\n", in.C))
		case Any:
			buf.WriteString("    any\n")
		case Match:
			buf.WriteString("    match\n")
		case Jump:
			buf.WriteString(fmt.Sprintf("    jump L%d\n", labels[in.X]))
		case Split:
			buf.WriteString(fmt.Sprintf("    split L%d L%d\n", labels[in.X], labels[in.Y]))
		case Save:
			buf.WriteString(fmt.Sprintf("    save %d\n", in.S))
		case Range, NRange:
			line := "    " + opcodeKeyword[in.Op]
			for _, r := range in.Ranges {
				line += fmt.Sprintf(" %c %c", r.Lo, r.Hi)
			}
			buf.WriteString(line + "\n")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
