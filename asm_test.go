// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func roundTrip(t *testing.T, prog Program) Program {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteProgram(&buf, prog); err != nil {
		t.Fatalf("WriteProgram: %v", err)
	}
	got, err := ReadProgram(&buf)
	if err != nil {
		t.Fatalf("ReadProgram: %v\nassembly:\n%s", err, buf.String())
	}
	return got
}

func TestAsmRoundTripLiteral(t *testing.T) {
	prog := generate(t, `a`)
	got := roundTrip(t, prog)
	if diff := cmp.Diff(prog, got); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}
}

func TestAsmRoundTripAlternationAndStar(t *testing.T) {
	for _, pattern := range []string{`a|b`, `a*`, `a*?`, `(a+)(b+)`, `[a-c]`, `[^a-c]+`} {
		prog := generate(t, pattern)
		got := roundTrip(t, prog)
		if diff := cmp.Diff(prog, got); diff != "" {
			t.Errorf("round trip mismatch for %q:\n%s", pattern, diff)
		}
	}
}

func TestAsmWriteProgramLabelsOnlyJumpTargets(t *testing.T) {
	// A program with no Jump/Split has no labels at all in the output.
	prog := Program{
		{Op: Char, C: 'a'},
		{Op: Match},
	}
	var buf bytes.Buffer
	if err := WriteProgram(&buf, prog); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "L") {
		t.Errorf("expected no labels in output, got:\n%s", buf.String())
	}
}

func TestAsmReadProgramUnknownOpcode(t *testing.T) {
	_, err := ReadProgram(strings.NewReader("    bogus\n"))
	if err == nil {
		t.Fatal("expected error for unknown opcode")
	}
	if _, ok := err.(*ProgramError); !ok {
		t.Fatalf("got error of type %T, want *ProgramError", err)
	}
}

func TestAsmReadProgramUnknownLabel(t *testing.T) {
	_, err := ReadProgram(strings.NewReader("    jump Lmissing\n"))
	if err == nil {
		t.Fatal("expected error for unresolved label")
	}
	if _, ok := err.(*ProgramError); !ok {
		t.Fatalf("got error of type %T, want *ProgramError", err)
	}
}

func TestAsmReadProgramArityErrors(t *testing.T) {
	cases := []string{
		"    char\n",       // missing operand
		"    char a b\n",   // too many operands
		"    split L1\n",   // split needs two labels
		"    save\n",       // missing operand
		"    save x\n",     // non-numeric operand
		"    range a\n",    // odd operand count
		"    range a b c\n", // odd operand count
	}
	for _, c := range cases {
		if _, err := ReadProgram(strings.NewReader(c)); err == nil {
			t.Errorf("ReadProgram(%q): expected error, got nil", c)
		} else if _, ok := err.(*ProgramError); !ok {
			t.Errorf("ReadProgram(%q): got error of type %T, want *ProgramError", c, err)
		}
	}
}

func TestAsmReadProgramSkipsBlankLinesAndComments(t *testing.T) {
	src := "; a comment\n\n    char a  ; trailing comment\n\n    match\n"
	prog, err := ReadProgram(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadProgram: %v", err)
	}
	want := Program{
		{Op: Char, C: 'a'},
		{Op: Match},
	}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestAsmReadProgramLabelDeclaration(t *testing.T) {
	src := "Lstart:\n    char a\n    jump Lstart\n"
	prog, err := ReadProgram(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadProgram: %v", err)
	}
	want := Program{
		{Op: Char, C: 'a'},
		{Op: Jump, X: 0},
	}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}
