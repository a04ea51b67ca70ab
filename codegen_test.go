// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func generate(t *testing.T, pattern string) Program {
	t.Helper()
	tree := Parse([]byte(pattern))
	return Generate(tree)
}

func TestGenerateLiteral(t *testing.T) {
	got := generate(t, `a`)
	want := Program{
		{Op: Char, C: 'a'},
		{Op: Match},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generate(%q) mismatch:\n%s", `a`, diff)
	}
}

func TestGenerateConcatenation(t *testing.T) {
	got := generate(t, `ab`)
	want := Program{
		{Op: Char, C: 'a'},
		{Op: Char, C: 'b'},
		{Op: Match},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generate(%q) mismatch:\n%s", `ab`, diff)
	}
}

func TestGenerateAlternation(t *testing.T) {
	got := generate(t, `a|b`)
	want := Program{
		{Op: Split, X: 1, Y: 3},
		{Op: Char, C: 'a'},
		{Op: Jump, X: 4},
		{Op: Char, C: 'b'},
		{Op: Match},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generate(%q) mismatch:\n%s", `a|b`, diff)
	}
}

func TestGenerateGreedyStar(t *testing.T) {
	got := generate(t, `a*`)
	want := Program{
		{Op: Split, X: 1, Y: 3},
		{Op: Char, C: 'a'},
		{Op: Jump, X: 0},
		{Op: Match},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generate(%q) mismatch:\n%s", `a*`, diff)
	}
}

func TestGenerateNonGreedyStarSwapsSplitOperands(t *testing.T) {
	greedy := generate(t, `a*`)
	nonGreedy := generate(t, `a*?`)
	if greedy[0].Op != Split || nonGreedy[0].Op != Split {
		t.Fatalf("expected both programs to start with Split")
	}
	if greedy[0].X != nonGreedy[0].Y || greedy[0].Y != nonGreedy[0].X {
		t.Errorf("non-greedy Split should swap x/y of greedy: greedy=%v nonGreedy=%v", greedy[0], nonGreedy[0])
	}
}

func TestGenerateGroupAssignsSaveSlots(t *testing.T) {
	got := generate(t, `(a)(b)`)
	var saves []int
	for _, in := range got {
		if in.Op == Save {
			saves = append(saves, in.S)
		}
	}
	want := []int{0, 1, 2, 3}
	if diff := cmp.Diff(want, saves); diff != "" {
		t.Errorf("save slots mismatch:\n%s", diff)
	}
	if got.NumCaptures() != 4 {
		t.Errorf("NumCaptures() = %d, want 4", got.NumCaptures())
	}
}

func TestGenerateClassProducesRangeOperand(t *testing.T) {
	got := generate(t, `[a-c]`)
	if len(got) != 2 || got[0].Op != Range {
		t.Fatalf("got %v, want [Range, Match]", got)
	}
	want := []byteRange{{'a', 'c'}}
	if diff := cmp.Diff(want, got[0].Ranges); diff != "" {
		t.Errorf("ranges mismatch:\n%s", diff)
	}
}

func TestGenerateNegatedClassProducesNRange(t *testing.T) {
	got := generate(t, `[^a-c]`)
	if len(got) != 2 || got[0].Op != NRange {
		t.Fatalf("got %v, want [NRange, Match]", got)
	}
}

func TestGenerateSpecialTokenIsCodegenError(t *testing.T) {
	defer func() {
		e := recover()
		if e == nil {
			t.Fatal("expected panic for unsupported special token")
		}
		if _, ok := e.(*CodegenError); !ok {
			t.Fatalf("got panic of type %T, want *CodegenError", e)
		}
	}()
	generate(t, `\w`)
}
