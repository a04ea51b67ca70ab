// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import "fmt"

// fragment is a code-generation intermediate: an instruction, a stable
// identifier, and a forward link. Fragment lists are singly linked and
// flattened into a Program once generation finishes. Jump/Split operands
// hold fragment identifiers, not final indices, for the whole of
// generation; only Generate's final pass resolves them.
type fragment struct {
	in   Instruction
	id   int
	next *fragment
}

// genState is the Fragment allocator and capturing-group counter shared
// across one Generate call.
type genState struct {
	id      int
	capture int
}

func newFragment(op Opcode, s *genState) *fragment {
	f := &fragment{id: s.id, in: Instruction{Op: op}}
	s.id++
	return f
}

func last(f *fragment) *fragment {
	for f.next != nil {
		f = f.next
	}
	return f
}

// noTarget is a sentinel fragment ID that never matches a real fragment
// (ids are assigned from zero, upward); it stands in for C's NULL-pointer
// comparison in the original join().
const noTarget = -1

// join splices fragment list b onto the tail of a: every Match in a
// becomes a Jump to b's first instruction, every Jump/Split targeting a's
// trailing Match is retargeted to b's first instruction, and the
// trailing Match itself is dropped. This is the fall-through mechanism
// ported directly from original_source/src/codegen.c's join().
func join(a, b *fragment) {
	tail := last(a)
	lastID := noTarget
	if tail.in.Op == Match {
		lastID = tail.id
	}

	var prev *fragment
	cur := a
	for cur.next != nil {
		if cur.in.Op == Match {
			cur.in.Op = Jump
			cur.in.X = b.id
		}
		if (cur.in.Op == Jump || cur.in.Op == Split) && cur.in.X == lastID {
			cur.in.X = b.id
		}
		if cur.in.Op == Split && cur.in.Y == lastID {
			cur.in.Y = b.id
		}
		prev = cur
		cur = cur.next
	}

	if prev != nil && cur.in.Op == Match {
		prev.next = b
	}
}

// collectRanges flattens a right-linear CLASS chain into the inline
// byte-range block a Range/NRange instruction carries, one pair per
// CLASS member. A bare '-' becomes ['-','-'].
func collectRanges(n *Node) []byteRange {
	var out []byteRange
	for n != nil {
		switch n.Prod {
		case prodClassRange:
			out = append(out, byteRange{n.Children[0].Tok.C, n.Children[1].Tok.C})
			if n.NChildren == 3 {
				n = n.Children[2]
			} else {
				n = nil
			}
		case prodClassSingle:
			c := n.Children[0].Tok.C
			out = append(out, byteRange{c, c})
			if n.NChildren == 2 {
				n = n.Children[1]
			} else {
				n = nil
			}
		case prodClassDash:
			out = append(out, byteRange{'-', '-'})
			n = nil
		default:
			n = nil
		}
	}
	return out
}

func genTerm(t *Node, s *genState) *fragment {
	switch t.Prod {
	case prodTermLiteral:
		tok := t.Children[0].Tok
		switch tok.Sym {
		case CharSym, Minus, Caret:
			f := newFragment(Char, s)
			f.in.C = tok.C
			f.next = newFragment(Match, s)
			return f
		case Dot:
			f := newFragment(Any, s)
			f.next = newFragment(Match, s)
			return f
		case Special:
			panic(&CodegenError{msg: fmt.Sprintf("unsupported special escape: \\%c", tok.C)})
		default:
			panic(&CodegenError{msg: fmt.Sprintf("unsupported literal token: %s", tok.Sym)})
		}

	case prodTermGroup:
		k := s.capture
		s.capture++
		f := newFragment(Save, s)
		f.in.S = 2 * k
		f.next = genRegex(t.Children[1], s)
		n := newFragment(Save, s)
		n.in.S = 2*k + 1
		n.next = newFragment(Match, s)
		join(f, n)
		return f

	case prodTermClass, prodTermNClass:
		op := Range
		var cls *Node
		if t.Prod == prodTermNClass {
			op = NRange
			cls = t.Children[2]
		} else {
			cls = t.Children[1]
		}
		f := newFragment(op, s)
		f.in.Ranges = collectRanges(cls)
		f.next = newFragment(Match, s)
		return f

	default:
		panic(&CodegenError{msg: "unsupported TERM production"})
	}
}

func genExpr(t *Node, s *genState) *fragment {
	f := genTerm(t.Children[0], s)
	if t.Prod == prodExprBare {
		return f
	}

	nonGreedy := t.Prod == prodExprNonGreedy
	op := t.Children[1].Tok.Sym

	switch op {
	case Star:
		//   a: split f c   (non-greedy: split c f)
		//   f: <body>
		//      jump a   (b)
		//   c: match
		a := newFragment(Split, s)
		b := newFragment(Jump, s)
		c := newFragment(Match, s)
		if nonGreedy {
			a.in.X, a.in.Y = c.id, f.id
		} else {
			a.in.X, a.in.Y = f.id, c.id
		}
		b.in.X = a.id
		a.next = f
		b.next = c
		join(a, b)
		return a

	case Plus:
		//   f: <body>
		//      split f b   (non-greedy: split b f)
		//   b: match
		a := newFragment(Split, s)
		b := newFragment(Match, s)
		if nonGreedy {
			a.in.X, a.in.Y = b.id, f.id
		} else {
			a.in.X, a.in.Y = f.id, b.id
		}
		join(f, a)
		a.next = b
		return f

	case Question:
		//      split f b   (non-greedy: split b f)
		//   f: <body>
		//   b: match
		a := newFragment(Split, s)
		b := newFragment(Match, s)
		if nonGreedy {
			a.in.X, a.in.Y = b.id, f.id
		} else {
			a.in.X, a.in.Y = f.id, b.id
		}
		a.next = f
		join(f, b)
		return a

	default:
		panic(&CodegenError{msg: fmt.Sprintf("unsupported EXPR quantifier: %s", op)})
	}
}

func genSub(t *Node, s *genState) *fragment {
	e := genExpr(t.Children[0], s)
	if t.Prod == prodSubMore {
		rest := genSub(t.Children[1], s)
		join(e, rest)
	}
	return e
}

func genRegex(t *Node, s *genState) *fragment {
	sub := genSub(t.Children[0], s)
	if t.Prod != prodRegexAlt {
		return sub
	}

	//      split s r
	//   s: <sub>
	//      jump m     (j)
	//   r: <rest>
	//   m: match
	r := genRegex(t.Children[2], s)

	pre := newFragment(Split, s)
	pre.in.X, pre.in.Y = sub.id, r.id
	pre.next = sub

	m := newFragment(Match, s)
	j := newFragment(Jump, s)
	j.in.X = m.id
	j.next = r

	join(j, m)
	join(pre, j)
	return pre
}

// Generate lowers a parse tree into a flat, fully-resolved Program.
// Fragment identifiers are assigned densely from zero and resolved to
// array indices only in this final flattening pass, ported from
// original_source/src/codegen.c:codegen().
func Generate(tree *Node) Program {
	s := &genState{}
	f := genRegex(tree, s)

	n := 0
	for c := f; c != nil; c = c.next {
		n++
	}

	targets := make([]int, s.id)
	i := 0
	for c := f; c != nil; c = c.next {
		targets[c.id] = i
		i++
	}

	prog := make(Program, n)
	i = 0
	for c := f; c != nil; c = c.next {
		prog[i] = c.in
		if prog[i].Op == Jump || prog[i].Op == Split {
			prog[i].X = targets[c.in.X]
		}
		if prog[i].Op == Split {
			prog[i].Y = targets[c.in.Y]
		}
		i++
	}
	return prog
}
