// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

// thread is one live automaton state: a program counter and the capture
// slots accumulated to reach it.
type thread struct {
	pc    int
	saved []int
}

// threadList is a sparse/dense set of threads, capacity bounded by the
// program length: at most one thread per pc is ever live at a given input
// position. Indexing by pc instead of stamping a "last seen" generation
// on the instruction itself (as the historical VM scratch field did)
// means the set lives entirely inside one Execute call, so a compiled
// Program carries no mutable state and is safe for concurrent Execute
// calls. Ported from cznic-regexp/vm.go's threadList.
type threadList struct {
	dense  []thread
	sparse []int
	len    int
}

func newThreadList(n int) *threadList {
	return &threadList{
		dense:  make([]thread, n),
		sparse: make([]int, n),
	}
}

func (l *threadList) reset() {
	l.len = 0
}

func (l *threadList) has(pc int) bool {
	i := l.sparse[pc]
	return i < l.len && l.dense[i].pc == pc
}

func (l *threadList) add(t thread) {
	l.dense[l.len] = t
	l.sparse[t.pc] = l.len
	l.len++
}

// addThread computes the epsilon closure of pc: it follows Jump, Split,
// and Save without consuming input, and appends a thread to list for
// every consuming opcode or Match it reaches. Split's x branch is always
// explored before y, which is what gives x priority when both eventually
// reach Match (the greedy/non-greedy ordering invariant).
func addThread(prog Program, list *threadList, pc int, saved []int, sp int) {
	if list.has(pc) {
		return
	}

	switch prog[pc].Op {
	case Jump:
		list.add(thread{pc: pc})
		addThread(prog, list, prog[pc].X, saved, sp)

	case Split:
		list.add(thread{pc: pc})
		addThread(prog, list, prog[pc].X, saved, sp)
		cp := make([]int, len(saved))
		copy(cp, saved)
		addThread(prog, list, prog[pc].Y, cp, sp)

	case Save:
		list.add(thread{pc: pc})
		cp := make([]int, len(saved))
		copy(cp, saved)
		cp[prog[pc].S] = sp
		addThread(prog, list, pc+1, cp, sp)

	default: // Char, Any, Range, NRange, Match
		list.add(thread{pc: pc, saved: saved})
	}
}

// step consumes one input byte (or the end-of-subject condition when ok
// is false) against every thread in clist, in priority order, enqueueing
// survivors into nlist via their epsilon closure. clist holds the
// threads alive after consuming curSP bytes of input; nlist, once built,
// holds the threads alive after curSP+1.
//
// Reaching a Match entry while scanning clist means every higher-priority
// thread has already been given its turn this step (their continuations,
// if any, are already queued in nlist) — so the match is recorded and the
// scan stops immediately, exactly as original_source/src/pike.c's
// execute() does with its "case Match: stash(...); match = sp; goto
// cont;". Any remaining clist entries are strictly lower priority than
// this Match and must not be allowed to later overwrite it.
func step(prog Program, clist, nlist *threadList, c byte, ok bool, curSP int) (matchedSaved []int, matchedEnd int, matched bool) {
	nlist.reset()
	for i := 0; i < clist.len; i++ {
		t := clist.dense[i]
		in := &prog[t.pc]
		switch in.Op {
		case Char:
			if ok && c == in.C {
				addThread(prog, nlist, t.pc+1, t.saved, curSP+1)
			}
		case Any:
			if ok {
				addThread(prog, nlist, t.pc+1, t.saved, curSP+1)
			}
		case Range:
			if ok && rangeContains(in.Ranges, c) {
				addThread(prog, nlist, t.pc+1, t.saved, curSP+1)
			}
		case NRange:
			if ok && !rangeContains(in.Ranges, c) {
				addThread(prog, nlist, t.pc+1, t.saved, curSP+1)
			}
		case Match:
			return t.saved, curSP, true
		case Jump, Split, Save:
			// bookkeeping entries only, already expanded into nlist (or
			// not) when this list was built by addThread.
		default:
			panic(&ProgramError{msg: "unexpected opcode in thread list: " + in.Op.String()})
		}
	}
	return nil, 0, false
}

// Execute runs prog against subject, anchored at position 0 (no implicit
// leading ".*"). It reports the match found by the highest-priority
// thread to reach Match at each input position: stepping continues for
// as long as any thread survives, and a Match recorded at a later
// position always comes from a thread that was still alive — and so
// still competitive — after every earlier Match was recorded.
func Execute(prog Program, subject []byte) (end int, captures []int, ok bool) {
	n := len(prog)
	clist := newThreadList(n)
	nlist := newThreadList(n)

	nCap := prog.NumCaptures()
	start := make([]int, nCap)
	for i := range start {
		start[i] = -1
	}

	addThread(prog, clist, 0, start, 0)

	matched := false
	var bestSaved []int
	bestEnd := 0

	for curSP := 0; clist.len > 0; curSP++ {
		var c byte
		have := curSP < len(subject)
		if have {
			c = subject[curSP]
		}
		if saved, e, m := step(prog, clist, nlist, c, have, curSP); m {
			matched = true
			bestSaved = saved
			bestEnd = e
		}
		clist, nlist = nlist, clist
		if !have {
			break
		}
	}

	if !matched {
		return 0, nil, false
	}
	return bestEnd, bestSaved, true
}
