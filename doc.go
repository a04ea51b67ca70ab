// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pikeregex is a regular-expression engine built on the
// Thompson/Pike bytecode virtual-machine model. A pattern is compiled
// into a flat instruction array; an interpreter runs that array against
// a subject byte slice by simulating the equivalent nondeterministic
// finite automaton in lockstep, one input position at a time, which
// guarantees linear-time matching regardless of backtracking
// pathologies while still supporting capturing groups.
//
// The pipeline is four stages: a lexer tokenizes the pattern, a
// recursive-descent parser builds a parse tree, a code generator lowers
// the tree to a Program, and Execute runs the Program against a
// subject. Compile ties the first three together.
//
// Supported syntax: literal bytes, '.', grouping with '(' ')', greedy
// and non-greedy '*', '+', '?', alternation with '|', and character
// classes '[...]'/'[^...]'. Matching is anchored at the start of the
// subject; there is no implicit leading ".*", no anchors, no
// backreferences, no bounded repetition, and no Unicode beyond single
// bytes.
package pikeregex
