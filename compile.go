// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import (
	"fmt"
	"io"
)

// Compile lexes, parses, and generates code for pattern, returning the
// resulting Program. Any panic raised during parsing or code generation
// — a *SyntaxError or *CodegenError — is recovered here and returned as
// an error; no partial program ever escapes a failed call. The
// recover-and-wrap idiom is lifted from cznic-regexp/parser.go's
// parse().
func Compile(pattern []byte) (prog Program, err error) {
	defer func() {
		if e := recover(); e != nil {
			prog = nil
			if asErr, ok := e.(error); ok {
				err = asErr
				return
			}
			err = fmt.Errorf("regex compile error: %v", e)
		}
	}()

	tree := Parse(pattern)
	return Generate(tree), nil
}

// MustCompile is like Compile but panics if pattern cannot be compiled.
// It simplifies safe initialization of global variables holding compiled
// programs.
func MustCompile(pattern string) Program {
	prog, err := Compile([]byte(pattern))
	if err != nil {
		panic(`pikeregex: Compile(` + quotePattern(pattern) + `): ` + err.Error())
	}
	return prog
}

func quotePattern(s string) string { return `"` + s + `"` }

// FprintTokens writes the token stream produced by lexing pattern, one
// token per line, to w.
func FprintTokens(w io.Writer, pattern []byte) error {
	lex := NewLexer(pattern)
	for {
		tok := lex.Nextsym()
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
		if tok.Sym == Eof {
			return nil
		}
	}
}

// FprintTree writes an indented rendering of a parse tree to w.
func FprintTree(w io.Writer, n *Node) error {
	return fprintTree(w, n, 0)
}

func fprintTree(w io.Writer, n *Node, depth int) error {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if n.IsTerminal() {
		_, err := fmt.Fprintf(w, "%s%s\n", indent, n.Tok)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, n.NT); err != nil {
		return err
	}
	for i := 0; i < n.NChildren; i++ {
		if err := fprintTree(w, n.Children[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FprintProgram writes prog in the textual assembly format ReadProgram
// accepts, to w.
func FprintProgram(w io.Writer, prog Program) error {
	return WriteProgram(w, prog)
}
