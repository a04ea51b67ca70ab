// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pikeregex

import "fmt"

// Parser is a recursive-descent parser over the regex grammar. It never
// returns a partial tree: any failure panics with a *SyntaxError, which
// Compile recovers at its boundary — the same panic/recover-at-the-
// boundary idiom cznic-regexp/parser.go's parse() uses.
type Parser struct {
	lex *Lexer
}

// NewParser creates a parser over an already-primed lexer (its first
// token must already have been read via Nextsym).
func NewParser(lex *Lexer) *Parser { return &Parser{lex: lex} }

// Parse parses a full pattern and returns its parse tree, or panics with
// a *SyntaxError.
func Parse(pattern []byte) *Node {
	lex := NewLexer(pattern)
	lex.Nextsym()
	p := NewParser(lex)
	tree := p.regex()
	if p.cur().Sym == Eof && lex.TrailingBackslash {
		panic(&SyntaxError{msg: "trailing backslash at end of pattern"})
	}
	p.expect(Eof)
	return tree
}

func (p *Parser) cur() Token { return p.lex.Current() }

// accept consumes and returns true if the current token has symbol s.
func (p *Parser) accept(s Sym) bool {
	if p.cur().Sym == s {
		p.lex.Nextsym()
		return true
	}
	return false
}

// expect consumes the current token if it has symbol s, else panics.
func (p *Parser) expect(s Sym) {
	if p.cur().Sym == s {
		p.lex.Nextsym()
		return
	}
	panic(&SyntaxError{msg: fmt.Sprintf("expected %s, got %s", s, p.cur().Sym)})
}

// TERM → char | '.' | '-' | '^' | special
//      | '(' REGEX ')'
//      | '[' CLASS ']'
//      | '[' '^' CLASS ']'
func (p *Parser) term() *Node {
	switch p.cur().Sym {
	case CharSym, Special, Minus, Caret, Dot:
		tok := p.cur()
		p.lex.Nextsym()
		return nonTerminalNode(TERM, prodTermLiteral, 1, terminalNode(tok))

	case LParen:
		open := p.cur()
		p.lex.Nextsym()
		sub := p.regex()
		p.expect(RParen)
		closeTok := p.lex.Prev()
		return nonTerminalNode(TERM, prodTermGroup, 3,
			terminalNode(open), sub, terminalNode(closeTok))

	case LBracket:
		open := p.cur()
		p.lex.Nextsym()
		if p.accept(Caret) {
			negated := p.lex.Prev()
			cls := p.class()
			if cls == nil {
				panic(&SyntaxError{msg: fmt.Sprintf("CLASS: unexpected %s", p.cur().Sym)})
			}
			p.expect(RBracket)
			closeTok := p.lex.Prev()
			return nonTerminalNode(TERM, prodTermNClass, 4,
				terminalNode(open), terminalNode(negated), cls, terminalNode(closeTok))
		}
		cls := p.class()
		if cls == nil {
			panic(&SyntaxError{msg: fmt.Sprintf("CLASS: unexpected %s", p.cur().Sym)})
		}
		p.expect(RBracket)
		closeTok := p.lex.Prev()
		return nonTerminalNode(TERM, prodTermClass, 3,
			terminalNode(open), cls, terminalNode(closeTok))

	default:
		if p.cur().Sym == Eof && p.lex.TrailingBackslash {
			panic(&SyntaxError{msg: "trailing backslash at end of pattern"})
		}
		panic(&SyntaxError{msg: fmt.Sprintf("TERM: unexpected %s", p.cur().Sym)})
	}
}

// EXPR → TERM | TERM '+' '?'? | TERM '*' '?'? | TERM '?' '?'?
func (p *Parser) expr() *Node {
	t := p.term()
	switch p.cur().Sym {
	case Plus, Star, Question:
		opTok := p.cur()
		p.lex.Nextsym()
		if p.accept(Question) {
			return nonTerminalNode(EXPR, prodExprNonGreedy, 3, t, terminalNode(opTok), terminalNode(Token{Question, '?'}))
		}
		return nonTerminalNode(EXPR, prodExprGreedy, 2, t, terminalNode(opTok))
	default:
		return nonTerminalNode(EXPR, prodExprBare, 1, t)
	}
}

// SUB → EXPR | EXPR SUB, right-linear, pruned of its trailing empty leaf.
func (p *Parser) sub() *Node {
	head := p.expr()
	if p.subEnds() {
		return nonTerminalNode(SUB, prodSubOne, 1, head)
	}
	tail := p.sub()
	return nonTerminalNode(SUB, prodSubMore, 2, head, tail)
}

func (p *Parser) subEnds() bool {
	switch p.cur().Sym {
	case Eof, RParen, Pipe:
		return true
	default:
		return false
	}
}

// REGEX → SUB | SUB '|' REGEX
func (p *Parser) regex() *Node {
	s := p.sub()
	if p.cur().Sym == Pipe {
		pipeTok := p.cur()
		p.lex.Nextsym()
		rest := p.regex()
		return nonTerminalNode(REGEXnt, prodRegexAlt, 3, s, terminalNode(pipeTok), rest)
	}
	return nonTerminalNode(REGEXnt, prodRegexOne, 1, s)
}

// isCCHAR reports whether sym is reinterpreted as a literal character
// inside a CLASS: every meta-character except '[', ']' and '-' is a plain
// CCHAR there ('-' is handled by class itself).
func isCCHAR(sym Sym) bool {
	switch sym {
	case CharSym, Dot, LParen, RParen, Plus, Star, Question, Pipe, Caret:
		return true
	default:
		return false
	}
}

// class parses a right-linear chain of CLASS productions: ranges
// (CCHAR '-' CCHAR), singles (CCHAR), and a lone trailing '-'. It returns
// nil when the chain terminates (current token is not a CCHAR or '-').
func (p *Parser) class() *Node {
	cur := p.cur()

	switch {
	case cur.Sym == Minus:
		p.lex.Nextsym()
		return nonTerminalNode(CLASS, prodClassDash, 1, terminalNode(cur))

	case isCCHAR(cur.Sym):
		c1 := cur
		t2 := p.lex.Nextsym()
		if t2.Sym == Minus {
			t3 := p.lex.Nextsym()
			if isCCHAR(t3.Sym) {
				p.lex.Nextsym()
				tail := p.class()
				if tail == nil {
					return nonTerminalNode(CLASS, prodClassRange, 2, terminalNode(c1), terminalNode(t3))
				}
				return nonTerminalNode(CLASS, prodClassRange, 3,
					terminalNode(c1), terminalNode(t3), tail)
			}
			// The '-' was not the start of a range: push the lookahead
			// token back and re-present Minus as current, then recurse
			p.lex.rewindMinus(t2, t3)
			tail := p.class()
			if tail == nil {
				return nonTerminalNode(CLASS, prodClassSingle, 1, terminalNode(c1))
			}
			return nonTerminalNode(CLASS, prodClassSingle, 2, terminalNode(c1), tail)
		}
		tail := p.class()
		if tail == nil {
			return nonTerminalNode(CLASS, prodClassSingle, 1, terminalNode(c1))
		}
		return nonTerminalNode(CLASS, prodClassSingle, 2, terminalNode(c1), tail)

	default:
		return nil
	}
}
