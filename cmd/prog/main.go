// Copyright 2017 The Regexp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command prog compiles a pattern (or loads a textual program) and runs
// it against one or more subjects, printing each match's end index and
// capture boundaries.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sbrennan/pikeregex"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("prog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showTokens := fs.Bool("tokens", false, "print the pattern's token stream and exit")
	showTree := fs.Bool("tree", false, "print the pattern's parse tree and exit")
	showProg := fs.Bool("prog", false, "print the compiled program and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-tokens|-tree|-prog] PATTERN subject [subject...]\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fs.Usage()
		return 1
	}
	pattern := rest[0]
	subjects := rest[1:]

	if *showTokens {
		if err := pikeregex.FprintTokens(stdout, []byte(pattern)); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
	if *showTree {
		var tree *pikeregex.Node
		err := func() (err error) {
			defer func() {
				if e := recover(); e != nil {
					err = fmt.Errorf("%v", e)
				}
			}()
			tree = pikeregex.Parse([]byte(pattern))
			return nil
		}()
		if err == nil {
			err = pikeregex.FprintTree(stdout, tree)
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	prog, err := loadProgram(pattern)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *showProg {
		if err := pikeregex.FprintProgram(stdout, prog); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if len(subjects) == 0 {
		fs.Usage()
		return 1
	}

	for _, subject := range subjects {
		end, captures, ok := pikeregex.Execute(prog, []byte(subject))
		if !ok {
			fmt.Fprintln(stdout, "no match")
			continue
		}
		fmt.Fprintf(stdout, "match(%d)", end)
		for i := 0; i+1 < len(captures); i += 2 {
			fmt.Fprintf(stdout, " (%d,%d)", captures[i], captures[i+1])
		}
		fmt.Fprintln(stdout)
	}
	return 0
}

// loadProgram parses pattern as a textual program if it names a readable
// file, and compiles it as a regex pattern otherwise.
func loadProgram(pattern string) (pikeregex.Program, error) {
	if f, err := os.Open(pattern); err == nil {
		defer f.Close()
		return pikeregex.ReadProgram(f)
	}
	return pikeregex.Compile([]byte(pattern))
}
