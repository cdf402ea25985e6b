// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package driver wires the parser, type checker, and evaluator together
// into the two entry points a real program needs: a one-shot Run over a
// whole source file, and a Session that keeps its environment alive
// across the repeated, incremental inputs of a REPL.
package driver

import (
	"io"
	"os"

	"mlang.dev/go/internal/core/check"
	"mlang.dev/go/internal/core/eval"
	"mlang.dev/go/mlang/parser"
)

// Debugger receives a label and a value for each intermediate artifact
// (the parsed program, say) produced along the pipeline, if non-nil. It
// exists so the driver itself carries no debug-printing dependency: the
// caller supplies one backed by whatever pretty-printer it likes.
type Debugger func(label string, v interface{})

// Run parses, type-checks, and then evaluates src as a complete program,
// writing anything the program prints to out. A nil out defaults to
// os.Stdout. If debug is non-nil it is called with the parsed *ast.Program
// before checking begins.
func Run(src []byte, out io.Writer, debug Debugger) error {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		return err
	}
	if debug != nil {
		debug("ast", prog)
	}
	if err := check.Check(prog); err != nil {
		return err
	}
	if out == nil {
		out = os.Stdout
	}
	return eval.Eval(prog, out)
}

// Session is a REPL: it holds the checker's and evaluator's environments
// open across calls to Eval, so a declaration made on one line is visible
// on the next. Each line is checked and evaluated in a child scope of the
// session's environments and adopted back — declarations and all, not
// just mutations to prior names — only if both succeed.
type Session struct {
	checker *check.Checker
	evaler  *eval.Evaluator
	Out     io.Writer
	Debug   Debugger
}

// NewSession creates a Session printing to out. A nil out defaults to
// os.Stdout.
func NewSession(out io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}
	ev := eval.New()
	ev.Out = out
	return &Session{
		checker: check.New(),
		evaler:  ev,
		Out:     out,
	}
}

// Eval parses line as a program of one or more statements, type-checks it against the
// session's accumulated variable and function types, and — only if that
// succeeds — evaluates it against the session's accumulated values. On
// either a parse, type, or runtime error nothing is merged back into the
// session, so a bad line leaves the REPL's state untouched.
func (s *Session) Eval(line string) error {
	prog, err := parser.ParseProgram([]byte(line))
	if err != nil {
		return err
	}
	if s.Debug != nil {
		s.Debug("ast", prog)
	}

	checkChild := s.checker.Fork()
	for _, stmt := range prog.Stmts {
		checkChild.CheckStmt(stmt)
	}
	if err := checkChild.Errs(); err != nil {
		return err
	}

	evalChild := s.evaler.Child()
	for _, stmt := range prog.Stmts {
		if err := evalChild.EvalStmt(stmt); err != nil {
			return err
		}
	}

	s.checker.Adopt(checkChild)
	s.evaler.Adopt(evalChild)
	return nil
}
