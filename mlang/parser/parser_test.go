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

package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"mlang.dev/go/mlang/ast"
)

func TestParseProgramAcceptsAllScenarios(t *testing.T) {
	srcs := []string{
		`Int: x = 1 + 2 * 3; print(x);`,
		`Int[]: xs = [1;2;3]; Int: s = size(xs); print(xs[-1] + s);`,
		`Int: fact(Int: n) { if (n <= 1) { Int: r = 1; } else { Int: r = n * fact(n - 1); } return r; } print(fact(5));`,
		`Float: f = nroot(27; 3); print(f);`,
		`String: s = "ab" + "cd"; print(size(s));`,
		`Int: n = 0; for (Int: i = 0; i < 5; i = i + 1) { n = n + i; } print(n);`,
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			prog, err := ParseProgram([]byte(src))
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.IsTrue(len(prog.Stmts) > 0))
		})
	}
}

func TestElifChainDesugarsToNestedIf(t *testing.T) {
	src := `if (1 < 2) { print(1); } elif (2 < 3) { print(2); } else { print(3); }`
	prog, err := ParseProgram([]byte(src))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(prog.Stmts), 1))

	stmt, ok := prog.Stmts[0].(*ast.ExprStmt)
	qt.Assert(t, qt.IsTrue(ok))
	outer, ok := stmt.X.(*ast.IfExpr)
	qt.Assert(t, qt.IsTrue(ok))

	elif, ok := outer.Else.(*ast.IfExpr)
	qt.Assert(t, qt.IsTrue(ok))

	els, ok := elif.Else.(*ast.ElseExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(els.Body), 1))
}

func TestParseErrorIsReported(t *testing.T) {
	_, err := ParseProgram([]byte(`Int: x = ;`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestVoidFunctionDeclHasNilReturn(t *testing.T) {
	prog, err := ParseProgram([]byte(`Void: show(Int: n) { print(n); }`))
	qt.Assert(t, qt.IsNil(err))
	fn, ok := prog.Stmts[0].(*ast.FuncDecl)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNil(fn.Return))
	qt.Assert(t, qt.Equals(len(fn.Body), 1))
}
