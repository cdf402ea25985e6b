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

package check_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"mlang.dev/go/internal/core/check"
	"mlang.dev/go/mlang/parser"
)

func mustCheck(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.ParseProgram([]byte(src))
	qt.Assert(t, qt.IsNil(err))
	return check.Check(prog)
}

func TestCheckAcceptsWellTypedPrograms(t *testing.T) {
	progs := []string{
		`Int: x = 1 + 2 * 3;`,
		`Int[]: xs = [1;2;3];`,
		`Float: f = 1 + 2.5;`,
		`Bool: b = 1 < 2;`,
		`(Int;Bool): t = (1;True);`,
		`Void: noop() { Int: x = 1; }`,
		`Int: id(Int: n) { return n; } Int: y = id(3);`,
	}
	for _, src := range progs {
		t.Run(src, func(t *testing.T) {
			qt.Assert(t, qt.IsNil(mustCheck(t, src)))
		})
	}
}

func TestCheckRejectsIllTypedPrograms(t *testing.T) {
	progs := []string{
		`Int: x = "nope";`,
		`Bool: b = 1 + 2;`,
		`Int[]: xs = [1;"a"];`,
		`Int: y = z;`,
		`Int: f(Int: n) { return n; } Int: z = f(1;2);`,
	}
	for _, src := range progs {
		t.Run(src, func(t *testing.T) {
			qt.Assert(t, qt.IsNotNil(mustCheck(t, src)))
		})
	}
}

// TestFloatWidening checks the "check(Float, Int) = true" law of spec.md §8
// holds through a real declaration.
func TestFloatWidening(t *testing.T) {
	qt.Assert(t, qt.IsNil(mustCheck(t, `Float: f = 3;`)))
}

// TestListHomogeneity checks that heterogeneous-but-unifiable list element
// types (Int and Float) are accepted and widened, per spec.md §8.
func TestListHomogeneity(t *testing.T) {
	qt.Assert(t, qt.IsNil(mustCheck(t, `Float[]: xs = [1;2.5;3];`)))
}
