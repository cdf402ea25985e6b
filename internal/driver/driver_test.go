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

package driver

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"
)

// TestRunScenarios runs the six end-to-end programs of spec.md §8 and
// checks their stdout against the documented output.
func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"arithmetic precedence",
			`Int: x = 1 + 2 * 3; print(x);`,
			"7\n",
		},
		{
			"list size and negative index",
			`Int[]: xs = [1;2;3]; Int: s = size(xs); print(xs[-1] + s);`,
			"6\n",
		},
		{
			"recursive function",
			`Int: fact(Int: n) { if (n <= 1) { Int: r = 1; } else { Int: r = n * fact(n - 1); } return r; } print(fact(5));`,
			"120\n",
		},
		{
			"nroot",
			`Float: f = nroot(27; 3); print(f);`,
			"3.0\n",
		},
		{
			"string concatenation",
			`String: s = "ab" + "cd"; print(size(s));`,
			"4\n",
		},
		{
			"for loop accumulation",
			`Int: n = 0; for (Int: i = 0; i < 5; i = i + 1) { n = n + i; } print(n);`,
			"10\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run([]byte(tt.src), &out, nil)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(out.String(), tt.want))
		})
	}
}

func TestSessionPersistsAcrossLines(t *testing.T) {
	var out bytes.Buffer
	sess := NewSession(&out)

	qt.Assert(t, qt.IsNil(sess.Eval(`Int: x = 10;`)))
	qt.Assert(t, qt.IsNil(sess.Eval(`x = x + 5;`)))
	qt.Assert(t, qt.IsNil(sess.Eval(`print(x);`)))
	qt.Assert(t, qt.Equals(out.String(), "15\n"))
}

func TestSessionRejectsButSurvivesBadLine(t *testing.T) {
	var out bytes.Buffer
	sess := NewSession(&out)

	qt.Assert(t, qt.IsNil(sess.Eval(`Int: x = 1;`)))
	qt.Assert(t, qt.IsNotNil(sess.Eval(`x = "oops";`)))
	qt.Assert(t, qt.IsNil(sess.Eval(`print(x);`)))
	qt.Assert(t, qt.Equals(out.String(), "1\n"))
}

func TestRunPropagatesTypeError(t *testing.T) {
	var out bytes.Buffer
	err := Run([]byte(`Int: x = "not an int";`), &out, nil)
	qt.Assert(t, qt.IsNotNil(err))
}
