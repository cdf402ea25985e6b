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

package types

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		l, r T
		ok   bool
	}{
		{"same prim", Prim(Int), Prim(Int), true},
		{"widen int to float", Prim(Float), Prim(Int), true},
		{"narrow float to int", Prim(Int), Prim(Float), false},
		{"void assignable anywhere", Prim(String), Prim(Void), true},
		{"list of void into list of int", MkList(Prim(Int)), MkList(Prim(Void)), true},
		{"list element mismatch", MkList(Prim(Int)), MkList(Prim(String)), false},
		{"tuple pointwise", MkTuple(Prim(Int), Prim(Bool)), MkTuple(Prim(Int), Prim(Bool)), true},
		{"tuple arity mismatch", MkTuple(Prim(Int)), MkTuple(Prim(Int), Prim(Bool)), false},
		{"bool into int", Prim(Int), Prim(Bool), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(Check(tt.l, tt.r), tt.ok))
		})
	}
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name    string
		l, r    T
		want    T
		wantOk  bool
	}{
		{"same prim", Prim(Int), Prim(Int), Prim(Int), true},
		{"int float widen", Prim(Int), Prim(Float), Prim(Float), true},
		{"float int widen", Prim(Float), Prim(Int), Prim(Float), true},
		{"void identity left", Prim(Void), Prim(String), Prim(String), true},
		{"void identity right", Prim(Bool), Prim(Void), Prim(Bool), true},
		{"incompatible prims", Prim(Bool), Prim(String), T{}, false},
		{"list join", MkList(Prim(Int)), MkList(Prim(Float)), MkList(Prim(Float)), true},
		{"nested void list", MkList(MkList(Prim(Void))), MkList(MkList(Prim(Int))), MkList(MkList(Prim(Int))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Edit(tt.l, tt.r)
			qt.Assert(t, qt.Equals(ok, tt.wantOk))
			if tt.wantOk {
				qt.Assert(t, qt.IsTrue(Equal(got, tt.want)), qt.Commentf("got %s, want %s", got, tt.want))
			}
		})
	}
}

// TestEditCommutative checks the commutativity law claimed by spec.md §8:
// Edit(a, b) == Edit(b, a) whenever both sides agree on success.
func TestEditCommutative(t *testing.T) {
	cases := []T{Prim(Int), Prim(Float), Prim(Bool), Prim(String), Prim(Void), MkList(Prim(Int))}
	for _, a := range cases {
		for _, b := range cases {
			got1, ok1 := Edit(a, b)
			got2, ok2 := Edit(b, a)
			qt.Assert(t, qt.Equals(ok1, ok2), qt.Commentf("%s vs %s", a, b))
			if ok1 {
				qt.Assert(t, qt.IsTrue(Equal(got1, got2)), qt.Commentf("%s vs %s", a, b))
			}
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		t    T
		want string
	}{
		{Prim(Int), "Int"},
		{Prim(Void), "Void"},
		{MkList(Prim(Bool)), "Bool[]"},
		{MkTuple(Prim(Int), Prim(String)), "(Int;String)"},
		{MkList(MkTuple(Prim(Int))), "(Int)[]"},
	}
	for _, tt := range tests {
		qt.Assert(t, qt.Equals(tt.t.String(), tt.want))
	}
}
