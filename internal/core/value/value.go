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

// Package value implements the runtime value algebra of spec.md §3/§4.4:
// a tagged union of Int, Float, Bool, String, List, and Tuple values.
// Booleans are held as Go bools and rendered as the exact textual markers
// "True"/"False" by print and toString, per spec.md §9.
package value

import (
	"strconv"
	"strings"
)

// Sort identifies which case of Value a Value occupies.
type Sort int

const (
	Int Sort = iota
	Float
	Bool
	String
	List
	Tuple
)

// Value is a runtime value. Only the field matching Sort is meaningful.
type Value struct {
	Sort Sort
	I    int64
	F    float64
	B    bool
	S    string
	L    []Value
}

func MkInt(i int64) Value      { return Value{Sort: Int, I: i} }
func MkFloat(f float64) Value  { return Value{Sort: Float, F: f} }
func MkBool(b bool) Value      { return Value{Sort: Bool, B: b} }
func MkString(s string) Value  { return Value{Sort: String, S: s} }
func MkList(elems []Value) Value  { return Value{Sort: List, L: elems} }
func MkTuple(elems []Value) Value { return Value{Sort: Tuple, L: elems} }

// True and False are the canonical boolean markers of spec.md §9.
var (
	True  = MkBool(true)
	False = MkBool(false)
)

// BoolMarker renders a Bool value as "True" or "False".
func (v Value) BoolMarker() string {
	if v.B {
		return "True"
	}
	return "False"
}

// AsBool reports whether v is a Bool value and, if so, its Go bool. Values
// of any other sort, including Strings spelled "True"/"False", are not Bools.
func (v Value) AsBool() (bool, bool) {
	if v.Sort != Bool {
		return false, false
	}
	return v.B, true
}

// String renders v's canonical textual form, used by print and toString.
func (v Value) String() string {
	switch v.Sort {
	case Int:
		return strconv.FormatInt(v.I, 10)
	case Float:
		return formatFloat(v.F)
	case Bool:
		return v.BoolMarker()
	case String:
		return v.S
	case List:
		return "[" + joinValues(v.L) + "]"
	case Tuple:
		return "(" + joinValues(v.L) + ")"
	default:
		return "?"
	}
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ";")
}

// formatFloat always keeps at least one fractional digit, so 3.0 prints as
// "3.0" rather than Go's default "3" — matching the scenario in spec.md §8.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Size returns the element/character count of a List, Tuple, or String.
func (v Value) Size() int {
	switch v.Sort {
	case List, Tuple:
		return len(v.L)
	case String:
		return len(v.S)
	default:
		return 0
	}
}
