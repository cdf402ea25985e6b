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

// Package types implements the structural type descriptor algebra: the
// closed variant set T (Int, Bool, Float, String, Void, List, Tuple) and
// its two total operations, Check (directional assignability) and Edit
// (symmetric join), as specified in spec.md §4.1.
package types

import "strings"

// Sort identifies which case of T a value occupies.
type Sort int

const (
	Int Sort = iota
	Bool
	Float
	String
	Void
	List
	Tuple
)

// T is a canonical, structurally comparable type descriptor. Elem is only
// meaningful when Sort == List; Elems only when Sort == Tuple.
type T struct {
	Sort  Sort
	Elem  *T
	Elems []T
}

func Prim(s Sort) T { return T{Sort: s} }

// MkList builds List(elem).
func MkList(elem T) T { return T{Sort: List, Elem: &elem} }

// MkTuple builds Tuple(elems...).
func MkTuple(elems ...T) T { return T{Sort: Tuple, Elems: elems} }

// Equal reports structural equality between two descriptors.
func Equal(a, b T) bool {
	if a.Sort != b.Sort {
		return false
	}
	switch a.Sort {
	case List:
		return Equal(*a.Elem, *b.Elem)
	case Tuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t T) String() string {
	switch t.Sort {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case Float:
		return "Float"
	case String:
		return "String"
	case Void:
		return "Void"
	case List:
		return t.Elem.String() + "[]"
	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ";") + ")"
	default:
		return "?"
	}
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t T) bool { return t.Sort == Int || t.Sort == Float }

// Check reports whether a value declared type R is assignable to a slot of
// type L, per spec.md §4.1.
func Check(l, r T) bool {
	switch {
	case Equal(l, r):
		return true
	case r.Sort == Void:
		return true
	case l.Sort == Float && r.Sort == Int:
		return true
	case l.Sort == List && r.Sort == List:
		return checkList(l, r)
	case l.Sort == Tuple && r.Sort == Tuple:
		return checkTuple(l, r)
	default:
		return false
	}
}

func checkList(l, r T) bool {
	for l.Sort == List && r.Sort == List {
		l, r = *l.Elem, *r.Elem
	}
	if r.Sort == Void {
		return true
	}
	if l.Sort == List || r.Sort == List {
		return false
	}
	return Check(l, r)
}

func checkTuple(l, r T) bool {
	if len(l.Elems) != len(r.Elems) {
		return false
	}
	for i := range l.Elems {
		if !Check(l.Elems[i], r.Elems[i]) {
			return false
		}
	}
	return true
}

// Edit computes the least upper bound of two occurrences of a type, used to
// unify heterogeneous element types (e.g. a list literal's elements, or the
// operands of a binary operator). The bool result is false if L and R are
// incompatible.
func Edit(l, r T) (T, bool) {
	switch {
	case Equal(l, r):
		return l, true
	case l.Sort == Void:
		return r, true
	case r.Sort == Void:
		return l, true
	case l.Sort == Int && r.Sort == Float, l.Sort == Float && r.Sort == Int:
		return Prim(Float), true
	case l.Sort == List && r.Sort == List:
		return editList(l, r)
	case l.Sort == Tuple && r.Sort == Tuple:
		return editTuple(l, r)
	default:
		return T{}, false
	}
}

func editList(l, r T) (T, bool) {
	wrap := 0
	for l.Sort == List && r.Sort == List {
		l, r = *l.Elem, *r.Elem
		wrap++
	}
	var elem T
	switch {
	case r.Sort == Void:
		elem = l
	case l.Sort == Void:
		elem = r
	case l.Sort == List || r.Sort == List:
		return T{}, false
	default:
		var ok bool
		elem, ok = Edit(l, r)
		if !ok {
			return T{}, false
		}
	}
	for i := 0; i < wrap; i++ {
		elem = MkList(elem)
	}
	return elem, true
}

func editTuple(l, r T) (T, bool) {
	if len(l.Elems) != len(r.Elems) {
		return T{}, false
	}
	elems := make([]T, len(l.Elems))
	for i := range l.Elems {
		e, ok := Edit(l.Elems[i], r.Elems[i])
		if !ok {
			return T{}, false
		}
		elems[i] = e
	}
	return MkTuple(elems...), true
}
