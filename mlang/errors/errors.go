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

// Package errors defines the shared error taxonomy used by the parser, type
// checker, and evaluator: ParseError, TypeError, UndefinedName,
// IndexOutOfBounds, NotBoolean, ArityMismatch, and Unsupported.
package errors

import (
	"fmt"
	"strings"

	"mlang.dev/go/mlang/token"
)

// Kind classifies an Error per the taxonomy of spec.md §7.
type Kind int

const (
	ParseError Kind = iota
	TypeError
	UndefinedName
	IndexOutOfBounds
	NotBoolean
	ArityMismatch
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case TypeError:
		return "TypeError"
	case UndefinedName:
		return "UndefinedName"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case NotBoolean:
		return "NotBoolean"
	case ArityMismatch:
		return "ArityMismatch"
	case Unsupported:
		return "Unsupported"
	default:
		return "Error"
	}
}

// Error is a single diagnostic with a position and a kind.
type Error struct {
	Kind Kind
	Pos  token.Pos
	msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Newf creates an Error of the given kind at pos with a formatted message.
func Newf(kind Kind, pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, msg: fmt.Sprintf(format, args...)}
}

// TypeMismatch builds the standard "expected X, got Y" TypeError.
func TypeMismatch(pos token.Pos, expected, got fmt.Stringer) *Error {
	return Newf(TypeError, pos, "expected %s, got %s", expected, got)
}

// List is an accumulating collection of Errors. The type checker uses it to
// report every violation found in a program rather than aborting on the
// first one; the zero value is an empty list ready to use.
type List []*Error

// Add appends err to the list. A nil err is a no-op.
func (l *List) Add(err *Error) {
	if err == nil {
		return
	}
	*l = append(*l, err)
}

// Err returns nil if l is empty, else l itself as an error.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}
