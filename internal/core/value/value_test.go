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

package value

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestBoolMarkers(t *testing.T) {
	qt.Assert(t, qt.Equals(True.String(), "True"))
	qt.Assert(t, qt.Equals(False.String(), "False"))
}

func TestFloatStringHasDecimalPoint(t *testing.T) {
	qt.Assert(t, qt.Equals(MkFloat(3).String(), "3.0"))
	qt.Assert(t, qt.Equals(MkFloat(3.25).String(), "3.25"))
}

func TestListAndTupleRendering(t *testing.T) {
	l := MkList([]Value{MkInt(1), MkInt(2), MkInt(3)})
	qt.Assert(t, qt.Equals(l.String(), "[1;2;3]"))

	tup := MkTuple([]Value{MkInt(1), True})
	qt.Assert(t, qt.Equals(tup.String(), "(1;True)"))
}

func TestSizeOfToString(t *testing.T) {
	s := MkInt(12345).String()
	qt.Assert(t, qt.Equals(len(s), 5))
}

func TestSizeOfListAndString(t *testing.T) {
	l := MkList([]Value{MkInt(1), MkInt(2)})
	qt.Assert(t, qt.Equals(l.Size(), 2))
	qt.Assert(t, qt.Equals(MkString("hello").Size(), 5))
}
