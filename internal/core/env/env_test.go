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

package env

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestAddGetLocal(t *testing.T) {
	e := Fresh[int]()
	e.Add("x", 1)
	v, ok := e.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 1))
}

func TestChildSeesParent(t *testing.T) {
	parent := Fresh[int]()
	parent.Add("x", 1)
	child := Child(parent)
	v, ok := child.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 1))
}

// TestMergePropagatesAssignment checks the merge-back law of spec.md §3: a
// child's assignment to an inherited name is visible in the parent after
// Merge.
func TestMergePropagatesAssignment(t *testing.T) {
	parent := Fresh[int]()
	parent.Add("x", 1)
	child := Child(parent)
	child.Set("x", 2)
	parent.Merge(child)

	v, ok := parent.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 2))
}

// TestMergeDiscardsNewDeclarations checks the other half of the merge-back
// law: a name the child declared for itself does not leak into the parent.
func TestMergeDiscardsNewDeclarations(t *testing.T) {
	parent := Fresh[int]()
	child := Child(parent)
	child.Add("y", 7)
	parent.Merge(child)

	_, ok := parent.Get("y")
	qt.Assert(t, qt.IsFalse(ok))
}

// TestShadowingDoesNotLeak checks that a child re-declaring a name it
// inherited (shadowing) keeps the parent's binding untouched, since a
// shadowed Add lands in the child's own new tier, not its outer tier.
func TestShadowingDoesNotLeak(t *testing.T) {
	parent := Fresh[int]()
	parent.Add("x", 1)
	child := Child(parent)
	child.Add("x", 99)
	parent.Merge(child)

	v, ok := parent.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 1))
}

func TestSetOnOwnDeclarationStaysLocal(t *testing.T) {
	parent := Fresh[int]()
	child := Child(parent)
	child.Add("z", 1)
	child.Set("z", 2)
	parent.Merge(child)

	_, ok := parent.Get("z")
	qt.Assert(t, qt.IsFalse(ok))
}

// TestAdoptKeepsNewDeclarations checks Adopt's difference from Merge: a
// name the child declared for itself does persist into the parent, for
// callers (a REPL session) where the child represents one whole
// incremental unit of input rather than a nested block or call.
func TestAdoptKeepsNewDeclarations(t *testing.T) {
	parent := Fresh[int]()
	child := Child(parent)
	child.Add("y", 7)
	parent.Adopt(child)

	v, ok := parent.Get("y")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 7))
}

// TestAdoptAlsoPropagatesAssignment checks Adopt still folds back
// mutations to inherited names, same as Merge.
func TestAdoptAlsoPropagatesAssignment(t *testing.T) {
	parent := Fresh[int]()
	parent.Add("x", 1)
	child := Child(parent)
	child.Set("x", 2)
	parent.Adopt(child)

	v, ok := parent.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 2))
}
