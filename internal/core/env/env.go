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

// Package env implements the two-tier lexical environment of spec.md §3/
// §4.2: a scope holds names introduced in it (new) separately from names
// it inherited from its parent (outer), and a child scope's mutations of
// inherited names are propagated back to the parent on Merge while its own
// new declarations are not. Env is generic so the same machinery serves
// the type checker (Env[types.T]) and the evaluator (Env[value.Value]).
package env

// Env is a two-tier scope holding one namespace of names (variables or
// functions; callers keep a pair of Envs, one per namespace).
type Env[V any] struct {
	new   map[string]V
	outer map[string]V
}

// Fresh returns a new, empty root Env.
func Fresh[V any]() *Env[V] {
	return &Env[V]{new: map[string]V{}, outer: map[string]V{}}
}

// Child creates a scope nested in parent: parent's combined (outer ∪ new)
// bindings become the child's outer bindings, and the child starts with no
// new bindings of its own.
func Child[V any](parent *Env[V]) *Env[V] {
	c := Fresh[V]()
	for k, v := range parent.outer {
		c.outer[k] = v
	}
	for k, v := range parent.new {
		c.outer[k] = v
	}
	return c
}

// Add binds name in the current scope's new tier: this is how a fresh
// declaration (vardecl, function param, for-loop iterator) is introduced.
func (e *Env[V]) Add(name string, v V) {
	e.new[name] = v
}

// Set updates an existing binding for name: if name was already shadowed
// in this scope's new tier, that slot is updated; otherwise the update
// goes straight into this scope's outer tier, which is exactly what Merge
// reads back into the parent. This is how assignment to an inherited
// variable is recorded without also re-declaring it locally.
func (e *Env[V]) Set(name string, v V) {
	if _, ok := e.new[name]; ok {
		e.new[name] = v
	} else {
		e.outer[name] = v
	}
}

// Get looks up name, checking new before outer.
func (e *Env[V]) Get(name string) (V, bool) {
	if v, ok := e.new[name]; ok {
		return v, true
	}
	v, ok := e.outer[name]
	return v, ok
}

// Merge folds child's mutations back into e: for every (name, value) in
// child's outer tier, if name is one of e's own new declarations that slot
// is updated, otherwise e's inherited copy of name is updated. New names
// child declared for itself (child.new entries not also in child.outer)
// are discarded, per spec.md §3's merge-back rule.
func (e *Env[V]) Merge(child *Env[V]) {
	for name, v := range child.outer {
		if _, ok := e.new[name]; ok {
			e.new[name] = v
		} else {
			e.outer[name] = v
		}
	}
}

// Adopt folds every binding of child into e, including the declarations
// child made for itself in its own new tier. Merge's discard of a child's
// new declarations is a block-scoping rule: a name declared inside an if
// or a function body has no business surviving past it. Adopt is for a
// caller where the child represents one whole incremental unit of source
// that should take effect against e exactly as if it had run directly
// against e — a REPL line, say — so a fresh declaration persists rather
// than vanishing at the end of the line that made it.
func (e *Env[V]) Adopt(child *Env[V]) {
	e.Merge(child)
	for name, v := range child.new {
		e.new[name] = v
	}
}
