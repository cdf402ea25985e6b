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

// Package check implements the structural type checker of spec.md §4.3: it
// walks the same AST the evaluator walks and, for every expression node,
// yields a type descriptor (internal/core/types.T); statements yield
// nothing. The checker maintains its own Env[types.T] instance, separate
// from the evaluator's Env[value.Value], and accumulates every violation
// it finds into an errors.List rather than aborting at the first one.
package check

import (
	"mlang.dev/go/internal/core/env"
	"mlang.dev/go/internal/core/types"
	"mlang.dev/go/mlang/ast"
	"mlang.dev/go/mlang/errors"
	"mlang.dev/go/mlang/token"
)

// Checker walks an AST, maintaining an environment of variable and
// function types over the course of the walk.
type Checker struct {
	vars  *env.Env[types.T]
	funcs *env.Env[*ast.FuncDecl]
	errs  *errors.List
}

// New creates a root Checker with fresh, empty scopes.
func New() *Checker {
	return &Checker{
		vars:  env.Fresh[types.T](),
		funcs: env.Fresh[*ast.FuncDecl](),
		errs:  &errors.List{},
	}
}

// Child creates a Checker whose scopes are nested in c's, sharing c's
// error list so violations found anywhere in the walk are all reported.
func (c *Checker) Child() *Checker {
	return &Checker{
		vars:  env.Child(c.vars),
		funcs: env.Child(c.funcs),
		errs:  c.errs,
	}
}

// Merge folds a child Checker's environment mutations back into c, per
// spec.md §3's merge-back rule.
func (c *Checker) Merge(child *Checker) {
	c.vars.Merge(child.vars)
	c.funcs.Merge(child.funcs)
}

// Adopt folds a child Checker's entire environment, including names it
// declared for itself, back into c. Unlike Merge, which only folds back
// mutations to names c already owned (per the block-scoping merge-back
// rule), Adopt is for a driver session where child checked one whole
// incremental unit of input (a REPL line) whose declarations should
// persist in c as if they had been checked directly against c.
func (c *Checker) Adopt(child *Checker) {
	c.vars.Adopt(child.vars)
	c.funcs.Adopt(child.funcs)
}

// Fork creates a Checker nested in c's scopes like Child, but with its own
// empty error list instead of sharing c's. A driver checking one
// independent unit of input at a time (a REPL line) uses Fork so a bad
// line's errors don't linger and get reported again against the next one.
func (c *Checker) Fork() *Checker {
	return &Checker{
		vars:  env.Child(c.vars),
		funcs: env.Child(c.funcs),
		errs:  &errors.List{},
	}
}

// Errs returns the errors c has accumulated, or nil if there are none.
func (c *Checker) Errs() error {
	return c.errs.Err()
}

func (c *Checker) errorf(kind errors.Kind, pos token.Pos, format string, args ...interface{}) {
	c.errs.Add(errors.Newf(kind, pos, format, args...))
}

func (c *Checker) typeMismatch(pos token.Pos, expected, got types.T) {
	c.errs.Add(errors.TypeMismatch(pos, expected, got))
}

// Check type-checks an entire program and returns the accumulated errors,
// or nil if the program is well-typed.
func Check(prog *ast.Program) error {
	c := New()
	for _, s := range prog.Stmts {
		c.CheckStmt(s)
	}
	return c.errs.Err()
}

// fromAST converts a parsed type annotation into a types.T.
func fromAST(t ast.Type) types.T {
	switch t := t.(type) {
	case *ast.PrimType:
		switch t.Kind {
		case token.KW_INT:
			return types.Prim(types.Int)
		case token.KW_FLOAT:
			return types.Prim(types.Float)
		case token.KW_BOOL:
			return types.Prim(types.Bool)
		case token.KW_STRING:
			return types.Prim(types.String)
		}
		return types.Prim(types.Void)
	case *ast.VoidType:
		return types.Prim(types.Void)
	case *ast.ListType:
		return types.MkList(fromAST(t.Elem))
	case *ast.TupleType:
		elems := make([]types.T, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = fromAST(e)
		}
		return types.MkTuple(elems...)
	default:
		return types.Prim(types.Void)
	}
}

// CheckStmt type-checks a single top-level or block statement.
func (c *Checker) CheckStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.Assign:
		c.checkAssign(s)
	case *ast.FuncDecl:
		c.funcs.Add(s.Name, s)
	case *ast.ExprStmt:
		c.CheckExpr(s.X)
	}
}

func (c *Checker) checkVarDecl(s *ast.VarDecl) {
	declared := fromAST(s.DeclType)
	got := c.CheckExpr(s.Value)
	if !types.Check(declared, got) {
		c.typeMismatch(s.Value.Pos(), declared, got)
	}
	c.vars.Add(s.Name, declared)
}

func (c *Checker) checkAssign(s *ast.Assign) {
	declared, ok := c.vars.Get(s.Name)
	if !ok {
		c.errorf(errors.UndefinedName, s.Pos(), "undefined variable %q", s.Name)
		c.CheckExpr(s.Value)
		return
	}
	got := c.CheckExpr(s.Value)
	if !types.Check(declared, got) {
		c.typeMismatch(s.Value.Pos(), declared, got)
	}
}

func voidT() types.T { return types.Prim(types.Void) }

// CheckExpr type-checks e and returns its type, types.Void on error.
func (c *Checker) CheckExpr(e ast.Expr) types.T {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.Prim(types.Int)
	case *ast.FloatLit:
		return types.Prim(types.Float)
	case *ast.BoolLit:
		return types.Prim(types.Bool)
	case *ast.StringLit:
		return types.Prim(types.String)
	case *ast.Ident:
		t, ok := c.vars.Get(e.Name)
		if !ok {
			c.errorf(errors.UndefinedName, e.Pos(), "undefined variable %q", e.Name)
			return voidT()
		}
		return t
	case *ast.ListLit:
		return c.checkListLit(e)
	case *ast.TupleLit:
		elems := make([]types.T, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = c.CheckExpr(el)
		}
		return types.MkTuple(elems...)
	case *ast.IndexExpr:
		return c.checkIndex(e)
	case *ast.UnaryExpr:
		return c.checkUnary(e)
	case *ast.BinaryExpr:
		return c.checkBinary(e)
	case *ast.SizeExpr:
		return c.checkSize(e)
	case *ast.ToStringExpr:
		c.CheckExpr(e.X)
		return types.Prim(types.String)
	case *ast.NrootExpr:
		return c.checkNroot(e)
	case *ast.PrintExpr:
		c.CheckExpr(e.X)
		return voidT()
	case *ast.CallExpr:
		return c.checkCall(e)
	case *ast.IfExpr:
		c.checkIf(e)
		return voidT()
	case *ast.WhileExpr:
		c.checkWhile(e)
		return voidT()
	case *ast.ForExpr:
		c.checkFor(e)
		return voidT()
	default:
		return voidT()
	}
}

func (c *Checker) checkListLit(e *ast.ListLit) types.T {
	if len(e.Elems) == 0 {
		return types.MkList(voidT())
	}
	acc := c.CheckExpr(e.Elems[0])
	for _, el := range e.Elems[1:] {
		t := c.CheckExpr(el)
		joined, ok := types.Edit(acc, t)
		if !ok {
			c.errorf(errors.TypeError, el.Pos(), "incompatible list element type: %s vs %s", acc, t)
			continue
		}
		acc = joined
	}
	return types.MkList(acc)
}

func (c *Checker) checkIndex(e *ast.IndexExpr) types.T {
	xt := c.CheckExpr(e.X)
	it := c.CheckExpr(e.Index)
	if !types.Check(types.Prim(types.Int), it) {
		c.errorf(errors.TypeError, e.Index.Pos(), "expected Int index, got %s", it)
	}
	switch xt.Sort {
	case types.List:
		return *xt.Elem
	case types.Tuple:
		return voidT()
	case types.String:
		return types.Prim(types.String)
	default:
		c.errorf(errors.TypeError, e.X.Pos(), "cannot index into %s", xt)
		return voidT()
	}
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) types.T {
	t := c.CheckExpr(e.X)
	switch e.Op {
	case token.SUB:
		if !types.Check(types.Prim(types.Float), t) {
			c.errorf(errors.TypeError, e.X.Pos(), "expected numeric operand, got %s", t)
			return voidT()
		}
		return t
	case token.NOT:
		if !types.Check(types.Prim(types.Bool), t) {
			c.errorf(errors.TypeError, e.X.Pos(), "expected Bool, got %s", t)
			return voidT()
		}
		return types.Prim(types.Bool)
	default:
		return voidT()
	}
}

func (c *Checker) checkBinary(e *ast.BinaryExpr) types.T {
	xt := c.CheckExpr(e.X)
	yt := c.CheckExpr(e.Y)
	bothNumeric := types.IsNumeric(xt) && types.IsNumeric(yt)
	bothInt := xt.Sort == types.Int && yt.Sort == types.Int

	switch e.Op {
	case token.ADD:
		switch {
		case bothInt:
			return types.Prim(types.Int)
		case bothNumeric:
			return types.Prim(types.Float)
		case xt.Sort == types.String && yt.Sort == types.String:
			return types.Prim(types.String)
		case xt.Sort == types.List && yt.Sort == types.List:
			joined, ok := types.Edit(xt, yt)
			if !ok {
				c.errorf(errors.TypeError, e.Pos(), "'%s + %s' is not supported", xt, yt)
				return voidT()
			}
			return joined
		default:
			c.errorf(errors.TypeError, e.Pos(), "'%s + %s' is not supported", xt, yt)
			return voidT()
		}
	case token.SUB:
		if bothInt {
			return types.Prim(types.Int)
		}
		if bothNumeric {
			return types.Prim(types.Float)
		}
		c.errorf(errors.TypeError, e.Pos(), "'%s - %s' is not supported", xt, yt)
		return voidT()
	case token.MUL:
		if !bothNumeric {
			c.errorf(errors.TypeError, e.Pos(), "'%s * %s' is not supported", xt, yt)
			return voidT()
		}
		if bothInt {
			return types.Prim(types.Int)
		}
		return types.Prim(types.Float)
	case token.QUO:
		if !bothNumeric {
			c.errorf(errors.TypeError, e.Pos(), "'%s / %s' is not supported", xt, yt)
			return voidT()
		}
		return types.Prim(types.Float)
	case token.POW:
		if !bothNumeric {
			c.errorf(errors.TypeError, e.Pos(), "'%s ^ %s' is not supported", xt, yt)
			return voidT()
		}
		return types.Prim(types.Float)
	case token.KW_MOD:
		if !bothNumeric {
			c.errorf(errors.TypeError, e.Pos(), "'%s mod %s' is not supported", xt, yt)
			return voidT()
		}
		if bothInt {
			return types.Prim(types.Int)
		}
		return types.Prim(types.Float)
	case token.KW_DIV:
		if !bothNumeric {
			c.errorf(errors.TypeError, e.Pos(), "'%s div %s' is not supported", xt, yt)
			return voidT()
		}
		return types.Prim(types.Int)
	case token.EQL, token.NEQ:
		return types.Prim(types.Bool)
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		if !bothNumeric {
			c.errorf(errors.TypeError, e.Pos(), "'%s' comparison needs numeric operands, got %s and %s", e.Op, xt, yt)
		}
		return types.Prim(types.Bool)
	case token.LAND, token.LOR:
		if xt.Sort != types.Bool || yt.Sort != types.Bool {
			c.errorf(errors.TypeError, e.Pos(), "expected Bool operands, got %s and %s", xt, yt)
		}
		return types.Prim(types.Bool)
	default:
		return voidT()
	}
}

func (c *Checker) checkSize(e *ast.SizeExpr) types.T {
	t := c.CheckExpr(e.X)
	switch t.Sort {
	case types.List, types.Tuple, types.String:
		return types.Prim(types.Int)
	default:
		c.errorf(errors.TypeError, e.X.Pos(), "size() requires a List, Tuple, or String, got %s", t)
		return voidT()
	}
}

func (c *Checker) checkNroot(e *ast.NrootExpr) types.T {
	xt := c.CheckExpr(e.X)
	nt := c.CheckExpr(e.N)
	if !types.IsNumeric(xt) || !types.IsNumeric(nt) {
		c.errorf(errors.TypeError, e.Pos(), "nroot requires numeric operands, got %s and %s", xt, nt)
	}
	return types.Prim(types.Float)
}

func (c *Checker) checkIf(e *ast.IfExpr) {
	ct := c.CheckExpr(e.Cond)
	if ct.Sort != types.Bool {
		c.errorf(errors.TypeError, e.Cond.Pos(), "if condition must be Bool, got %s", ct)
	}
	child := c.Child()
	for _, s := range e.Then {
		child.CheckStmt(s)
	}
	c.Merge(child)

	switch el := e.Else.(type) {
	case nil:
	case *ast.IfExpr:
		c.checkIf(el)
	case *ast.ElseExpr:
		ec := c.Child()
		for _, s := range el.Body {
			ec.CheckStmt(s)
		}
		c.Merge(ec)
	}
}

func (c *Checker) checkWhile(e *ast.WhileExpr) {
	ct := c.CheckExpr(e.Cond)
	if ct.Sort != types.Bool {
		c.errorf(errors.TypeError, e.Cond.Pos(), "while condition must be Bool, got %s", ct)
	}
	child := c.Child()
	for _, s := range e.Body {
		child.CheckStmt(s)
	}
	c.Merge(child)
}

func (c *Checker) checkFor(e *ast.ForExpr) {
	iter := c.Child()
	iter.checkVarDecl(e.Init)

	ct := iter.CheckExpr(e.Cond)
	if ct.Sort != types.Bool {
		c.errorf(errors.TypeError, e.Cond.Pos(), "for condition must be Bool, got %s", ct)
	}

	body := iter.Child()
	for _, s := range e.Body {
		body.CheckStmt(s)
	}
	iter.Merge(body)

	iter.checkAssign(e.Step)

	c.Merge(iter)
}

func (c *Checker) checkCall(e *ast.CallExpr) types.T {
	fn, ok := c.funcs.Get(e.Fun)
	if !ok {
		c.errorf(errors.UndefinedName, e.Pos(), "undefined function %q", e.Fun)
		for _, a := range e.Args {
			c.CheckExpr(a)
		}
		return voidT()
	}
	if len(e.Args) != len(fn.Params) {
		c.errorf(errors.ArityMismatch, e.Pos(), "%s expects %d argument(s), got %d", e.Fun, len(fn.Params), len(e.Args))
		for _, a := range e.Args {
			c.CheckExpr(a)
		}
		return voidT()
	}

	child := c.Child()
	for i, a := range e.Args {
		got := c.CheckExpr(a)
		want := fromAST(fn.Params[i].Type)
		if !types.Check(want, got) {
			c.errorf(errors.TypeError, a.Pos(), "argument %d of %s: expected %s, got %s", i+1, e.Fun, want, got)
		}
		child.vars.Add(fn.Params[i].Name, want)
	}
	for _, s := range fn.Body {
		child.CheckStmt(s)
	}

	isVoid := fn.ReturnType == nil
	if _, ok := fn.ReturnType.(*ast.VoidType); ok {
		isVoid = true
	}
	if isVoid {
		c.Merge(child)
		return voidT()
	}

	wantRet := fromAST(fn.ReturnType)
	gotRet := child.CheckExpr(fn.Return)
	if !types.Check(wantRet, gotRet) {
		c.errorf(errors.TypeError, fn.Return.Pos(), "%s: expected return %s, got %s", e.Fun, wantRet, gotRet)
		return voidT()
	}
	c.Merge(child)
	return wantRet
}
