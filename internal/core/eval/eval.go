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

// Package eval implements the tree-walking evaluator of spec.md §4.4. It
// mirrors internal/core/check node-for-node but executes over
// internal/core/value.Value instead of type descriptors, and maintains its
// own Env[value.Value] instance. Unlike the checker, which accumulates
// every violation it finds, the evaluator aborts eagerly on the first
// runtime error, per spec.md §7.
package eval

import (
	"io"
	"math"
	"os"

	"mlang.dev/go/internal/core/env"
	"mlang.dev/go/internal/core/value"
	"mlang.dev/go/mlang/ast"
	"mlang.dev/go/mlang/errors"
	"mlang.dev/go/mlang/token"
)

// Evaluator walks an AST, executing it against an environment of variable
// and function values. Out receives the text written by print.
type Evaluator struct {
	vars  *env.Env[value.Value]
	funcs *env.Env[*ast.FuncDecl]
	Out   io.Writer
}

// New creates a root Evaluator printing to os.Stdout.
func New() *Evaluator {
	return &Evaluator{
		vars:  env.Fresh[value.Value](),
		funcs: env.Fresh[*ast.FuncDecl](),
		Out:   os.Stdout,
	}
}

// Child creates an Evaluator whose scopes are nested in e's and which
// shares e's output sink.
func (e *Evaluator) Child() *Evaluator {
	return &Evaluator{
		vars:  env.Child(e.vars),
		funcs: env.Child(e.funcs),
		Out:   e.Out,
	}
}

// Merge folds a child Evaluator's environment mutations back into e.
func (e *Evaluator) Merge(child *Evaluator) {
	e.vars.Merge(child.vars)
	e.funcs.Merge(child.funcs)
}

// Adopt folds a child Evaluator's entire environment, including values it
// declared for itself, back into e. See Checker.Adopt: this is for a
// driver session folding back one whole REPL line, not a nested block or
// call whose own declarations should stay scoped to it.
func (e *Evaluator) Adopt(child *Evaluator) {
	e.vars.Adopt(child.vars)
	e.funcs.Adopt(child.funcs)
}

// Eval executes an entire, already type-checked program.
func Eval(prog *ast.Program, out io.Writer) error {
	e := New()
	if out != nil {
		e.Out = out
	}
	for _, s := range prog.Stmts {
		if err := e.EvalStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// EvalStmt executes a single statement.
func (e *Evaluator) EvalStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.VarDecl:
		v, err := e.EvalExpr(s.Value)
		if err != nil {
			return err
		}
		e.vars.Add(s.Name, v)
		return nil
	case *ast.Assign:
		v, err := e.EvalExpr(s.Value)
		if err != nil {
			return err
		}
		e.vars.Set(s.Name, v)
		return nil
	case *ast.FuncDecl:
		e.funcs.Add(s.Name, s)
		return nil
	case *ast.ExprStmt:
		_, err := e.EvalExpr(s.X)
		return err
	}
	return nil
}

// EvalExpr evaluates x and returns its value.
func (e *Evaluator) EvalExpr(x ast.Expr) (value.Value, error) {
	switch x := x.(type) {
	case *ast.IntLit:
		return value.MkInt(x.Value), nil
	case *ast.FloatLit:
		return value.MkFloat(x.Value), nil
	case *ast.BoolLit:
		return value.MkBool(x.Value), nil
	case *ast.StringLit:
		return value.MkString(x.Value), nil
	case *ast.Ident:
		v, ok := e.vars.Get(x.Name)
		if !ok {
			return value.Value{}, errors.Newf(errors.UndefinedName, x.Pos(), "undefined variable %q", x.Name)
		}
		return v, nil
	case *ast.ListLit:
		return e.evalList(x)
	case *ast.TupleLit:
		elems, err := e.evalExprs(x.Elems)
		if err != nil {
			return value.Value{}, err
		}
		return value.MkTuple(elems), nil
	case *ast.IndexExpr:
		return e.evalIndex(x)
	case *ast.UnaryExpr:
		return e.evalUnary(x)
	case *ast.BinaryExpr:
		return e.evalBinary(x)
	case *ast.SizeExpr:
		v, err := e.EvalExpr(x.X)
		if err != nil {
			return value.Value{}, err
		}
		return value.MkInt(int64(v.Size())), nil
	case *ast.ToStringExpr:
		v, err := e.EvalExpr(x.X)
		if err != nil {
			return value.Value{}, err
		}
		return value.MkString(v.String()), nil
	case *ast.NrootExpr:
		return e.evalNroot(x)
	case *ast.PrintExpr:
		v, err := e.EvalExpr(x.X)
		if err != nil {
			return value.Value{}, err
		}
		io.WriteString(e.Out, v.String()+"\n")
		return value.Value{}, nil
	case *ast.CallExpr:
		return e.evalCall(x)
	case *ast.IfExpr:
		return value.Value{}, e.evalIf(x)
	case *ast.WhileExpr:
		return value.Value{}, e.evalWhile(x)
	case *ast.ForExpr:
		return value.Value{}, e.evalFor(x)
	default:
		return value.Value{}, errors.Newf(errors.Unsupported, x.Pos(), "unsupported expression")
	}
}

func (e *Evaluator) evalExprs(xs []ast.Expr) ([]value.Value, error) {
	vs := make([]value.Value, len(xs))
	for i, x := range xs {
		v, err := e.EvalExpr(x)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func (e *Evaluator) evalList(x *ast.ListLit) (value.Value, error) {
	elems, err := e.evalExprs(x.Elems)
	if err != nil {
		return value.Value{}, err
	}
	return value.MkList(elems), nil
}

func (e *Evaluator) evalIndex(x *ast.IndexExpr) (value.Value, error) {
	xv, err := e.EvalExpr(x.X)
	if err != nil {
		return value.Value{}, err
	}
	iv, err := e.EvalExpr(x.Index)
	if err != nil {
		return value.Value{}, err
	}
	i := int(iv.I)

	switch xv.Sort {
	case value.List, value.Tuple:
		n := len(xv.L)
		idx := i
		if idx < 0 {
			idx += n
		}
		if idx < 0 || idx >= n {
			return value.Value{}, errors.Newf(errors.IndexOutOfBounds, x.Pos(), "index %d out of bounds for length %d", i, n)
		}
		return xv.L[idx], nil
	case value.String:
		n := len(xv.S)
		idx := i
		if idx < 0 {
			idx += n
		}
		if idx < 0 || idx >= n {
			return value.Value{}, errors.Newf(errors.IndexOutOfBounds, x.Pos(), "index %d out of bounds for length %d", i, n)
		}
		return value.MkString(string(xv.S[idx])), nil
	default:
		return value.Value{}, errors.Newf(errors.Unsupported, x.Pos(), "cannot index %v", xv)
	}
}

func asBool(v value.Value, pos token.Pos) (bool, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, errors.Newf(errors.NotBoolean, pos, "value is not a Bool: %v", v)
	}
	return b, nil
}

func (e *Evaluator) evalUnary(x *ast.UnaryExpr) (value.Value, error) {
	v, err := e.EvalExpr(x.X)
	if err != nil {
		return value.Value{}, err
	}
	switch x.Op {
	case token.SUB:
		switch v.Sort {
		case value.Int:
			return value.MkInt(-v.I), nil
		case value.Float:
			return value.MkFloat(-v.F), nil
		default:
			return value.Value{}, errors.Newf(errors.Unsupported, x.Pos(), "cannot negate %v", v)
		}
	case token.NOT:
		b, err := asBool(v, x.Pos())
		if err != nil {
			return value.Value{}, err
		}
		return value.MkBool(!b), nil
	default:
		return value.Value{}, errors.Newf(errors.Unsupported, x.Pos(), "unsupported unary operator")
	}
}

func asFloat(v value.Value) float64 {
	if v.Sort == value.Int {
		return float64(v.I)
	}
	return v.F
}

func (e *Evaluator) evalBinary(x *ast.BinaryExpr) (value.Value, error) {
	xv, err := e.EvalExpr(x.X)
	if err != nil {
		return value.Value{}, err
	}
	yv, err := e.EvalExpr(x.Y)
	if err != nil {
		return value.Value{}, err
	}
	bothInt := xv.Sort == value.Int && yv.Sort == value.Int

	switch x.Op {
	case token.ADD:
		switch {
		case xv.Sort == value.String && yv.Sort == value.String:
			return value.MkString(xv.S + yv.S), nil
		case xv.Sort == value.List && yv.Sort == value.List:
			out := make([]value.Value, 0, len(xv.L)+len(yv.L))
			out = append(out, xv.L...)
			out = append(out, yv.L...)
			return value.MkList(out), nil
		case bothInt:
			return value.MkInt(xv.I + yv.I), nil
		default:
			return value.MkFloat(asFloat(xv) + asFloat(yv)), nil
		}
	case token.SUB:
		if bothInt {
			return value.MkInt(xv.I - yv.I), nil
		}
		return value.MkFloat(asFloat(xv) - asFloat(yv)), nil
	case token.MUL:
		if bothInt {
			return value.MkInt(xv.I * yv.I), nil
		}
		return value.MkFloat(asFloat(xv) * asFloat(yv)), nil
	case token.QUO:
		return value.MkFloat(asFloat(xv) / asFloat(yv)), nil
	case token.POW:
		return value.MkFloat(math.Pow(asFloat(xv), asFloat(yv))), nil
	case token.KW_MOD:
		if bothInt {
			return value.MkInt(xv.I % yv.I), nil
		}
		return value.MkFloat(math.Mod(asFloat(xv), asFloat(yv))), nil
	case token.KW_DIV:
		return value.MkInt(int64(asFloat(xv) / asFloat(yv))), nil
	case token.EQL:
		return value.MkBool(valueEqual(xv, yv)), nil
	case token.NEQ:
		return value.MkBool(!valueEqual(xv, yv)), nil
	case token.LSS:
		return value.MkBool(asFloat(xv) < asFloat(yv)), nil
	case token.LEQ:
		return value.MkBool(asFloat(xv) <= asFloat(yv)), nil
	case token.GTR:
		return value.MkBool(asFloat(xv) > asFloat(yv)), nil
	case token.GEQ:
		return value.MkBool(asFloat(xv) >= asFloat(yv)), nil
	case token.LAND:
		xb, err := asBool(xv, x.X.Pos())
		if err != nil {
			return value.Value{}, err
		}
		yb, err := asBool(yv, x.Y.Pos())
		if err != nil {
			return value.Value{}, err
		}
		return value.MkBool(xb && yb), nil
	case token.LOR:
		xb, err := asBool(xv, x.X.Pos())
		if err != nil {
			return value.Value{}, err
		}
		yb, err := asBool(yv, x.Y.Pos())
		if err != nil {
			return value.Value{}, err
		}
		return value.MkBool(xb || yb), nil
	default:
		return value.Value{}, errors.Newf(errors.Unsupported, x.Pos(), "unsupported binary operator")
	}
}

func valueEqual(a, b value.Value) bool {
	if a.Sort != b.Sort {
		if numeric := (a.Sort == value.Int || a.Sort == value.Float) && (b.Sort == value.Int || b.Sort == value.Float); numeric {
			return asFloat(a) == asFloat(b)
		}
		return false
	}
	switch a.Sort {
	case value.Int:
		return a.I == b.I
	case value.Float:
		return a.F == b.F
	case value.Bool:
		return a.B == b.B
	case value.String:
		return a.S == b.S
	case value.List, value.Tuple:
		if len(a.L) != len(b.L) {
			return false
		}
		for i := range a.L {
			if !valueEqual(a.L[i], b.L[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (e *Evaluator) evalNroot(x *ast.NrootExpr) (value.Value, error) {
	xv, err := e.EvalExpr(x.X)
	if err != nil {
		return value.Value{}, err
	}
	nv, err := e.EvalExpr(x.N)
	if err != nil {
		return value.Value{}, err
	}
	base, n := asFloat(xv), asFloat(nv)
	r := math.Pow(base, 1/n)
	// math.Pow(27, 1.0/3) is 2.9999999999999996; snap to an exact integer
	// root when one exists so nroot(27; 3) yields 3.0.
	if rr := math.Round(r); math.Pow(rr, n) == base {
		r = rr
	}
	return value.MkFloat(r), nil
}

func (e *Evaluator) evalIf(x *ast.IfExpr) error {
	b, err := e.evalCond(x.Cond)
	if err != nil {
		return err
	}
	if b {
		child := e.Child()
		if err := child.evalBlock(x.Then); err != nil {
			return err
		}
		e.Merge(child)
		return nil
	}
	switch el := x.Else.(type) {
	case nil:
		return nil
	case *ast.IfExpr:
		return e.evalIf(el)
	case *ast.ElseExpr:
		child := e.Child()
		if err := child.evalBlock(el.Body); err != nil {
			return err
		}
		e.Merge(child)
		return nil
	}
	return nil
}

func (e *Evaluator) evalCond(x ast.Expr) (bool, error) {
	v, err := e.EvalExpr(x)
	if err != nil {
		return false, err
	}
	return asBool(v, x.Pos())
}

func (e *Evaluator) evalBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := e.EvalStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalWhile(x *ast.WhileExpr) error {
	for {
		b, err := e.evalCond(x.Cond)
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
		child := e.Child()
		if err := child.evalBlock(x.Body); err != nil {
			return err
		}
		e.Merge(child)
	}
}

func (e *Evaluator) evalFor(x *ast.ForExpr) error {
	iter := e.Child()
	if err := iter.EvalStmt(x.Init); err != nil {
		return err
	}
	for {
		b, err := iter.evalCond(x.Cond)
		if err != nil {
			return err
		}
		if !b {
			break
		}
		body := iter.Child()
		if err := body.evalBlock(x.Body); err != nil {
			return err
		}
		iter.Merge(body)
		if err := iter.EvalStmt(x.Step); err != nil {
			return err
		}
	}
	e.Merge(iter)
	return nil
}

func (e *Evaluator) evalCall(x *ast.CallExpr) (value.Value, error) {
	fn, ok := e.funcs.Get(x.Fun)
	if !ok {
		return value.Value{}, errors.Newf(errors.UndefinedName, x.Pos(), "undefined function %q", x.Fun)
	}
	if len(x.Args) != len(fn.Params) {
		return value.Value{}, errors.Newf(errors.ArityMismatch, x.Pos(), "%s expects %d argument(s), got %d", x.Fun, len(fn.Params), len(x.Args))
	}

	child := e.Child()
	for i, a := range x.Args {
		v, err := e.EvalExpr(a)
		if err != nil {
			return value.Value{}, err
		}
		child.vars.Add(fn.Params[i].Name, v)
	}
	if err := child.evalBlock(fn.Body); err != nil {
		return value.Value{}, err
	}

	_, isVoid := fn.ReturnType.(*ast.VoidType)
	if fn.ReturnType == nil || isVoid {
		e.Merge(child)
		return value.Value{}, nil
	}

	ret, err := child.EvalExpr(fn.Return)
	if err != nil {
		return value.Value{}, err
	}
	e.Merge(child)
	return ret, nil
}
