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

// Package ast declares the types used to represent the syntax tree of an
// mlang program: type nodes, expression nodes (including the control-flow
// constructs, which the grammar treats as expression forms), and the three
// statement forms (declaration, assignment, bare expression).
package ast

import (
	"strings"

	"mlang.dev/go/mlang/token"
)

// ----------------------------------------------------------------------------
// Interfaces

// A Node is any node in the syntax tree.
type Node interface {
	Pos() token.Pos
}

// A Type node spells a declared type: a primitive, Void, or a composite
// List/Tuple built from other Type nodes.
type Type interface {
	Node
	typeNode()
	String() string
}

// An Expr is implemented by all expression nodes, including print and the
// control-flow forms (if/elif/else, while, for), which the grammar groups
// under the expr production.
type Expr interface {
	Node
	exprNode()
}

// A Stmt is implemented by the three statement forms a program is built
// from: var/function declarations, assignment, and bare expressions.
type Stmt interface {
	Node
	stmtNode()
}

// A Program is a sequence of semicolon-terminated top-level statements.
type Program struct {
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Types

type PrimType struct {
	TPos token.Pos
	Kind token.Kind // token.KW_INT, KW_FLOAT, KW_BOOL, or KW_STRING
}

type VoidType struct {
	TPos token.Pos
}

type ListType struct {
	TPos token.Pos
	Elem Type
}

type TupleType struct {
	TPos  token.Pos
	Elems []Type
}

func (t *PrimType) typeNode()  {}
func (t *VoidType) typeNode()  {}
func (t *ListType) typeNode()  {}
func (t *TupleType) typeNode() {}

func (t *PrimType) Pos() token.Pos  { return t.TPos }
func (t *VoidType) Pos() token.Pos  { return t.TPos }
func (t *ListType) Pos() token.Pos  { return t.TPos }
func (t *TupleType) Pos() token.Pos { return t.TPos }

func (t *PrimType) String() string { return t.Kind.String() }
func (t *VoidType) String() string { return "Void" }
func (t *ListType) String() string { return t.Elem.String() + "[]" }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ";") + ")"
}

// ----------------------------------------------------------------------------
// Expressions

type Ident struct {
	NamePos token.Pos
	Name    string
}

type IntLit struct {
	ValuePos token.Pos
	Value    int64
}

type FloatLit struct {
	ValuePos token.Pos
	Value    float64
}

type BoolLit struct {
	ValuePos token.Pos
	Value    bool
}

type StringLit struct {
	ValuePos token.Pos
	Value    string
}

// ListLit is a bracketed, semicolon-separated literal: [e1;e2;...].
type ListLit struct {
	Lbrack token.Pos
	Elems  []Expr
}

// TupleLit is a parenthesized, semicolon-separated literal: (e1;e2;...).
type TupleLit struct {
	Lparen token.Pos
	Elems  []Expr
}

// IndexExpr is e[i], valid on List, Tuple, and String operands.
type IndexExpr struct {
	X     Expr
	Index Expr
}

// UnaryExpr covers prefix '-' (numeric negation) and '!' (boolean not).
type UnaryExpr struct {
	OpPos token.Pos
	Op    token.Kind
	X     Expr
}

// BinaryExpr covers +, -, *, /, ^, mod, div, comparisons, ==, !=, &&, ||.
type BinaryExpr struct {
	X     Expr
	OpPos token.Pos
	Op    token.Kind
	Y     Expr
}

// CallExpr is a user function call f(a1;a2;...).
type CallExpr struct {
	Fun    string
	FunPos token.Pos
	Args   []Expr
}

// SizeExpr is size(e): length of a List, Tuple, or String.
type SizeExpr struct {
	KwPos token.Pos
	X     Expr
}

// ToStringExpr is toString(e).
type ToStringExpr struct {
	KwPos token.Pos
	X     Expr
}

// NrootExpr is nroot(x; n): the n-th root of x.
type NrootExpr struct {
	KwPos token.Pos
	X, N  Expr
}

// PrintExpr is print(e): prints e's canonical textual form and a newline.
type PrintExpr struct {
	KwPos token.Pos
	X     Expr
}

// IfExpr is if(cond){then} [elif(cond){then}]* [else{else}]?. elif chains
// are desugared by the parser into a nested IfExpr held in Else.
type IfExpr struct {
	IfPos token.Pos
	Cond  Expr
	Then  []Stmt
	Else  Expr // nil, *IfExpr (elif), or a plain block wrapped in ElseExpr
}

// ElseExpr wraps a trailing else{...} block so it can be held in an IfExpr's
// Else field alongside a desugared elif (*IfExpr).
type ElseExpr struct {
	ElsePos token.Pos
	Body    []Stmt
}

type WhileExpr struct {
	WhilePos token.Pos
	Cond     Expr
	Body     []Stmt
}

// ForExpr is for(init; cond; step){body}. Init is always a *VarDecl and
// Step always an *Assign, matching the grammar's decl/assign restriction.
type ForExpr struct {
	ForPos token.Pos
	Init   *VarDecl
	Cond   Expr
	Step   *Assign
	Body   []Stmt
}

func (*Ident) exprNode()        {}
func (*IntLit) exprNode()       {}
func (*FloatLit) exprNode()     {}
func (*BoolLit) exprNode()      {}
func (*StringLit) exprNode()    {}
func (*ListLit) exprNode()      {}
func (*TupleLit) exprNode()     {}
func (*IndexExpr) exprNode()    {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*SizeExpr) exprNode()     {}
func (*ToStringExpr) exprNode() {}
func (*NrootExpr) exprNode()    {}
func (*PrintExpr) exprNode()    {}
func (*IfExpr) exprNode()       {}
func (*ElseExpr) exprNode()     {}
func (*WhileExpr) exprNode()    {}
func (*ForExpr) exprNode()      {}

func (x *Ident) Pos() token.Pos        { return x.NamePos }
func (x *IntLit) Pos() token.Pos       { return x.ValuePos }
func (x *FloatLit) Pos() token.Pos     { return x.ValuePos }
func (x *BoolLit) Pos() token.Pos      { return x.ValuePos }
func (x *StringLit) Pos() token.Pos    { return x.ValuePos }
func (x *ListLit) Pos() token.Pos      { return x.Lbrack }
func (x *TupleLit) Pos() token.Pos     { return x.Lparen }
func (x *IndexExpr) Pos() token.Pos    { return x.X.Pos() }
func (x *UnaryExpr) Pos() token.Pos    { return x.OpPos }
func (x *BinaryExpr) Pos() token.Pos   { return x.X.Pos() }
func (x *CallExpr) Pos() token.Pos     { return x.FunPos }
func (x *SizeExpr) Pos() token.Pos     { return x.KwPos }
func (x *ToStringExpr) Pos() token.Pos { return x.KwPos }
func (x *NrootExpr) Pos() token.Pos    { return x.KwPos }
func (x *PrintExpr) Pos() token.Pos    { return x.KwPos }
func (x *IfExpr) Pos() token.Pos       { return x.IfPos }
func (x *ElseExpr) Pos() token.Pos     { return x.ElsePos }
func (x *WhileExpr) Pos() token.Pos    { return x.WhilePos }
func (x *ForExpr) Pos() token.Pos      { return x.ForPos }

// ----------------------------------------------------------------------------
// Statements

// Param is one "type : name" entry in a function's parameter list.
type Param struct {
	Type Type
	Name string
}

// VarDecl is "type : name = expr", also used as a for-loop's init clause.
type VarDecl struct {
	DeclType Type
	Name     string
	NamePos  token.Pos
	Value    Expr
}

// Assign is "name = expr", also used as a for-loop's step clause.
type Assign struct {
	Name    string
	NamePos token.Pos
	Value   Expr
}

// FuncDecl installs a function. Body is nil for the decl-only form (body is
// just the return statement); Return is nil for Void functions.
type FuncDecl struct {
	FuncPos    token.Pos
	ReturnType Type // *VoidType for a Void function
	Name       string
	Params     []Param
	Body       []Stmt
	Return     Expr
}

// ExprStmt is a bare expression used as a statement: a call, print, or one
// of the control-flow expression forms.
type ExprStmt struct {
	X Expr
}

func (*VarDecl) stmtNode()  {}
func (*Assign) stmtNode()   {}
func (*FuncDecl) stmtNode() {}
func (*ExprStmt) stmtNode() {}

func (s *VarDecl) Pos() token.Pos  { return s.NamePos }
func (s *Assign) Pos() token.Pos   { return s.NamePos }
func (s *FuncDecl) Pos() token.Pos { return s.FuncPos }
func (s *ExprStmt) Pos() token.Pos { return s.X.Pos() }
