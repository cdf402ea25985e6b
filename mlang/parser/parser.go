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

// Package parser implements a recursive-descent parser that turns mlang
// source text into an *ast.Program, per the grammar sketch in spec.md §6.
// The parser is a mechanical front end: it is exercised by the driver but
// is not part of the type checker/evaluator core this repository's tests
// focus on.
package parser

import (
	"strconv"

	"mlang.dev/go/mlang/ast"
	"mlang.dev/go/mlang/errors"
	"mlang.dev/go/mlang/scanner"
	"mlang.dev/go/mlang/token"
)

func parseInt(text string) int64 {
	v, _ := strconv.ParseInt(text, 10, 64)
	return v
}

func parseFloat(text string) float64 {
	v, _ := strconv.ParseFloat(text, 64)
	return v
}

type parser struct {
	sc   scanner.Scanner
	tok  token.Token
	errs errors.List
}

// ParseProgram parses src as a full mlang program.
func ParseProgram(src []byte) (*ast.Program, error) {
	p := &parser{}
	p.sc.Init(src)
	p.next()

	prog := &ast.Program{}
	for p.tok.Kind != token.EOF {
		s := p.parseStmt()
		if s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
		if p.errs.Err() != nil {
			return nil, p.errs.Err()
		}
	}
	return prog, p.errs.Err()
}

func (p *parser) next() {
	t, err := p.sc.Scan()
	if err != nil {
		p.errs.Add(errors.Newf(errors.ParseError, token.NoPos, "%s", err))
		p.tok = token.Token{Kind: token.EOF}
		return
	}
	p.tok = t
}

func (p *parser) errf(pos token.Pos, format string, args ...interface{}) {
	p.errs.Add(errors.Newf(errors.ParseError, pos, format, args...))
}

func (p *parser) expect(k token.Kind) token.Token {
	t := p.tok
	if t.Kind != k {
		p.errf(t.Pos, "expected %s, got %s %q", k, t.Kind, t.Text)
	}
	p.next()
	return t
}

// ----------------------------------------------------------------------------
// Statements

// parseStmt parses one semicolon-terminated top-level or block statement.
func (p *parser) parseStmt() ast.Stmt {
	if p.startsType() {
		return p.parseTypedStmt()
	}
	if p.tok.Kind == token.KW_VOID {
		ret := &ast.VoidType{TPos: p.tok.Pos}
		p.next()
		p.expect(token.COLON)
		return p.parseFuncDecl(ret)
	}
	if p.tok.Kind == token.IDENT {
		// Could be an assignment ("x = e;") or a bare expression statement.
		save := p.tok
		ident := p.parseIdent()
		if p.tok.Kind == token.ASSIGN {
			p.next()
			val := p.parseExpr()
			p.expect(token.SEMI)
			return &ast.Assign{Name: ident.Name, NamePos: save.Pos, Value: val}
		}
		x := p.parsePrimaryFrom(ident)
		x = p.parseBinaryExprFrom(x, 0)
		return p.finishExprStmt(x)
	}
	x := p.parseExpr()
	return p.finishExprStmt(x)
}

// finishExprStmt wraps x as an ExprStmt, consuming a trailing ';' unless x
// is one of the brace-delimited control-flow forms, which the grammar
// never terminates with a semicolon.
func (p *parser) finishExprStmt(x ast.Expr) ast.Stmt {
	switch x.(type) {
	case *ast.IfExpr, *ast.WhileExpr, *ast.ForExpr:
	default:
		p.expect(token.SEMI)
	}
	return &ast.ExprStmt{X: x}
}

// startsType reports whether the current token begins a type, i.e. this
// statement is a var or function declaration.
func (p *parser) startsType() bool {
	switch p.tok.Kind {
	case token.KW_INT, token.KW_FLOAT, token.KW_BOOL, token.KW_STRING, token.LPAREN:
		return true
	}
	return false
}

// parseTypedStmt parses "type : name = expr ;" or a typed function
// declaration, both of which start with a Type.
func (p *parser) parseTypedStmt() ast.Stmt {
	t := p.parseType()
	p.expect(token.COLON)
	if t != nil && isFuncAhead(p) {
		return p.parseFuncDecl(t)
	}
	nameTok := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	val := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.VarDecl{DeclType: t, Name: nameTok.Text, NamePos: nameTok.Pos, Value: val}
}

// isFuncAhead peeks past "IDENT (" to distinguish a function declaration
// from a variable declaration; both start with "type : IDENT".
func isFuncAhead(p *parser) bool {
	// The identifier has not yet been consumed; a function decl's IDENT is
	// always followed directly by '(', which peekIsCall checks by scanning
	// one token ahead on a copy of the scanner.
	return p.peekIsCall()
}

// peekIsCall scans ahead without consuming tokens beyond a cheap clone of
// the scanner state, reporting whether IDENT '(' follows.
func (p *parser) peekIsCall() bool {
	if p.tok.Kind != token.IDENT {
		return false
	}
	clone := p.sc
	t, err := clone.Scan()
	return err == nil && t.Kind == token.LPAREN
}

func (p *parser) parseFuncDecl(ret ast.Type) ast.Stmt {
	pos := ret.Pos()
	nameTok := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	params := p.parseParams()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	_, isVoid := ret.(*ast.VoidType)
	if isVoid {
		body := p.parseStmtsUntilBrace()
		p.expect(token.RBRACE)
		return &ast.FuncDecl{FuncPos: pos, ReturnType: ret, Name: nameTok.Text, Params: params, Body: body}
	}

	// Typed function: either "{ returnStmt }" (decl-only) or
	// "{ program returnStmt }".
	var body []ast.Stmt
	for !p.atReturn() && p.tok.Kind != token.RBRACE && p.tok.Kind != token.EOF {
		body = append(body, p.parseStmt())
	}
	p.expect(token.KW_RETURN)
	retExpr := p.parseExpr()
	p.expect(token.SEMI)
	p.expect(token.RBRACE)
	return &ast.FuncDecl{FuncPos: pos, ReturnType: ret, Name: nameTok.Text, Params: params, Body: body, Return: retExpr}
}

func (p *parser) atReturn() bool { return p.tok.Kind == token.KW_RETURN }

func (p *parser) parseParams() []ast.Param {
	var params []ast.Param
	for p.tok.Kind != token.RPAREN {
		t := p.parseType()
		p.expect(token.COLON)
		name := p.expect(token.IDENT)
		params = append(params, ast.Param{Type: t, Name: name.Text})
		if p.tok.Kind == token.SEMI {
			p.next()
		} else {
			break
		}
	}
	return params
}

func (p *parser) parseStmtsUntilBrace() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok.Kind != token.RBRACE && p.tok.Kind != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

// ----------------------------------------------------------------------------
// Types

func (p *parser) parseType() ast.Type {
	var t ast.Type
	pos := p.tok.Pos
	switch p.tok.Kind {
	case token.KW_INT, token.KW_FLOAT, token.KW_BOOL, token.KW_STRING:
		t = &ast.PrimType{TPos: pos, Kind: p.tok.Kind}
		p.next()
	case token.KW_VOID:
		t = &ast.VoidType{TPos: pos}
		p.next()
	case token.LPAREN:
		p.next()
		var elems []ast.Type
		for p.tok.Kind != token.RPAREN {
			elems = append(elems, p.parseType())
			if p.tok.Kind == token.SEMI {
				p.next()
			} else {
				break
			}
		}
		p.expect(token.RPAREN)
		t = &ast.TupleType{TPos: pos, Elems: elems}
	default:
		p.errf(pos, "expected a type, got %s %q", p.tok.Kind, p.tok.Text)
		p.next()
		return &ast.VoidType{TPos: pos}
	}
	for p.tok.Kind == token.LBRACK {
		p.next()
		p.expect(token.RBRACK)
		t = &ast.ListType{TPos: pos, Elem: t}
	}
	return t
}

// ----------------------------------------------------------------------------
// Expressions

func (p *parser) parseIdent() *ast.Ident {
	t := p.expect(token.IDENT)
	return &ast.Ident{NamePos: t.Pos, Name: t.Text}
}

func (p *parser) parseExpr() ast.Expr {
	switch p.tok.Kind {
	case token.KW_PRINT:
		return p.parsePrint()
	case token.KW_IF:
		return p.parseIf()
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_FOR:
		return p.parseFor()
	default:
		return p.parseBinaryExpr(0)
	}
}

func (p *parser) parsePrint() ast.Expr {
	pos := p.tok.Pos
	p.next()
	p.expect(token.LPAREN)
	x := p.parseExpr()
	p.expect(token.RPAREN)
	return &ast.PrintExpr{KwPos: pos, X: x}
}

func (p *parser) parseIf() ast.Expr {
	pos := p.tok.Pos
	p.next()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	then := p.parseStmtsUntilBrace()
	p.expect(token.RBRACE)

	ifExpr := &ast.IfExpr{IfPos: pos, Cond: cond, Then: then}

	switch p.tok.Kind {
	case token.KW_ELIF:
		elifPos := p.tok.Pos
		p.next()
		p.expect(token.LPAREN)
		elifCond := p.parseExpr()
		p.expect(token.RPAREN)
		p.expect(token.LBRACE)
		elifThen := p.parseStmtsUntilBrace()
		p.expect(token.RBRACE)
		nested := &ast.IfExpr{IfPos: elifPos, Cond: elifCond, Then: elifThen}
		ifExpr.Else = p.parseElifTail(nested)
	case token.KW_ELSE:
		elsePos := p.tok.Pos
		p.next()
		p.expect(token.LBRACE)
		body := p.parseStmtsUntilBrace()
		p.expect(token.RBRACE)
		ifExpr.Else = &ast.ElseExpr{ElsePos: elsePos, Body: body}
	}
	return ifExpr
}

// parseElifTail attaches any further elif/else clauses onto the nested
// IfExpr produced for a single elif, so a chain of elifs desugars into
// nested IfExprs as described in SPEC_FULL.md §4.1.
func (p *parser) parseElifTail(nested *ast.IfExpr) ast.Expr {
	switch p.tok.Kind {
	case token.KW_ELIF:
		elifPos := p.tok.Pos
		p.next()
		p.expect(token.LPAREN)
		cond := p.parseExpr()
		p.expect(token.RPAREN)
		p.expect(token.LBRACE)
		then := p.parseStmtsUntilBrace()
		p.expect(token.RBRACE)
		next := &ast.IfExpr{IfPos: elifPos, Cond: cond, Then: then}
		nested.Else = p.parseElifTail(next)
		return nested
	case token.KW_ELSE:
		elsePos := p.tok.Pos
		p.next()
		p.expect(token.LBRACE)
		body := p.parseStmtsUntilBrace()
		p.expect(token.RBRACE)
		nested.Else = &ast.ElseExpr{ElsePos: elsePos, Body: body}
		return nested
	default:
		return nested
	}
}

func (p *parser) parseWhile() ast.Expr {
	pos := p.tok.Pos
	p.next()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	body := p.parseStmtsUntilBrace()
	p.expect(token.RBRACE)
	return &ast.WhileExpr{WhilePos: pos, Cond: cond, Body: body}
}

func (p *parser) parseFor() ast.Expr {
	pos := p.tok.Pos
	p.next()
	p.expect(token.LPAREN)
	initStmt := p.parseTypedStmt()
	init, _ := initStmt.(*ast.VarDecl)
	cond := p.parseExpr()
	p.expect(token.SEMI)
	name := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	stepVal := p.parseExpr()
	step := &ast.Assign{Name: name.Text, NamePos: name.Pos, Value: stepVal}
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	body := p.parseStmtsUntilBrace()
	p.expect(token.RBRACE)
	return &ast.ForExpr{ForPos: pos, Init: init, Cond: cond, Step: step, Body: body}
}

// precedence gives the binding power of each binary operator; 0 means "not
// a binary operator".
func precedence(k token.Kind) int {
	switch k {
	case token.LOR:
		return 1
	case token.LAND:
		return 2
	case token.EQL, token.NEQ:
		return 3
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		return 4
	case token.ADD, token.SUB:
		return 5
	case token.MUL, token.QUO, token.KW_MOD, token.KW_DIV:
		return 6
	case token.POW:
		return 7
	default:
		return 0
	}
}

func (p *parser) parseBinaryExpr(prec1 int) ast.Expr {
	x := p.parseUnaryExpr()
	return p.parseBinaryExprFrom(x, prec1)
}

func (p *parser) parseBinaryExprFrom(x ast.Expr, prec1 int) ast.Expr {
	for {
		op := p.tok.Kind
		prec := precedence(op)
		if prec < prec1 || prec == 0 {
			return x
		}
		opPos := p.tok.Pos
		p.next()
		y := p.parseBinaryExpr(prec + 1)
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: op, Y: y}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok.Kind {
	case token.SUB, token.NOT:
		op := p.tok.Kind
		pos := p.tok.Pos
		p.next()
		x := p.parseUnaryExpr()
		return &ast.UnaryExpr{OpPos: pos, Op: op, X: x}
	default:
		return p.parsePostfixExpr()
	}
}

func (p *parser) parsePostfixExpr() ast.Expr {
	x := p.parsePrimaryExpr()
	return p.parsePostfixFrom(x)
}

func (p *parser) parsePrimaryFrom(ident *ast.Ident) ast.Expr {
	var x ast.Expr = ident
	if p.tok.Kind == token.LPAREN {
		p.next()
		args := p.parseArgList()
		p.expect(token.RPAREN)
		x = &ast.CallExpr{Fun: ident.Name, FunPos: ident.NamePos, Args: args}
	}
	return p.parsePostfixFrom(x)
}

func (p *parser) parsePostfixFrom(x ast.Expr) ast.Expr {
	for p.tok.Kind == token.LBRACK {
		p.next()
		idx := p.parseExpr()
		p.expect(token.RBRACK)
		x = &ast.IndexExpr{X: x, Index: idx}
	}
	return x
}

func (p *parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for p.tok.Kind != token.RPAREN {
		args = append(args, p.parseExpr())
		if p.tok.Kind == token.SEMI {
			p.next()
		} else {
			break
		}
	}
	return args
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case token.INT:
		t := p.tok
		p.next()
		return &ast.IntLit{ValuePos: pos, Value: parseInt(t.Text)}
	case token.FLOAT:
		t := p.tok
		p.next()
		return &ast.FloatLit{ValuePos: pos, Value: parseFloat(t.Text)}
	case token.KW_TRUE:
		p.next()
		return &ast.BoolLit{ValuePos: pos, Value: true}
	case token.KW_FALSE:
		p.next()
		return &ast.BoolLit{ValuePos: pos, Value: false}
	case token.STRING:
		t := p.tok
		p.next()
		return &ast.StringLit{ValuePos: pos, Value: t.Text}
	case token.IDENT:
		ident := p.parseIdent()
		return p.parsePrimaryFrom(ident)
	case token.LPAREN:
		p.next()
		var elems []ast.Expr
		for p.tok.Kind != token.RPAREN {
			elems = append(elems, p.parseExpr())
			if p.tok.Kind == token.SEMI {
				p.next()
			} else {
				break
			}
		}
		p.expect(token.RPAREN)
		if len(elems) == 1 {
			return elems[0] // parenthesized expression, not a 1-tuple
		}
		return &ast.TupleLit{Lparen: pos, Elems: elems}
	case token.LBRACK:
		p.next()
		var elems []ast.Expr
		for p.tok.Kind != token.RBRACK {
			elems = append(elems, p.parseExpr())
			if p.tok.Kind == token.SEMI {
				p.next()
			} else {
				break
			}
		}
		p.expect(token.RBRACK)
		return &ast.ListLit{Lbrack: pos, Elems: elems}
	case token.KW_SIZE:
		p.next()
		p.expect(token.LPAREN)
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.SizeExpr{KwPos: pos, X: x}
	case token.KW_TOSTRING:
		p.next()
		p.expect(token.LPAREN)
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.ToStringExpr{KwPos: pos, X: x}
	case token.KW_NROOT:
		p.next()
		p.expect(token.LPAREN)
		x := p.parseExpr()
		p.expect(token.SEMI)
		n := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.NrootExpr{KwPos: pos, X: x, N: n}
	default:
		p.errf(pos, "unexpected token %s %q", p.tok.Kind, p.tok.Text)
		p.next()
		return &ast.IntLit{ValuePos: pos, Value: 0}
	}
}
