// Package ast defines the abstract syntax tree produced by the parser.
// Nodes are represented as tagged sum types (marker-interface + type
// switch) rather than a visitor-class hierarchy: the dispatch lives in
// the type checker and interpreter, one Go type switch each, per the
// language's own design notes favoring sum types over virtual visitors.
/*
File   : vellum/ast/ast.go
*/
package ast

import "github.com/gopherlang/vellum/token"

// Decl is the disjoint union {FunDecl, TypeDecl}.
type Decl interface {
	declNode()
}

// Stmt is one of: VarDeclStmt, AssignStmt, ReturnStmt, IfStmt,
// WhileStmt, ForStmt, CallStmt.
type Stmt interface {
	stmtNode()
}

// RValue is one of: SimpleRValue, NewRValue, IDRValue, CallExpr,
// NegatedRValue, PointerTypeRValue, PointerValueRValue.
type RValue interface {
	rvalueNode()
}

// Term wraps an RValue (SimpleTerm) or a parenthesized Expr (ComplexTerm).
type Term interface {
	termNode()
}

// Program is the root node: an ordered list of top-level declarations.
type Program struct {
	Decls []Decl
}

// FunDecl is a function declaration. ReturnType.Kind is one of the
// five primitive type tokens, an ID (record type), or NIL for a
// function with no meaningful return value.
type FunDecl struct {
	ReturnType token.Token
	Name       token.Token
	Params     []Param
	Stmts      []Stmt
}

func (*FunDecl) declNode() {}

// Param is one function parameter: a name and its declared type. Name
// carries kind ID for an ordinary parameter or POINTER_TYPE when
// declared as `~ident: T`.
type Param struct {
	Name token.Token
	Type token.Token
}

// TypeDecl is a record-type declaration: a name and an ordered list of
// field declarations (reusing VarDeclStmt for each field).
type TypeDecl struct {
	Name   token.Token
	Fields []*VarDeclStmt
}

func (*TypeDecl) declNode() {}

// VarDeclStmt declares a new binding in the current scope. Type is the
// zero Token when no type annotation was written (the checker infers
// the declared type from the initializer). Pointer is true when the
// identifier was declared via a POINTER_TYPE token (`~name`).
type VarDeclStmt struct {
	Name    token.Token
	Type    token.Token
	Pointer bool
	Expr    *Expr
}

func (*VarDeclStmt) stmtNode() {}

// AssignStmt assigns the value of Expr into the binding or field path
// named by Path. len(Path) > 1 means the leading name resolves to a
// heap object reference at runtime.
type AssignStmt struct {
	Path []token.Token
	Expr *Expr
}

func (*AssignStmt) stmtNode() {}

// ReturnStmt evaluates Expr and signals a non-local return.
type ReturnStmt struct {
	Expr *Expr
}

func (*ReturnStmt) stmtNode() {}

// BasicIf is a single (condition, body) branch shared by the primary
// if-branch and every elseif-branch.
type BasicIf struct {
	Cond  *Expr
	Stmts []Stmt
}

// IfStmt has exactly one primary branch, zero or more ordered elseif
// branches, and an optional else body.
type IfStmt struct {
	If       BasicIf
	ElseIfs  []BasicIf
	ElseBody []Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt re-evaluates Cond before each iteration of Stmts.
type WhileStmt struct {
	Cond  *Expr
	Stmts []Stmt
}

func (*WhileStmt) stmtNode() {}

// ForStmt introduces Var in a fresh scope covering Stmts, iterating
// from Start to End (exclusive) by 1.
type ForStmt struct {
	Var   token.Token
	Start *Expr
	End   *Expr
	Stmts []Stmt
}

func (*ForStmt) stmtNode() {}

// CallStmt is a function call used as a statement; its result is
// evaluated and discarded.
type CallStmt struct {
	Call *CallExpr
}

func (*CallStmt) stmtNode() {}

// Expr is the expression spine: an optional leading `not`, a mandatory
// first Term, and an optional (Op, Rest) continuation. Precedence is
// not encoded — Rest chains right, matching the grammar exactly so the
// checker and interpreter can walk the same (first, op, rest) shape.
type Expr struct {
	Negated bool
	First   Term
	Op      *token.Token
	Rest    *Expr
}

// SimpleTerm wraps a bare r-value.
type SimpleTerm struct {
	RValue RValue
}

func (*SimpleTerm) termNode() {}

// ComplexTerm wraps a parenthesized sub-expression.
type ComplexTerm struct {
	Expr *Expr
}

func (*ComplexTerm) termNode() {}

// SimpleRValue is a literal token (int, double, bool, char, string, or nil).
type SimpleRValue struct {
	Value token.Token
}

func (*SimpleRValue) rvalueNode() {}

// NewRValue allocates a fresh record of the named type.
type NewRValue struct {
	TypeName token.Token
}

func (*NewRValue) rvalueNode() {}

// IDRValue is a dot-separated path of identifiers (a variable read, or
// a field access chain rooted at one).
type IDRValue struct {
	Path []token.Token
}

func (*IDRValue) rvalueNode() {}

// CallExpr is a function call, usable both as an r-value and (wrapped
// in CallStmt) as a statement.
type CallExpr struct {
	Name token.Token
	Args []*Expr
}

func (*CallExpr) rvalueNode() {}

// NegatedRValue is the `neg <expr>` arithmetic unary minus.
type NegatedRValue struct {
	Expr *Expr
}

func (*NegatedRValue) rvalueNode() {}

// PointerTypeRValue is the `~name` pointer-address r-value: reading
// the aliased value bound to name.
type PointerTypeRValue struct {
	Name token.Token
}

func (*PointerTypeRValue) rvalueNode() {}

// PointerValueRValue is the `&name` pointer-dereference r-value:
// reading name's own current value while recording name as the most
// recently dereferenced alias target.
type PointerValueRValue struct {
	Name token.Token
}

func (*PointerValueRValue) rvalueNode() {}
