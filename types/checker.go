// Package types implements the static semantic checks spec.md §4.4
// requires: name resolution and scoping, arity and argument-type
// checks on calls, and the binary-operator typing table.
/*
File   : vellum/types/checker.go
*/
package types

import (
	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/symtab"
	"github.com/gopherlang/vellum/token"
)

// builtins lists the name and (param types..., return type) signature
// of every builtin spec.md §4.6 names. print's declared parameter type
// is "string" because the interpreter stringifies whatever it is
// given before printing, matching the reference implementation's
// built-in table exactly.
var builtins = []struct {
	name string
	sig  []string
}{
	{"print", []string{"string", "nil"}},
	{"stoi", []string{"string", "int"}},
	{"stod", []string{"string", "double"}},
	{"itos", []string{"int", "string"}},
	{"dtos", []string{"double", "string"}},
	{"get", []string{"int", "string", "char"}},
	{"length", []string{"string", "int"}},
	{"read", []string{"string"}},
}

// Checker performs a single pass over a Program, resolving names
// against a scope stack and inferring/validating the type of every
// expression it visits.
type Checker struct {
	st        *symtab.SymbolTable
	entryFunc string
}

// New returns a Checker that requires entryFunc (typically "main") to
// exist with an int return type once Check finishes. Its global scope
// lives for the Checker's whole lifetime, so a caller that keeps one
// Checker around and calls Check repeatedly (a REPL, one line at a
// time) sees declarations from earlier calls when checking later ones.
func New(entryFunc string) *Checker {
	c := &Checker{st: symtab.New(), entryFunc: entryFunc}
	c.st.PushScope()
	c.installBuiltins()
	return c
}

// Check type-checks every declaration in prog, then verifies that
// entryFunc exists with an int return type. Declarations register into
// the Checker's persistent global scope, so calling Check again on a
// different prog with the same Checker instance resolves references to
// anything declared in an earlier call.
func (c *Checker) Check(prog *ast.Program) error {
	if err := c.CheckDecls(prog.Decls); err != nil {
		return err
	}
	sig, ok := c.st.GetSignature(c.entryFunc)
	if !ok {
		return errs.Sem(0, 0, "undefined '%s' function", c.entryFunc)
	}
	if sig[len(sig)-1] != "int" {
		return errs.Sem(0, 0, "incorrect return type for %s", c.entryFunc)
	}
	return nil
}

// CheckDecls type-checks decls against the Checker's accumulated global
// scope without requiring the entry function to be declared anywhere.
// A REPL uses this to validate a single line that only declares a
// helper type or function, where demanding an entry point on every
// line would reject perfectly ordinary incremental input.
func (c *Checker) CheckDecls(decls []ast.Decl) error {
	for _, d := range decls {
		var err error
		switch decl := d.(type) {
		case *ast.FunDecl:
			err = c.checkFunDecl(decl)
		case *ast.TypeDecl:
			err = c.checkTypeDecl(decl)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) installBuiltins() {
	for _, b := range builtins {
		c.st.Add(b.name)
		c.st.SetSignature(b.name, b.sig)
	}
}

func (c *Checker) checkFunDecl(fn *ast.FunDecl) error {
	if c.st.ExistsInCurrent(fn.Name.Lexeme) {
		return errs.Sem(fn.Name.Line, fn.Name.Column, "function '%s' already declared", fn.Name.Lexeme)
	}
	sig := make([]string, 0, len(fn.Params)+1)
	for _, p := range fn.Params {
		sig = append(sig, p.Type.Lexeme)
	}
	sig = append(sig, fn.ReturnType.Lexeme)
	c.st.Add(fn.Name.Lexeme)
	c.st.SetSignature(fn.Name.Lexeme, sig)

	c.st.PushScope()
	c.st.Add("return")
	c.st.SetScalar("return", fn.ReturnType.Lexeme)

	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if seen[p.Name.Lexeme] {
			return errs.Sem(p.Name.Line, p.Name.Column, "duplicate parameter name '%s'", p.Name.Lexeme)
		}
		seen[p.Name.Lexeme] = true
		c.st.Add(p.Name.Lexeme)
		c.st.SetScalar(p.Name.Lexeme, p.Type.Lexeme)
	}

	for _, s := range fn.Stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	c.st.PopScope()
	return nil
}

func (c *Checker) checkTypeDecl(td *ast.TypeDecl) error {
	c.st.Add(td.Name.Lexeme)
	c.st.PushScope()
	fields := make(map[string]string, len(td.Fields))
	for _, f := range td.Fields {
		if err := c.checkVarDeclStmt(f); err != nil {
			return err
		}
		typ, _ := c.st.GetScalar(f.Name.Lexeme)
		fields[f.Name.Lexeme] = typ
	}
	c.st.PopScope()
	c.st.SetRecord(td.Name.Lexeme, fields)
	return nil
}

func (c *Checker) checkStmt(s ast.Stmt) error {
	switch stmt := s.(type) {
	case *ast.VarDeclStmt:
		return c.checkVarDeclStmt(stmt)
	case *ast.AssignStmt:
		return c.checkAssignStmt(stmt)
	case *ast.ReturnStmt:
		return c.checkReturnStmt(stmt)
	case *ast.IfStmt:
		return c.checkIfStmt(stmt)
	case *ast.WhileStmt:
		return c.checkWhileStmt(stmt)
	case *ast.ForStmt:
		return c.checkForStmt(stmt)
	case *ast.CallStmt:
		_, err := c.checkCallExpr(stmt.Call)
		return err
	}
	return nil
}

// checkVarDeclStmt is shared between function-body var declarations
// and record-type field declarations, matching the reference checker
// reusing one visit(VarDeclStmt&) for both contexts.
func (c *Checker) checkVarDeclStmt(v *ast.VarDeclStmt) error {
	exprType, err := c.checkExpr(v.Expr)
	if err != nil {
		return err
	}
	name := v.Name.Lexeme
	if c.st.ExistsInCurrent(name) {
		return errs.Sem(v.Name.Line, v.Name.Column, "redefinition of variable '%s'", name)
	}
	declared := v.Type.Lexeme
	if declared != "" && declared != exprType && exprType != "nil" {
		return errs.Sem(v.Name.Line, v.Name.Column, "mismatched type in declaration of '%s'", name)
	}
	c.st.Add(name)
	if declared != "" {
		c.st.SetScalar(name, declared)
	} else {
		c.st.SetScalar(name, exprType)
	}
	return nil
}

func (c *Checker) checkAssignStmt(a *ast.AssignStmt) error {
	rhsType, err := c.checkExpr(a.Expr)
	if err != nil {
		return err
	}
	head := a.Path[0]
	if !c.st.Exists(head.Lexeme) {
		return errs.Sem(head.Line, head.Column, "use of '%s' before definition", head.Lexeme)
	}
	lhsType, _ := c.st.GetScalar(head.Lexeme)
	for _, field := range a.Path[1:] {
		rec, ok := c.st.GetRecord(lhsType)
		if !ok {
			return errs.Sem(field.Line, field.Column, "'%s' is not a record type", lhsType)
		}
		fieldType, ok := rec[field.Lexeme]
		if !ok {
			return errs.Sem(field.Line, field.Column, "no member '%s' in type '%s'", field.Lexeme, lhsType)
		}
		lhsType = fieldType
	}
	if rhsType != "nil" && lhsType != rhsType {
		return errs.Sem(head.Line, head.Column, "mismatched types in assignment to '%s'", head.Lexeme)
	}
	return nil
}

func (c *Checker) checkReturnStmt(r *ast.ReturnStmt) error {
	rt, err := c.checkExpr(r.Expr)
	if err != nil {
		return err
	}
	funReturn, _ := c.st.GetScalar("return")
	if funReturn != rt && rt != "nil" {
		return errs.Sem(0, 0, "mismatch in return type: expected '%s', got '%s'", funReturn, rt)
	}
	return nil
}

func (c *Checker) checkIfStmt(ifs *ast.IfStmt) error {
	c.st.PushScope()
	if err := c.checkBranch(ifs.If); err != nil {
		return err
	}
	for _, ei := range ifs.ElseIfs {
		if err := c.checkBranch(ei); err != nil {
			return err
		}
	}
	c.st.PushScope()
	for _, s := range ifs.ElseBody {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	c.st.PopScope()
	c.st.PopScope()
	return nil
}

func (c *Checker) checkBranch(b ast.BasicIf) error {
	condType, err := c.checkExpr(b.Cond)
	if err != nil {
		return err
	}
	if condType != "bool" {
		return errs.Sem(0, 0, "non-boolean expression in if statement")
	}
	c.st.PushScope()
	for _, s := range b.Stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	c.st.PopScope()
	return nil
}

func (c *Checker) checkWhileStmt(w *ast.WhileStmt) error {
	c.st.PushScope()
	condType, err := c.checkExpr(w.Cond)
	if err != nil {
		return err
	}
	if condType != "bool" {
		return errs.Sem(0, 0, "non-boolean expression in while statement")
	}
	c.st.PushScope()
	for _, s := range w.Stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	c.st.PopScope()
	c.st.PopScope()
	return nil
}

func (c *Checker) checkForStmt(f *ast.ForStmt) error {
	c.st.PushScope()
	c.st.Add(f.Var.Lexeme)
	startType, err := c.checkExpr(f.Start)
	if err != nil {
		return err
	}
	c.st.SetScalar(f.Var.Lexeme, startType)
	endType, err := c.checkExpr(f.End)
	if err != nil {
		return err
	}
	if startType != endType {
		return errs.Sem(f.Var.Line, f.Var.Column, "mismatched types in for statement bounds")
	}
	c.st.PushScope()
	for _, s := range f.Stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	c.st.PopScope()
	c.st.PopScope()
	return nil
}

func (c *Checker) checkExpr(e *ast.Expr) (string, error) {
	firstType, err := c.checkTerm(e.First)
	if err != nil {
		return "", err
	}
	if e.Op == nil {
		if e.Negated && firstType != "bool" {
			return "", errs.Sem(0, 0, "expecting a boolean expression")
		}
		return firstType, nil
	}
	if e.Rest == nil {
		return "", errs.Sem(e.Op.Line, e.Op.Column, "expression has no right-hand side")
	}
	restType, err := c.checkExpr(e.Rest)
	if err != nil {
		return "", err
	}
	return c.checkBinaryOp(*e.Op, firstType, restType)
}

func (c *Checker) checkTerm(t ast.Term) (string, error) {
	switch term := t.(type) {
	case *ast.SimpleTerm:
		return c.checkRValue(term.RValue)
	case *ast.ComplexTerm:
		return c.checkExpr(term.Expr)
	}
	return "", errs.Sem(0, 0, "unknown term")
}

func (c *Checker) checkRValue(rv ast.RValue) (string, error) {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		return simpleValueType(v.Value), nil
	case *ast.NewRValue:
		if !c.st.Exists(v.TypeName.Lexeme) {
			return "", errs.Sem(v.TypeName.Line, v.TypeName.Column, "no matching type '%s'", v.TypeName.Lexeme)
		}
		return v.TypeName.Lexeme, nil
	case *ast.CallExpr:
		return c.checkCallExpr(v)
	case *ast.IDRValue:
		return c.checkIDPath(v.Path)
	case *ast.NegatedRValue:
		inner, err := c.checkExpr(v.Expr)
		if err != nil {
			return "", err
		}
		if inner != "int" && inner != "double" {
			return "", errs.Sem(0, 0, "cannot negate a '%s'", inner)
		}
		return inner, nil
	case *ast.PointerTypeRValue:
		if !c.st.Exists(v.Name.Lexeme) {
			return "", errs.Sem(v.Name.Line, v.Name.Column, "'%s' has not been declared", v.Name.Lexeme)
		}
		typ, _ := c.st.GetScalar(v.Name.Lexeme)
		return typ, nil
	case *ast.PointerValueRValue:
		bare := v.Name.Lexeme[1:]
		if !c.st.ExistsInCurrent(bare) {
			return "", errs.Sem(v.Name.Line, v.Name.Column, "'%s' has not been declared", bare)
		}
		typ, _ := c.st.GetScalar(bare)
		return typ, nil
	}
	return "", errs.Sem(0, 0, "unknown r-value")
}

func simpleValueType(tok token.Token) string {
	switch tok.Kind {
	case token.CHAR_VAL:
		return "char"
	case token.STRING_VAL:
		return "string"
	case token.INT_VAL:
		return "int"
	case token.DOUBLE_VAL:
		return "double"
	case token.BOOL_VAL:
		return "bool"
	}
	return "nil"
}

func (c *Checker) checkCallExpr(call *ast.CallExpr) (string, error) {
	sig, ok := c.st.GetSignature(call.Name.Lexeme)
	if !ok {
		return "", errs.Sem(call.Name.Line, call.Name.Column, "no function named '%s'", call.Name.Lexeme)
	}
	want := len(sig) - 1
	if want > len(call.Args) {
		return "", errs.Sem(call.Name.Line, call.Name.Column, "not enough arguments to '%s'", call.Name.Lexeme)
	}
	if want < len(call.Args) {
		return "", errs.Sem(call.Name.Line, call.Name.Column, "too many arguments to '%s'", call.Name.Lexeme)
	}
	for i, arg := range call.Args {
		argType, err := c.checkExpr(arg)
		if err != nil {
			return "", err
		}
		if argType != "nil" && argType != sig[i] {
			return "", errs.Sem(call.Name.Line, call.Name.Column, "argument %d to '%s' has the wrong type", i+1, call.Name.Lexeme)
		}
	}
	return sig[len(sig)-1], nil
}

func (c *Checker) checkIDPath(path []token.Token) (string, error) {
	head := path[0]
	if !c.st.Exists(head.Lexeme) {
		return "", errs.Sem(head.Line, head.Column, "use of '%s' before definition", head.Lexeme)
	}
	curType, _ := c.st.GetScalar(head.Lexeme)
	for _, field := range path[1:] {
		rec, ok := c.st.GetRecord(curType)
		if !ok {
			return "", errs.Sem(field.Line, field.Column, "'%s' is not a record type", curType)
		}
		fieldType, ok := rec[field.Lexeme]
		if !ok {
			return "", errs.Sem(field.Line, field.Column, "no member '%s' in type '%s'", field.Lexeme, curType)
		}
		curType = fieldType
	}
	return curType, nil
}

// checkBinaryOp implements the operator typing table: arithmetic
// (+ - * /) reject mixed int/double and reject char/string/bool
// entirely; % requires both sides int; + additionally accepts
// string+char / char+string / string+string / char+char, yielding
// string; == and != accept any matching pair, plus a nil on either
// side; < > <= >= accept a matching pair of int, double, char or
// string; and/or
// require bool on both sides.
func (c *Checker) checkBinaryOp(op token.Token, first, rest string) (string, error) {
	switch op.Kind {
	case token.PLUS, token.MINUS, token.MULTIPLY, token.DIVIDE:
		if mixedNumeric(first, rest) {
			return "", errs.Sem(op.Line, op.Column, "cannot mix int and double in '%s'", op.Lexeme)
		}
		if first == rest && (first == "int" || first == "double") {
			return first, nil
		}
		if op.Kind == token.PLUS && isStringOrChar(first) && isStringOrChar(rest) {
			return "string", nil
		}
		return "", errs.Sem(op.Line, op.Column, "mismatched types in '%s'", op.Lexeme)
	case token.MODULO:
		if first != "int" || rest != "int" {
			return "", errs.Sem(op.Line, op.Column, "'%%' requires int operands")
		}
		return "int", nil
	case token.EQUAL, token.NOT_EQUAL:
		if first == "nil" || rest == "nil" || first == rest {
			return "bool", nil
		}
		return "", errs.Sem(op.Line, op.Column, "mismatched types in '%s'", op.Lexeme)
	case token.LESS, token.GREATER, token.LESS_EQUAL, token.GREATER_EQUAL:
		if first == rest && isOrderable(first) {
			return "bool", nil
		}
		return "", errs.Sem(op.Line, op.Column, "mismatched types in '%s'", op.Lexeme)
	case token.AND, token.OR:
		if first != "bool" || rest != "bool" {
			return "", errs.Sem(op.Line, op.Column, "expecting a boolean operand to '%s'", op.Lexeme)
		}
		return "bool", nil
	}
	return "", errs.Sem(op.Line, op.Column, "unknown operator '%s'", op.Lexeme)
}

func mixedNumeric(a, b string) bool {
	return (a == "int" && b == "double") || (a == "double" && b == "int")
}

func isStringOrChar(t string) bool {
	return t == "string" || t == "char"
}

// isOrderable reports whether t is one of the four scalar types
// spec.md §4.4 names for <, >, <=, >=: int, double, char, string.
// Record types compare equal but have no ordering, so they are
// rejected here rather than left to fail at run time.
func isOrderable(t string) bool {
	return t == "int" || t == "double" || t == "char" || t == "string"
}
