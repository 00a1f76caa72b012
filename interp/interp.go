// Package interp implements the tree-walking evaluator spec.md §4.6
// describes: a symbol table doubling as the runtime environment, a
// current-value register threaded through every Expr/Term/RValue
// visit, a heap of records, and an alias table for pointer semantics.
/*
File   : vellum/interp/interp.go
*/
package interp

import (
	"bufio"
	"io"

	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/heap"
	"github.com/gopherlang/vellum/symtab"
	"github.com/gopherlang/vellum/token"
	"github.com/gopherlang/vellum/value"
)

// aliasEntry is one address_bindings entry: the name of the variable
// this alias was taken from and the value it captured at declaration
// time, refreshed on every write to the target (spec.md §4.7).
type aliasEntry struct {
	Target string
	Value  value.Value
}

// Interp runs a checked Program to completion.
type Interp struct {
	st   *symtab.SymbolTable
	curr value.Value
	heap *heap.Heap

	functions map[string]*ast.FunDecl
	types     map[string]*ast.TypeDecl

	globalScopeID int
	exitCode      int

	aliases         map[string]*aliasEntry
	lastDerefTarget string

	entryFunc string

	Out    io.Writer
	input  *bufio.Scanner
}

// New returns an Interp that calls entryFunc (typically "main") as
// the program's entry point, writing builtin output to out and
// reading the `read` builtin's input from in.
func New(entryFunc string, out io.Writer, in io.Reader) *Interp {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Interp{
		st:        symtab.New(),
		heap:      heap.New(),
		functions: make(map[string]*ast.FunDecl),
		types:     make(map[string]*ast.TypeDecl),
		aliases:   make(map[string]*aliasEntry),
		entryFunc: entryFunc,
		Out:       out,
		input:     sc,
	}
}

// Register adds every top-level declaration in prog to the persistent
// function/type tables, overwriting any earlier declaration of the
// same name. It does not invoke anything, so a REPL can call it once
// per line and have declarations from earlier lines stay visible to
// later ones without re-running the entry function each time.
func (i *Interp) Register(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FunDecl:
			i.functions[decl.Name.Lexeme] = decl
		case *ast.TypeDecl:
			i.types[decl.Name.Lexeme] = decl
		}
	}
}

// HasFunction reports whether name has been registered.
func (i *Interp) HasFunction(name string) bool {
	_, ok := i.functions[name]
	return ok
}

// CallEntry synthesizes and runs a call to the configured entry
// function against whatever has been registered so far, and returns
// the process exit code taken from its integer return value (0 if it
// returned something else or fell through without a return).
func (i *Interp) CallEntry() (int, error) {
	if _, ok := i.functions[i.entryFunc]; !ok {
		return 0, errs.Run(0, 0, "undefined '%s' function", i.entryFunc)
	}
	i.globalScopeID = i.st.PushScope()
	entry := &ast.CallExpr{Name: token.New(token.ID, i.entryFunc, 0, 0)}
	if err := i.evalCall(entry); err != nil {
		i.st.PopScope()
		return 0, err
	}
	i.exitCode = 0
	if i.curr.IsInt() {
		i.exitCode = int(i.curr.Int)
	}
	i.st.PopScope()
	return i.exitCode, nil
}

// Run registers prog's declarations and immediately calls the entry
// function, the one-shot mode a full-file execution uses.
func (i *Interp) Run(prog *ast.Program) (int, error) {
	i.Register(prog)
	return i.CallEntry()
}

// execStmts runs stmts in order, stopping early (returned=true) the
// moment one of them is or contains a return statement.
func (i *Interp) execStmts(stmts []ast.Stmt) (bool, error) {
	for _, s := range stmts {
		returned, err := i.execStmt(s)
		if err != nil || returned {
			return returned, err
		}
	}
	return false, nil
}

func (i *Interp) execStmt(s ast.Stmt) (bool, error) {
	switch stmt := s.(type) {
	case *ast.VarDeclStmt:
		return false, i.execVarDecl(stmt)
	case *ast.AssignStmt:
		return false, i.execAssign(stmt)
	case *ast.ReturnStmt:
		if err := i.evalExpr(stmt.Expr); err != nil {
			return false, err
		}
		return true, nil
	case *ast.IfStmt:
		return i.execIf(stmt)
	case *ast.WhileStmt:
		return i.execWhile(stmt)
	case *ast.ForStmt:
		return i.execFor(stmt)
	case *ast.CallStmt:
		return false, i.evalCall(stmt.Call)
	}
	return false, errs.Run(0, 0, "unknown statement")
}

func (i *Interp) execVarDecl(v *ast.VarDeclStmt) error {
	if err := i.evalExpr(v.Expr); err != nil {
		return err
	}
	name := v.Name.Lexeme
	i.st.Add(name)
	i.st.SetValue(name, i.curr)
	if v.Pointer {
		i.aliases[name] = &aliasEntry{Target: i.lastDerefTarget, Value: i.curr}
	}
	return nil
}

func (i *Interp) execAssign(a *ast.AssignStmt) error {
	if err := i.evalExpr(a.Expr); err != nil {
		return err
	}
	rhs := i.curr
	head := a.Path[0]

	if len(a.Path) == 1 {
		i.st.SetValue(head.Lexeme, rhs)
	} else {
		cur, ok := i.st.GetValue(head.Lexeme)
		if !ok {
			return errs.Run(head.Line, head.Column, "use of undefined variable '%s'", head.Lexeme)
		}
		for idx, field := range a.Path[1:] {
			if !cur.IsObjectID() {
				return errs.Run(field.Line, field.Column, "'%s' is not a record reference", head.Lexeme)
			}
			rec, ok := i.heap.GetObject(cur.ObjID)
			if !ok {
				return errs.Run(field.Line, field.Column, "dangling object reference")
			}
			if idx == len(a.Path)-2 {
				if _, ok := rec.GetField(field.Lexeme); !ok {
					return errs.Run(field.Line, field.Column, "no attribute named '%s'", field.Lexeme)
				}
				rec.SetField(field.Lexeme, rhs)
			} else {
				fv, ok := rec.GetField(field.Lexeme)
				if !ok {
					return errs.Run(field.Line, field.Column, "no attribute named '%s'", field.Lexeme)
				}
				cur = fv
			}
		}
	}
	i.refreshAliases(head.Lexeme, rhs)
	return nil
}

// refreshAliases keeps the alias table's cached values honest after a
// write: every alias whose target is head gets rhs, and if head
// itself names an alias, the write also lands on that alias's own
// target (so assigning through `~p` updates the variable `p` aliases).
func (i *Interp) refreshAliases(head string, rhs value.Value) {
	for _, entry := range i.aliases {
		if entry.Target == head {
			entry.Value = rhs
		}
	}
	if entry, ok := i.aliases[head]; ok {
		entry.Value = rhs
		i.st.SetValue(entry.Target, rhs)
	}
}

func (i *Interp) execIf(ifs *ast.IfStmt) (bool, error) {
	cond, err := i.evalBool(ifs.If.Cond)
	if err != nil {
		return false, err
	}
	if cond {
		return i.execStmts(ifs.If.Stmts)
	}
	for _, ei := range ifs.ElseIfs {
		cond, err = i.evalBool(ei.Cond)
		if err != nil {
			return false, err
		}
		if cond {
			return i.execStmts(ei.Stmts)
		}
	}
	return i.execStmts(ifs.ElseBody)
}

func (i *Interp) execWhile(w *ast.WhileStmt) (bool, error) {
	cond, err := i.evalBool(w.Cond)
	if err != nil {
		return false, err
	}
	for cond {
		returned, err := i.execStmts(w.Stmts)
		if err != nil || returned {
			return returned, err
		}
		cond, err = i.evalBool(w.Cond)
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

func (i *Interp) execFor(f *ast.ForStmt) (bool, error) {
	i.st.PushScope()
	defer i.st.PopScope()

	i.st.Add(f.Var.Lexeme)
	if err := i.evalExpr(f.Start); err != nil {
		return false, err
	}
	cur := i.curr.Int
	i.st.SetValue(f.Var.Lexeme, value.Int(cur))
	if err := i.evalExpr(f.End); err != nil {
		return false, err
	}
	end := i.curr.Int

	for cur < end {
		returned, err := i.execStmts(f.Stmts)
		if err != nil || returned {
			return returned, err
		}
		cur++
		i.st.SetValue(f.Var.Lexeme, value.Int(cur))
	}
	return false, nil
}

func (i *Interp) evalBool(e *ast.Expr) (bool, error) {
	if err := i.evalExpr(e); err != nil {
		return false, err
	}
	return i.curr.Bool, nil
}

// evalExpr implements the right-leaning (first, op, rest) spine:
// negation short-circuits the operator entirely (matching the
// reference implementation's if/else split), otherwise an operator
// present means evaluate rest and combine.
func (i *Interp) evalExpr(e *ast.Expr) error {
	if err := i.evalTerm(e.First); err != nil {
		return err
	}
	if e.Negated {
		i.curr = value.Bool(!i.curr.Bool)
		return nil
	}
	if e.Op == nil {
		return nil
	}
	left := i.curr
	if err := i.evalExpr(e.Rest); err != nil {
		return err
	}
	right := i.curr
	result, err := i.applyOp(*e.Op, left, right)
	if err != nil {
		return err
	}
	i.curr = result
	return nil
}

func (i *Interp) evalTerm(t ast.Term) error {
	switch term := t.(type) {
	case *ast.SimpleTerm:
		return i.evalRValue(term.RValue)
	case *ast.ComplexTerm:
		return i.evalExpr(term.Expr)
	}
	return errs.Run(0, 0, "unknown term")
}
