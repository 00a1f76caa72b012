// Pretty-printer: renders a Program back into source-like text. This
// realizes the "parse-only mode... printing the AST" collaborator
// spec.md §6 calls out, and is the printer spec.md §8's
// parse→print→reparse round-trip property exercises.
/*
File   : vellum/ast/print.go
*/
package ast

import (
	"strings"

	"github.com/gopherlang/vellum/token"
)

const indentStep = 3

// Printer renders a Program with the reference implementation's
// indentation conventions: 3 spaces per nesting level, parentheses
// around any sub-expression that was itself parenthesized in the
// source, quoted string/char literals.
type Printer struct {
	out    strings.Builder
	indent int
}

// Print renders prog and returns the resulting text.
func Print(prog *Program) string {
	p := &Printer{}
	p.printProgram(prog)
	return p.out.String()
}

func (p *Printer) incIndent() { p.indent += indentStep }
func (p *Printer) decIndent() { p.indent -= indentStep }
func (p *Printer) pad()       { p.out.WriteString(strings.Repeat(" ", p.indent)) }

func (p *Printer) printProgram(prog *Program) {
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *FunDecl:
			p.printFunDecl(n)
		case *TypeDecl:
			p.printTypeDecl(n)
		}
		p.out.WriteString("\n")
	}
}

func (p *Printer) printFunDecl(n *FunDecl) {
	p.out.WriteString("fun ")
	if n.ReturnType.Kind == token.NIL || n.ReturnType.Lexeme == "" {
		p.out.WriteString("nil ")
	} else {
		p.out.WriteString(n.ReturnType.Lexeme + " ")
	}
	p.out.WriteString(n.Name.Lexeme)
	p.out.WriteString("(")
	for i, param := range n.Params {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.out.WriteString(param.Name.Lexeme + ": " + param.Type.Lexeme)
	}
	p.out.WriteString(")\n")
	for _, s := range n.Stmts {
		p.incIndent()
		p.pad()
		p.printStmt(s)
		p.out.WriteString("\n")
		p.decIndent()
	}
	p.out.WriteString("end")
}

func (p *Printer) printTypeDecl(n *TypeDecl) {
	p.out.WriteString("type " + n.Name.Lexeme + "\n")
	for _, f := range n.Fields {
		p.incIndent()
		p.pad()
		p.printVarDecl(f)
		p.out.WriteString("\n")
		p.decIndent()
	}
	p.out.WriteString("end")
}

func (p *Printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *VarDeclStmt:
		p.printVarDecl(n)
	case *AssignStmt:
		for i, t := range n.Path {
			if i > 0 {
				p.out.WriteString(".")
			}
			p.out.WriteString(t.Lexeme)
		}
		p.out.WriteString(" = ")
		p.printExpr(n.Expr)
	case *ReturnStmt:
		p.out.WriteString("return ")
		p.printExpr(n.Expr)
	case *IfStmt:
		p.printIf(n)
	case *WhileStmt:
		p.out.WriteString("while ")
		p.printExpr(n.Cond)
		p.out.WriteString(" do\n")
		p.printBlock(n.Stmts)
		p.pad()
		p.out.WriteString("end")
	case *ForStmt:
		p.out.WriteString("for " + n.Var.Lexeme + " = ")
		p.printExpr(n.Start)
		p.out.WriteString(" to ")
		p.printExpr(n.End)
		p.out.WriteString(" do\n")
		p.printBlock(n.Stmts)
		p.pad()
		p.out.WriteString("end")
	case *CallStmt:
		p.printCall(n.Call)
	}
}

func (p *Printer) printVarDecl(n *VarDeclStmt) {
	p.out.WriteString("var " + n.Name.Lexeme)
	if n.Type.Lexeme != "" {
		p.out.WriteString(": " + n.Type.Lexeme)
	}
	p.out.WriteString(" = ")
	p.printExpr(n.Expr)
}

func (p *Printer) printBlock(stmts []Stmt) {
	for _, s := range stmts {
		p.incIndent()
		p.pad()
		p.printStmt(s)
		p.out.WriteString("\n")
		p.decIndent()
	}
}

func (p *Printer) printIf(n *IfStmt) {
	p.out.WriteString("if ")
	p.printExpr(n.If.Cond)
	p.out.WriteString(" then\n")
	p.printBlock(n.If.Stmts)
	for _, ei := range n.ElseIfs {
		p.pad()
		p.out.WriteString("elseif ")
		p.printExpr(ei.Cond)
		p.out.WriteString(" then\n")
		p.printBlock(ei.Stmts)
	}
	if len(n.ElseBody) > 0 {
		p.pad()
		p.out.WriteString("else\n")
		p.printBlock(n.ElseBody)
	}
	p.pad()
	p.out.WriteString("end")
}

// printExpr renders an Expr's (not?, first, (op, rest)?) spine.
// Parenthesization is entirely the printTerm ComplexTerm case's job
// below, except right after a leading "not": the parser wraps a
// negated operand in a ComplexTerm even though the source never wrote
// parens there (expr's NOT case), so that one wrapper is unwound here
// instead of being printed back as parens that were never typed.
func (p *Printer) printExpr(e *Expr) {
	if e.Negated {
		p.out.WriteString("not ")
		if ct, ok := e.First.(*ComplexTerm); ok {
			p.printExpr(ct.Expr)
		} else {
			p.printTerm(e.First)
		}
	} else {
		p.printTerm(e.First)
	}
	if e.Op != nil {
		p.out.WriteString(" " + e.Op.Lexeme + " ")
		p.printExpr(e.Rest)
	}
}

func (p *Printer) printTerm(t Term) {
	switch n := t.(type) {
	case *SimpleTerm:
		p.printRValue(n.RValue)
	case *ComplexTerm:
		p.out.WriteString("(")
		p.printExpr(n.Expr)
		p.out.WriteString(")")
	}
}

func (p *Printer) printRValue(r RValue) {
	switch n := r.(type) {
	case *SimpleRValue:
		switch n.Value.Kind {
		case token.STRING_VAL:
			p.out.WriteString("\"" + n.Value.Lexeme + "\"")
		case token.CHAR_VAL:
			p.out.WriteString("'" + n.Value.Lexeme + "'")
		default:
			p.out.WriteString(n.Value.Lexeme)
		}
	case *NewRValue:
		p.out.WriteString("new " + n.TypeName.Lexeme)
	case *IDRValue:
		for i, t := range n.Path {
			if i > 0 {
				p.out.WriteString(".")
			}
			p.out.WriteString(t.Lexeme)
		}
	case *CallExpr:
		p.printCall(n)
	case *NegatedRValue:
		p.out.WriteString("neg ")
		p.printExpr(n.Expr)
	case *PointerTypeRValue:
		p.out.WriteString(n.Name.Lexeme)
	case *PointerValueRValue:
		p.out.WriteString(n.Name.Lexeme)
	}
}

func (p *Printer) printCall(n *CallExpr) {
	p.out.WriteString(n.Name.Lexeme + "(")
	for i, a := range n.Args {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.printExpr(a)
	}
	p.out.WriteString(")")
}
