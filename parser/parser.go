// Package parser implements the predictive recursive-descent parser
// described by spec.md §4.2: one token of lookahead, no precedence
// climbing — every expression chains through the (first, op, rest)
// spine exactly as written in the grammar.
/*
File   : vellum/parser/parser.go
*/
package parser

import (
	"fmt"
	"io"

	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/lexer"
	"github.com/gopherlang/vellum/token"
)

// Parser holds the single-token lookahead state recursive descent
// needs: the lexer producing tokens on demand and the current token.
type Parser struct {
	lex  *lexer.Lexer
	curr token.Token

	// Trace, when non-nil, receives one line per grammar rule entered,
	// the supplemented debug hook grounded on the teacher's debugFlag.
	Trace io.Writer
}

// New creates a parser over src. The caller must call Parse to run it.
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// Parse runs the parser end to end and returns the program AST, or the
// first syntax error encountered (syntax errors are fatal per spec.md
// §4.2, matching the original implementation's throw-on-first-error
// behavior rather than go-mix's error-collection style).
func (p *Parser) Parse() (*ast.Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog := &ast.Program{}
	for p.curr.Kind != token.EOS {
		decl, err := p.decl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	if err := p.eat(token.EOS, "expecting end of file, "); err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) trace(rule string) {
	if p.Trace != nil {
		fmt.Fprintf(p.Trace, "<%s>\n", rule)
	}
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.curr = tok
	return nil
}

func (p *Parser) eat(kind token.Kind, msg string) error {
	if p.curr.Kind != kind {
		return p.errorf(msg)
	}
	return p.advance()
}

func (p *Parser) errorf(msg string) error {
	return errs.Syn(p.curr.Line, p.curr.Column, "%sfound '%s'", msg, p.curr.Lexeme)
}

func (p *Parser) decl() (ast.Decl, error) {
	if p.curr.Kind == token.TYPE {
		return p.tdecl()
	}
	return p.fdecl()
}

func (p *Parser) tdecl() (*ast.TypeDecl, error) {
	p.trace("tdecl")
	if err := p.eat(token.TYPE, "expecting type, "); err != nil {
		return nil, err
	}
	name := p.curr
	if err := p.eat(token.ID, "expecting an id, "); err != nil {
		return nil, err
	}
	var fields []*ast.VarDeclStmt
	for p.curr.Kind == token.VAR {
		f, err := p.vdeclStmt()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := p.eat(token.END, "expecting end, "); err != nil {
		return nil, err
	}
	return &ast.TypeDecl{Name: name, Fields: fields}, nil
}

func (p *Parser) fdecl() (*ast.FunDecl, error) {
	p.trace("fdecl")
	if err := p.eat(token.FUN, "expecting fun, "); err != nil {
		return nil, err
	}
	var retType token.Token
	if p.curr.Kind == token.NIL {
		retType = p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		t, err := p.dtype()
		if err != nil {
			return nil, err
		}
		retType = t
	}
	name := p.curr
	if err := p.eat(token.ID, "expecting an id, "); err != nil {
		return nil, err
	}
	if err := p.eat(token.LPAREN, "expecting '(', "); err != nil {
		return nil, err
	}
	params, err := p.params()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.RPAREN, "expecting ')', "); err != nil {
		return nil, err
	}
	stmts, err := p.stmts()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.END, "expecting end, "); err != nil {
		return nil, err
	}
	return &ast.FunDecl{ReturnType: retType, Name: name, Params: params, Stmts: stmts}, nil
}

func (p *Parser) params() ([]ast.Param, error) {
	p.trace("params")
	if p.curr.Kind != token.ID && p.curr.Kind != token.POINTER_TYPE {
		return nil, nil
	}
	var out []ast.Param
	for {
		param, err := p.param()
		if err != nil {
			return nil, err
		}
		out = append(out, param)
		if p.curr.Kind != token.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Parser) param() (ast.Param, error) {
	name := p.curr
	switch p.curr.Kind {
	case token.ID, token.POINTER_TYPE:
		if err := p.advance(); err != nil {
			return ast.Param{}, err
		}
	default:
		return ast.Param{}, p.errorf("expecting a parameter name, ")
	}
	if err := p.eat(token.COLON, "expecting ':', "); err != nil {
		return ast.Param{}, err
	}
	typ, err := p.dtype()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: name, Type: typ}, nil
}

func (p *Parser) dtype() (token.Token, error) {
	p.trace("dtype")
	if !p.curr.IsTypeName() {
		return token.Token{}, p.errorf("expecting a type name, ")
	}
	t := p.curr
	return t, p.advance()
}

func (p *Parser) stmts() ([]ast.Stmt, error) {
	p.trace("stmts")
	var out []ast.Stmt
	for {
		s, ok, err := p.stmt()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, s)
	}
}

func (p *Parser) stmt() (ast.Stmt, bool, error) {
	p.trace("stmt")
	switch p.curr.Kind {
	case token.VAR:
		s, err := p.vdeclStmt()
		return s, true, err
	case token.POINTER_TYPE:
		path := []token.Token{p.curr}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		s, err := p.assignStmt(path)
		return s, true, err
	case token.ID:
		name := p.curr
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		if p.curr.Kind == token.LPAREN {
			call, err := p.callExpr(name)
			if err != nil {
				return nil, false, err
			}
			return &ast.CallStmt{Call: call}, true, nil
		}
		s, err := p.assignStmt([]token.Token{name})
		return s, true, err
	case token.IF:
		s, err := p.condStmt()
		return s, true, err
	case token.WHILE:
		s, err := p.whileStmt()
		return s, true, err
	case token.FOR:
		s, err := p.forStmt()
		return s, true, err
	case token.RETURN:
		s, err := p.returnStmt()
		return s, true, err
	default:
		return nil, false, nil
	}
}

func (p *Parser) vdeclStmt() (*ast.VarDeclStmt, error) {
	p.trace("vdecl_stmt")
	if err := p.eat(token.VAR, "expecting var, "); err != nil {
		return nil, err
	}
	name := p.curr
	pointer := p.curr.Kind == token.POINTER_TYPE
	switch p.curr.Kind {
	case token.ID, token.POINTER_TYPE:
		if err := p.advance(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("expecting an id, ")
	}
	var typ token.Token
	if p.curr.Kind == token.COLON {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.dtype()
		if err != nil {
			return nil, err
		}
		typ = t
	}
	if err := p.eat(token.ASSIGN, "expecting '=', "); err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.VarDeclStmt{Name: name, Type: typ, Pointer: pointer, Expr: expr}, nil
}

// assignStmt finishes an assign_stmt whose leading lvalue token(s) the
// caller already consumed (grounded in the original parser, which
// special-cases the leading token before delegating to a shared
// dot-path reader for the remainder).
func (p *Parser) assignStmt(path []token.Token) (*ast.AssignStmt, error) {
	p.trace("assign_stmt")
	for p.curr.Kind == token.DOT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		path = append(path, p.curr)
		if err := p.eat(token.ID, "expecting an id, "); err != nil {
			return nil, err
		}
	}
	if err := p.eat(token.ASSIGN, "expecting '=', "); err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Path: path, Expr: expr}, nil
}

func (p *Parser) condStmt() (*ast.IfStmt, error) {
	p.trace("cond_stmt")
	if err := p.eat(token.IF, "expecting if, "); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.THEN, "expecting then, "); err != nil {
		return nil, err
	}
	body, err := p.stmts()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{If: ast.BasicIf{Cond: cond, Stmts: body}}
	for p.curr.Kind == token.ELSEIF {
		if err := p.advance(); err != nil {
			return nil, err
		}
		eCond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.THEN, "expecting then, "); err != nil {
			return nil, err
		}
		eBody, err := p.stmts()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.BasicIf{Cond: eCond, Stmts: eBody})
	}
	if p.curr.Kind == token.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBody, err := p.stmts()
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = elseBody
	}
	if err := p.eat(token.END, "expecting end, "); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) whileStmt() (*ast.WhileStmt, error) {
	p.trace("while_stmt")
	if err := p.eat(token.WHILE, "expecting while, "); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.DO, "expecting do, "); err != nil {
		return nil, err
	}
	body, err := p.stmts()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.END, "expecting end, "); err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Stmts: body}, nil
}

func (p *Parser) forStmt() (*ast.ForStmt, error) {
	p.trace("for_stmt")
	if err := p.eat(token.FOR, "expecting for, "); err != nil {
		return nil, err
	}
	v := p.curr
	if err := p.eat(token.ID, "expecting an id, "); err != nil {
		return nil, err
	}
	if err := p.eat(token.ASSIGN, "expecting '=', "); err != nil {
		return nil, err
	}
	start, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TO, "expecting to, "); err != nil {
		return nil, err
	}
	end, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.DO, "expecting do, "); err != nil {
		return nil, err
	}
	body, err := p.stmts()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.END, "expecting end, "); err != nil {
		return nil, err
	}
	return &ast.ForStmt{Var: v, Start: start, End: end, Stmts: body}, nil
}

func (p *Parser) returnStmt() (*ast.ReturnStmt, error) {
	p.trace("return_stmt")
	if err := p.eat(token.RETURN, "expecting return, "); err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: expr}, nil
}

func (p *Parser) callExpr(name token.Token) (*ast.CallExpr, error) {
	p.trace("call_expr")
	if err := p.eat(token.LPAREN, "expecting '(', "); err != nil {
		return nil, err
	}
	args, err := p.args()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.RPAREN, "expecting ')', "); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Name: name, Args: args}, nil
}

func startsExpr(k token.Kind) bool {
	switch k {
	case token.NOT, token.LPAREN, token.ID, token.NIL, token.NEW, token.NEG,
		token.INT_VAL, token.DOUBLE_VAL, token.BOOL_VAL, token.CHAR_VAL,
		token.STRING_VAL, token.POINTER_TYPE, token.POINTER_VAL:
		return true
	}
	return false
}

func (p *Parser) args() ([]*ast.Expr, error) {
	p.trace("args")
	if !startsExpr(p.curr.Kind) {
		return nil, nil
	}
	var out []*ast.Expr
	for {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.curr.Kind != token.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expr parses the right-leaning (not?, first, (op, rest)?) spine
// exactly as spec.md §4.2 requires: no precedence climbing, so a
// parenthesized sub-expression is the only way to force a grouping
// other than the right-leaning chain.
func (p *Parser) expr() (*ast.Expr, error) {
	p.trace("expr")
	e := &ast.Expr{}
	switch p.curr.Kind {
	case token.NOT:
		e.Negated = true
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		e.First = &ast.ComplexTerm{Expr: inner}
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.RPAREN, "expecting ')', "); err != nil {
			return nil, err
		}
		e.First = &ast.ComplexTerm{Expr: inner}
	default:
		rv, err := p.rvalue()
		if err != nil {
			return nil, err
		}
		e.First = &ast.SimpleTerm{RValue: rv}
	}
	if err := p.op(e); err != nil {
		return nil, err
	}
	return e, nil
}

var opKinds = []token.Kind{
	token.PLUS, token.MINUS, token.MULTIPLY, token.DIVIDE, token.MODULO,
	token.AND, token.OR, token.EQUAL, token.NOT_EQUAL,
	token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
}

func isOp(k token.Kind) bool {
	for _, o := range opKinds {
		if o == k {
			return true
		}
	}
	return false
}

func (p *Parser) op(head *ast.Expr) error {
	p.trace("op")
	if !isOp(p.curr.Kind) {
		return nil
	}
	opTok := p.curr
	head.Op = &opTok
	if err := p.advance(); err != nil {
		return err
	}
	rest, err := p.expr()
	if err != nil {
		return err
	}
	head.Rest = rest
	return nil
}

func (p *Parser) rvalue() (ast.RValue, error) {
	p.trace("rvalue")
	switch p.curr.Kind {
	case token.NIL:
		v := p.curr
		return &ast.SimpleRValue{Value: v}, p.advance()
	case token.NEW:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name := p.curr
		if err := p.eat(token.ID, "expecting an id, "); err != nil {
			return nil, err
		}
		return &ast.NewRValue{TypeName: name}, nil
	case token.NEG:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.NegatedRValue{Expr: inner}, nil
	case token.POINTER_VAL:
		v := p.curr
		return &ast.PointerValueRValue{Name: v}, p.advance()
	case token.POINTER_TYPE:
		v := p.curr
		return &ast.PointerTypeRValue{Name: v}, p.advance()
	case token.ID:
		name := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.curr.Kind == token.LPAREN {
			return p.callExpr(name)
		}
		path := []token.Token{name}
		for p.curr.Kind == token.DOT {
			if err := p.advance(); err != nil {
				return nil, err
			}
			path = append(path, p.curr)
			if err := p.eat(token.ID, "expecting an id, "); err != nil {
				return nil, err
			}
		}
		return &ast.IDRValue{Path: path}, nil
	case token.INT_VAL, token.DOUBLE_VAL, token.BOOL_VAL, token.CHAR_VAL, token.STRING_VAL:
		v := p.curr
		return &ast.SimpleRValue{Value: v}, p.advance()
	default:
		return nil, p.errorf("expecting a value, ")
	}
}
