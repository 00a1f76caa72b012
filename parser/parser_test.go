/*
File   : vellum/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherlang/vellum/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := New(src).Parse()
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func TestParser_EmptyMainFunction(t *testing.T) {
	prog := parseOK(t, "fun nil main() end")
	require.Len(t, prog.Decls, 1)
	fn, ok := prog.Decls[0].(*ast.FunDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name.Lexeme)
	assert.Empty(t, fn.Stmts)
}

func TestParser_TypeDeclWithFields(t *testing.T) {
	prog := parseOK(t, `
type Point
  var x: int = 0
  var y: int = 0
end
fun nil main() end
`)
	require.Len(t, prog.Decls, 2)
	td, ok := prog.Decls[0].(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", td.Name.Lexeme)
	require.Len(t, td.Fields, 2)
	assert.Equal(t, "x", td.Fields[0].Name.Lexeme)
	assert.Equal(t, "y", td.Fields[1].Name.Lexeme)
}

func TestParser_FunctionWithParamsAndReturn(t *testing.T) {
	prog := parseOK(t, `
fun int add(a: int, b: int)
  return a + b
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	assert.Equal(t, "int", fn.ReturnType.Lexeme)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name.Lexeme)
	assert.Equal(t, "int", fn.Params[0].Type.Lexeme)
	require.Len(t, fn.Stmts, 1)
	ret, ok := fn.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.NotNil(t, ret.Expr.Op)
}

func TestParser_RightLeaningExprSpine(t *testing.T) {
	prog := parseOK(t, `
fun int main()
  return 1 + 2 + 3
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	e := fn.Stmts[0].(*ast.ReturnStmt).Expr
	require.NotNil(t, e.Op)
	assert.Equal(t, "+", e.Op.Lexeme)
	require.NotNil(t, e.Rest)
	require.NotNil(t, e.Rest.Op)
	assert.Equal(t, "+", e.Rest.Op.Lexeme)
	assert.Nil(t, e.Rest.Rest.Op)
}

func TestParser_ParenthesizedExpression(t *testing.T) {
	prog := parseOK(t, `
fun int main()
  return (1 + 2) * 3
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	e := fn.Stmts[0].(*ast.ReturnStmt).Expr
	_, ok := e.First.(*ast.ComplexTerm)
	assert.True(t, ok)
	require.NotNil(t, e.Op)
	assert.Equal(t, "*", e.Op.Lexeme)
}

func TestParser_IfElseifElse(t *testing.T) {
	prog := parseOK(t, `
fun nil main()
  if x == 1 then
    return 1
  elseif x == 2 then
    return 2
  else
    return 0
  end
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	ifs := fn.Stmts[0].(*ast.IfStmt)
	require.Len(t, ifs.ElseIfs, 1)
	require.Len(t, ifs.ElseBody, 1)
}

func TestParser_WhileAndForLoops(t *testing.T) {
	prog := parseOK(t, `
fun nil main()
  while x < 10 do
    x = x + 1
  end
  for i = 0 to 10 do
    print(i)
  end
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	_, ok := fn.Stmts[0].(*ast.WhileStmt)
	assert.True(t, ok)
	forStmt, ok := fn.Stmts[1].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Var.Lexeme)
}

func TestParser_CallStatementAndDotPathAssignment(t *testing.T) {
	prog := parseOK(t, `
fun nil main()
  var p: Point = new Point
  p.x = 5
  print(p.x)
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	vd := fn.Stmts[0].(*ast.VarDeclStmt)
	_, ok := vd.Expr.First.(*ast.SimpleTerm).RValue.(*ast.NewRValue)
	assert.True(t, ok)

	assign := fn.Stmts[1].(*ast.AssignStmt)
	require.Len(t, assign.Path, 2)
	assert.Equal(t, "p", assign.Path[0].Lexeme)
	assert.Equal(t, "x", assign.Path[1].Lexeme)

	call := fn.Stmts[2].(*ast.CallStmt)
	assert.Equal(t, "print", call.Call.Name.Lexeme)
}

func TestParser_PointerSigils(t *testing.T) {
	prog := parseOK(t, `
fun nil main()
  var x: int = 5
  var ~p: int = &x
  print(~p)
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	pDecl := fn.Stmts[1].(*ast.VarDeclStmt)
	assert.True(t, pDecl.Pointer)
	_, ok := pDecl.Expr.First.(*ast.SimpleTerm).RValue.(*ast.PointerValueRValue)
	assert.True(t, ok)

	call := fn.Stmts[2].(*ast.CallStmt)
	_, ok = call.Call.Args[0].First.(*ast.SimpleTerm).RValue.(*ast.PointerTypeRValue)
	assert.True(t, ok)
}

func TestParser_NotAndNeg(t *testing.T) {
	prog := parseOK(t, `
fun nil main()
  var b: bool = not (x == 1)
  var n: int = neg 5
end
`)
	fn := prog.Decls[0].(*ast.FunDecl)
	bDecl := fn.Stmts[0].(*ast.VarDeclStmt)
	assert.True(t, bDecl.Expr.Negated)

	nDecl := fn.Stmts[1].(*ast.VarDeclStmt)
	_, ok := nDecl.Expr.First.(*ast.SimpleTerm).RValue.(*ast.NegatedRValue)
	assert.True(t, ok)
}

func TestParser_SyntaxErrorReportsPositionAndLexeme(t *testing.T) {
	_, err := New("fun nil main() var x int = 1 end").Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNTAX")
}

func TestParser_MissingEndIsSyntaxError(t *testing.T) {
	_, err := New("fun nil main()").Parse()
	require.Error(t, err)
}
