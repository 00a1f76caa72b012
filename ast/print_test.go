/*
File   : vellum/ast/print_test.go
*/
package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/parser"
)

func printAndReparse(t *testing.T, src string) (*Program, string, *Program) {
	t.Helper()
	first, err := parser.New(src).Parse()
	require.NoError(t, err)
	out := Print(first)
	second, err := parser.New(out).Parse()
	require.NoError(t, err, "printed source failed to re-parse:\n%s", out)
	return first, out, second
}

func mainExpr(prog *Program) *Expr {
	fn := prog.Decls[0].(*FunDecl)
	return fn.Stmts[0].(*ReturnStmt).Expr
}

func TestPrint_ParenthesizedBareTermRoundTrips(t *testing.T) {
	first, out, second := printAndReparse(t, "fun int main() return (x) end")

	assert.Contains(t, out, "(x)")

	_, wasComplex := mainExpr(first).First.(*ComplexTerm)
	assert.True(t, wasComplex, "original parse should wrap (x) in a ComplexTerm")

	_, stillComplex := mainExpr(second).First.(*ComplexTerm)
	assert.True(t, stillComplex, "re-parsed print output lost the parenthesized wrapper")
}

func TestPrint_BareIdentifierStaysUnparenthesized(t *testing.T) {
	_, out, second := printAndReparse(t, "fun int main() return x end")

	assert.NotContains(t, out, "(x)")
	_, isComplex := mainExpr(second).First.(*ComplexTerm)
	assert.False(t, isComplex)
}

func TestPrint_ParenthesizedOperatorExpressionRoundTrips(t *testing.T) {
	_, out, second := printAndReparse(t, "fun int main() return (1 + 2) * 3 end")

	assert.Contains(t, out, "(1 + 2)")
	assert.NotContains(t, out, "((1 + 2))")

	e := mainExpr(second)
	ct, ok := e.First.(*ComplexTerm)
	require.True(t, ok)
	require.NotNil(t, ct.Expr.Op)
	assert.Equal(t, "+", ct.Expr.Op.Lexeme)
	require.NotNil(t, e.Op)
	assert.Equal(t, "*", e.Op.Lexeme)
}

func TestPrint_PlainOperatorExpressionStaysUnparenthesized(t *testing.T) {
	_, out, second := printAndReparse(t, "fun int main() return 1 + 2 end")

	assert.Equal(t, "return 1 + 2", firstStmtLine(out))

	e := mainExpr(second)
	_, isComplex := e.First.(*ComplexTerm)
	assert.False(t, isComplex, "an unparenthesized operator expression must not gain a ComplexTerm wrapper")
}

func TestPrint_NegatedBareTermRoundTrips(t *testing.T) {
	first, out, second := printAndReparse(t, "fun int main() return not x end")

	assert.Equal(t, "return not x", firstStmtLine(out))
	assert.True(t, mainExpr(first).Negated)
	assert.True(t, mainExpr(second).Negated)

	_, isComplex := mainExpr(second).First.(*ComplexTerm)
	assert.False(t, isComplex, "a bare negated operand must not print back with stray parens")
}

func TestPrint_NegatedParenthesizedExpressionRoundTrips(t *testing.T) {
	first, out, second := printAndReparse(t, "fun int main() return not (x == 1) end")

	assert.Contains(t, out, "not (x == 1)")

	for _, e := range []*Expr{mainExpr(first), mainExpr(second)} {
		assert.True(t, e.Negated)
		ct, ok := e.First.(*ComplexTerm)
		require.True(t, ok)
		require.NotNil(t, ct.Expr.Op)
		assert.Equal(t, "==", ct.Expr.Op.Lexeme)
	}
}

func TestPrint_CallArgumentWithOperatorRoundTrips(t *testing.T) {
	_, out, second := printAndReparse(t, "fun nil main() print(a + b) end")

	assert.Contains(t, out, "print(a + b)")

	fn := second.Decls[0].(*FunDecl)
	call := fn.Stmts[0].(*CallStmt).Call
	arg := call.Args[0]
	_, isComplex := arg.First.(*ComplexTerm)
	assert.False(t, isComplex)
	require.NotNil(t, arg.Op)
	assert.Equal(t, "+", arg.Op.Lexeme)
}

// firstStmtLine picks out the single indented statement line a
// one-statement main() prints, trimmed of its leading indentation, so
// assertions can check exact text without hard-coding indent widths.
func firstStmtLine(printed string) string {
	for _, line := range strings.Split(printed, "\n") {
		if !strings.HasPrefix(line, " ") {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		if trimmed != "" && trimmed != "end" {
			return trimmed
		}
	}
	return ""
}
