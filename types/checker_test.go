/*
File   : vellum/types/checker_test.go
*/
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherlang/vellum/parser"
)

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.New(src).Parse()
	require.NoError(t, err)
	return New("main").Check(prog)
}

func TestChecker_ValidMainPasses(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  return 0
end
`)
	assert.NoError(t, err)
}

func TestChecker_MissingMainIsSemanticError(t *testing.T) {
	err := checkSrc(t, `
fun nil helper()
end
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEMANTIC")
}

func TestChecker_MainMustReturnInt(t *testing.T) {
	err := checkSrc(t, `
fun bool main()
  return true
end
`)
	require.Error(t, err)
}

func TestChecker_ArithmeticMixingIntAndDoubleFails(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  var x: int = 1
  var y: double = 2.0
  var z: int = x + y
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_StringCharConcatYieldsString(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  var a: string = "hi"
  var b: char = 'x'
  var c: string = a + b
  return 0
end
`)
	assert.NoError(t, err)
}

func TestChecker_ModuloRequiresInts(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  var x: double = 1.0
  var y: int = 2
  var z: int = x % y
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_CallArityMismatch(t *testing.T) {
	err := checkSrc(t, `
fun int add(a: int, b: int)
  return a + b
end
fun int main()
  return add(1)
end
`)
	require.Error(t, err)
}

func TestChecker_CallArgTypeMismatch(t *testing.T) {
	err := checkSrc(t, `
fun int add(a: int, b: int)
  return a + b
end
fun int main()
  return add(1, "two")
end
`)
	require.Error(t, err)
}

func TestChecker_UseBeforeDefinitionFails(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  x = 5
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_RecordFieldAccessAndAssignment(t *testing.T) {
	err := checkSrc(t, `
type Point
  var x: int = 0
  var y: int = 0
end
fun int main()
  var p: Point = new Point
  p.x = 5
  return p.x
end
`)
	assert.NoError(t, err)
}

func TestChecker_UnknownFieldFails(t *testing.T) {
	err := checkSrc(t, `
type Point
  var x: int = 0
end
fun int main()
  var p: Point = new Point
  p.z = 5
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_IfConditionMustBeBool(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  if 1 then
    return 1
  end
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_ForBoundsMustMatch(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  for i = 0 to 3.0 do
  end
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_DuplicateParamNameFails(t *testing.T) {
	err := checkSrc(t, `
fun int add(a: int, a: int)
  return a
end
fun int main()
  return 0
end
`)
	require.Error(t, err)
}

func TestChecker_ShadowingInNestedScopeIsAllowed(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  var x: int = 1
  if true then
    var x: string = "shadow"
  end
  return x
end
`)
	assert.NoError(t, err)
}

func TestChecker_PointerAliasTyping(t *testing.T) {
	err := checkSrc(t, `
fun int main()
  var x: int = 5
  var ~p: int = &x
  return ~p
end
`)
	assert.NoError(t, err)
}
