/*
File   : vellum/repl/repl_test.go
*/
package repl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherlang/vellum/config"
	"github.com/gopherlang/vellum/interp"
	"github.com/gopherlang/vellum/types"
)

func TestRepl_HelperDeclarationLinesDoNotRequireEntryFunc(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	it := interp.New(cfg.EntryFunc, &strings.Builder{}, strings.NewReader(""))
	checker := types.New(cfg.EntryFunc)

	var out strings.Builder
	r.evalLine(&out, "type Point var x: int = 0 end", it, checker)
	assert.NotContains(t, out.String(), "undefined 'main' function")
	assert.Contains(t, out.String(), "ok")

	out.Reset()
	r.evalLine(&out, "fun int helper() return 1 end", it, checker)
	assert.NotContains(t, out.String(), "undefined 'main' function")
	assert.Contains(t, out.String(), "ok")
}

func TestRepl_LaterLinesSeeEarlierDeclarations(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	it := interp.New(cfg.EntryFunc, &strings.Builder{}, strings.NewReader(""))
	checker := types.New(cfg.EntryFunc)

	var out strings.Builder
	r.evalLine(&out, "fun int helper() return 41 end", it, checker)
	require.Contains(t, out.String(), "ok")

	out.Reset()
	r.evalLine(&out, "fun int main() return helper() + 1 end", it, checker)
	assert.Contains(t, out.String(), "=> 42")
}

func TestRepl_DefiningMainEvaluatesItImmediately(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	it := interp.New(cfg.EntryFunc, &strings.Builder{}, strings.NewReader(""))
	checker := types.New(cfg.EntryFunc)

	var out strings.Builder
	r.evalLine(&out, "fun int main() return 7 end", it, checker)
	assert.Contains(t, out.String(), "=> 7")
}
