/*
File   : vellum/symtab/symtab_test.go
*/
package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable_LookupInnermostToOutermost(t *testing.T) {
	st := New()
	global := st.PushScope()
	st.Add("x")
	st.SetScalar("x", "int")

	inner := st.PushScope()
	st.Add("x")
	st.SetScalar("x", "string")

	assert.True(t, st.Exists("x"))
	typ, ok := st.GetScalar("x")
	assert.True(t, ok)
	assert.Equal(t, "string", typ)

	st.PopScope()
	typ, ok = st.GetScalar("x")
	assert.True(t, ok)
	assert.Equal(t, "int", typ)
	_ = global
	_ = inner
}

func TestSymbolTable_ExistsInCurrentOnly(t *testing.T) {
	st := New()
	st.PushScope()
	st.Add("x")
	st.PushScope()
	assert.False(t, st.ExistsInCurrent("x"))
	assert.True(t, st.Exists("x"))
}

func TestSymbolTable_RestoreScopeRebuildsAncestorChain(t *testing.T) {
	st := New()
	global := st.PushScope()
	st.Add("g")
	st.SetScalar("g", "int")

	funcScope := st.PushScope()
	st.Add("p")
	st.SetScalar("p", "string")

	forScope := st.PushScope()
	st.Add("i")
	st.SetScalar("i", "int")

	// simulate a call: jump to global, do work, then resume the caller's view
	savedID := st.ScopeID()
	assert.Equal(t, forScope, savedID)

	st.RestoreScope(global)
	assert.Equal(t, global, st.ScopeID())
	assert.False(t, st.Exists("p"))

	st.RestoreScope(savedID)
	assert.Equal(t, forScope, st.ScopeID())
	assert.True(t, st.Exists("g"))
	assert.True(t, st.Exists("p"))
	assert.True(t, st.Exists("i"))
	_ = funcScope
}

func TestSymbolTable_SignatureAndRecordFacts(t *testing.T) {
	st := New()
	st.PushScope()
	st.Add("add")
	st.SetSignature("add", []string{"int", "int", "int"})
	sig, ok := st.GetSignature("add")
	assert.True(t, ok)
	assert.Equal(t, []string{"int", "int", "int"}, sig)

	st.Add("Point")
	st.SetRecord("Point", map[string]string{"x": "int", "y": "int"})
	rec, ok := st.GetRecord("Point")
	assert.True(t, ok)
	assert.Equal(t, "int", rec["x"])
}
