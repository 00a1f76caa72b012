// Package symtab implements the stack-of-scopes symbol table required
// by spec.md §4.3: each scope carries a stable integer id, and the
// active scope can be saved and restored around a function call. The
// same structure backs both the type checker (scalar/signature/record
// facts) and the interpreter's runtime bindings (the Value facet),
// matching how the reference implementation's one SymbolTable class
// doubles as both the checker's type environment and the
// interpreter's variable environment.
/*
File   : vellum/symtab/symtab.go
*/
package symtab

import "github.com/gopherlang/vellum/value"

// Fact is the information attached to one name in one scope: a scalar
// type name and/or runtime value, a function signature (parameter
// types followed by the return type), or a record type's
// field-name -> type-name map.
type Fact struct {
	Scalar    string
	Value     value.Value
	Signature []string
	Record    map[string]string
}

// scope is one frame in the tree of scopes: a lazily-initialized
// name->Fact map, the stable id assigned to it when pushed, and the id
// of the scope it was pushed on top of (-1 for the root/global scope).
// Keeping the parent link (rather than only a flat stack) is what lets
// RestoreScope rebuild a caller's full enclosing chain, not just its
// innermost frame.
type scope struct {
	id       int
	parentID int
	entries  map[string]Fact
}

func newScope(id, parentID int) *scope {
	return &scope{id: id, parentID: parentID, entries: make(map[string]Fact)}
}

// SymbolTable is a stack of scopes addressable by integer id, as
// required so the interpreter's call protocol (spec.md §4.6) can save
// the caller's scope, jump to the global scope, and restore it later.
type SymbolTable struct {
	stack  []*scope
	byID   map[int]*scope
	nextID int
}

// New returns an empty symbol table with no scopes pushed.
func New() *SymbolTable {
	return &SymbolTable{byID: make(map[int]*scope)}
}

// PushScope pushes a fresh scope on top of the current one and returns
// its new id.
func (t *SymbolTable) PushScope() int {
	parent := -1
	if len(t.stack) > 0 {
		parent = t.stack[len(t.stack)-1].id
	}
	s := newScope(t.nextID, parent)
	t.nextID++
	t.byID[s.id] = s
	t.stack = append(t.stack, s)
	return s.id
}

// PopScope removes the innermost scope. It is a no-op on an empty stack.
func (t *SymbolTable) PopScope() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// ScopeID returns the id of the innermost (current) scope, or -1 if no
// scope is pushed.
func (t *SymbolTable) ScopeID() int {
	if len(t.stack) == 0 {
		return -1
	}
	return t.stack[len(t.stack)-1].id
}

// RestoreScope rebuilds the visible stack as the full ancestor chain
// from the global scope down to the scope identified by id. This is
// what lets the interpreter's call protocol jump to the global scope
// for a call and later resume the caller's original nested view,
// rather than just its innermost frame.
func (t *SymbolTable) RestoreScope(id int) {
	s, ok := t.byID[id]
	if !ok {
		return
	}
	var chain []*scope
	for s != nil {
		chain = append(chain, s)
		if s.parentID == -1 {
			break
		}
		s = t.byID[s.parentID]
	}
	t.stack = t.stack[:0]
	for i := len(chain) - 1; i >= 0; i-- {
		t.stack = append(t.stack, chain[i])
	}
}

// Add inserts name into the innermost scope with an empty fact, as a
// declaration placeholder ahead of SetScalar/SetSignature/SetRecord.
func (t *SymbolTable) Add(name string) {
	if len(t.stack) == 0 {
		return
	}
	cur := t.stack[len(t.stack)-1]
	if _, exists := cur.entries[name]; !exists {
		cur.entries[name] = Fact{}
	}
}

// Exists reports whether name is bound in the current scope or any
// enclosing scope, searching innermost to outermost.
func (t *SymbolTable) Exists(name string) bool {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if _, ok := t.stack[i].entries[name]; ok {
			return true
		}
	}
	return false
}

// ExistsInCurrent reports whether name is bound in the innermost scope only.
func (t *SymbolTable) ExistsInCurrent(name string) bool {
	if len(t.stack) == 0 {
		return false
	}
	_, ok := t.stack[len(t.stack)-1].entries[name]
	return ok
}

func (t *SymbolTable) lookup(name string) (Fact, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if f, ok := t.stack[i].entries[name]; ok {
			return f, true
		}
	}
	return Fact{}, false
}

func (t *SymbolTable) set(name string, f Fact) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if _, ok := t.stack[i].entries[name]; ok {
			t.stack[i].entries[name] = f
			return
		}
	}
	if len(t.stack) > 0 {
		t.stack[len(t.stack)-1].entries[name] = f
	}
}

// GetScalar returns the scalar type name bound to name.
func (t *SymbolTable) GetScalar(name string) (string, bool) {
	f, ok := t.lookup(name)
	return f.Scalar, ok
}

// SetScalar records name as having scalar type typ in whichever scope
// already declared it (or the innermost scope if undeclared).
func (t *SymbolTable) SetScalar(name, typ string) {
	f, _ := t.lookup(name)
	f.Scalar = typ
	t.set(name, f)
}

// GetValue returns the runtime value bound to name.
func (t *SymbolTable) GetValue(name string) (value.Value, bool) {
	f, ok := t.lookup(name)
	return f.Value, ok
}

// SetValue records name's runtime value in whichever scope already
// declared it (or the innermost scope if undeclared).
func (t *SymbolTable) SetValue(name string, v value.Value) {
	f, _ := t.lookup(name)
	f.Value = v
	t.set(name, f)
}

// GetSignature returns the parameter-types-then-return-type sequence
// bound to a function name.
func (t *SymbolTable) GetSignature(name string) ([]string, bool) {
	f, ok := t.lookup(name)
	return f.Signature, ok
}

// SetSignature records a function's signature.
func (t *SymbolTable) SetSignature(name string, seq []string) {
	f, _ := t.lookup(name)
	f.Signature = seq
	t.set(name, f)
}

// GetRecord returns the field-name -> type-name map bound to a record
// type name.
func (t *SymbolTable) GetRecord(name string) (map[string]string, bool) {
	f, ok := t.lookup(name)
	return f.Record, ok
}

// SetRecord records a record type's field map.
func (t *SymbolTable) SetRecord(name string, fields map[string]string) {
	f, _ := t.lookup(name)
	f.Record = fields
	t.set(name, f)
}
