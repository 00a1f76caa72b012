// Package heap implements the record-object store spec.md §4.5
// describes: a monotonic id -> record-value map with no reclamation.
/*
File   : vellum/heap/heap.go
*/
package heap

import "github.com/gopherlang/vellum/value"

// Record is an ordered mapping from field name to value cell, grounded
// in objects/struct.go's GoMixObjectInstance (struct definition +
// field map), generalized with an explicit field order that records
// the fields' declaration order.
type Record struct {
	TypeName string
	Order    []string
	Fields   map[string]value.Value
}

// NewRecord creates an empty record of the named type with the given
// field order; every field starts nil until initialized.
func NewRecord(typeName string, order []string) *Record {
	fields := make(map[string]value.Value, len(order))
	for _, name := range order {
		fields[name] = value.Nil()
	}
	return &Record{TypeName: typeName, Order: order, Fields: fields}
}

// GetField returns a field's value, or ok=false if the field is not
// part of this record (an attribute-not-found runtime error at the
// call site).
func (r *Record) GetField(name string) (value.Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// SetField writes a field's value. It is a no-op if the field does not
// exist; callers check existence first to raise attribute-not-found.
func (r *Record) SetField(name string, v value.Value) {
	if _, ok := r.Fields[name]; ok {
		r.Fields[name] = v
	}
}

// Heap allocates monotonically increasing object ids and stores the
// record each names. There is no deallocation, matching spec.md §3's
// "no deallocation (the interpreter does not reclaim objects)".
type Heap struct {
	objects []*Record
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{}
}

// Allocate reserves the next object id. The caller fills in its record
// via SetObject.
func (h *Heap) Allocate() int {
	id := len(h.objects)
	h.objects = append(h.objects, nil)
	return id
}

// SetObject stores rec under id (id must have come from Allocate).
func (h *Heap) SetObject(id int, rec *Record) {
	if id < 0 || id >= len(h.objects) {
		return
	}
	h.objects[id] = rec
}

// GetObject returns the record stored at id.
func (h *Heap) GetObject(id int) (*Record, bool) {
	if id < 0 || id >= len(h.objects) {
		return nil, false
	}
	rec := h.objects[id]
	return rec, rec != nil
}

// HasObject reports whether id has been allocated and a record has
// been stored under it.
func (h *Heap) HasObject(id int) bool {
	return id >= 0 && id < len(h.objects) && h.objects[id] != nil
}
