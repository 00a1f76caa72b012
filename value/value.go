// Package value implements the tagged value cell ("data object") that
// flows through the type checker's type names and the interpreter's
// current-value register.
/*
File   : vellum/value/value.go
*/
package value

import "strconv"

// Kind tags which variant of the value union is populated.
type Kind int

const (
	NilKind Kind = iota
	IntKind
	DoubleKind
	BoolKind
	CharKind
	StringKind
	ObjectIDKind
)

// Value is the tagged union over {nil, int, double, bool, char, string,
// object-id} described by spec.md §3. Exactly one of the typed fields
// is meaningful, selected by Kind.
type Value struct {
	Kind    Kind
	Int     int64
	Double  float64
	Bool    bool
	Char    byte
	Str     string
	ObjID   int
}

// Nil is the shared nil value.
func Nil() Value { return Value{Kind: NilKind} }

func Int(v int64) Value       { return Value{Kind: IntKind, Int: v} }
func Double(v float64) Value  { return Value{Kind: DoubleKind, Double: v} }
func Bool(v bool) Value       { return Value{Kind: BoolKind, Bool: v} }
func Char(v byte) Value       { return Value{Kind: CharKind, Char: v} }
func String(v string) Value   { return Value{Kind: StringKind, Str: v} }
func ObjectID(v int) Value    { return Value{Kind: ObjectIDKind, ObjID: v} }

func (v Value) IsNil() bool      { return v.Kind == NilKind }
func (v Value) IsInt() bool      { return v.Kind == IntKind }
func (v Value) IsDouble() bool   { return v.Kind == DoubleKind }
func (v Value) IsBool() bool     { return v.Kind == BoolKind }
func (v Value) IsChar() bool     { return v.Kind == CharKind }
func (v Value) IsString() bool   { return v.Kind == StringKind }
func (v Value) IsObjectID() bool { return v.Kind == ObjectIDKind }

// SetNil overwrites the receiver in place with the nil value.
func (v *Value) SetNil() { *v = Nil() }

// Set overwrites the receiver in place with other's contents.
func (v *Value) Set(other Value) { *v = other }

// ToString renders the canonical string form used both by the `itos`
// family of builtins and as the tie-breaking comparison spec.md §4.6
// requires for equality between two non-nil values.
func (v Value) ToString() string {
	switch v.Kind {
	case NilKind:
		return "nil"
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case DoubleKind:
		return strconv.FormatFloat(v.Double, 'f', -1, 64)
	case BoolKind:
		if v.Bool {
			return "true"
		}
		return "false"
	case CharKind:
		return string(v.Char)
	case StringKind:
		return v.Str
	case ObjectIDKind:
		return "oid:" + strconv.Itoa(v.ObjID)
	}
	return ""
}

// TypeName returns the declared-type-name spelling the type checker
// uses for this value's kind ("int", "double", "bool", "char",
// "string"; object ids carry their record type name separately and are
// not covered here).
func (v Value) TypeName() string {
	switch v.Kind {
	case IntKind:
		return "int"
	case DoubleKind:
		return "double"
	case BoolKind:
		return "bool"
	case CharKind:
		return "char"
	case StringKind:
		return "string"
	}
	return ""
}
