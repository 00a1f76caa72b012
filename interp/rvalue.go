/*
File   : vellum/interp/rvalue.go
*/
package interp

import (
	"strconv"

	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/heap"
	"github.com/gopherlang/vellum/token"
	"github.com/gopherlang/vellum/value"
)

// evalRValue sets i.curr to the value an r-value node produces.
func (i *Interp) evalRValue(rv ast.RValue) error {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		return i.evalSimpleRValue(v)
	case *ast.NewRValue:
		return i.evalNewRValue(v)
	case *ast.IDRValue:
		return i.evalIDRValue(v)
	case *ast.CallExpr:
		return i.evalCall(v)
	case *ast.NegatedRValue:
		return i.evalNegatedRValue(v)
	case *ast.PointerTypeRValue:
		return i.evalPointerTypeRValue(v)
	case *ast.PointerValueRValue:
		return i.evalPointerValueRValue(v)
	}
	return errs.Run(0, 0, "unknown r-value")
}

func (i *Interp) evalSimpleRValue(v *ast.SimpleRValue) error {
	tok := v.Value
	switch tok.Kind {
	case token.NIL:
		i.curr = value.Nil()
	case token.INT_VAL:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return errs.Run(tok.Line, tok.Column, "integer literal out of range: %s", tok.Lexeme)
		}
		i.curr = value.Int(n)
	case token.DOUBLE_VAL:
		d, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return errs.Run(tok.Line, tok.Column, "double literal out of range: %s", tok.Lexeme)
		}
		i.curr = value.Double(d)
	case token.BOOL_VAL:
		i.curr = value.Bool(tok.Lexeme == "true")
	case token.CHAR_VAL:
		i.curr = value.Char(tok.Lexeme[0])
	case token.STRING_VAL:
		i.curr = value.String(tok.Lexeme)
	default:
		return errs.Run(tok.Line, tok.Column, "not a literal: %s", tok.Lexeme)
	}
	return nil
}

// evalNewRValue allocates a fresh record, initializing each field in
// declared order: an explicit initializer is evaluated fresh for this
// instance, an absent one leaves the field nil.
func (i *Interp) evalNewRValue(v *ast.NewRValue) error {
	td, ok := i.types[v.TypeName.Lexeme]
	if !ok {
		return errs.Run(v.TypeName.Line, v.TypeName.Column, "undefined type '%s'", v.TypeName.Lexeme)
	}
	order := make([]string, len(td.Fields))
	for idx, f := range td.Fields {
		order[idx] = f.Name.Lexeme
	}
	rec := heap.NewRecord(td.Name.Lexeme, order)
	for _, f := range td.Fields {
		if f.Expr == nil {
			continue
		}
		if err := i.evalExpr(f.Expr); err != nil {
			return err
		}
		rec.SetField(f.Name.Lexeme, i.curr)
	}
	id := i.heap.Allocate()
	i.heap.SetObject(id, rec)
	i.curr = value.ObjectID(id)
	return nil
}

// evalIDRValue walks a dot-separated path: the leading name is looked
// up in the symbol table, and every further segment walks one field of
// the heap record the previous segment resolved to.
func (i *Interp) evalIDRValue(v *ast.IDRValue) error {
	head := v.Path[0]
	cur, ok := i.st.GetValue(head.Lexeme)
	if !ok {
		return errs.Run(head.Line, head.Column, "use of undefined variable '%s'", head.Lexeme)
	}
	for _, field := range v.Path[1:] {
		if !cur.IsObjectID() {
			return errs.Run(field.Line, field.Column, "'%s' is not a record reference", head.Lexeme)
		}
		rec, ok := i.heap.GetObject(cur.ObjID)
		if !ok {
			return errs.Run(field.Line, field.Column, "dangling object reference")
		}
		fv, ok := rec.GetField(field.Lexeme)
		if !ok {
			return errs.Run(field.Line, field.Column, "no attribute named '%s'", field.Lexeme)
		}
		cur = fv
	}
	i.curr = cur
	return nil
}

func (i *Interp) evalNegatedRValue(v *ast.NegatedRValue) error {
	if err := i.evalExpr(v.Expr); err != nil {
		return err
	}
	switch {
	case i.curr.IsInt():
		i.curr = value.Int(-i.curr.Int)
	case i.curr.IsDouble():
		i.curr = value.Double(-i.curr.Double)
	}
	return nil
}

// evalPointerTypeRValue reads an alias's cached value by the alias's
// own (sigil-inclusive) name, visible from any enclosing scope.
func (i *Interp) evalPointerTypeRValue(v *ast.PointerTypeRValue) error {
	entry, ok := i.aliases[v.Name.Lexeme]
	if !ok {
		return errs.Run(v.Name.Line, v.Name.Column, "undefined pointer alias '%s'", v.Name.Lexeme)
	}
	i.curr = entry.Value
	return nil
}

// evalPointerValueRValue reads the bare target's own current value and
// records it as the most recently dereferenced alias target, so the
// variable declaration that follows (`var ~p: T = &x`) knows what x is.
func (i *Interp) evalPointerValueRValue(v *ast.PointerValueRValue) error {
	bare := v.Name.Lexeme[1:]
	val, ok := i.st.GetValue(bare)
	if !ok {
		return errs.Run(v.Name.Line, v.Name.Column, "use of undefined variable '%s'", bare)
	}
	i.curr = val
	i.lastDerefTarget = bare
	return nil
}

// applyOp implements the runtime binary-operator table: arithmetic
// (int/double only, except `+` also accepting string/char combinations
// that yield a string), nil-aware equality via canonical string
// rendering, natural ordering for int, double, char and string
// operands, and boolean and/or.
func (i *Interp) applyOp(op token.Token, lhs, rhs value.Value) (value.Value, error) {
	switch op.Kind {
	case token.PLUS:
		return i.applyPlus(op, lhs, rhs)
	case token.MINUS:
		return applyArith(op, lhs, rhs, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case token.MULTIPLY:
		return applyArith(op, lhs, rhs, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case token.DIVIDE:
		return applyArith(op, lhs, rhs, func(a, b int64) int64 { return a / b }, func(a, b float64) float64 { return a / b })
	case token.MODULO:
		if !lhs.IsInt() || !rhs.IsInt() {
			return value.Nil(), errs.Run(op.Line, op.Column, "'%%' requires int operands")
		}
		return value.Int(lhs.Int % rhs.Int), nil
	case token.AND:
		if lhs.IsNil() || rhs.IsNil() {
			return value.Nil(), errs.Run(op.Line, op.Column, "cannot use 'and' with a nil operand")
		}
		return value.Bool(lhs.Bool && rhs.Bool), nil
	case token.OR:
		if lhs.IsNil() || rhs.IsNil() {
			return value.Nil(), errs.Run(op.Line, op.Column, "cannot use 'or' with a nil operand")
		}
		return value.Bool(lhs.Bool || rhs.Bool), nil
	case token.EQUAL:
		return value.Bool(valuesEqual(lhs, rhs)), nil
	case token.NOT_EQUAL:
		return value.Bool(!valuesEqual(lhs, rhs)), nil
	case token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		return i.applyOrder(op, lhs, rhs)
	}
	return value.Nil(), errs.Run(op.Line, op.Column, "unknown operator '%s'", op.Lexeme)
}

func (i *Interp) applyPlus(op token.Token, lhs, rhs value.Value) (value.Value, error) {
	if lhs.IsNil() || rhs.IsNil() {
		return value.Nil(), errs.Run(op.Line, op.Column, "cannot use '+' with a nil operand")
	}
	switch {
	case lhs.IsInt() && rhs.IsInt():
		return value.Int(lhs.Int + rhs.Int), nil
	case lhs.IsDouble() && rhs.IsDouble():
		return value.Double(lhs.Double + rhs.Double), nil
	case lhs.IsString() && rhs.IsString():
		return value.String(lhs.Str + rhs.Str), nil
	case lhs.IsString() && rhs.IsChar():
		return value.String(lhs.Str + string(rhs.Char)), nil
	case lhs.IsChar() && rhs.IsString():
		return value.String(string(lhs.Char) + rhs.Str), nil
	case lhs.IsChar() && rhs.IsChar():
		return value.String(string(lhs.Char) + string(rhs.Char)), nil
	}
	return value.Nil(), errs.Run(op.Line, op.Column, "mismatched operand types for '+'")
}

func applyArith(op token.Token, lhs, rhs value.Value, onInt func(int64, int64) int64, onDouble func(float64, float64) float64) (value.Value, error) {
	if lhs.IsNil() || rhs.IsNil() {
		return value.Nil(), errs.Run(op.Line, op.Column, "cannot use '%s' with a nil operand", op.Lexeme)
	}
	switch {
	case lhs.IsInt() && rhs.IsInt():
		return value.Int(onInt(lhs.Int, rhs.Int)), nil
	case lhs.IsDouble() && rhs.IsDouble():
		return value.Double(onDouble(lhs.Double, rhs.Double)), nil
	}
	return value.Nil(), errs.Run(op.Line, op.Column, "mismatched operand types for '%s'", op.Lexeme)
}

// valuesEqual mirrors the reference semantics: nil equals only nil,
// and any other pair is compared by their canonical string rendering.
func valuesEqual(lhs, rhs value.Value) bool {
	if lhs.IsNil() || rhs.IsNil() {
		return lhs.IsNil() && rhs.IsNil()
	}
	return lhs.ToString() == rhs.ToString()
}

func (i *Interp) applyOrder(op token.Token, lhs, rhs value.Value) (value.Value, error) {
	if lhs.IsNil() || rhs.IsNil() {
		return value.Nil(), errs.Run(op.Line, op.Column, "cannot compare a nil operand")
	}
	var cmp int
	switch {
	case lhs.IsInt():
		cmp = cmpInt64(lhs.Int, rhs.Int)
	case lhs.IsDouble():
		cmp = cmpFloat64(lhs.Double, rhs.Double)
	case lhs.IsChar():
		cmp = cmpInt64(int64(lhs.Char), int64(rhs.Char))
	case lhs.IsString():
		cmp = cmpString(lhs.Str, rhs.Str)
	default:
		return value.Nil(), errs.Run(op.Line, op.Column, "operands are not comparable")
	}
	switch op.Kind {
	case token.LESS:
		return value.Bool(cmp < 0), nil
	case token.LESS_EQUAL:
		return value.Bool(cmp <= 0), nil
	case token.GREATER:
		return value.Bool(cmp > 0), nil
	default:
		return value.Bool(cmp >= 0), nil
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
