// Builtin dispatch, grounded in the reference implementation's fixed
// builtin-function table rather than a generalized standard library —
// this language has exactly these eight functions and no import
// mechanism to add more.
/*
File   : vellum/interp/builtins.go
*/
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/value"
)

func (i *Interp) callBuiltin(call *ast.CallExpr) error {
	switch call.Name.Lexeme {
	case "print":
		return i.biPrint(call)
	case "stoi":
		return i.biStoi(call)
	case "stod":
		return i.biStod(call)
	case "itos":
		return i.biItos(call)
	case "dtos":
		return i.biDtos(call)
	case "get":
		return i.biGet(call)
	case "length":
		return i.biLength(call)
	case "read":
		return i.biRead(call)
	}
	return errs.Run(call.Name.Line, call.Name.Column, "unknown builtin '%s'", call.Name.Lexeme)
}

// biPrint writes its argument's canonical string form, substituting
// the two-character escapes `\n` and `\t` for their literal control
// characters, and leaves the current value nil.
func (i *Interp) biPrint(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	s := i.curr.ToString()
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	fmt.Fprint(i.Out, s)
	i.curr = value.Nil()
	return nil
}

func (i *Interp) biStoi(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(i.curr.Str), 10, 64)
	if err != nil {
		return errs.Run(call.Name.Line, call.Name.Column, "cannot convert '%s' to int", i.curr.Str)
	}
	i.curr = value.Int(n)
	return nil
}

func (i *Interp) biStod(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(i.curr.Str), 64)
	if err != nil {
		return errs.Run(call.Name.Line, call.Name.Column, "cannot convert '%s' to double", i.curr.Str)
	}
	i.curr = value.Double(d)
	return nil
}

func (i *Interp) biItos(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	i.curr = value.String(i.curr.ToString())
	return nil
}

func (i *Interp) biDtos(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	i.curr = value.String(i.curr.ToString())
	return nil
}

// biGet returns the character at an index into a string: `get(idx, s)`.
func (i *Interp) biGet(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	idx := i.curr.Int
	if err := i.evalExpr(call.Args[1]); err != nil {
		return err
	}
	s := i.curr.Str
	if idx < 0 || int(idx) >= len(s) {
		return errs.Run(call.Name.Line, call.Name.Column, "index %d out of range for string of length %d", idx, len(s))
	}
	i.curr = value.Char(s[idx])
	return nil
}

func (i *Interp) biLength(call *ast.CallExpr) error {
	if err := i.evalExpr(call.Args[0]); err != nil {
		return err
	}
	i.curr = value.Int(int64(len(i.curr.ToString())))
	return nil
}

// biRead consumes one whitespace-delimited token from the input
// stream, mirroring the reference implementation's `cin >> str`.
func (i *Interp) biRead(call *ast.CallExpr) error {
	if !i.input.Scan() {
		return errs.Run(call.Name.Line, call.Name.Column, "unexpected end of input")
	}
	i.curr = value.String(i.input.Text())
	return nil
}
