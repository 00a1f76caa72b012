/*
File   : vellum/interp/call.go
*/
package interp

import (
	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/value"
)

var builtinNames = map[string]bool{
	"print":  true,
	"stoi":   true,
	"stod":   true,
	"itos":   true,
	"dtos":   true,
	"get":    true,
	"length": true,
	"read":   true,
}

// evalCall sets i.curr to a call's result, dispatching to a builtin or
// running a user function through the call protocol: evaluate every
// argument in the caller's scope, jump to the global scope, push a
// fresh scope binding each parameter by name, run the body, then
// restore the caller's saved scope.
func (i *Interp) evalCall(call *ast.CallExpr) error {
	if builtinNames[call.Name.Lexeme] {
		return i.callBuiltin(call)
	}
	fn, ok := i.functions[call.Name.Lexeme]
	if !ok {
		return errs.Run(call.Name.Line, call.Name.Column, "no function named '%s'", call.Name.Lexeme)
	}

	argVals := make([]value.Value, len(call.Args))
	for idx, a := range call.Args {
		if err := i.evalExpr(a); err != nil {
			return err
		}
		argVals[idx] = i.curr
	}

	savedScope := i.st.ScopeID()
	i.st.RestoreScope(i.globalScopeID)
	i.st.PushScope()
	for idx, p := range fn.Params {
		i.st.Add(p.Name.Lexeme)
		i.st.SetValue(p.Name.Lexeme, argVals[idx])
	}

	returned, err := i.execStmts(fn.Stmts)
	if err == nil && !returned {
		i.curr = value.Nil()
	}

	i.st.PopScope()
	i.st.RestoreScope(savedScope)
	return err
}
