// Package errs defines the error taxonomy shared by every pipeline stage:
// lexing, parsing, semantic checking, and interpretation.
package errs

import "fmt"

// Kind identifies which pipeline stage raised an error.
type Kind string

const (
	Lexer    Kind = "LEXER"
	Syntax   Kind = "SYNTAX"
	Semantic Kind = "SEMANTIC"
	Runtime  Kind = "RUNTIME"
)

// Error is the error type raised by every stage. Line and Column are
// zero when the error has no associated source position.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Line == 0 && e.Column == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Line, e.Column)
}

// New builds an Error of the given kind at the given position.
func New(kind Kind, line, column int, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Line: line, Column: column}
}

func Lex(line, column int, format string, a ...interface{}) *Error {
	return New(Lexer, line, column, format, a...)
}

func Syn(line, column int, format string, a ...interface{}) *Error {
	return New(Syntax, line, column, format, a...)
}

func Sem(line, column int, format string, a ...interface{}) *Error {
	return New(Semantic, line, column, format, a...)
}

func Run(line, column int, format string, a ...interface{}) *Error {
	return New(Runtime, line, column, format, a...)
}
