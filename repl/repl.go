// Package repl implements an interactive read-eval-print loop over the
// lexer/parser/checker/interpreter pipeline, grounded in the teacher's
// own REPL: readline-backed line editing and history, colored output
// roles (blue banners, yellow results, red errors, cyan hints), and a
// persistent evaluator whose state survives across lines.
/*
File   : vellum/repl/repl.go
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/config"
	"github.com/gopherlang/vellum/interp"
	"github.com/gopherlang/vellum/parser"
	"github.com/gopherlang/vellum/types"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session.
type Repl struct {
	cfg *config.Config
}

// New returns a Repl that uses cfg for its banner, prompt, and color
// settings.
func New(cfg *config.Config) *Repl {
	return &Repl{cfg: cfg}
}

// PrintBanner writes the startup banner and usage hints to writer.
func (r *Repl) PrintBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.cfg.Line)
	greenColor.Fprintf(writer, "%s\n", r.cfg.Banner)
	blueColor.Fprintf(writer, "%s\n", r.cfg.Line)
	cyanColor.Fprintln(writer, "Type a function or type declaration and press enter.")
	cyanColor.Fprintln(writer, "Type '.exit' to quit.")
	blueColor.Fprintf(writer, "%s\n", r.cfg.Line)
}

// Start runs the main loop, reading lines from the terminal (readline
// owns the actual input source) and writing results/errors to writer,
// until the user types '.exit' or sends EOF.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBanner(writer)

	rl, err := readline.New(r.cfg.Prompt)
	if err != nil {
		fmt.Fprintln(writer, err)
		return
	}
	defer rl.Close()

	it := interp.New(r.cfg.EntryFunc, writer, strings.NewReader(""))
	checker := types.New(r.cfg.EntryFunc)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		rl.SaveHistory(line)
		r.evalLine(writer, line, it, checker)
	}
}

// evalLine runs one line through lex -> parse -> check -> register
// against the session's persistent checker and interpreter. A line is
// just a function or type declaration (the grammar allows nothing
// else at the top level), so checking it never requires the entry
// function to already exist — only once the line defines the entry
// function itself does evalLine go on to call it and print its result.
func (r *Repl) evalLine(writer io.Writer, line string, it *interp.Interp, checker *types.Checker) {
	prog, err := parser.New(line).Parse()
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	if err := checker.CheckDecls(prog.Decls); err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	it.Register(prog)
	if !declaresEntry(prog, r.cfg.EntryFunc) {
		greenColor.Fprintln(writer, "ok")
		return
	}
	code, err := it.CallEntry()
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	yellowColor.Fprintf(writer, "=> %d\n", code)
}

// declaresEntry reports whether prog's own declarations (not anything
// registered on an earlier line) include the entry function.
func declaresEntry(prog *ast.Program, entryFunc string) bool {
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FunDecl); ok && fn.Name.Lexeme == entryFunc {
			return true
		}
	}
	return false
}
