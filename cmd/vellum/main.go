// Command vellum is the CLI driver: the collaborator spec.md §6
// describes as outside the language core. It reads source from a file
// or standard input and runs one of four modes (lex-only, parse-only,
// type-check, full execution), or starts the interactive REPL when
// given no source at all. Grounded in the teacher's `main/main.go`
// flag dispatch and color-role conventions.
/*
File   : vellum/cmd/vellum/main.go
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/gopherlang/vellum/ast"
	"github.com/gopherlang/vellum/config"
	"github.com/gopherlang/vellum/interp"
	"github.com/gopherlang/vellum/lexer"
	"github.com/gopherlang/vellum/parser"
	"github.com/gopherlang/vellum/repl"
	"github.com/gopherlang/vellum/types"
)

var (
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
)

func main() {
	lexOnly := flag.Bool("lex", false, "lex the source and print its tokens, then stop")
	parseOnly := flag.Bool("parse", false, "parse the source and pretty-print its AST, then stop")
	checkOnly := flag.Bool("check", false, "type-check the source and stop")
	configPath := flag.String("config", ".vellum.yaml", "path to a YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	if !cfg.Color {
		color.NoColor = true
	}

	args := flag.Args()
	if len(args) == 0 {
		repl.New(cfg).Start(os.Stdout)
		return
	}

	src, err := readSource(args[0])
	if err != nil {
		redColor.Fprintf(os.Stderr, "could not read '%s': %s\n", args[0], err)
		os.Exit(1)
	}

	switch {
	case *lexOnly:
		os.Exit(runLexOnly(src))
	case *parseOnly:
		os.Exit(runParseOnly(src))
	case *checkOnly:
		os.Exit(runCheckOnly(src, cfg))
	default:
		os.Exit(runFull(src, cfg))
	}
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runLexOnly(src []byte) int {
	toks, err := lexer.New(string(src)).Tokens()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	for _, tok := range toks {
		fmt.Printf("%-14s %q (line %d, col %d)\n", tok.Kind, tok.Lexeme, tok.Line, tok.Column)
	}
	return 0
}

func runParseOnly(src []byte) int {
	prog, err := parser.New(string(src)).Parse()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	fmt.Print(ast.Print(prog))
	return 0
}

func runCheckOnly(src []byte, cfg *config.Config) int {
	prog, err := parser.New(string(src)).Parse()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	if err := types.New(cfg.EntryFunc).Check(prog); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	greenColor.Println("ok")
	return 0
}

func runFull(src []byte, cfg *config.Config) int {
	prog, err := parser.New(string(src)).Parse()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	if err := types.New(cfg.EntryFunc).Check(prog); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	code, err := interp.New(cfg.EntryFunc, os.Stdout, os.Stdin).Run(prog)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	return code
}
