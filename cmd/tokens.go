package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

type TokensCmd struct {
	File     string `arg:"" type:"existingfile" help:"Source file to scan."`
	TabWidth int    `help:"Indentation width of a tab." default:"4"`
}

func (t *TokensCmd) Run() error {
	code, err := os.ReadFile(t.File)
	if err != nil {
		return err
	}
	toks, lerr := lexer.LexWithOptions(t.File, string(code), lexer.Options{TabWidth: t.TabWidth})
	if lerr != nil {
		printError(os.Stderr, lerr, string(code))
		return errors.New("lexing failed")
	}
	return printTokens(os.Stdout, toks)
}

func printTokens(w io.Writer, toks []lexer.Token) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range toks {
		span := tok.Span()
		fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", span.LineStart, span.ColumnStart, tok.Kind(), tok)
	}
	return tw.Flush()
}
