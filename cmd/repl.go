package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/project"
)

const (
	historyFile = ".pyjs_history"
	promptMain  = ">>> "
	promptCont  = "... "
	replSource  = "<repl>"
)

type ReplCmd struct {
	Path string `help:"Project whose configuration is used." short:"p" default:"."`
}

func (r *ReplCmd) Run() error {
	p, err := openProject(r.Path)
	if err != nil {
		return err
	}
	fmt.Printf("pyjs %s\nEach input is printed as JavaScript. Ctrl+D exits. Type :quit to exit.\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, p)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return nil
		case strings.HasPrefix(trimmed, ":"):
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}
		for _, line := range strings.Split(code, "\n") {
			if strings.TrimSpace(line) != "" {
				ln.AppendHistory(line)
			}
		}

		mod, cerr := p.CompileSource(replSource, code)
		if cerr != nil {
			printError(os.Stderr, cerr, code)
			continue
		}
		fmt.Print(mod.Code)
	}
}

// readByParseProbe reads lines until they form a complete input. ok is
// false once the input is closed.
func readByParseProbe(ln *liner.State, p *project.Project) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsMore(p, b.String()) {
			return b.String(), true
		}
	}
}

// needsMore reports whether src is the start of a longer input: the front
// end ran out of tokens, or an indented block is still open. A block is
// closed by an empty line.
func needsMore(p *project.Project, src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	lines := strings.Split(src, "\n")
	last := lines[len(lines)-1]
	if len(lines) > 1 && last != "" && (last[0] == ' ' || last[0] == '\t') {
		return true
	}
	_, err := p.Analyze(replSource, src)
	return err != nil && err.Kind == common.ErrUnexpectedEOF
}
