package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pyjs-lang/pyjs/project"
)

type CheckCmd struct {
	Path string `help:"Path to the project directory." short:"p" default:"."`
}

func (c *CheckCmd) Run() error {
	p, err := project.Load(c.Path)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := p.Check(ctx)
	if n := report(os.Stderr, results); n > 0 {
		return fmt.Errorf("%d of %d files have errors", n, len(results))
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d files ok\n", len(results))
	return nil
}
