package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pyjs-lang/pyjs/project"
)

type BuildCmd struct {
	Path  string `help:"Path to the project directory." short:"p" default:"."`
	Watch bool   `help:"Rebuild whenever a source file changes." short:"w"`
}

func (b *BuildCmd) Run() error {
	p, err := project.Load(b.Path)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = build(ctx, p)
	if !b.Watch {
		return err
	}
	if err != nil {
		log.Print(err)
	}
	log.Printf("watching %s", p.SrcDir())
	return p.Watch(ctx, func() {
		if err := build(ctx, p); err != nil {
			log.Print(err)
		}
	})
}

func build(ctx context.Context, p *project.Project) error {
	start := time.Now()
	results, err := p.Build(ctx)
	if n := report(os.Stderr, results); n > 0 {
		return fmt.Errorf("build failed: %d of %d files have errors", n, len(results))
	}
	if err != nil {
		return err
	}
	log.Printf("built %d files into %s in %s", len(results), p.OutDir(), time.Since(start).Round(time.Millisecond))
	return nil
}
