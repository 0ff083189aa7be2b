package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyjs-lang/pyjs/frontend"
)

type NewCmd struct {
	Name string `arg:"" required:"" help:"Name of the new project."`
}

func (n *NewCmd) Run() error {
	projectDir := n.Name
	if _, err := os.Stat(filepath.Join(projectDir, frontend.ConfigFile)); err == nil {
		return fmt.Errorf("%s already contains a project", projectDir)
	}
	if err := os.MkdirAll(filepath.Join(projectDir, "src"), 0o755); err != nil {
		return err
	}

	// .gitignore
	gitignoreContent := "out/\n"
	if err := os.WriteFile(filepath.Join(projectDir, ".gitignore"), []byte(gitignoreContent), 0o644); err != nil {
		return err
	}

	// pyjs.toml
	tomlContent := fmt.Sprintf("name = %q\nversion = \"0.1\"\n", filepath.Base(n.Name))
	if err := os.WriteFile(filepath.Join(projectDir, frontend.ConfigFile), []byte(tomlContent), 0o644); err != nil {
		return err
	}

	// src/main.pyjs
	mainContent := "def main():\n    print(\"hello\")\n\nmain()\n"
	if err := os.WriteFile(filepath.Join(projectDir, "src", "main.pyjs"), []byte(mainContent), 0o644); err != nil {
		return err
	}

	return nil
}
