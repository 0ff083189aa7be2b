package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pyjs"),
		kong.Description("Transpile pyjs sources to JavaScript modules."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

type CLI struct {
	Build   BuildCmd   `cmd:"" help:"Build the project."`
	Check   CheckCmd   `cmd:"" help:"Report errors without writing output."`
	Compile CompileCmd `cmd:"" help:"Transpile a single file."`
	Tokens  TokensCmd  `cmd:"" help:"Print the tokens of a file."`
	New     NewCmd     `cmd:"" help:"Create a new project."`
	Repl    ReplCmd    `cmd:"" help:"Start an interactive session that prints the JavaScript of each input."`
	Lsp     LspCmd     `cmd:"" help:"Run the LSP server."`
	Version VersionCmd `cmd:"" help:"Show version."`
}
