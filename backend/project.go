// Package backend turns a resolved program into an ES module.
package backend

import (
	"regexp"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

var redundantNewlinesRegex = regexp.MustCompile(`(\r?\n){3,}`)

func removeRedundantBlankLines(s string) string {
	return redundantNewlinesRegex.ReplaceAllString(s, "$1$1")
}

type Options struct {
	// Runtime is the helper module specifier, "@pyjs/runtime" when empty.
	Runtime string
	// ImportExtension is appended to relative imports, ".js" when empty.
	ImportExtension string

	JSXFactory  string
	JSXFragment string
	// JSXImportSource, when set, is the module JSXFactory and JSXFragment are
	// imported from instead of the runtime.
	JSXImportSource string
}

type HelperSet = resolver.HelperSet

// Module is one transpiled compilation unit.
type Module struct {
	Code    string
	Helpers *HelperSet
}

// Transpile generates JavaScript for prog, which must have been through name
// resolution.
func Transpile(prog *ast.Program, opts Options) (mod *Module, err *common.Error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*common.Error); ok {
				mod, err = nil, e
				return
			}
			panic(r)
		}
	}()

	if opts.JSXFactory == "" {
		opts.JSXFactory = DefaultJSXFactory
	}
	if opts.JSXFragment == "" {
		opts.JSXFragment = DefaultJSXFragment
	}
	cg := &Codegen{
		Program: prog,
		opts:    opts,
		resolver: resolver.New(resolver.Options{
			Runtime:   opts.Runtime,
			Extension: opts.ImportExtension,
		}),
		helpers:   resolver.NewHelperSet(),
		jsx:       make(map[string]string),
		userNames: collectUserNames(prog),
		classes:   collectClasses(prog),
	}
	cg.bufCtx.buf.Grow(1024 * 2)
	code := cg.generate()
	return &Module{Code: removeRedundantBlankLines(code), Helpers: cg.helpers}, nil
}

func (cg *Codegen) generate() string {
	prog := cg.Program

	cg.pushTempScope()
	cg.pushFunc(&funcScope{
		kind:   scopeModule,
		locals: nameSet(prog.Locals),
		sigs:   cg.signatures(prog.Body),
	})
	var imports []string
	bodyBuf := cg.newBuf()
	for i, stmt := range prog.Body {
		imports = append(imports, cg.genItem(stmt, i == len(prog.Body)-1)...)
	}
	body := cg.restoreBuf(bodyBuf)
	cg.popFunc()
	temps := cg.popTempScope()

	var sections []string
	if head := cg.moduleHeader(imports); head != "" {
		sections = append(sections, head)
	}

	decl := cg.newBuf()
	cg.genLocals(prog.Locals, temps)
	if hoisted := cg.restoreBuf(decl); hoisted != "" {
		sections = append(sections, hoisted)
	}
	if body != "" {
		sections = append(sections, body)
	}
	if line := cg.exportLine(prog.Exports); line != "" {
		sections = append(sections, line+"\n")
	}
	cg.writeString(strings.Join(sections, "\n"))
	return cg.buf().String()
}

func (cg *Codegen) exportLine(exports []string) string {
	if len(exports) == 0 {
		return ""
	}
	names := make([]string, len(exports))
	for i, name := range exports {
		local := resolver.SafeName(name)
		if local == name {
			names[i] = name
		} else {
			names[i] = local + " as " + name
		}
	}
	return "export { " + strings.Join(names, ", ") + " };"
}
