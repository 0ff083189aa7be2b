package backend

import (
	"maps"
	"slices"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
)

// jsxImportLine imports the JSX factory and fragment from JSXImportSource,
// "" when neither is used.
func (cg *Codegen) jsxImportLine() string {
	if len(cg.jsx) == 0 {
		return ""
	}
	specs := make([]string, 0, len(cg.jsx))
	for _, name := range slices.Sorted(maps.Keys(cg.jsx)) {
		specs = append(specs, name+" as "+cg.jsx[name])
	}
	return "import { " + strings.Join(specs, ", ") + " } from " + resolver.Quote(cg.opts.JSXImportSource) + ";"
}

// moduleHeader is the import block of the module: runtime helpers, JSX
// names, then the program's imports in source order.
func (cg *Codegen) moduleHeader(imports []string) string {
	var head []string
	if line := cg.helpers.ImportLine(cg.resolver.Runtime()); line != "" {
		head = append(head, line)
	}
	if line := cg.jsxImportLine(); line != "" {
		head = append(head, line)
	}
	head = append(head, imports...)
	if len(head) == 0 {
		return ""
	}
	return strings.Join(head, "\n") + "\n"
}
