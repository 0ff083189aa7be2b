package backend

import (
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
)

// genLocals writes the single `let` that declares every name a function
// binds, followed by its temporaries.
func (cg *Codegen) genLocals(names []string, temps []string) {
	all := make([]string, 0, len(names)+len(temps))
	for _, name := range names {
		all = append(all, resolver.SafeName(name))
	}
	all = append(all, temps...)
	if len(all) > 0 {
		cg.ln("let %s;", strings.Join(all, ", "))
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
