package resolver

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pyjs-lang/pyjs/frontend"
)

// constructHelpers are runtime exports the transpiler calls on its own, as
// opposed to builtins the program names.
var constructHelpers = map[string]bool{
	"contains":     true,
	"slice":        true,
	"format":       true,
	"repr":         true,
	"str":          true,
	"ascii":        true,
	"enterContext": true,
	"exitContext":  true,
	"matmul":       true,
	"delitem":      true,
	"kwargs":       true,
	"popKwargs":    true,
}

func IsConstructHelper(export string) bool {
	return constructHelpers[export]
}

// HelperLocal is the local name a construct helper is imported under.
func HelperLocal(export string) string {
	return frontend.PreservedPrefix + export
}

type Helper struct {
	Export string
	Local  string
}

// HelperSet collects the runtime imports one module needs.
type HelperSet struct {
	byLocal map[string]Helper
}

func NewHelperSet() *HelperSet {
	return &HelperSet{byLocal: make(map[string]Helper)}
}

// Add records export imported as local and returns local.
func (s *HelperSet) Add(export, local string) string {
	s.byLocal[local] = Helper{Export: export, Local: local}
	return local
}

// Has reports whether export is imported under any name.
func (s *HelperSet) Has(export string) bool {
	for _, h := range s.byLocal {
		if h.Export == export {
			return true
		}
	}
	return false
}

func (s *HelperSet) Len() int {
	return len(s.byLocal)
}

// Sorted returns the helpers ordered by export, then local name.
func (s *HelperSet) Sorted() []Helper {
	out := make([]Helper, 0, len(s.byLocal))
	for _, h := range s.byLocal {
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b Helper) int {
		return cmp.Or(cmp.Compare(a.Export, b.Export), cmp.Compare(a.Local, b.Local))
	})
	return out
}

// Exports lists the distinct exports in sorted order.
func (s *HelperSet) Exports() []string {
	var out []string
	for _, h := range s.Sorted() {
		if len(out) == 0 || out[len(out)-1] != h.Export {
			out = append(out, h.Export)
		}
	}
	return out
}

// ImportLine renders `import { a, b as c } from "module";`, or "" for an
// empty set.
func (s *HelperSet) ImportLine(module string) string {
	if len(s.byLocal) == 0 {
		return ""
	}
	helpers := s.Sorted()
	names := make([]string, len(helpers))
	for i, h := range helpers {
		if h.Export == h.Local {
			names[i] = h.Export
		} else {
			names[i] = h.Export + " as " + h.Local
		}
	}
	return fmt.Sprintf("import { %s } from %s;", strings.Join(names, ", "), Quote(module))
}
