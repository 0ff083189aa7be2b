package sema

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeLambda
	ScopeClass
	ScopeComprehension
)

// Scope holds the names bound by one module, function, lambda, class body or
// comprehension.
type Scope struct {
	Parent    *Scope
	Kind      ScopeKind
	Symbols   map[string]*Symbol
	Globals   map[string]bool
	Nonlocals map[string]bool

	imports map[string]bool
	params  map[string]bool
	counts  map[string]int // number of binding sites per name
	order   []string       // names in first-binding order
}

func NewScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{
		Parent:    parent,
		Kind:      kind,
		Symbols:   make(map[string]*Symbol),
		Globals:   make(map[string]bool),
		Nonlocals: make(map[string]bool),
		imports:   make(map[string]bool),
		params:    make(map[string]bool),
		counts:    make(map[string]int),
	}
}

func (s *Scope) walkScopes(fn func(*Scope) bool) bool {
	current := s
	for current != nil {
		if fn(current) {
			return true
		}
		current = current.Parent
	}
	return false
}

// Module returns the outermost scope.
func (s *Scope) Module() *Scope {
	current := s
	for current.Parent != nil {
		current = current.Parent
	}
	return current
}

// IsFunctionLike is true for scopes whose body runs when called rather than
// when reached.
func (s *Scope) IsFunctionLike() bool {
	return s.Kind == ScopeFunction || s.Kind == ScopeLambda
}

// bindingScope is the scope a walrus target binds in: the nearest scope that
// is not a comprehension.
func (s *Scope) bindingScope() *Scope {
	current := s
	for current.Kind == ScopeComprehension && current.Parent != nil {
		current = current.Parent
	}
	return current
}

func (s *Scope) AddSymbol(name Ident, kind ast.SymbolKind) *Symbol {
	s.counts[name.Raw]++
	if sym, ok := s.Symbols[name.Raw]; ok {
		return sym
	}
	sym := ast.NewSymbol(name.Raw, kind, name.Span())
	s.Symbols[name.Raw] = sym
	s.order = append(s.order, name.Raw)
	return sym
}

func (s *Scope) GetSymbol(name string) *Symbol {
	return s.Symbols[name]
}

// Binds reports whether name is bound in this very scope.
func (s *Scope) Binds(name string) bool {
	_, ok := s.Symbols[name]
	return ok
}

// Locals lists the names to declare at the top of the scope: everything it
// binds except parameters, imports, forwarded names and the given
// declarations.
func (s *Scope) Locals(declared map[string]bool) []string {
	var out []string
	for _, name := range s.order {
		if s.params[name] || s.imports[name] || s.Globals[name] || s.Nonlocals[name] || declared[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}
