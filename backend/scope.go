package backend

import (
	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

type scopeKind uint8

const (
	scopeModule scopeKind = iota
	scopeFunction
	scopeLambda
	scopeClass
)

// funcScope is the code generation state of one function, lambda, class
// body or the module.
type funcScope struct {
	kind   scopeKind
	locals map[string]bool
	sigs   map[string]*signature
	// class bodies: the class, the names it binds, read through `this` in
	// static initializers, and the signatures of its instance methods
	class   *ast.ClassDef
	fields  map[string]bool
	methods map[string]*signature

	// derived constructors: the `super().__init__` statement after which
	// selfName is bound
	superInit *ast.ExprStmt
	selfName  string
	// classmethods bind selfName to the class itself
	onClass bool

	savedLoops   []loopLabel
	savedCatches []string
}

// signature is the parameter list keyword arguments are mapped onto.
type signature struct {
	params []ast.Param
}

func (cg *Codegen) pushFunc(fs *funcScope) {
	fs.savedLoops, fs.savedCatches = cg.loopStack, cg.catchStack
	cg.loopStack, cg.catchStack = nil, nil
	cg.funcStack = append(cg.funcStack, fs)
}

func (cg *Codegen) popFunc() {
	fs := cg.currentFunc()
	cg.loopStack, cg.catchStack = fs.savedLoops, fs.savedCatches
	cg.funcStack = cg.funcStack[:len(cg.funcStack)-1]
}

func (cg *Codegen) currentFunc() *funcScope {
	if len(cg.funcStack) == 0 {
		panic("codegen: no function scope")
	}
	return cg.funcStack[len(cg.funcStack)-1]
}

// signatures collects the undecorated single-binding functions and classes
// declared directly in body.
func (cg *Codegen) signatures(body []ast.Stmt) map[string]*signature {
	sigs := make(map[string]*signature)
	for _, stmt := range body {
		if export, ok := stmt.(*ast.Export); ok && export.Decl != nil {
			stmt = export.Decl
		}
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			if s.AsDeclaration {
				sigs[s.Name.Raw] = &signature{params: s.Params}
			}
		case *ast.ClassDef:
			if !s.AsDeclaration {
				continue
			}
			init := findMethod(s, "__init__")
			switch {
			case init != nil && len(init.Params) > 0 && len(init.Decorators) == 0:
				sigs[s.Name.Raw] = &signature{params: init.Params[1:]}
			case init == nil && len(s.Bases) == 0:
				sigs[s.Name.Raw] = &signature{}
			}
		}
	}
	return sigs
}

// lookupSignature finds the signature a call through name binds to, or nil
// when the binding is unknown or shadowed.
func (cg *Codegen) lookupSignature(name *ast.Name) *signature {
	raw := name.Id.Raw
	switch name.Ref {
	case ast.RefGlobal:
		return cg.funcStack[0].sigs[raw]
	case ast.RefLocal:
		for i := len(cg.funcStack) - 1; i > 0; i-- {
			fs := cg.funcStack[i]
			if fs.kind == scopeClass {
				continue
			}
			if sig, ok := fs.sigs[raw]; ok {
				return sig
			}
			if fs.locals[raw] {
				return nil
			}
		}
	}
	return nil
}

func findMethod(c *ast.ClassDef, name string) *ast.FunctionDef {
	for _, stmt := range c.Body {
		if def, ok := stmt.(*ast.FunctionDef); ok && def.Name.Raw == name {
			return def
		}
	}
	return nil
}

// methodSignatures collects the undecorated instance methods of c, without
// their self parameter.
func methodSignatures(c *ast.ClassDef) map[string]*signature {
	sigs := make(map[string]*signature)
	for _, stmt := range c.Body {
		def, ok := stmt.(*ast.FunctionDef)
		if !ok || def.Name.Raw == "__init__" || len(def.Decorators) > 0 || len(def.Params) == 0 {
			continue
		}
		if first := def.Params[0]; first.Kind != ast.ParamPlain || first.KwOnly {
			continue
		}
		sigs[def.Name.Raw] = &signature{params: def.Params[1:]}
	}
	return sigs
}

// methodSignature resolves `self.m(...)` against the class self is bound
// to, or returns nil.
func (cg *Codegen) methodSignature(callee ast.Expr) *signature {
	if callee.Kind() != ast.ExprKindAttribute {
		return nil
	}
	a := callee.Attribute()
	if a.Value.Kind() != ast.ExprKindName || a.Value.Name().Ref != ast.RefLocal {
		return nil
	}
	raw := a.Value.Name().Id.Raw
	for i := len(cg.funcStack) - 1; i > 0; i-- {
		fs := cg.funcStack[i]
		if fs.kind == scopeClass {
			continue
		}
		if fs.selfName != "" && fs.selfName == resolver.SafeName(raw) {
			if owner := cg.funcStack[i-1]; owner.kind == scopeClass && !fs.onClass {
				return owner.methods[a.Attr.Raw]
			}
			return nil
		}
		if fs.locals[raw] {
			return nil
		}
	}
	return nil
}

// baseSignature is the constructor signature of the base of the class
// whose constructor is being generated, or nil.
func (cg *Codegen) baseSignature() *signature {
	n := len(cg.funcStack)
	if n < 2 || cg.funcStack[n-2].kind != scopeClass {
		return nil
	}
	c := cg.funcStack[n-2].class
	if c == nil || len(c.Bases) != 1 || c.Bases[0].Kind() != ast.ExprKindName {
		return nil
	}
	return cg.lookupSignature(c.Bases[0].Name())
}
