package backend

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// specialMethods are dunder methods with a JavaScript counterpart.
var specialMethods = map[string]string{
	"__init__": "constructor",
	"__str__":  "toString",
	"__iter__": "[Symbol.iterator]",
}

func (cg *Codegen) genClassDef(c *ast.ClassDef) {
	name := resolver.SafeName(c.Name.Raw)
	code, patches := cg.genClass(c)
	if c.AsDeclaration {
		cg.writeIndent()
		cg.writeString(code)
		cg.writeByte('\n')
	} else {
		cg.ln("%s = %s;", name, cg.decorate(c.Decorators, code))
	}
	for _, patch := range patches {
		cg.ln("%s;", patch(name))
	}
}

// memberPatch rewrites a decorated method once the class is bound to owner.
type memberPatch func(owner string) string

func (cg *Codegen) genClass(c *ast.ClassDef) (string, []memberPatch) {
	if len(c.Bases) > 1 {
		cg.errorf(c.Bases[1].Span(), "multiple inheritance is not supported")
	}
	oldBuf := cg.newBuf()
	header := "class " + resolver.SafeName(c.Name.Raw)
	if len(c.Bases) == 1 {
		header += " extends " + cg.operand(c.Bases[0], LCall)
	}
	cg.writeString(header + " {\n")
	cg.pushIndent()
	cg.pushFunc(&funcScope{
		kind:    scopeClass,
		class:   c,
		fields:  classFields(c),
		methods: methodSignatures(c),
	})

	var patches []memberPatch
	for _, stmt := range c.Body {
		if patch := cg.genClassMember(c, stmt); patch != nil {
			patches = append(patches, patch)
		}
	}

	cg.popFunc()
	cg.popIndent()
	cg.writeIndent()
	cg.writeByte('}')
	return cg.restoreBuf(oldBuf), patches
}

// classFields lists the names a class body binds.
func classFields(c *ast.ClassDef) map[string]bool {
	fields := make(map[string]bool)
	var addTarget func(e ast.Expr)
	addTarget = func(e ast.Expr) {
		if e.Kind() == ast.ExprKindName {
			fields[e.Name().Id.Raw] = true
		}
	}
	for _, stmt := range c.Body {
		switch s := stmt.(type) {
		case *ast.Assign:
			for _, target := range s.Targets {
				addTarget(target)
			}
		case *ast.AnnAssign:
			addTarget(s.Target)
		case *ast.FunctionDef:
			fields[s.Name.Raw] = true
		case *ast.ClassDef:
			fields[s.Name.Raw] = true
		}
	}
	return fields
}

func (cg *Codegen) genClassMember(c *ast.ClassDef, stmt ast.Stmt) memberPatch {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return cg.genMethod(c, s)
	case *ast.Assign:
		value := cg.operand(s.Value, LAssign)
		for _, target := range s.Targets {
			cg.ln("static %s = %s;", cg.fieldName(target), value)
		}
	case *ast.AnnAssign:
		if s.Value != nil {
			cg.ln("static %s = %s;", cg.fieldName(s.Target), cg.operand(*s.Value, LAssign))
		}
	case *ast.ClassDef:
		if len(s.Decorators) > 0 {
			cg.errorf(s.Span(), "decorators on nested classes are not supported")
		}
		code, patches := cg.genClass(s)
		if len(patches) > 0 {
			cg.errorf(s.Span(), "decorated methods of nested classes are not supported")
		}
		cg.ln("static %s = %s;", s.Name.Raw, code)
	case *ast.ExprStmt:
		if s.Value.Kind() != ast.ExprKindString {
			cg.errorf(s.Span(), "only definitions and assignments are supported in a class body")
		}
	case *ast.Pass:
	default:
		cg.errorf(s.Span(), "only definitions and assignments are supported in a class body")
	}
	return nil
}

func (cg *Codegen) fieldName(target ast.Expr) string {
	if target.Kind() != ast.ExprKindName {
		cg.errorf(target.Span(), "class attributes must be assigned to a plain name")
	}
	return target.Name().Id.Raw
}

func (cg *Codegen) genMethod(c *ast.ClassDef, def *ast.FunctionDef) memberPatch {
	m := method{kind: methodPlain, name: def.Name.Raw}
	if special, ok := specialMethods[def.Name.Raw]; ok {
		m.name = special
	}
	var extra []ast.Expr
	for _, dec := range def.Decorators {
		switch {
		case isBuiltinNamed(dec, "staticmethod"):
			m.kind = methodStatic
		case isBuiltinNamed(dec, "classmethod"):
			m.kind = methodClass
		case isBuiltinNamed(dec, "property"):
			m.kind = methodGetter
		case isSetterOf(dec):
			m.kind = methodSetter
			m.name = dec.Attribute().Value.Name().Id.Raw
		default:
			extra = append(extra, dec)
		}
	}
	if m.name == "constructor" {
		if m.kind != methodPlain {
			cg.errorf(def.Span(), "__init__ cannot be decorated")
		}
		m.kind = methodConstructor
		m.derived = len(c.Bases) > 0
	}
	if len(extra) > 0 && (m.kind == methodGetter || m.kind == methodSetter || m.kind == methodConstructor) {
		cg.errorf(extra[0].Span(), "unsupported decorator on %s", def.Name.Raw)
	}

	cg.writeIndent()
	cg.writeString(cg.genFunction(def, m))
	cg.writeByte('\n')

	if len(extra) == 0 {
		return nil
	}
	static := m.kind == methodStatic || m.kind == methodClass
	callees := make([]string, len(extra))
	for i, dec := range extra {
		callees[i] = cg.operand(dec, LCall)
	}
	return func(owner string) string {
		ref := owner
		if !static {
			ref += ".prototype"
		}
		if strings.HasPrefix(m.name, "[") {
			ref += m.name
		} else {
			ref += "." + m.name
		}
		value := ref
		for i := len(callees) - 1; i >= 0; i-- {
			value = fmt.Sprintf("%s(%s)", callees[i], value)
		}
		return ref + " = " + value
	}
}

func isBuiltinNamed(e ast.Expr, name string) bool {
	return e.Kind() == ast.ExprKindName && e.Name().Ref == ast.RefBuiltin && e.Name().Id.Raw == name
}

// isSetterOf matches `@prop.setter`.
func isSetterOf(e ast.Expr) bool {
	if e.Kind() != ast.ExprKindAttribute {
		return false
	}
	a := e.Attribute()
	return a.Attr.Raw == "setter" && a.Value.Kind() == ast.ExprKindName
}

// findSuperInit returns the top-level `super().__init__(...)` statement of a
// constructor body.
func (cg *Codegen) findSuperInit(body []ast.Stmt) *ast.ExprStmt {
	for _, stmt := range body {
		s, ok := stmt.(*ast.ExprStmt)
		if !ok || s.Value.Kind() != ast.ExprKindCall {
			continue
		}
		fn := s.Value.Call().Func
		if fn.Kind() == ast.ExprKindAttribute && fn.Attribute().Attr.Raw == "__init__" && isSuperCall(fn.Attribute().Value) {
			return s
		}
	}
	return nil
}
