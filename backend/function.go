package backend

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

type methodKind uint8

const (
	notMethod methodKind = iota
	methodPlain
	methodStatic
	methodClass
	methodGetter
	methodSetter
	methodConstructor
)

type method struct {
	kind methodKind
	name string // JavaScript member name
	// derived marks a constructor of a class with a base
	derived bool
}

func (m method) bindsThis() bool {
	return m.kind != notMethod && m.kind != methodStatic
}

func (cg *Codegen) genFunctionDef(def *ast.FunctionDef) {
	fn := cg.genFunction(def, method{})
	if def.AsDeclaration {
		cg.writeIndent()
		cg.writeString(fn)
		cg.writeByte('\n')
		return
	}
	cg.ln("%s = %s;", resolver.SafeName(def.Name.Raw), cg.decorate(def.Decorators, fn))
}

// decorate applies decorators innermost first: `@a @b def f` is a(b(f)).
func (cg *Codegen) decorate(decorators []ast.Expr, value string) string {
	for i := len(decorators) - 1; i >= 0; i-- {
		value = fmt.Sprintf("%s(%s)", cg.operand(decorators[i], LCall), value)
	}
	return value
}

func (cg *Codegen) functionHeader(def *ast.FunctionDef, m method, params string) string {
	var sb strings.Builder
	if m.kind == methodStatic || m.kind == methodClass {
		sb.WriteString("static ")
	}
	switch m.kind {
	case notMethod:
		if def.Async {
			sb.WriteString("async ")
		}
		sb.WriteString("function")
		if def.Generator {
			sb.WriteByte('*')
		}
		sb.WriteByte(' ')
		sb.WriteString(resolver.SafeName(def.Name.Raw))
	case methodConstructor:
		sb.WriteString("constructor")
	case methodGetter:
		sb.WriteString("get " + m.name)
	case methodSetter:
		sb.WriteString("set " + m.name)
	default:
		if def.Async {
			sb.WriteString("async ")
		}
		if def.Generator {
			sb.WriteByte('*')
		}
		sb.WriteString(m.name)
	}
	sb.WriteByte('(')
	sb.WriteString(params)
	sb.WriteByte(')')
	return sb.String()
}

func (cg *Codegen) genFunction(def *ast.FunctionDef, m method) string {
	params, self, prologue := cg.genParams(def.Params, m.bindsThis())
	oldBuf := cg.newBuf()

	cg.writeString(cg.functionHeader(def, m, params))
	cg.writeString(" {\n")
	cg.pushIndent()

	cg.pushTempScope()
	fs := &funcScope{
		kind:     scopeFunction,
		locals:   boundNames(def.Params, def.Locals),
		sigs:     cg.signatures(def.Body),
		selfName: self,
		onClass:  m.kind == methodClass,
	}
	cg.pushFunc(fs)

	bodyBuf := cg.newBuf()
	switch {
	case m.kind == methodConstructor && m.derived:
		fs.superInit = cg.findSuperInit(def.Body)
		if fs.superInit == nil {
			cg.ln("super();")
			cg.bindSelf(fs)
		}
	case self != "":
		cg.bindSelf(fs)
	}
	if prologue != "" {
		cg.ln("%s", prologue)
	}
	cg.genBlock(def.Body)
	cg.popFunc()

	bodySnippet := cg.restoreBuf(bodyBuf)
	cg.genLocals(def.Locals, cg.popTempScope())
	cg.writeString(bodySnippet)

	cg.popIndent()
	cg.writeIndent()
	cg.writeByte('}')
	return cg.restoreBuf(oldBuf)
}

func (cg *Codegen) bindSelf(fs *funcScope) {
	if fs.selfName != "" {
		cg.ln("const %s = this;", fs.selfName)
	}
}

// genParams renders a parameter list: positional parameters keep their
// defaults, keyword-only parameters and `**kw` share an options object and
// `*args` becomes a rest parameter. The options object is the last
// parameter, or with `*args` it is popped off the rest array by prologue.
// With dropFirst the first parameter is bound to `this` instead and
// returned as self.
func (cg *Codegen) genParams(params []ast.Param, dropFirst bool) (list, self, prologue string) {
	if dropFirst && len(params) > 0 && params[0].Kind == ast.ParamPlain && !params[0].KwOnly {
		self = resolver.SafeName(params[0].Name.Raw)
		params = params[1:]
	}

	var parts, options []string
	var rest string
	for _, p := range params {
		name := resolver.SafeName(p.Name.Raw)
		switch {
		case p.Kind == ast.ParamVarArgs:
			rest = name
		case p.Kind == ast.ParamKwArgs:
			options = append(options, "..."+name)
		case p.KwOnly:
			entry := name
			if name != p.Name.Raw {
				entry = p.Name.Raw + ": " + name
			}
			if p.Default != nil {
				entry += " = " + cg.operand(*p.Default, LAssign)
			}
			options = append(options, entry)
		default:
			entry := name
			if p.Default != nil {
				entry += " = " + cg.operand(*p.Default, LAssign)
			}
			parts = append(parts, entry)
		}
	}
	if len(options) > 0 {
		pattern := "{ " + strings.Join(options, ", ") + " }"
		if rest != "" {
			prologue = fmt.Sprintf("const %s = %s(%s);", pattern, cg.helper("popKwargs"), rest)
		} else {
			parts = append(parts, pattern+" = {}")
		}
	}
	if rest != "" {
		parts = append(parts, "..."+rest)
	}
	return strings.Join(parts, ", "), self, prologue
}

// boundNames lists the parameters and hoisted locals of a function.
func boundNames(params []ast.Param, locals []string) map[string]bool {
	names := nameSet(locals)
	for _, p := range params {
		names[p.Name.Raw] = true
	}
	return names
}

func (cg *Codegen) genLambda(l *ast.Lambda) string {
	params, _, prologue := cg.genParams(l.Params, false)
	prefix := ""
	if l.Async {
		prefix = "async "
	}

	if l.Expr != nil && len(l.Locals) == 0 && prologue == "" {
		cg.pushTempScope()
		cg.pushFunc(&funcScope{kind: scopeLambda})
		body := cg.operand(*l.Expr, LAssign)
		cg.popFunc()
		temps := cg.popTempScope()
		if len(temps) == 0 {
			if strings.HasPrefix(body, "{") {
				body = "(" + body + ")"
			}
			return fmt.Sprintf("%s(%s) => %s", prefix, params, body)
		}
		return cg.blockArrow(prefix, params, nil, temps, "return "+body+";", l.Async)
	}

	cg.pushTempScope()
	cg.pushFunc(&funcScope{
		kind:   scopeLambda,
		locals: boundNames(l.Params, l.Locals),
		sigs:   cg.signatures(l.Body),
	})
	bodyBuf := cg.newBuf()
	cg.pushIndent()
	if prologue != "" {
		cg.ln("%s", prologue)
	}
	if l.Expr != nil {
		cg.ln("return %s;", cg.genExpr(*l.Expr))
	} else {
		cg.genBlock(l.Body)
	}
	cg.popIndent()
	bodySnippet := cg.restoreBuf(bodyBuf)
	cg.popFunc()
	temps := cg.popTempScope()
	return cg.blockArrow(prefix, params, l.Locals, temps, bodySnippet, l.Async)
}

// blockArrow assembles a block-bodied arrow function. body is either
// already indented lines or a single statement.
func (cg *Codegen) blockArrow(prefix, params string, locals, temps []string, body string, async bool) string {
	oldBuf := cg.newBuf()
	cg.writeString(prefix + "(" + params + ") => {\n")
	cg.pushIndent()
	cg.genLocals(locals, temps)
	if strings.HasSuffix(body, "\n") {
		cg.writeString(body)
	} else {
		cg.ln("%s", body)
	}
	cg.popIndent()
	cg.writeIndent()
	cg.writeByte('}')
	code := cg.restoreBuf(oldBuf)
	if async {
		code = "(" + code + ")"
	}
	return code
}

func (cg *Codegen) genCall(c *ast.Call) string {
	var callee string
	var sig *signature
	builtin := false
	if c.Func.Kind() == ast.ExprKindName {
		name := c.Func.Name()
		if name.Id.Raw == "super" && name.Ref == ast.RefHost {
			cg.errorf(c.Span(), "super() is only supported as super().method(...)")
		}
		callee = cg.genName(name)
		if cg.isConstructor(name) {
			callee = "new " + callee
		}
		sig = cg.lookupSignature(name)
		builtin = name.Ref == ast.RefBuiltin
	} else {
		callee = cg.receiver(c.Func)
		sig = cg.methodSignature(c.Func)
	}
	return callee + "(" + strings.Join(cg.callArgs(sig, c, builtin), ", ") + ")"
}

// callArgs lowers the arguments of c. Keyword arguments are placed by sig;
// without one only runtime builtins accept them, as a trailing options
// object.
func (cg *Codegen) callArgs(sig *signature, c *ast.Call, builtin bool) []string {
	switch {
	case sig != nil && !hasUnpacking(c.Args):
		return cg.mapArgs(sig, c)
	case builtin:
		return cg.genArgs(c.Args)
	}
	for _, arg := range c.Args {
		switch {
		case arg.Name != nil:
			cg.errorf(arg.Name.Span(), "keyword argument '%s' to a callee whose signature is unknown", arg.Name.Raw)
		case arg.DoubleStar:
			cg.errorf(arg.Value.Span(), "** unpacking into a callee whose signature is unknown")
		}
	}
	return cg.genArgs(c.Args)
}

func hasUnpacking(args []ast.Arg) bool {
	for _, arg := range args {
		if arg.Star || arg.DoubleStar {
			return true
		}
	}
	return false
}

// genArgs passes positional arguments in order and collects keyword
// arguments into a trailing options object.
func (cg *Codegen) genArgs(args []ast.Arg) []string {
	var out, options []string
	for _, arg := range args {
		value := cg.operand(arg.Value, LAssign)
		switch {
		case arg.DoubleStar:
			options = append(options, "..."+value)
		case arg.Name != nil:
			options = append(options, arg.Name.Raw+": "+value)
		case arg.Star:
			out = append(out, "..."+value)
		default:
			out = append(out, value)
		}
	}
	if len(options) > 0 {
		out = append(out, "{ "+strings.Join(options, ", ")+" }")
	}
	return out
}

// mapArgs places keyword arguments at the positions of a known signature.
func (cg *Codegen) mapArgs(sig *signature, c *ast.Call) []string {
	var positional []ast.Param
	var kwOnly map[string]bool
	varArgs, kwArgs := false, false
	for _, p := range sig.params {
		switch {
		case p.Kind == ast.ParamVarArgs:
			varArgs = true
		case p.Kind == ast.ParamKwArgs:
			kwArgs = true
		case p.KwOnly:
			if kwOnly == nil {
				kwOnly = make(map[string]bool)
			}
			kwOnly[p.Name.Raw] = true
		default:
			positional = append(positional, p)
		}
	}

	slots := make([]string, len(positional))
	var extra, options []string
	next := 0
	for _, arg := range c.Args {
		value := cg.operand(arg.Value, LAssign)
		if arg.Name == nil {
			switch {
			case next < len(slots):
				slots[next] = value
				next++
			case varArgs:
				extra = append(extra, value)
			default:
				cg.errorf(arg.Value.Span(), "too many positional arguments, expected at most %d", len(slots))
			}
			continue
		}
		key := arg.Name.Raw
		idx := -1
		for i, p := range positional {
			if p.Name.Raw == key {
				idx = i
				break
			}
		}
		switch {
		case idx >= 0:
			if slots[idx] != "" {
				cg.errorf(arg.Name.Span(), "multiple values for argument '%s'", key)
			}
			slots[idx] = value
		case kwOnly[key] || kwArgs:
			options = append(options, key+": "+value)
		default:
			cg.errorf(arg.Name.Span(), "unexpected keyword argument '%s'", key)
		}
	}

	used := len(slots)
	if len(options) == 0 && len(extra) == 0 {
		for used > 0 && slots[used-1] == "" {
			used--
		}
	}
	out := make([]string, 0, used+1+len(extra))
	for _, slot := range slots[:used] {
		if slot == "" {
			slot = "undefined"
		}
		out = append(out, slot)
	}
	if len(options) == 0 {
		return append(out, extra...)
	}
	object := "{ " + strings.Join(options, ", ") + " }"
	if varArgs {
		// the callee pops the marked object off its rest parameter
		return append(append(out, extra...), cg.helper("kwargs")+"("+object+")")
	}
	return append(out, object)
}
