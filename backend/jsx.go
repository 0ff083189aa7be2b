package backend

import (
	"html"
	"regexp"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

var jsIdentRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// jsxName returns the local name of the JSX factory or fragment. Dotted
// names such as React.createElement are emitted as written.
func (cg *Codegen) jsxName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	local := PREFIX + name
	if cg.opts.JSXImportSource == "" {
		return cg.helpers.Add(name, local)
	}
	cg.jsx[name] = local
	return local
}

// genJSX lowers an element to a factory call:
// factory(tag, props | null, ...children).
func (cg *Codegen) genJSX(el *ast.JSXElement) string {
	var tag string
	switch {
	case el.IsFragment():
		tag = cg.jsxName(cg.opts.JSXFragment)
	case el.TagExpr != nil:
		tag = cg.operand(*el.TagExpr, LAssign)
	default:
		tag = resolver.Quote(el.Tag)
	}
	factory := cg.jsxName(cg.opts.JSXFactory)

	args := []string{tag, cg.jsxProps(el.Attrs)}
	children, dynamic := cg.jsxChildren(el.Children)
	switch {
	case dynamic:
		args = append(args, "...["+strings.Join(children, ", ")+"].flat(Infinity).filter((c) => c != null)")
	default:
		args = append(args, children...)
	}
	return factory + "(" + strings.Join(args, ", ") + ")"
}

func (cg *Codegen) jsxProps(attrs []ast.JSXAttr) string {
	if len(attrs) == 0 {
		return "null"
	}
	props := make([]string, len(attrs))
	for i, attr := range attrs {
		if attr.Spread {
			props[i] = "..." + cg.operand(*attr.Value, LAssign)
			continue
		}
		key := attr.Name
		if !jsIdentRegex.MatchString(key) {
			key = resolver.Quote(key)
		}
		var value string
		switch {
		case attr.Str != nil:
			value = resolver.Quote(html.UnescapeString(*attr.Str))
		case attr.Value != nil:
			value = cg.operand(*attr.Value, LAssign)
		default:
			value = "true"
		}
		props[i] = key + ": " + value
	}
	return "{ " + strings.Join(props, ", ") + " }"
}

// jsxChildren renders the children of an element. dynamic reports an
// expression child, whose value may be a list or null.
func (cg *Codegen) jsxChildren(children []ast.JSXChild) (out []string, dynamic bool) {
	for _, child := range children {
		switch {
		case child.Element != nil:
			out = append(out, cg.genJSX(child.Element))
		case child.Expr != nil:
			out = append(out, cg.operand(*child.Expr, LAssign))
			dynamic = true
		default:
			if text := jsxText(child.Text); text != "" {
				out = append(out, resolver.Quote(html.UnescapeString(text)))
			}
		}
	}
	return out, dynamic
}

// jsxText collapses the whitespace of a text child: lines are trimmed,
// blank lines dropped and the rest joined with a space. Text on a single
// line is kept as written.
func jsxText(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for i, line := range lines {
		switch i {
		case 0:
			line = strings.TrimRight(line, " \t\r")
		case len(lines) - 1:
			line = strings.TrimLeft(line, " \t\r")
		default:
			line = strings.Trim(line, " \t\r")
		}
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}
