package backend

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// genMatch lowers a match statement into a labeled block of ifs; each case
// ends with a break out of the block.
func (cg *Codegen) genMatch(stmt *ast.Match) {
	label := cg.namedTemp(MATCH_PREFIX)
	subject := cg.temp()
	cg.open("%s:", label)
	cg.ln("const %s = %s;", subject, cg.operand(stmt.Subject, LAssign))
	for i, c := range stmt.Cases {
		last := i == len(stmt.Cases)-1
		conds := cg.patternTest(c.Pattern, subject)
		if c.Guard != nil {
			conds = append(conds, cg.operand(*c.Guard, LLogicalAnd+1))
		}
		if len(conds) == 0 {
			cg.genBlock(c.Body)
			break
		}
		cg.open("if (%s)", strings.Join(conds, " && "))
		cg.genBlock(c.Body)
		if !last && !endsFlow(c.Body) {
			cg.ln("break %s;", label)
		}
		cg.close("")
	}
	cg.close("")
}

// endsFlow reports whether body never falls through its last statement.
func endsFlow(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	switch body[len(body)-1].(type) {
	case *ast.Return, *ast.Raise, *ast.Break, *ast.Continue:
		return true
	}
	return false
}

func bindTest(name ast.Ident, subject string) string {
	return fmt.Sprintf("(%s = %s, true)", resolver.SafeName(name.Raw), subject)
}

// patternTest returns the conditions, joined by &&, under which p matches
// subject. Captures are assignments folded into the conditions. No
// conditions means p always matches.
func (cg *Codegen) patternTest(p ast.Pattern, subject string) []string {
	switch p := p.(type) {
	case *ast.PatternWildcard:
		return nil
	case *ast.PatternCapture:
		return []string{bindTest(p.Name, subject)}
	case *ast.PatternAs:
		return append(cg.patternTest(p.Pattern, subject), bindTest(p.Name, subject))
	case *ast.PatternLiteral:
		if isNone(p.Value) {
			return []string{subject + " == null"}
		}
		return []string{subject + " === " + cg.operand(p.Value, LEquals+1)}
	case *ast.PatternValue:
		return []string{subject + " === " + cg.operand(p.Value, LEquals+1)}
	case *ast.PatternOr:
		alts := make([]string, 0, len(p.Alts))
		for _, alt := range p.Alts {
			conds := cg.patternTest(alt, subject)
			if len(conds) == 0 {
				return nil
			}
			alt := strings.Join(conds, " && ")
			if len(conds) > 1 {
				alt = "(" + alt + ")"
			}
			alts = append(alts, alt)
		}
		return []string{"(" + strings.Join(alts, " || ") + ")"}
	case *ast.PatternSequence:
		return cg.sequenceTest(p, subject)
	case *ast.PatternMapping:
		return cg.mappingTest(p, subject)
	case *ast.PatternClass:
		return cg.classTest(p, subject)
	case *ast.PatternStar:
		cg.errorf(p.Span(), "a star pattern is only allowed in a sequence")
	}
	panic(fmt.Sprintf("codegen: unhandled pattern %T", p))
}

func (cg *Codegen) sequenceTest(p *ast.PatternSequence, subject string) []string {
	n := len(p.Elts)
	star := p.StarIndex()
	conds := []string{"Array.isArray(" + subject + ")"}
	if star < 0 {
		conds = append(conds, fmt.Sprintf("%s.length === %d", subject, n))
	} else if n > 1 {
		conds = append(conds, fmt.Sprintf("%s.length >= %d", subject, n-1))
	}
	for i, elt := range p.Elts {
		switch {
		case i == star:
			s := elt.(*ast.PatternStar)
			if s.Name == nil {
				continue
			}
			after := n - 1 - i
			rest := fmt.Sprintf("%s.slice(%d)", subject, i)
			if after > 0 {
				rest = fmt.Sprintf("%s.slice(%d, %s.length - %d)", subject, i, subject, after)
			}
			conds = append(conds, bindTest(*s.Name, rest))
		case star >= 0 && i > star:
			conds = append(conds, cg.patternTest(elt, fmt.Sprintf("%s[%s.length - %d]", subject, subject, n-i))...)
		default:
			conds = append(conds, cg.patternTest(elt, fmt.Sprintf("%s[%d]", subject, i))...)
		}
	}
	return conds
}

func (cg *Codegen) mappingTest(p *ast.PatternMapping, subject string) []string {
	conds := []string{
		fmt.Sprintf(`typeof %s === "object"`, subject),
		subject + " !== null",
	}
	keys := make([]string, len(p.Keys))
	for i, key := range p.Keys {
		keys[i] = cg.operand(key, LCompare+1)
		conds = append(conds, keys[i]+" in "+subject)
		conds = append(conds, cg.patternTest(p.Values[i], subject+"["+keys[i]+"]")...)
	}
	if p.Rest != nil {
		rest := fmt.Sprintf("Object.fromEntries(Object.entries(%s).filter(([k]) => ![%s].includes(k)))",
			subject, strings.Join(keys, ", "))
		conds = append(conds, bindTest(*p.Rest, rest))
	}
	return conds
}

// selfMatching builtins match their single positional subpattern against
// the subject itself: `case str(s)`.
var selfMatching = map[string]bool{
	"str": true, "int": true, "float": true, "bool": true,
	"list": true, "dict": true, "tuple": true, "set": true,
}

func (cg *Codegen) classTest(p *ast.PatternClass, subject string) []string {
	conds := []string{fmt.Sprintf("%s(%s, %s)", cg.builtin("isinstance"), subject, cg.operand(p.Class, LAssign))}
	if len(p.Args) > 0 {
		cls := p.Class
		if len(p.Args) != 1 || cls.Kind() != ast.ExprKindName || cls.Name().Ref != ast.RefBuiltin || !selfMatching[cls.Name().Id.Raw] {
			cg.errorf(p.Args[0].Span(), "positional class patterns are only supported for builtin types")
		}
		conds = append(conds, cg.patternTest(p.Args[0], subject)...)
	}
	for i, name := range p.KwNames {
		conds = append(conds, cg.patternTest(p.KwValues[i], subject+"."+name.Raw)...)
	}
	return conds
}
