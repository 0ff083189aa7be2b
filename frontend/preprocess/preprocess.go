// Package preprocess implements conditional compilation: `#define`,
// `#undef`, `#ifdef`, `#ifndef`, `#if`, `#else` and `#endif` lines, plus
// word-level macro substitution outside string literals.
package preprocess

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/pyjs-lang/pyjs/common"
)

type Span = common.Span

var (
	defineRe = regexp.MustCompile(`^#define\s+(\w+)(?:\s+(.*))?$`)
	undefRe  = regexp.MustCompile(`^#undef\s+(\w+)$`)
	ifdefRe  = regexp.MustCompile(`^#(ifdef|ifndef|if)\s+(\w+)$`)
	elseRe   = regexp.MustCompile(`^#else$`)
	endifRe  = regexp.MustCompile(`^#endif$`)
	macroRe  = regexp.MustCompile(`\b(\w+)\b`)
	nameRe   = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	stringRe = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
)

type condState struct {
	active  bool
	sawElse bool
	span    Span
}

// Preprocess evaluates the directives of input. Directive lines and inactive
// regions become empty lines, so line numbers are unchanged.
func Preprocess(input string, defaultMacros map[string]string) (string, *common.Error) {
	macros := make(map[string]string, len(defaultMacros))
	maps.Copy(macros, defaultMacros)

	if len(macros) == 0 && !hasDirective(input) {
		return input, nil
	}

	var condStack []condState
	allActive := func(stack []condState) bool {
		for _, cs := range stack {
			if !cs.active {
				return false
			}
		}
		return true
	}

	throwErr := func(msg string, lineNum uint32, line string) (string, *common.Error) {
		span := common.SpanNew(lineNum, lineNum, 1, uint32(len(line))+1)
		return "", common.NewError(common.StagePreprocess, common.ErrPreprocessor, msg, span)
	}

	lines := strings.Split(input, "\n")
	outputLines := make([]string, 0, len(lines))
	for i, line := range lines {
		lineNum := uint32(i + 1)
		trimmed := strings.TrimRight(strings.TrimLeft(line, " \t"), " \t\r")

		switch {
		case defineRe.MatchString(trimmed):
			if allActive(condStack) {
				caps := defineRe.FindStringSubmatch(trimmed)
				macros[caps[1]] = strings.TrimSpace(caps[2])
			}
			outputLines = append(outputLines, "")

		case undefRe.MatchString(trimmed):
			if allActive(condStack) {
				delete(macros, undefRe.FindStringSubmatch(trimmed)[1])
			}
			outputLines = append(outputLines, "")

		case ifdefRe.MatchString(trimmed):
			caps := ifdefRe.FindStringSubmatch(trimmed)
			value, exists := macros[caps[2]]
			var cond bool
			switch caps[1] {
			case "ifdef":
				cond = exists
			case "ifndef":
				cond = !exists
			default:
				cond = exists && truthy(value)
			}
			span := common.SpanNew(lineNum, lineNum, 1, uint32(len(line))+1)
			condStack = append(condStack, condState{active: allActive(condStack) && cond, span: span})
			outputLines = append(outputLines, "")

		case elseRe.MatchString(trimmed):
			if len(condStack) == 0 {
				return throwErr("#else without matching #if", lineNum, line)
			}
			top := &condStack[len(condStack)-1]
			if top.sawElse {
				return throwErr("duplicate #else", lineNum, line)
			}
			top.sawElse = true
			top.active = allActive(condStack[:len(condStack)-1]) && !top.active
			outputLines = append(outputLines, "")

		case endifRe.MatchString(trimmed):
			if len(condStack) == 0 {
				return throwErr("#endif without matching #if", lineNum, line)
			}
			condStack = condStack[:len(condStack)-1]
			outputLines = append(outputLines, "")

		case allActive(condStack):
			outputLines = append(outputLines, substitute(line, macros))

		default:
			// inactive region
			outputLines = append(outputLines, "")
		}
	}

	if len(condStack) > 0 {
		open := condStack[len(condStack)-1]
		return "", common.NewError(common.StagePreprocess, common.ErrPreprocessor, "unclosed #if block", open.span)
	}
	return strings.Join(outputLines, "\n"), nil
}

// hasDirective reports whether any line of input starts with a directive.
func hasDirective(input string) bool {
	for line := range strings.SplitSeq(input, "\n") {
		trimmed := strings.TrimRight(strings.TrimLeft(line, " \t"), " \t\r")
		if defineRe.MatchString(trimmed) || undefRe.MatchString(trimmed) || ifdefRe.MatchString(trimmed) ||
			elseRe.MatchString(trimmed) || endifRe.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// truthy is the `#if` test on a defined macro: "0", "false" and "False" are
// false, anything else (including no value) is true.
func truthy(value string) bool {
	switch value {
	case "0", "false", "False":
		return false
	}
	return true
}

// substitute replaces macro names with their values outside string literals.
// Macros defined without a value are left alone.
func substitute(line string, macros map[string]string) string {
	if len(macros) == 0 {
		return line
	}
	replace := func(segment string) string {
		return macroRe.ReplaceAllStringFunc(segment, func(word string) string {
			if val, ok := macros[word]; ok && val != "" {
				return val
			}
			return word
		})
	}

	var result strings.Builder
	lastEnd := 0
	for _, loc := range stringRe.FindAllStringIndex(line, -1) {
		result.WriteString(replace(line[lastEnd:loc[0]]))
		result.WriteString(line[loc[0]:loc[1]])
		lastEnd = loc[1]
	}
	if lastEnd < len(line) {
		result.WriteString(replace(line[lastEnd:]))
	}
	return result.String()
}

// Defines parses `NAME` or `NAME=value` command-line definitions.
func Defines(defs []string) (map[string]string, error) {
	macros := make(map[string]string, len(defs))
	for _, def := range defs {
		name, value, _ := strings.Cut(def, "=")
		if !nameRe.MatchString(name) {
			return nil, fmt.Errorf("invalid macro name %q", name)
		}
		macros[name] = value
	}
	return macros, nil
}
