package resolver

import (
	"fmt"
	"strings"
)

var reservedWords = map[string]bool{
	"arguments":  true,
	"await":      true,
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"eval":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"implements": true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"interface":  true,
	"let":        true,
	"new":        true,
	"null":       true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"return":     true,
	"static":     true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
	"yield":      true,
}

// IsReserved reports whether name cannot be a JavaScript binding.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// SafeName mangles reserved words with a trailing `_`.
func SafeName(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// Quote renders s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	writeEscaped(&sb, s, '"')
	sb.WriteByte('"')
	return sb.String()
}

// TemplateText escapes s for the literal part of a template literal.
func TemplateText(s string) string {
	var sb strings.Builder
	for part := range strings.SplitAfterSeq(s, "$") {
		if strings.HasSuffix(part, "$") {
			writeEscaped(&sb, part[:len(part)-1], '`')
			sb.WriteString(`\$`)
			continue
		}
		writeEscaped(&sb, part, '`')
	}
	return sb.String()
}

func writeEscaped(sb *strings.Builder, s string, quote rune) {
	for _, r := range s {
		switch r {
		case quote:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			if quote == '`' {
				sb.WriteByte('\n')
			} else {
				sb.WriteString(`\n`)
			}
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(sb, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
}
