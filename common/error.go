package common

import (
	"errors"
	"fmt"
	"strings"

	protocol "github.com/gluax-lang/lsp"
)

// Stage is the pipeline stage that produced an Error.
type Stage uint8

const (
	StagePreprocess Stage = iota + 1
	StageLex
	StageParse
	StageTranspile
)

func (s Stage) String() string {
	switch s {
	case StagePreprocess:
		return "preprocess"
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageTranspile:
		return "transpile"
	default:
		return "unknown"
	}
}

// ErrorKind classifies an Error.
type ErrorKind uint8

const (
	_ ErrorKind = iota

	// lexical
	ErrUnterminatedString
	ErrInvalidIndent
	ErrUnexpectedCharacter
	ErrInvalidEscape
	ErrInvalidNumber
	ErrInvalidJSX
	ErrUnexpectedEOF
	ErrPreprocessor

	// syntax
	ErrUnexpectedToken
	ErrExpectedToken
	ErrInvalidPattern
	ErrInvalidTarget
	ErrInvalidAnnotation

	// semantic
	ErrUndefinedVariable
	ErrReturnOutsideFunction
	ErrYieldOutsideFunction
	ErrAwaitOutsideAsync
	ErrLoopControlOutsideLoop
	ErrInvalidDestructuring
	ErrDuplicateParameter
	ErrInvalidScopeDeclaration

	// code generation
	ErrUnsupported
)

var errorKindNames = [...]string{
	ErrUnterminatedString:      "UnterminatedString",
	ErrInvalidIndent:           "InvalidIndent",
	ErrUnexpectedCharacter:     "UnexpectedCharacter",
	ErrInvalidEscape:           "InvalidEscape",
	ErrInvalidNumber:           "InvalidNumber",
	ErrInvalidJSX:              "InvalidJSX",
	ErrUnexpectedEOF:           "UnexpectedEOF",
	ErrPreprocessor:            "Preprocessor",
	ErrUnexpectedToken:         "UnexpectedToken",
	ErrExpectedToken:           "ExpectedToken",
	ErrInvalidPattern:          "InvalidPattern",
	ErrInvalidTarget:           "InvalidTarget",
	ErrInvalidAnnotation:       "InvalidAnnotation",
	ErrUndefinedVariable:       "UndefinedVariable",
	ErrReturnOutsideFunction:   "ReturnOutsideFunction",
	ErrYieldOutsideFunction:    "YieldOutsideFunction",
	ErrAwaitOutsideAsync:       "AwaitOutsideAsync",
	ErrLoopControlOutsideLoop:  "LoopControlOutsideLoop",
	ErrInvalidDestructuring:    "InvalidDestructuring",
	ErrDuplicateParameter:      "DuplicateParameter",
	ErrInvalidScopeDeclaration: "InvalidScopeDeclaration",
	ErrUnsupported:             "Unsupported",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return "Unknown"
}

// Error is the positioned failure every pipeline stage returns.
type Error struct {
	Stage   Stage
	Kind    ErrorKind
	Message string
	Span    Span
}

func NewError(stage Stage, kind ErrorKind, msg string, span Span) *Error {
	return &Error{Stage: stage, Kind: kind, Message: msg, Span: span}
}

// PanicError panics with a new *Error. Stages that unwind on the first
// failure recover it at their entry point.
func PanicError(stage Stage, kind ErrorKind, msg string, span Span) {
	panic(NewError(stage, kind, msg, span))
}

func (e *Error) Error() string {
	if e.Span.Source != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Span.Source, e.Line(), e.Column(), e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line(), e.Column(), e.Kind, e.Message)
}

func (e *Error) Line() uint32   { return e.Span.LineStart }
func (e *Error) Column() uint32 { return e.Span.ColumnStart }

// Diagnostic converts e into an LSP diagnostic.
func (e *Error) Diagnostic() protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Severity: &severity,
		Message:  fmt.Sprintf("%s: %s", e.Kind, e.Message),
		Range:    e.Span.ToRange(),
	}
}

// Snippet renders the offending source line with a caret under the column.
func (e *Error) Snippet(code string) string {
	lines := strings.Split(code, "\n")
	if e.Line() == 0 || int(e.Line()) > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[e.Line()-1], "\r")
	var sb strings.Builder
	fmt.Fprintf(&sb, "%5d | %s\n", e.Line(), line)
	sb.WriteString("      | ")
	col := 1
	for _, r := range line {
		if uint32(col) >= e.Column() {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		col++
	}
	sb.WriteByte('^')
	return sb.String()
}

// AsError unwraps err into an *Error when it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
