package backend

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

type bufCtx struct {
	buf strings.Builder
}

type Codegen struct {
	Program *ast.Program

	opts     Options
	resolver *resolver.Resolver
	helpers  *resolver.HelperSet
	jsx      map[string]string // JSX names imported from JSXImportSource

	tempIdx int
	indent  int

	// bufCtx
	bufCtx bufCtx

	loopStack  []loopLabel
	catchStack []string
	funcStack  []*funcScope

	tempVarStack [][]string

	// names bound anywhere in the unit; helpers never shadow them
	userNames map[string]bool
	// classes declared in the unit, called with `new`
	classes map[string]bool
}

// loopLabel is the label a `break` must target, "" for a plain `break`.
type loopLabel struct{ brk string }

func (cg *Codegen) buf() *strings.Builder {
	return &cg.bufCtx.buf
}

func (cg *Codegen) newBuf() bufCtx {
	old := cg.bufCtx
	cg.bufCtx = bufCtx{
		buf: strings.Builder{},
	}
	cg.bufCtx.buf.Grow(1024)
	return old
}

func (cg *Codegen) restoreBuf(old bufCtx) string {
	snippet := cg.bufCtx.buf.String()
	cg.bufCtx = old
	return snippet
}

func (cg *Codegen) writeIndent() {
	for range cg.indent {
		cg.writeByte('\t')
	}
}

func (cg *Codegen) pushIndent() { cg.indent++ }
func (cg *Codegen) popIndent() {
	if cg.indent == 0 {
		panic("codegen: popIndent underflow")
	}
	cg.indent--
}

func (cg *Codegen) writef(format string, args ...any) {
	fmt.Fprintf(&cg.bufCtx.buf, format, args...)
}

func (cg *Codegen) writeByte(b byte) {
	cg.bufCtx.buf.WriteByte(b)
}

func (cg *Codegen) writeString(s string) {
	cg.bufCtx.buf.WriteString(s)
}

func (cg *Codegen) ln(format string, args ...any) {
	if format == "" && len(args) == 0 {
		cg.writeByte('\n')
		return
	}
	cg.writeIndent()
	cg.writef(format, args...)
	cg.writeByte('\n')
}

// open writes `header {` and indents.
func (cg *Codegen) open(format string, args ...any) {
	cg.ln(format+" {", args...)
	cg.pushIndent()
}

// close dedents and writes `}` followed by trailer.
func (cg *Codegen) close(trailer string) {
	cg.popIndent()
	cg.ln("}%s", trailer)
}

func (cg *Codegen) temp() string {
	name := fmt.Sprintf(TEMP_PREFIX, cg.tempIdx)
	cg.tempIdx++
	return name
}

func (cg *Codegen) namedTemp(format string) string {
	name := fmt.Sprintf(format, cg.tempIdx)
	cg.tempIdx++
	return name
}

func (cg *Codegen) pushTempScope() {
	cg.tempVarStack = append(cg.tempVarStack, []string{})
}

func (cg *Codegen) popTempScope() []string {
	if len(cg.tempVarStack) == 0 {
		panic("codegen: popTempScope underflow")
	}
	vars := cg.tempVarStack[len(cg.tempVarStack)-1]
	cg.tempVarStack = cg.tempVarStack[:len(cg.tempVarStack)-1]
	return vars
}

// getTempVar allocates a temporary declared by the enclosing function's
// `let`.
func (cg *Codegen) getTempVar() string {
	name := cg.temp()
	if len(cg.tempVarStack) == 0 {
		panic("codegen: getTempVar called without a temp scope")
	}
	scopeIdx := len(cg.tempVarStack) - 1
	cg.tempVarStack[scopeIdx] = append(cg.tempVarStack[scopeIdx], name)
	return name
}

func (cg *Codegen) pushLoop(ll loopLabel) { // push innermost
	cg.loopStack = append(cg.loopStack, ll)
}

func (cg *Codegen) popLoop() {
	cg.loopStack = cg.loopStack[:len(cg.loopStack)-1]
}

func (cg *Codegen) innermostLoop() loopLabel {
	if n := len(cg.loopStack); n > 0 {
		return cg.loopStack[n-1]
	}
	panic("no loop labels, should not happen")
}

func (cg *Codegen) errorf(span common.Span, format string, args ...any) {
	common.PanicError(common.StageTranspile, common.ErrUnsupported, fmt.Sprintf(format, args...), span)
}
