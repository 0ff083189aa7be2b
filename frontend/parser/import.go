package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

// parseImport parses `import a.b [as c], "pkg" [as d]`.
func (p *parser) parseImport() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "import"

	var names []ast.ImportName
	for {
		module := p.parseModuleRef(false)
		var alias *ast.Ident
		if p.tryConsume("as") {
			a := p.expectIdentMsg("expected alias name")
			alias = &a
		}
		names = append(names, ast.ImportName{Module: module, Alias: alias})
		if !p.tryConsume(",") {
			break
		}
	}
	return ast.NewImport(names, SpanFrom(spanStart, p.prevSpan()))
}

// parseImportFrom parses `from m import a, b as c`, the parenthesized form
// and `from m import *`.
func (p *parser) parseImportFrom() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "from"
	module := p.parseModuleRef(true)
	p.expect("import")

	if p.tryConsume("*") {
		return ast.NewImportFrom(module, nil, true, SpanFrom(spanStart, p.prevSpan()))
	}

	var names []ast.ImportAlias
	parseAlias := func(p *parser) {
		alias := ast.ImportAlias{Name: p.expectIdentMsg("expected name to import")}
		if p.tryConsume("as") {
			a := p.expectIdentMsg("expected alias name")
			alias.Alias = &a
		}
		names = append(names, alias)
	}
	if p.tryConsume("(") {
		p.parseCommaSeparatedDelimited(")", parseAlias)
	} else {
		for {
			parseAlias(p)
			if !p.tryConsume(",") {
				break
			}
		}
	}
	if len(names) == 0 {
		p.errorf(common.ErrExpectedToken, p.prevSpan(), "expected at least one name to import")
	}
	return ast.NewImportFrom(module, names, false, SpanFrom(spanStart, p.prevSpan()))
}

// parseModuleRef parses a string specifier or a dotted module path, with
// leading dots when relative imports are allowed.
func (p *parser) parseModuleRef(relative bool) ast.ModuleRef {
	spanStart := p.span()
	if s, ok := p.Token.(lexer.TokString); ok {
		p.advance() // consume string
		spec := s.Value
		return ast.NewModuleRef(&spec, 0, nil, spanStart)
	}

	level := 0
	for relative && p.tryConsume(".") {
		level++
	}

	var path []ast.Ident
	if level == 0 || lexer.IsIdent(p.Token) {
		for {
			path = append(path, p.expectIdentMsg("expected module name"))
			if !p.tryConsume(".") {
				break
			}
		}
	}
	return ast.NewModuleRef(nil, level, path, SpanFrom(spanStart, p.prevSpan()))
}

// parseExport parses `export` followed by a definition, an assignment or a
// list of names.
func (p *parser) parseExport() ast.Stmt {
	spanStart := p.span()
	if p.scope().kind != scopeModule {
		p.errorf(common.ErrUnexpectedToken, spanStart, "'export' is only allowed at module level")
	}
	p.advance() // consume "export"

	if p.isCompoundStart() {
		decl := p.parseStmt()
		switch decl.(type) {
		case *ast.FunctionDef, *ast.ClassDef:
		default:
			p.errorf(common.ErrUnexpectedToken, decl.Span(), "only definitions and assignments can be exported")
		}
		return ast.NewExport(decl, nil, SpanFrom(spanStart, p.prevSpan()))
	}

	stmt := p.parseSimpleStmt()
	p.endStmt()
	span := SpanFrom(spanStart, stmt.Span())
	switch s := stmt.(type) {
	case *ast.Assign, *ast.AnnAssign:
		return ast.NewExport(stmt, nil, span)
	case *ast.ExprStmt:
		if names, ok := exportNames(s.Value); ok {
			return ast.NewExport(nil, names, span)
		}
	}
	p.errorf(common.ErrUnexpectedToken, stmt.Span(), "only definitions, assignments and names can be exported")
	return nil
}

func exportNames(e ast.Expr) ([]ast.Ident, bool) {
	switch e.Kind() {
	case ast.ExprKindName:
		return []ast.Ident{e.Name().Id}, true
	case ast.ExprKindTuple:
		var names []ast.Ident
		for _, elt := range e.Tuple().Elts {
			if elt.Kind() != ast.ExprKindName {
				return nil, false
			}
			names = append(names, elt.Name().Id)
		}
		return names, true
	}
	return nil, false
}
