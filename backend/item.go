package backend

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// genItem generates one top-level statement. Imports are hoisted into the
// module header and returned instead of written.
func (cg *Codegen) genItem(stmt ast.Stmt, last bool) []string {
	switch s := stmt.(type) {
	case *ast.Import:
		return cg.resolver.Import(s)
	case *ast.ImportFrom:
		line, err := cg.resolver.ImportFrom(s)
		if err != nil {
			panic(err)
		}
		return []string{line}
	}
	cg.genStmt(stmt)
	if isDefinition(stmt) && !last {
		cg.ln("")
	}
	return nil
}

func isDefinition(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.FunctionDef, *ast.ClassDef:
		return true
	case *ast.Export:
		return s.Decl != nil && isDefinition(s.Decl)
	}
	return false
}
