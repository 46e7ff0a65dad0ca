package ssa

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"
)

// BuildSSAAnalyzer is the buildssa analyzer that must be in Requires.
var BuildSSAAnalyzer = buildssa.Analyzer

// Program wraps an SSA program with the analyzed package.
type Program struct {
	*ssa.Program
	Pkg      *ssa.Package
	SrcFuncs []*ssa.Function
}

// Build creates an SSA program from the analysis pass.
// This requires buildssa.Analyzer to be in the pass's Requires.
func Build(pass *analysis.Pass) *Program {
	ssaResult, ok := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	if !ok || ssaResult == nil {
		return nil
	}

	return &Program{
		Program:  ssaResult.Pkg.Prog,
		Pkg:      ssaResult.Pkg,
		SrcFuncs: ssaResult.SrcFuncs,
	}
}

// Funcs returns the source functions (anonymous ones included) whose
// declaration is not in a skipped file.
func (p *Program) Funcs(fset *token.FileSet, skipFiles map[string]bool) []*ssa.Function {
	if p == nil {
		return nil
	}

	funcs := make([]*ssa.Function, 0, len(p.SrcFuncs))
	for _, fn := range p.SrcFuncs {
		if skipFiles[fset.Position(fn.Pos()).Filename] {
			continue
		}
		funcs = append(funcs, fn)
	}
	return funcs
}

// endPos returns the closing brace of fn's body, where control falls off
// the end of the function.
func endPos(fn *ssa.Function) token.Pos {
	switch syntax := fn.Syntax().(type) {
	case *ast.FuncDecl:
		if syntax.Body != nil {
			return syntax.Body.Rbrace
		}
	case *ast.FuncLit:
		return syntax.Body.Rbrace
	}
	return fn.Pos()
}
