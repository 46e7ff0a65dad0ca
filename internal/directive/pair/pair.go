// Package pair handles //balanced:left and //balanced:right directives.
package pair

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/balanced/internal/funcspec"
	"github.com/mpyw/balanced/internal/registry"
	"github.com/mpyw/balanced/internal/state"
)

const (
	leftDirective  = "balanced:left"
	rightDirective = "balanced:right"
)

var ErrMalformed = errors.New("malformed balanced directive")

// Mark is a function declaration annotated with a pair directive.
type Mark struct {
	Func   *types.Func
	Family string
	Object registry.Selector
	Side   state.Side
}

// BadDirective is a directive that could not be parsed.
type BadDirective struct {
	Pos token.Pos
	Err error
}

// Build scans function declarations for pair directives in their doc
// comments.
func Build(pass *analysis.Pass, insp *inspector.Inspector, skipFiles map[string]bool) ([]Mark, []BadDirective) {
	var (
		marks []Mark
		bad   []BadDirective
	)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		decl := n.(*ast.FuncDecl)
		if decl.Doc == nil || skipFiles[pass.Fset.Position(decl.Pos()).Filename] {
			return
		}

		fn, ok := pass.TypesInfo.Defs[decl.Name].(*types.Func)
		if !ok {
			return
		}

		for _, c := range decl.Doc.List {
			mark, ok, err := parseComment(c.Text)
			if !ok {
				continue
			}
			if err != nil {
				bad = append(bad, BadDirective{Pos: c.Pos(), Err: err})
				continue
			}
			mark.Func = fn
			marks = append(marks, mark)
		}
	})

	return marks, bad
}

// Register adds marks to reg under their resolved specs.
func Register(reg *registry.Registry, marks []Mark) {
	for _, m := range marks {
		reg.RegisterSpec(m.Family, funcspec.Of(m.Func), m.Object, m.Side)
	}
}

// parseComment parses a pair directive. It returns false if text is not
// one.
//
// Supported formats:
//   - //balanced:left preempt              -> global family
//   - //balanced:right conn(arg0)          -> family tracked on an argument
//   - //balanced:left tx(recv) - reason    -> with comment
func parseComment(text string) (Mark, bool, error) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	var side state.Side
	rest, ok := strings.CutPrefix(text, leftDirective)
	if ok {
		side = state.Left
	} else if rest, ok = strings.CutPrefix(text, rightDirective); ok {
		side = state.Right
	} else {
		return Mark{}, false, nil
	}

	// "balanced:leftover" is not a directive.
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Mark{}, false, nil
	}

	// Stop at comment markers: " - " or "//"
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, "//"); idx >= 0 {
		rest = rest[:idx]
	}
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return Mark{}, true, fmt.Errorf("%w: want exactly one family, got %q", ErrMalformed, strings.TrimSpace(rest))
	}

	family, selText, hasSel := strings.Cut(fields[0], "(")
	if hasSel {
		var closed bool
		if selText, closed = strings.CutSuffix(selText, ")"); !closed {
			return Mark{}, true, fmt.Errorf("%w: bad family %q", ErrMalformed, fields[0])
		}
	}
	if family == "" {
		return Mark{}, true, fmt.Errorf("%w: empty family name", ErrMalformed)
	}

	sel, err := registry.ParseSelector(selText)
	if err != nil {
		return Mark{}, true, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return Mark{Family: family, Object: sel, Side: side}, true, nil
}
