// Package funcspec provides shared function specification parsing and matching.
package funcspec

import (
	"go/types"
	"strings"
	"unicode"
)

// Spec holds parsed components of a function specification.
// Format: "Func", "pkg/path.Func" or "pkg/path.Type.Method".
type Spec struct {
	PkgPath  string // empty for bare names
	TypeName string // empty for package-level functions
	FuncName string
}

// Parse parses a single function specification string into components.
func Parse(s string) Spec {
	spec := Spec{}

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		spec.FuncName = s

		return spec
	}

	spec.FuncName = s[lastDot+1:]
	prefix := s[:lastDot]

	// Check if there's another dot (indicating Type.Method)
	// Type names start with uppercase in Go.
	secondLastDot := strings.LastIndex(prefix, ".")
	if secondLastDot != -1 {
		possibleType := prefix[secondLastDot+1:]
		if len(possibleType) > 0 && unicode.IsUpper(rune(possibleType[0])) && !strings.Contains(possibleType, "/") {
			spec.TypeName = possibleType
			spec.PkgPath = prefix[:secondLastDot]

			return spec
		}
	}

	spec.PkgPath = prefix

	return spec
}

// Of derives the specification of fn.
// Methods of unnamed receivers (anonymous interfaces) yield a bare spec.
func Of(fn *types.Func) Spec {
	spec := Spec{FuncName: fn.Name()}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return spec
	}

	if recv := sig.Recv(); recv != nil {
		recvType := recv.Type()
		// Handle pointer receivers
		if ptr, ok := recvType.(*types.Pointer); ok {
			recvType = ptr.Elem()
		}

		named, ok := recvType.(*types.Named)
		if !ok {
			return spec
		}

		obj := named.Origin().Obj()
		spec.TypeName = obj.Name()
		if obj.Pkg() != nil {
			spec.PkgPath = obj.Pkg().Path()
		}

		return spec
	}

	if pkg := fn.Pkg(); pkg != nil {
		spec.PkgPath = pkg.Path()
	}

	return spec
}

// IsBare reports whether the spec names a function without its package.
func (s Spec) IsBare() bool {
	return s.PkgPath == "" && s.TypeName == ""
}

// String renders the spec in the format accepted by [Parse].
func (s Spec) String() string {
	var b strings.Builder
	if s.PkgPath != "" {
		b.WriteString(s.PkgPath)
		b.WriteByte('.')
	}
	if s.TypeName != "" {
		b.WriteString(s.TypeName)
		b.WriteByte('.')
	}
	b.WriteString(s.FuncName)
	return b.String()
}

// FullName returns a human-readable name for error messages.
// For methods: "sync.Mutex.Lock"
// For functions: "lockutil.Acquire"
func (s Spec) FullName() string {
	short := s
	if idx := strings.LastIndex(s.PkgPath, "/"); idx >= 0 {
		short.PkgPath = s.PkgPath[idx+1:]
	}
	return short.String()
}
