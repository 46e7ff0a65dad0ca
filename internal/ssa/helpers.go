package ssa

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/balanced/internal/registry"
	"github.com/mpyw/balanced/internal/state"
)

// ExtractCalledFunc extracts the types.Func from a CallCommon.
// Handles interface method calls, static calls, and generic function instantiations.
func ExtractCalledFunc(call *ssa.CallCommon) *types.Func {
	if call.IsInvoke() {
		// Interface method call
		return call.Method
	}

	// Static call
	if fn := call.StaticCallee(); fn != nil {
		// Try to get the Object directly
		if obj, ok := fn.Object().(*types.Func); ok {
			return obj
		}

		// For generic function instantiations, Object() returns nil.
		// Use Origin() to get the generic function before instantiation.
		if origin := fn.Origin(); origin != nil {
			if obj, ok := origin.Object().(*types.Func); ok {
				return obj
			}
		}
	}

	return nil
}

// ObjectOf extracts the tracked object of a registered call.
func ObjectOf(entry registry.Entry, call *ssa.CallCommon) (state.Object, bool) {
	var v ssa.Value

	switch entry.Object.Kind {
	case registry.Global:
		return state.Object{Family: entry.Family, Name: entry.Family}, true
	case registry.Receiver:
		v = receiver(call)
	case registry.Argument:
		v = argument(call, entry.Object.Index)
	}
	if v == nil {
		return state.Object{}, false
	}

	name, sym := describe(v)
	return state.Object{Family: entry.Family, Name: name, Sym: sym}, true
}

func isMethodCall(call *ssa.CallCommon) bool {
	return !call.IsInvoke() && call.Signature().Recv() != nil
}

func receiver(call *ssa.CallCommon) ssa.Value {
	if call.IsInvoke() {
		return call.Value
	}
	if isMethodCall(call) && len(call.Args) > 0 {
		return call.Args[0]
	}
	return nil
}

func argument(call *ssa.CallCommon, idx int) ssa.Value {
	if isMethodCall(call) {
		idx++
	}
	if idx < 0 || idx >= len(call.Args) {
		return nil
	}
	return call.Args[idx]
}

// describe names v after the source expression it was built from and
// returns the root value it hangs off. Loads, conversions and interface
// boxing are looked through so every use of s.mu gets the same identity.
func describe(v ssa.Value) (string, any) {
	switch val := v.(type) {
	case *ssa.Alloc:
		if val.Comment != "" {
			return val.Comment, val
		}
	case *ssa.Parameter, *ssa.FreeVar, *ssa.Global:
		return val.Name(), val
	case *ssa.FieldAddr:
		name, sym := describe(val.X)
		return name + "." + fieldName(val.X.Type(), val.Field), sym
	case *ssa.Field:
		name, sym := describe(val.X)
		return name + "." + fieldName(val.X.Type(), val.Field), sym
	case *ssa.IndexAddr:
		name, sym := describe(val.X)
		return name + "[" + indexName(val.Index) + "]", sym
	case *ssa.UnOp:
		if val.Op == token.MUL {
			return describe(val.X)
		}
	case *ssa.MakeInterface:
		return describe(val.X)
	case *ssa.ChangeType:
		return describe(val.X)
	case *ssa.ChangeInterface:
		return describe(val.X)
	case *ssa.Const:
		if val.Value != nil {
			if val.Value.Kind() == constant.String {
				return constant.StringVal(val.Value), nil
			}
			return val.Value.ExactString(), nil
		}
	}
	return v.Name(), v
}

func fieldName(t types.Type, idx int) string {
	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if st, ok := t.Underlying().(*types.Struct); ok && idx < st.NumFields() {
		return st.Field(idx).Name()
	}
	return fmt.Sprintf("field%d", idx)
}

func indexName(v ssa.Value) string {
	if c, ok := v.(*ssa.Const); ok && c.Value != nil {
		return c.Value.ExactString()
	}
	name, _ := describe(v)
	return name
}
