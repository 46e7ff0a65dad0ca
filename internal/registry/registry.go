// Package registry maps paired-call functions to their protocol side.
package registry

import (
	"errors"
	"fmt"
	"go/types"
	"strconv"
	"strings"

	"github.com/mpyw/balanced/internal/funcspec"
	"github.com/mpyw/balanced/internal/state"
)

var ErrInvalidSelector = errors.New("invalid object selector")

// SelectorKind tells where the tracked object of a call comes from.
type SelectorKind int

const (
	// Global tracks one object per family, named after the family.
	Global SelectorKind = iota
	// Receiver tracks the method receiver.
	Receiver
	// Argument tracks the argument at Selector.Index.
	Argument
)

// Selector extracts the tracked object from a call.
type Selector struct {
	Kind  SelectorKind
	Index int
}

// ParseSelector parses "", "recv" or "argN".
func ParseSelector(s string) (Selector, error) {
	switch {
	case s == "" || s == "global":
		return Selector{Kind: Global}, nil
	case s == "recv":
		return Selector{Kind: Receiver}, nil
	case strings.HasPrefix(s, "arg"):
		idx, err := strconv.Atoi(strings.TrimPrefix(s, "arg"))
		if err != nil || idx < 0 {
			return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
		}
		return Selector{Kind: Argument, Index: idx}, nil
	default:
		return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
}

func (s Selector) String() string {
	switch s.Kind {
	case Receiver:
		return "recv"
	case Argument:
		return "arg" + strconv.Itoa(s.Index)
	default:
		return ""
	}
}

// Entry is a registered protocol function.
type Entry struct {
	Family string
	Func   funcspec.Spec
	Object Selector
	Side   state.Side
}

// Registry holds protocol functions keyed by their specification string.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds fn to the registry. A later registration of the same
// function name replaces the earlier one.
func (r *Registry) Register(family, fn string, sel Selector, side state.Side) {
	r.RegisterSpec(family, funcspec.Parse(fn), sel, side)
}

// RegisterSpec is [Registry.Register] for an already resolved spec, such
// as a method of an unexported type that a spec string cannot spell.
func (r *Registry) RegisterSpec(family string, spec funcspec.Spec, sel Selector, side state.Side) {
	key := spec.String()

	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = Entry{
		Family: family,
		Func:   spec,
		Object: sel,
		Side:   side,
	}
}

// Lookup returns the entry registered under fn.
func (r *Registry) Lookup(fn string) (Entry, bool) {
	e, ok := r.entries[funcspec.Parse(fn).String()]
	return e, ok
}

// Match returns the entry for a resolved function. The fully qualified
// spec wins over a bare name.
func (r *Registry) Match(fn *types.Func) (Entry, bool) {
	if fn == nil {
		return Entry{}, false
	}
	if e, ok := r.entries[funcspec.Of(fn).String()]; ok {
		return e, true
	}
	e, ok := r.entries[fn.Name()]
	return e, ok
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	return len(r.entries)
}
