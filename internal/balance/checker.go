// Package balance verifies that paired calls alternate on every path.
package balance

import (
	"github.com/mpyw/balanced/internal/state"
)

// Diagnostic categories.
const (
	CategoryDouble     = "double"
	CategoryUnbalanced = "unbalanced"
)

// Engine is the dataflow host the checker runs inside. It owns control-flow
// traversal, merges possible sets at joins and positions diagnostics.
type Engine interface {
	// Possible returns the possible set of obj at the current point.
	// ok is false when no path has a state for obj yet.
	Possible(obj state.Object) (possible state.Set, ok bool)
	// Untouched reports whether no forward path to the current point gave
	// obj an explicit state. A state that only comes around a loop back
	// edge leaves obj untouched.
	Untouched(obj state.Object) bool
	// SetState sets obj to st at the current point.
	SetState(obj state.Object, st state.State)
	// Objects returns the objects holding a state at the current point.
	Objects() []state.Object
	// Inlined reports whether the current body is an inlined substitution.
	Inlined() bool
	// Reachable reports whether the current point is reachable.
	Reachable() bool
	// Reportf emits a diagnostic at the current point.
	Reportf(category, format string, args ...any)
}

// Checker holds the per-function observation state.
type Checker struct {
	tracker *state.Tracker
}

// New creates a checker with an empty tracker.
func New() *Checker {
	return &Checker{tracker: state.NewTracker()}
}

// Tracker exposes the observation tracker.
func (c *Checker) Tracker() *state.Tracker {
	return c.tracker
}

// OnCall handles a call to a function registered on side for obj.
func (c *Checker) OnCall(e Engine, fn string, side state.Side, obj state.Object) {
	if e.Inlined() {
		return
	}

	possible, ok := e.Possible(obj)
	if !ok || e.Untouched(obj) {
		c.tracker.Assume(obj, side.Opposite())
	}
	if ok && possible.Has(side.State()) {
		e.Reportf(CategoryDouble, "double call to '%s'", fn)
	}

	e.SetState(obj, side.State())
}

// AuditReturn reports objects whose merged state is not a single side.
func (c *Checker) AuditReturn(e Engine) {
	if e.Inlined() {
		return
	}

	for _, obj := range e.Objects() {
		possible, ok := e.Possible(obj)
		if !ok || !possible.Merged() {
			continue
		}
		if c.unbalanced(obj, possible) {
			e.Reportf(CategoryUnbalanced, "returning with unbalanced %s", obj.Name)
		}
	}
}

// EndFunc audits the implicit exit when control falls off the end.
func (c *Checker) EndFunc(e Engine) {
	if e.Inlined() || !e.Reachable() {
		return
	}
	c.AuditReturn(e)
}

// AfterFunc clears the observations of the finished function.
func (c *Checker) AfterFunc() {
	c.tracker.Reset()
}

func (c *Checker) unbalanced(obj state.Object, possible state.Set) bool {
	resolved := c.tracker.ResolveSet(obj, possible)
	if resolved.Has(state.Undefined) {
		return true
	}
	return resolved.Has(state.StateLeft) && resolved.Has(state.StateRight)
}
