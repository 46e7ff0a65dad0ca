// Package state defines the side-state model of a paired-call protocol.
package state

import (
	"fmt"
	"strings"
)

// Side is one half of a protocol.
type Side uint8

const (
	Left Side = iota
	Right
)

// Opposite returns the other half of the protocol.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// State returns the dataflow state a call on this side produces.
func (s Side) State() State {
	if s == Left {
		return StateLeft
	}
	return StateRight
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// State is the dataflow value of a tracked object at a program point.
type State uint8

const (
	StateLeft State = iota
	StateRight
	// StartState is assumed at function entry before any call sets the object.
	// It is resolved lazily by [Tracker.Resolve].
	StartState
	// Undefined means the starting side could not be inferred.
	Undefined
)

var stateNames = [...]string{"left", "right", "start_state", "undefined"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Set is the possible set of a tracked object: every state that reaches a
// program point through some incoming path.
type Set uint8

// Of returns the set holding the given states.
func Of(states ...State) Set {
	var s Set
	for _, st := range states {
		s = s.Add(st)
	}
	return s
}

// Add returns s with st added.
func (s Set) Add(st State) Set {
	return s | 1<<st
}

// Has reports whether st is a member of s.
func (s Set) Has(st State) bool {
	return s&(1<<st) != 0
}

// Union returns the union of both sets.
func (s Set) Union(o Set) Set {
	return s | o
}

// Len returns the number of distinct states in s.
func (s Set) Len() int {
	n := 0
	for st := StateLeft; st <= Undefined; st++ {
		if s.Has(st) {
			n++
		}
	}
	return n
}

// Merged reports whether more than one distinct value reached the point.
func (s Set) Merged() bool {
	return s.Len() > 1
}

// States returns the members of s in declaration order.
func (s Set) States() []State {
	var out []State
	for st := StateLeft; st <= Undefined; st++ {
		if s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

func (s Set) String() string {
	names := make([]string, 0, 4)
	for _, st := range s.States() {
		names = append(names, st.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Object identifies a tracked object within one function.
//
// Name is the printable key (the family name for global protocols, the
// operand expression otherwise). Sym disambiguates equal names rooted at
// different variables and must be comparable.
type Object struct {
	Family string
	Name   string
	Sym    any
}

func (o Object) String() string {
	return o.Name
}
