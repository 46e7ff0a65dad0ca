// Package ssa runs the balance checker over SSA control flow graphs.
//
// # Program Building
//
// [Build] wraps the result of the buildssa analyzer. [Program.Funcs] lists
// the source functions to check, closures included, minus those declared in
// skipped files.
//
// # Tracked Objects
//
// A registered call selects its object through the family's selector:
// the family itself, the receiver or a positional argument. [ObjectOf]
// names the selected value the way it is spelled in source:
//
//	mu.Lock()          // "mu"
//	s.mu.Lock()        // "s.mu"
//	shards[i].Lock()   // "shards[i]"
//
// Two values with the same spelling but different roots stay distinct. When
// both occur in one function, as with a shadowed local, their names carry the
// declaring line: "mu (line 12)".
//
// # Dataflow
//
// The [Engine] solves block entry states to a fixed point. Each object maps
// to the set of states it may hold; a join unions the sets of the incoming
// edges, and an object untouched on one edge contributes the start state:
//
//	if cond {
//	    mu.Lock()      // {left}
//	}
//	                   // {left, start_state}
//
// A state that reaches a block only over a loop back edge, from a
// predecessor the block dominates, leaves the object untouched for
// [Engine.Untouched]. The checker treats such a call like the first one.
//
// Blocks are then replayed once so the checker sees every call exactly once,
// and return points are audited last.
//
// # Defers
//
// Deferred registered calls are collected as they are reached. A frame keeps
// one path per list of pending defers, and joins only merge paths with equal
// lists. At a return each path runs its own defers in reverse order, then the
// paths are merged for the audit.
package ssa
