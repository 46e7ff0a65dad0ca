// Package registry maps paired-call functions to their protocol side.
//
// # Overview
//
// A protocol family names two groups of functions: the left group and the
// right group. Calls must alternate between the groups on the tracked
// object. Every function of a family is registered individually:
//
//	reg := registry.New()
//	reg.Register("preempt", "preemptDisable", registry.Selector{}, state.Left)
//	reg.Register("preempt", "preemptEnable", registry.Selector{}, state.Right)
//
// Registering the same function name twice keeps the last registration.
//
// # Object Selectors
//
//	┌──────────┬──────────────────────────────────────────────┐
//	│ Selector │ Tracked object                               │
//	├──────────┼──────────────────────────────────────────────┤
//	│ (empty)  │ the family itself, one object per family     │
//	│ recv     │ the method receiver (mu in mu.Lock())        │
//	│ argN     │ the N-th argument, receiver excluded         │
//	└──────────┴──────────────────────────────────────────────┘
//
// # Matching
//
// [Registry.Match] resolves a *types.Func by its fully qualified spec
// (sync.Mutex.Lock) and falls back to the bare name (Lock). Both are
// map lookups; the number of registered functions does not affect the cost
// of a call site.
package registry
