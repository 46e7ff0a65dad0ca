// Package funcspec provides function specification parsing and matching.
//
// # Specification Format
//
// A function specification has one of the formats:
//
//	FuncName                    # Bare name, any package
//	pkg/path.FuncName           # Package-level function
//	pkg/path.TypeName.Method    # Method on type
//
// Examples:
//
//	preemptDisable
//	sync.Mutex.Lock
//	github.com/example/lockutil.Acquire
//
// # Parsing
//
// Use [Parse] to create a Spec from a string:
//
//	spec := funcspec.Parse("sync.RWMutex.RLock")
//	// spec.PkgPath  = "sync"
//	// spec.TypeName = "RWMutex"
//	// spec.FuncName = "RLock"
//
// [Of] derives the spec of a resolved *types.Func, so a registry keyed by
// [Spec.String] can be consulted with a single map lookup. Generic receivers
// are reported by their origin type name; methods of anonymous interfaces
// have no type name and only match bare specs.
//
// # Names
//
// [Spec.FullName] trims the package path to its last element, so
// diagnostics read "pool.Conn.Get" rather than the full import path.
package funcspec
