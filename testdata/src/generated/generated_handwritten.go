// Package generated checks that generated files are skipped.
package generated

import "sync"

// [BAD]: Same code in a hand-written file
func handwrittenLeak(mu *sync.Mutex, cond bool) {
	mu.Lock()
	if cond {
		mu.Unlock()
	}
} // want `returning with unbalanced mu`
