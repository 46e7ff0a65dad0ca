// Package syncoff is checked with -sync=false.
package syncoff

import "sync"

// [GOOD]: The sync families are not registered
func leak(mu *sync.Mutex, cond bool) {
	mu.Lock()
	if cond {
		mu.Unlock()
	}
	mu.Lock()
}
