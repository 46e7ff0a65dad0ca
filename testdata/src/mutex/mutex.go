// Package mutex checks the built-in sync families.
package mutex

import "sync"

type Store struct {
	mu   sync.Mutex
	data map[string]string
}

type Cache struct {
	rw    sync.RWMutex
	items []string
}

type Counter struct {
	sync.Mutex
	n int
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Deferred unlock
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

// [GOOD]: Unlock on both paths
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	if _, ok := s.data[key]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.data, key)
	s.mu.Unlock()
	return true
}

// [GOOD]: Read lock released before taking the write lock
func (c *Cache) goodReadThenWrite(item string) {
	c.rw.RLock()
	n := len(c.items)
	c.rw.RUnlock()
	if n > 0 {
		return
	}
	c.rw.Lock()
	c.items = append(c.items, item)
	c.rw.Unlock()
}

// [GOOD]: Local mutex
func goodLocal() int {
	var mu sync.Mutex
	mu.Lock()
	mu.Unlock()
	return 0
}

// [GOOD]: Embedded mutex
func (c *Counter) goodEmbedded() {
	c.Lock()
	c.n++
	c.Unlock()
}

// [GOOD]: Locked section inside a closure
func goodClosure(mu *sync.Mutex) {
	func() {
		mu.Lock()
		defer mu.Unlock()
	}()
}

// [GOOD]: Distinct stores do not share state
func goodTwoStores(a, b *Store, cond bool) {
	a.mu.Lock()
	if cond {
		b.mu.Lock()
		b.mu.Unlock()
	}
	a.mu.Unlock()
}

// [GOOD]: Deferred unlock on one branch, explicit unlock on the other
func goodConditionalDefer(mu *sync.Mutex, fast bool) {
	mu.Lock()
	if fast {
		defer mu.Unlock()
		work()
	} else {
		mu.Unlock()
		work()
	}
}

// ===== SHOULD REPORT =====

// [BAD]: Unlock only when the key exists
func (s *Store) badConditionalUnlock(key string) {
	s.mu.Lock()
	if _, ok := s.data[key]; ok {
		s.mu.Unlock()
	}
} // want `returning with unbalanced s.mu`

// [BAD]: Locked twice
func (s *Store) badDoubleLock() {
	s.mu.Lock()
	s.mu.Lock() // want `double call to 'sync.Mutex.Lock'`
	s.mu.Unlock()
}

// [BAD]: Deferred read unlock after an explicit one
func (c *Cache) badDoubleRUnlock() int {
	c.rw.RLock()
	defer c.rw.RUnlock() // want `double call to 'sync.RWMutex.RUnlock'`
	n := len(c.items)
	c.rw.RUnlock()
	return n
}

// [BAD]: Lock taken on every iteration
func badLocalLoop(items []string) {
	var mu sync.Mutex
	for range items {
		mu.Lock() // want `double call to 'sync.Mutex.Lock'`
	}
} // want `returning with unbalanced mu`

// [BAD]: Interface unlocked twice on one path
func badLocker(l sync.Locker, cond bool) {
	l.Lock()
	if cond {
		l.Unlock()
	}
	l.Unlock() // want `double call to 'sync.Locker.Unlock'`
}

// [BAD]: Closure unlocks only when asked to
func badClosure(mu *sync.Mutex) func(bool) {
	return func(release bool) {
		mu.Lock()
		if release {
			mu.Unlock()
		}
	} // want `returning with unbalanced mu`
}

// [BAD]: Shadowed mutexes are reported apart
func badShadowed(cond bool) {
	var mu sync.Mutex
	mu.Lock()
	if cond {
		mu.Unlock()
	}
	{
		var mu sync.Mutex
		mu.Lock()
		if cond {
			mu.Unlock()
		}
	}
} // want `returning with unbalanced mu \(line 155\)` `returning with unbalanced mu \(line 161\)`

func work() {}
