package main

import (
	"fmt"
	"sync"
)

type registry struct {
	mu    sync.Mutex
	names map[string]int
}

func (r *registry) add(name string) {
	r.mu.Lock()
	if _, ok := r.names[name]; ok {
		r.mu.Unlock()
	}
	r.names[name]++
}

func main() {
	r := &registry{names: make(map[string]int)}
	r.add("a")
	fmt.Println(r.names)
}
