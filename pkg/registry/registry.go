// Package registry maps class signatures ("Lcom/example/Service;") to the
// handles a host runtime uses to address loaded classes. It is populated
// as classes are prepared and consulted when a changed class file needs to
// be pushed back into the runtime.
package registry

import (
	"slices"
	"sync"
)

// Registry is a concurrency-safe signature -> handle map.
type Registry[H any] struct {
	mu      sync.RWMutex
	classes map[string]H
}

// New returns an empty registry.
func New[H any]() *Registry[H] {
	return &Registry[H]{classes: make(map[string]H)}
}

// Put records h under sig, replacing any previous handle. It reports
// whether sig was already present.
func (r *Registry[H]) Put(sig string, h H) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.classes[sig]
	r.classes[sig] = h
	return existed
}

// Get returns the handle recorded for sig.
func (r *Registry[H]) Get(sig string) (H, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.classes[sig]
	return h, ok
}

// Delete forgets sig, typically on class unload.
func (r *Registry[H]) Delete(sig string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, sig)
}

func (r *Registry[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}

// Signatures returns the recorded signatures in sorted order.
func (r *Registry[H]) Signatures() []string {
	r.mu.RLock()
	sigs := make([]string, 0, len(r.classes))
	for s := range r.classes {
		sigs = append(sigs, s)
	}
	r.mu.RUnlock()
	slices.Sort(sigs)
	return sigs
}
