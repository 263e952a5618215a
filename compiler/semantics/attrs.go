package semantics

import "sync"

// Key identifies one typed attribute of the side table. Keys are compared
// by identity; two keys created with the same name are distinct.
type Key[T any] struct {
	k *key
}

type key struct{ name string }

// NewKey returns a new attribute key. The name is used for debugging only.
func NewKey[T any](name string) Key[T] {
	return Key[T]{k: &key{name: name}}
}

// Name returns the name the key was created with.
func (k Key[T]) Name() string {
	if k.k == nil {
		return ""
	}
	return k.k.name
}

type slot struct {
	k  *key
	id NodeID
}

// Attrs is a side table of attributes computed by compiler passes, keyed
// by node identity. It is safe for concurrent use.
type Attrs struct {
	mu sync.RWMutex
	m  map[slot]any
}

// NewAttrs returns an empty side table.
func NewAttrs() *Attrs {
	return &Attrs{m: make(map[slot]any)}
}

// Get returns the value of attribute k on node n.
func Get[T any](a *Attrs, k Key[T], n Node) (T, bool) {
	a.mu.RLock()
	v, ok := a.m[slot{k.k, n.NodeID()}]
	a.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Set stores v as attribute k of node n, replacing any earlier value.
func Set[T any](a *Attrs, k Key[T], n Node, v T) {
	a.mu.Lock()
	a.m[slot{k.k, n.NodeID()}] = v
	a.mu.Unlock()
}

// Has reports if node n carries attribute k.
func Has[T any](a *Attrs, k Key[T], n Node) bool {
	a.mu.RLock()
	_, ok := a.m[slot{k.k, n.NodeID()}]
	a.mu.RUnlock()
	return ok
}

// Delete removes attribute k from node n.
func Delete[T any](a *Attrs, k Key[T], n Node) {
	a.mu.Lock()
	delete(a.m, slot{k.k, n.NodeID()})
	a.mu.Unlock()
}

// Len returns the number of stored attributes.
func (a *Attrs) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.m)
}
