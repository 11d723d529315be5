package hint

import (
	"runtime"
	"sync"
	"weak"
)

// refCache retains recently displayed tables weakly,
// keyed by the random key embedded into the display output.
//
// Entries don't keep their table alive: when a table is
// garbage collected its entry removes itself from the cache.
type refCache[T any] struct {
	mu       sync.Mutex
	refs     map[string]weak.Pointer[T]
	cleanups map[string]runtime.Cleanup
}

func (c *refCache[T]) add(key string, table *T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refs == nil {
		c.refs = make(map[string]weak.Pointer[T])
		c.cleanups = make(map[string]runtime.Cleanup)
	}
	c.refs[key] = weak.Make(table)
	// The cleanup must not capture table or it would never run
	c.cleanups[key] = runtime.AddCleanup(table, func(key string) { c.remove(key) }, key)
}

// pop removes and returns the table cached under key.
// It returns nil if the key is unknown or the table
// has been garbage collected.
func (c *refCache[T]) pop(key string) *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	ref, ok := c.refs[key]
	if !ok {
		return nil
	}
	delete(c.refs, key)
	if cleanup, ok := c.cleanups[key]; ok {
		cleanup.Stop()
		delete(c.cleanups, key)
	}
	return ref.Value()
}

func (c *refCache[T]) remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.refs, key)
	delete(c.cleanups, key)
}

func (c *refCache[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.refs)
}

// lastRef is a single entry cache holding a shallow copy
// of the most recently displayed table, so the last output
// stays convertible even after the displayed value
// is no longer referenced anywhere else.
type lastRef[T any] struct {
	mu    sync.Mutex
	k     string
	table *T
}

// set replaces the cache entry with a shallow copy of table.
func (l *lastRef[T]) set(key string, table *T) {
	shallow := *table

	l.mu.Lock()
	defer l.mu.Unlock()

	l.k = key
	l.table = &shallow
}

// pop removes and returns the cached table
// if it is cached under key, else nil.
func (l *lastRef[T]) pop(key string) *T {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.table == nil || l.k != key {
		return nil
	}
	table := l.table
	l.k = ""
	l.table = nil
	return table
}

// key returns the key of the cached table, or "".
func (l *lastRef[T]) key() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.k
}
