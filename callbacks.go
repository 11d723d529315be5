package nbtable

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrCallbackNotFound is returned by Callbacks.Invoke
// for callback names without a registered callback.
var ErrCallbackNotFound = errors.New("callback not found")

// DisplayData is a MIME bundle returned by kernel callbacks
// to be rendered as display output by the notebook frontend.
type DisplayData map[string]any

// HTMLDisplayData returns a DisplayData
// with the passed string as text/html payload.
func HTMLDisplayData(html string) DisplayData {
	return DisplayData{MIMETextHTML: html}
}

// CallbackFunc is a kernel callback invokable
// by name from frontend JavaScript.
type CallbackFunc func(ctx context.Context, args ...any) (DisplayData, error)

// Callbacks is a registry of named kernel callbacks.
//
// A notebook frontend bridges JavaScript calls
// to Invoke on the kernel side.
//
// Callbacks is safe for concurrent use.
type Callbacks struct {
	mu    sync.RWMutex
	funcs map[string]CallbackFunc
}

// NewCallbacks returns a new empty registry.
func NewCallbacks() *Callbacks {
	return &Callbacks{funcs: make(map[string]CallbackFunc)}
}

// Register registers a callback under a name,
// replacing any callback registered before under the same name.
func (c *Callbacks) Register(name string, fn CallbackFunc) error {
	if name == "" {
		return errors.New("empty callback name")
	}
	if fn == nil {
		return fmt.Errorf("nil callback %q", name)
	}
	c.mu.Lock()
	c.funcs[name] = fn
	c.mu.Unlock()
	return nil
}

// Registered reports if a callback is registered under the name.
func (c *Callbacks) Registered(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.funcs[name] != nil
}

// Unregister removes the callback registered under the name
// and reports if there was one.
func (c *Callbacks) Unregister(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.funcs[name]
	delete(c.funcs, name)
	return ok
}

// Invoke calls the callback registered under the name.
// It returns a wrapped ErrCallbackNotFound
// if no callback is registered under the name.
func (c *Callbacks) Invoke(ctx context.Context, name string, args ...any) (DisplayData, error) {
	c.mu.RLock()
	fn := c.funcs[name]
	c.mu.RUnlock()

	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrCallbackNotFound, name)
	}
	return fn(ctx, args...)
}

// Names returns the sorted names of all registered callbacks.
func (c *Callbacks) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
