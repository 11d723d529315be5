package nbtable

import (
	"context"
	"reflect"
	"sync"
)

// MIMETextHTML is the MIME type key of HTML display formatters.
const MIMETextHTML = "text/html"

// Host gives access to the display formatter and
// kernel callback registries of a notebook runtime.
type Host interface {
	// DisplayFormatters returns the registry of
	// rich display formatters of the runtime.
	DisplayFormatters() *DisplayFormatters
	// Callbacks returns the registry of kernel callbacks
	// that frontend JavaScript can invoke.
	Callbacks() *Callbacks
}

// NewHost returns a standalone Host with empty registries,
// usable by notebook kernel implementations and tests.
func NewHost() Host {
	return &host{
		formatters: NewDisplayFormatters(),
		callbacks:  NewCallbacks(),
	}
}

type host struct {
	formatters *DisplayFormatters
	callbacks  *Callbacks
}

func (h *host) DisplayFormatters() *DisplayFormatters { return h.formatters }
func (h *host) Callbacks() *Callbacks                 { return h.callbacks }

// DisplayFormatter formats values of a registered type
// into the payload of the MIME type it is registered for.
type DisplayFormatter interface {
	FormatDisplay(ctx context.Context, value any) (string, error)
}

// DisplayFormatterFunc implements DisplayFormatter for a function.
type DisplayFormatterFunc func(ctx context.Context, value any) (string, error)

func (f DisplayFormatterFunc) FormatDisplay(ctx context.Context, value any) (string, error) {
	return f(ctx, value)
}

// DisplayFormatters is a registry of display formatters
// keyed by MIME type and reflected value type.
//
// It is the runtime side of a notebook's rich display mechanism:
// when a value is displayed, the formatter registered for the
// value's dynamic type renders the payload for its MIME type.
//
// DisplayFormatters is safe for concurrent use.
type DisplayFormatters struct {
	mu    sync.RWMutex
	mimes map[string]map[reflect.Type]DisplayFormatter
}

// NewDisplayFormatters returns a new empty registry.
func NewDisplayFormatters() *DisplayFormatters {
	return &DisplayFormatters{mimes: make(map[string]map[reflect.Type]DisplayFormatter)}
}

// ForType registers a formatter for a MIME type and value type
// and returns the formatter it displaced, or nil.
// Registering a nil formatter removes any registered one.
func (d *DisplayFormatters) ForType(mimeType string, typ reflect.Type, formatter DisplayFormatter) (displaced DisplayFormatter) {
	d.mu.Lock()
	defer d.mu.Unlock()

	types := d.mimes[mimeType]
	if types == nil {
		if formatter == nil {
			return nil
		}
		types = make(map[reflect.Type]DisplayFormatter)
		d.mimes[mimeType] = types
	}
	displaced = types[typ]
	if formatter == nil {
		delete(types, typ)
	} else {
		types[typ] = formatter
	}
	return displaced
}

// Remove removes and returns the formatter registered
// for the MIME type and value type, or nil.
func (d *DisplayFormatters) Remove(mimeType string, typ reflect.Type) (removed DisplayFormatter) {
	return d.ForType(mimeType, typ, nil)
}

// Lookup returns the formatter registered for
// the MIME type and value type, or nil.
func (d *DisplayFormatters) Lookup(mimeType string, typ reflect.Type) DisplayFormatter {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.mimes[mimeType][typ]
}

// Format renders the passed value with the formatter registered
// for the MIME type and the value's dynamic type.
//
// A formatter registered for a pointer type also
// matches values of the dereferenced type.
//
// ok reports whether a formatter was found.
func (d *DisplayFormatters) Format(ctx context.Context, mimeType string, value any) (str string, ok bool, err error) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		return "", false, nil
	}
	d.mu.RLock()
	formatter := d.mimes[mimeType][typ]
	if formatter == nil && typ.Kind() != reflect.Pointer {
		formatter = d.mimes[mimeType][reflect.PointerTo(typ)]
	}
	d.mu.RUnlock()

	if formatter == nil {
		return "", false, nil
	}
	str, err = formatter.FormatDisplay(ctx, value)
	return str, true, err
}
