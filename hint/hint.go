// Package hint hooks into the rich display mechanism of a notebook
// runtime to surface the existence of interactive tables to the user.
//
// While enabled, every displayed table of the hooked type is rendered
// as its static HTML table plus a button. Clicking the button invokes
// a kernel callback through the host's client-side bridge which looks
// up the displayed table and re-renders it as an interactive table.
//
// The hook retains displayed tables in two small caches so the
// callback can still reach them: a weak cache that doesn't keep
// tables alive, and a single entry cache holding a shallow copy
// of the most recently displayed table.
package hint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"reflect"
	"sync"

	"github.com/domonda/go-types/uu"

	nbtable "github.com/domonda/go-nbtable"
	"github.com/domonda/go-nbtable/datatable"
	"github.com/domonda/go-nbtable/htmltable"
)

// ErrReferenceGone is returned by ConvertToInteractive when the
// runtime no longer holds a reference to the requested table.
var ErrReferenceGone = errors.New("runtime no longer holds a reference to this table, please re-run the cell and try again")

// Hint is a display formatter hook for tables of type *T.
//
// While enabled it replaces the text/html display formatter
// for *T on the host runtime, wrapping the static table HTML
// with a button that converts the output to an interactive
// table on demand.
//
// Configure a Hint with its With* methods before calling Enable.
type Hint[T any] struct {
	host        nbtable.Host
	bridge      Bridge
	docURL      string
	static      nbtable.Renderer[*T]
	interactive nbtable.Renderer[*T]
	extra       []template.HTML
	log         *slog.Logger

	mu                 sync.Mutex
	enabled            bool
	displaced          nbtable.DisplayFormatter
	callbackRegistered bool

	refs refCache[T]
	last lastRef[T]
}

// New returns a Hint for tables of type *T on the passed host runtime.
//
// By default the static rendering uses an htmltable.Writer with header
// row (unless Enable displaces an already registered formatter, which
// is then used instead), the interactive rendering uses a
// datatable.Writer, and the frontend is addressed via DefaultBridge.
func New[T any](host nbtable.Host) *Hint[T] {
	return &Hint[T]{
		host:        host,
		bridge:      DefaultBridge,
		interactive: datatable.NewWriter[*T](),
		log:         slog.Default(),
	}
}

// WithBridge configures the client-side bridge names.
func (h *Hint[T]) WithBridge(bridge Bridge) *Hint[T] {
	h.bridge = bridge
	return h
}

// WithDocURL configures a documentation URL that the
// converted output links to. No link is added if empty.
func (h *Hint[T]) WithDocURL(docURL string) *Hint[T] {
	h.docURL = docURL
	return h
}

// WithStaticRenderer configures the renderer for the static table
// HTML, taking precedence over a displaced display formatter.
func (h *Hint[T]) WithStaticRenderer(renderer nbtable.Renderer[*T]) *Hint[T] {
	h.static = renderer
	return h
}

// WithInteractiveRenderer configures the renderer
// used when converting a table to interactive.
func (h *Hint[T]) WithInteractiveRenderer(renderer nbtable.Renderer[*T]) *Hint[T] {
	h.interactive = renderer
	return h
}

// WithExtraButtons configures additional trusted HTML buttons
// rendered after the convert button.
func (h *Hint[T]) WithExtraButtons(buttons ...template.HTML) *Hint[T] {
	h.extra = append(h.extra, buttons...)
	return h
}

// WithLogger configures the logger, defaulting to slog.Default().
func (h *Hint[T]) WithLogger(log *slog.Logger) *Hint[T] {
	h.log = log
	return h
}

// TableType returns the reflect.Type the hook formats, always *T.
func (h *Hint[T]) TableType() reflect.Type {
	return reflect.TypeFor[*T]()
}

// Enable registers the hook as text/html display formatter for *T
// on the host runtime, saving any displaced formatter for Disable
// to restore. Enabling an enabled hook does nothing.
func (h *Hint[T]) Enable() error {
	if h.host == nil {
		return errors.New("hint: nil nbtable.Host")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.enabled {
		return nil
	}
	h.displaced = h.host.DisplayFormatters().ForType(nbtable.MIMETextHTML, h.TableType(), h)
	h.enabled = true
	h.log.Debug("enabled interactive table hint formatter", "type", h.TableType().String())
	return nil
}

// Disable removes the hook from the host runtime and restores the
// formatter displaced by Enable. Disabling a disabled hook does
// nothing. The conversion callback stays registered so buttons
// in already rendered outputs keep working.
func (h *Hint[T]) Disable() error {
	if h.host == nil {
		return errors.New("hint: nil nbtable.Host")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.enabled {
		return nil
	}
	h.host.DisplayFormatters().ForType(nbtable.MIMETextHTML, h.TableType(), h.displaced)
	h.displaced = nil
	h.enabled = false
	h.log.Debug("disabled interactive table hint formatter", "type", h.TableType().String())
	return nil
}

// Enabled reports if the hook is registered on the host runtime.
func (h *Hint[T]) Enabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.enabled
}

// FormatDisplay implements nbtable.DisplayFormatter.
//
// It renders the static table HTML wrapped into a container
// with the convert button and caches the table under a new
// random key so ConvertToInteractive can look it up later.
func (h *Hint[T]) FormatDisplay(ctx context.Context, value any) (string, error) {
	table, ok := value.(*T)
	if !ok {
		v, okValue := value.(T)
		if !okValue {
			return "", fmt.Errorf("%w: formatter for %s got %T", errors.ErrUnsupported, h.TableType(), value)
		}
		table = &v
	}

	key := "df-" + uu.IDv4().String()
	h.refs.add(key, table)
	h.last.set(key, table)

	if err := h.ensureCallback(); err != nil {
		return "", err
	}

	tableHTML, err := h.renderStatic(ctx, table)
	if err != nil {
		return "", err
	}

	var button bytes.Buffer
	err = buttonTemplate.Execute(&button, &buttonTemplateContext{
		Key:          key,
		Icon:         iconSVG,
		CSS:          hintButtonCSS,
		Kernel:       template.JS(h.bridge.KernelObject), //#nosec G203
		Output:       template.JS(h.bridge.OutputObject), //#nosec G203
		CallbackName: h.bridge.CallbackName,
		DocURL:       h.docURL,
	})
	if err != nil {
		return "", err
	}

	buttons := make([]template.HTML, 0, 1+len(h.extra))
	buttons = append(buttons, template.HTML(button.String())) //#nosec G203
	buttons = append(buttons, h.extra...)

	var out bytes.Buffer
	err = containerTemplate.Execute(&out, &containerTemplateContext{
		Key:       key,
		TableHTML: tableHTML,
		Buttons:   buttons,
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// ConvertToInteractive renders the table displayed under key
// with the interactive renderer and returns it as display data.
//
// The lookup consumes the cache entries for the key: it checks
// the single entry cache of the last displayed table first,
// then the weak cache. If neither holds the table anymore a
// wrapped ErrReferenceGone is returned.
func (h *Hint[T]) ConvertToInteractive(ctx context.Context, key string) (nbtable.DisplayData, error) {
	table := h.last.pop(key)
	if table == nil {
		table = h.refs.pop(key)
	}
	if table == nil {
		h.log.Warn("no cached table for interactive conversion", "key", key)
		return nil, fmt.Errorf("%w (key %q)", ErrReferenceGone, key)
	}

	var out bytes.Buffer
	err := h.interactive.Write(ctx, &out, table)
	if err != nil {
		return nil, err
	}
	return nbtable.HTMLDisplayData(out.String()), nil
}

// LastKey returns the key of the most recently displayed table
// if it is still cached, or "".
func (h *Hint[T]) LastKey() string {
	return h.last.key()
}

// CachedTables returns the number of weakly cached tables.
func (h *Hint[T]) CachedTables() int {
	return h.refs.len()
}

// ensureCallback registers the conversion callback on first use.
func (h *Hint[T]) ensureCallback() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.callbackRegistered {
		return nil
	}
	err := h.host.Callbacks().Register(h.bridge.CallbackName,
		func(ctx context.Context, args ...any) (nbtable.DisplayData, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("callback %q expects a table key argument", h.bridge.CallbackName)
			}
			key, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("callback %q expects a string table key, got %T", h.bridge.CallbackName, args[0])
			}
			return h.ConvertToInteractive(ctx, key)
		},
	)
	if err != nil {
		return err
	}
	h.callbackRegistered = true
	return nil
}

func (h *Hint[T]) renderStatic(ctx context.Context, table *T) (template.HTML, error) {
	if h.static == nil {
		if displaced := h.displacedFormatter(); displaced != nil {
			str, err := displaced.FormatDisplay(ctx, table)
			if err != nil {
				return "", err
			}
			return template.HTML(str), nil //#nosec G203
		}
	}
	renderer := h.static
	if renderer == nil {
		renderer = htmltable.NewWriter[*T]().WithHeaderRow(true)
	}
	var out bytes.Buffer
	err := renderer.Write(ctx, &out, table)
	if err != nil {
		return "", err
	}
	return template.HTML(out.String()), nil //#nosec G203
}

func (h *Hint[T]) displacedFormatter() nbtable.DisplayFormatter {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.displaced
}
