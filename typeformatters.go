package nbtable

import (
	"context"
	"errors"
	"reflect"
)

// Ensure that TypeFormatters implements CellFormatter
var _ CellFormatter = new(TypeFormatters)

// TypeFormatters routes cell formatting to the CellFormatter
// registered for the reflected type, implemented interface,
// or kind of the cell value.
//
// Matching order: exact type, interface, kind.
// If a pointer type has no match the dereferenced type
// is tried with the same order. The Default formatter
// is the last resort before returning errors.ErrUnsupported.
//
// At every step a formatter returning errors.ErrUnsupported
// passes matching on to the next step.
//
// A nil TypeFormatters is valid and formats nothing.
type TypeFormatters struct {
	Types          map[reflect.Type]CellFormatter
	InterfaceTypes map[reflect.Type]CellFormatter
	Kinds          map[reflect.Kind]CellFormatter
	Default        CellFormatter
}

// NewTypeFormatters returns a new empty TypeFormatters.
func NewTypeFormatters() *TypeFormatters {
	return new(TypeFormatters)
}

func (f *TypeFormatters) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	if f == nil {
		return "", false, errors.ErrUnsupported
	}
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	if !cell.Value.IsValid() {
		return "", false, errors.ErrUnsupported
	}
	str, raw, err = f.formatCell(ctx, cell)
	if !errors.Is(err, errors.ErrUnsupported) {
		return str, raw, err
	}
	if cell.Value.Kind() == reflect.Pointer && !cell.Value.IsNil() {
		derefCell := *cell
		derefCell.Value = cell.Value.Elem()
		str, raw, err = f.formatCell(ctx, &derefCell)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	if f.Default != nil {
		return f.Default.FormatCell(ctx, cell)
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatters) formatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	cellType := cell.Value.Type()
	if typeFmt, ok := f.Types[cellType]; ok {
		str, raw, err := typeFmt.FormatCell(ctx, cell)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	for interfaceType, interfaceFmt := range f.InterfaceTypes {
		if cellType.Implements(interfaceType) {
			str, raw, err := interfaceFmt.FormatCell(ctx, cell)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if kindFmt, ok := f.Kinds[cellType.Kind()]; ok {
		str, raw, err := kindFmt.FormatCell(ctx, cell)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatters) cloneOrNew() *TypeFormatters {
	if f == nil {
		return new(TypeFormatters)
	}
	c := &TypeFormatters{Default: f.Default}
	if len(f.Types) > 0 {
		c.Types = make(map[reflect.Type]CellFormatter, len(f.Types))
		for key, val := range f.Types {
			c.Types[key] = val
		}
	}
	if len(f.InterfaceTypes) > 0 {
		c.InterfaceTypes = make(map[reflect.Type]CellFormatter, len(f.InterfaceTypes))
		for key, val := range f.InterfaceTypes {
			c.InterfaceTypes[key] = val
		}
	}
	if len(f.Kinds) > 0 {
		c.Kinds = make(map[reflect.Kind]CellFormatter, len(f.Kinds))
		for key, val := range f.Kinds {
			c.Kinds[key] = val
		}
	}
	return c
}

// WithTypeFormatter returns a new TypeFormatters
// with a formatter registered for an exact type.
func (f *TypeFormatters) WithTypeFormatter(typ reflect.Type, fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]CellFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter returns a new TypeFormatters
// with a formatter registered for an interface type.
func (f *TypeFormatters) WithInterfaceTypeFormatter(typ reflect.Type, fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]CellFormatter)
	}
	mod.InterfaceTypes[typ] = fmt
	return mod
}

// WithKindFormatter returns a new TypeFormatters
// with a formatter registered for a reflect.Kind.
func (f *TypeFormatters) WithKindFormatter(kind reflect.Kind, fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]CellFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

// WithDefaultFormatter returns a new TypeFormatters
// with the passed fallback formatter.
func (f *TypeFormatters) WithDefaultFormatter(fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.Default = fmt
	return mod
}
