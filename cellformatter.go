package nbtable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Cell references a cell of a View together with its reflected value.
type Cell struct {
	View  View
	Row   int
	Col   int
	Value reflect.Value
}

// CellFormatter is an interface for formatting reflected cell values as strings.
type CellFormatter interface {
	// FormatCell formats a cell as string
	// or returns a wrapped errors.ErrUnsupported
	// if it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the table format and can be
	// used as is or if it has to be sanitized in some way.
	FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, cell *Cell) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return f(ctx, cell)
}

// SprintCellFormatter formats cells using fmt.Sprint,
// with the result indicated as raw if rawResult is true.
func SprintCellFormatter(rawResult bool) CellFormatterFunc {
	return func(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
		return fmt.Sprint(cell.Value.Interface()), rawResult, nil
	}
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), cell.Value.Interface()), false, nil
}

// PrintfRawCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
// The result will be indicated to be a raw value.
type PrintfRawCellFormatter string

func (format PrintfRawCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), cell.Value.Interface()), true, nil
}

// RawCellString implements CellFormatter by returning
// the underlying string as raw value for every cell.
type RawCellString string

func (rawStr RawCellString) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return string(rawStr), true, nil
}

// LayoutCellFormatter formats time.Time cells
// using the underlying string as time layout.
type LayoutCellFormatter string

func (layout LayoutCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	t, ok := cell.Value.Interface().(time.Time)
	if !ok {
		return "", false, fmt.Errorf("%w: LayoutCellFormatter got %s instead of time.Time", errors.ErrUnsupported, cell.Value.Type())
	}
	return t.Format(string(layout)), false, nil
}
