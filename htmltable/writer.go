// Package htmltable renders tabular data as static HTML tables.
//
// The package is built around the generic Writer type which
// converts table data into HTML table elements with support for
// custom CSS classes, column and type based cell formatters,
// raw HTML output, sanitizing of raw output, and custom templates.
//
// All non-raw cell output is HTML-escaped.
package htmltable

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"reflect"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	nbtable "github.com/domonda/go-nbtable"
)

// Writer writes table data as static HTML table elements.
//
// Writer is immutable after creation, all With* methods
// return a new Writer instance with the modified configuration.
type Writer[T any] struct {
	tableClass       string
	viewer           nbtable.Viewer
	columnFormatters map[int]nbtable.CellFormatter
	typeFormatters   *nbtable.TypeFormatters
	sanitizer        *bluemonday.Policy
	nilValue         template.HTML
	headerRow        bool
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter returns a Writer for type T
// with default templates and no formatters.
func NewWriter[T any]() *Writer[T] {
	return &Writer[T]{
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// Write renders the table as HTML to dest.
// It uses the writer's configured viewer if set,
// else nbtable.SelectViewer picks one for the table type.
// The joined caption strings are used as table caption.
func (w *Writer[T]) Write(ctx context.Context, dest io.Writer, table T, caption ...string) error {
	viewer := w.viewer
	if viewer == nil {
		var err error
		viewer, err = nbtable.SelectViewer(table)
		if err != nil {
			return err
		}
	}
	view, err := viewer.NewView(strings.Join(caption, " "), table)
	if err != nil {
		return err
	}
	return w.WriteView(ctx, dest, view)
}

// WriteView renders a table view as HTML to dest.
//
// Every cell passes through the formatter cascade:
// first a column formatter if one is configured for the column,
// then the type based formatters, falling through on
// errors.ErrUnsupported to fmt.Sprint of the cell value.
func (w *Writer[T]) WriteView(ctx context.Context, dest io.Writer, view nbtable.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		numCols   = len(columns)
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    view.Title(),
			},
			RawCells: make([]template.HTML, numCols),
		}
	)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		templData.IsHeaderRow = true
		for col := range columns {
			templData.RawCells[col] = template.HTML(template.HTMLEscapeString(columns[col])) //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	cell := nbtable.Cell{View: view}
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			cell.Row, cell.Col = row, col
			cell.Value = view.ReflectValue(row, col)

			str, err := w.formatCell(ctx, &cell)
			if err != nil {
				return err
			}
			templData.RawCells[col] = template.HTML(str) //#nosec G203
		}

		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

// formatCell returns the final HTML for a cell,
// escaped or sanitized depending on the raw result
// of the matched formatter.
func (w *Writer[T]) formatCell(ctx context.Context, cell *nbtable.Cell) (html string, err error) {
	str, raw, err := w.formatCellValue(ctx, cell)
	if err != nil {
		return "", err
	}
	switch {
	case !raw:
		str = template.HTMLEscapeString(str)
	case w.sanitizer != nil:
		str = w.sanitizer.Sanitize(str)
	}
	return str, nil
}

func (w *Writer[T]) formatCellValue(ctx context.Context, cell *nbtable.Cell) (str string, raw bool, err error) {
	if colFormatter, ok := w.columnFormatters[cell.Col]; ok {
		str, raw, err = colFormatter.FormatCell(ctx, cell)
		if err == nil || !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	str, raw, err = w.typeFormatters.FormatCell(ctx, cell)
	if err == nil || !errors.Is(err, errors.ErrUnsupported) {
		return str, raw, err
	}
	// Fallback after errors.ErrUnsupported
	v := cell.Value
	if nbtable.ValueIsNil(v) {
		return string(w.nilValue), true, nil
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface()), false, nil
}

func (w *Writer[T]) clone() *Writer[T] {
	c := new(Writer[T])
	*c = *w
	return c
}

// WithHeaderRow returns a new writer that renders the
// column titles as header row with <th> elements.
func (w *Writer[T]) WithHeaderRow(headerRow bool) *Writer[T] {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithTableClass returns a new writer with the
// CSS class for the rendered table element.
func (w *Writer[T]) WithTableClass(tableClass string) *Writer[T] {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithTableViewer returns a new writer using the passed viewer.
// If not set, nbtable.SelectViewer is called at write time.
func (w *Writer[T]) WithTableViewer(viewer nbtable.Viewer) *Writer[T] {
	mod := w.clone()
	mod.viewer = viewer
	return mod
}

// WithColumnFormatter returns a new writer with the formatter
// registered for the column index. Column formatters take precedence
// over type formatters. A nil formatter removes a registered one.
func (w *Writer[T]) WithColumnFormatter(columnIndex int, formatter nbtable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.columnFormatters = make(map[int]nbtable.CellFormatter, len(w.columnFormatters)+1)
	for key, val := range w.columnFormatters {
		mod.columnFormatters[key] = val
	}
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithColumnFormatterFunc returns a new writer with the formatter
// function registered for the column index.
func (w *Writer[T]) WithColumnFormatterFunc(columnIndex int, formatterFunc nbtable.CellFormatterFunc) *Writer[T] {
	return w.WithColumnFormatter(columnIndex, formatterFunc)
}

// WithRawColumn returns a new writer that interprets the
// values of the column as raw HTML strings.
//
// Use WithSanitizer to sanitize raw HTML of untrusted origin.
func (w *Writer[T]) WithRawColumn(columnIndex int) *Writer[T] {
	return w.WithColumnFormatter(columnIndex, nbtable.SprintCellFormatter(true))
}

// WithTypeFormatters returns a new writer with the passed
// type formatter set replacing all existing type formatters.
func (w *Writer[T]) WithTypeFormatters(formatters *nbtable.TypeFormatters) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = formatters
	return mod
}

// WithTypeFormatter returns a new writer with a
// formatter registered for an exact type.
func (w *Writer[T]) WithTypeFormatter(typ reflect.Type, fmt nbtable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithTypeFormatter(typ, fmt)
	return mod
}

// WithInterfaceTypeFormatter returns a new writer with a formatter
// registered for values whose types implement the interface type.
func (w *Writer[T]) WithInterfaceTypeFormatter(typ reflect.Type, fmt nbtable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithInterfaceTypeFormatter(typ, fmt)
	return mod
}

// WithKindFormatter returns a new writer with a
// formatter registered for a reflect.Kind.
func (w *Writer[T]) WithKindFormatter(kind reflect.Kind, fmt nbtable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithKindFormatter(kind, fmt)
	return mod
}

// WithNilValue returns a new writer rendering
// the passed HTML for nil cell values.
func (w *Writer[T]) WithNilValue(nilValue template.HTML) *Writer[T] {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithSanitizer returns a new writer that sanitizes
// raw formatter output with the passed bluemonday policy.
// Non-raw output is always HTML-escaped and not affected.
func (w *Writer[T]) WithSanitizer(policy *bluemonday.Policy) *Writer[T] {
	mod := w.clone()
	mod.sanitizer = policy
	return mod
}

// WithTemplate returns a new writer with custom templates
// for the opening table tag including the optional caption,
// for every row, and for the closing table tag.
// See HeaderTemplate, RowTemplate, FooterTemplate for the defaults.
func (w *Writer[T]) WithTemplate(tableTemplate, rowTemplate, footerTemplate *template.Template) *Writer[T] {
	mod := w.clone()
	mod.headerTemplate = tableTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}
