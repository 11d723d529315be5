// Package datatable renders tabular data as interactive HTML tables
// with client-side sorting, filtering, and paging.
//
// The table data is serialized as JSON and embedded together with a
// script into the emitted HTML fragment, so the interactive table
// works without further kernel round trips.
package datatable

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/domonda/go-types/uu"
	"github.com/goccy/go-json"

	nbtable "github.com/domonda/go-nbtable"
)

// Default limits of NewWriter.
const (
	DefaultPageSize   = 25
	DefaultMaxRows    = 20000
	DefaultMaxColumns = 20
)

// Writer writes table data as interactive HTML tables.
//
// Writer is immutable after creation, all With* methods
// return a new Writer instance with the modified configuration.
type Writer[T any] struct {
	viewer     nbtable.Viewer
	tableClass string
	pageSize   int
	maxRows    int
	maxColumns int
}

// NewWriter returns a Writer for type T with default limits.
func NewWriter[T any]() *Writer[T] {
	return &Writer[T]{
		pageSize:   DefaultPageSize,
		maxRows:    DefaultMaxRows,
		maxColumns: DefaultMaxColumns,
	}
}

// Write renders the table as interactive HTML to dest.
// It uses the writer's configured viewer if set,
// else nbtable.SelectViewer picks one for the table type.
// The joined caption strings are rendered above the table.
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

// WriteView renders a table view as interactive HTML to dest.
//
// Rows and columns beyond the configured limits are truncated
// and a notice is rendered below the table.
func (w *Writer[T]) WriteView(ctx context.Context, dest io.Writer, view nbtable.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns = view.Columns()
		numCols = len(columns)
		numRows = view.NumRows()
		notice  string
	)
	if numCols > w.maxColumns {
		notice = fmt.Sprintf("Showing the first %d of %d columns.", w.maxColumns, numCols)
		numCols = w.maxColumns
	}
	if numRows > w.maxRows {
		if notice != "" {
			notice += " "
		}
		notice += fmt.Sprintf("Showing the first %d of %d rows.", w.maxRows, numRows)
		numRows = w.maxRows
	}

	p := payload{
		Columns:  make([]column, numCols),
		Rows:     make([][]any, numRows),
		PageSize: w.pageSize,
	}
	for row := 0; row < numRows; row++ {
		p.Rows[row] = make([]any, numCols)
		for col := 0; col < numCols; col++ {
			p.Rows[row][col] = cellValue(view.ReflectValue(row, col))
		}
	}
	for col := 0; col < numCols; col++ {
		p.Columns[col] = column{
			Title: columns[col],
			Type:  columnType(p.Rows, col),
		}
	}

	// goccy/go-json escapes HTML characters like encoding/json,
	// so the payload can't break out of the script element.
	data, err := json.Marshal(&p)
	if err != nil {
		return err
	}

	return tableTemplate.Execute(dest, &tableTemplateContext{
		ID:         "it-" + uu.IDv4().String(),
		TableClass: w.tableClass,
		Caption:    view.Title(),
		Notice:     notice,
		CSS:        tableCSS,
		Payload:    template.JS(data), //#nosec G203
	})
}

func (w *Writer[T]) clone() *Writer[T] {
	c := new(Writer[T])
	*c = *w
	return c
}

// WithTableViewer returns a new writer using the passed viewer.
// If not set, nbtable.SelectViewer is called at write time.
func (w *Writer[T]) WithTableViewer(viewer nbtable.Viewer) *Writer[T] {
	mod := w.clone()
	mod.viewer = viewer
	return mod
}

// WithTableClass returns a new writer with an additional
// CSS class for the container element.
func (w *Writer[T]) WithTableClass(tableClass string) *Writer[T] {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithPageSize returns a new writer with the number
// of rows per displayed page.
func (w *Writer[T]) WithPageSize(pageSize int) *Writer[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	mod := w.clone()
	mod.pageSize = pageSize
	return mod
}

// WithMaxRows returns a new writer with the maximum
// number of rows serialized into the HTML output.
func (w *Writer[T]) WithMaxRows(maxRows int) *Writer[T] {
	if maxRows < 1 {
		maxRows = DefaultMaxRows
	}
	mod := w.clone()
	mod.maxRows = maxRows
	return mod
}

// WithMaxColumns returns a new writer with the maximum
// number of columns serialized into the HTML output.
func (w *Writer[T]) WithMaxColumns(maxColumns int) *Writer[T] {
	if maxColumns < 1 {
		maxColumns = DefaultMaxColumns
	}
	mod := w.clone()
	mod.maxColumns = maxColumns
	return mod
}

type payload struct {
	Columns  []column `json:"columns"`
	Rows     [][]any  `json:"rows"`
	PageSize int      `json:"pageSize"`
}

type column struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}
