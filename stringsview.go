package nbtable

import (
	"fmt"
	"reflect"
)

// Ensure StringsView implements View
var _ View = new(StringsView)

// StringsView is a View implementation
// backed by a [][]string table.
//
// Rows may be sparse: a row with fewer fields
// than there are columns yields empty strings
// for the missing cells.
type StringsView struct {
	Tit  string
	Cols []string
	Rows [][]string
}

// NewStringsView creates a StringsView
// interpreting the first row as column titles.
func NewStringsView(title string, rows [][]string) *StringsView {
	view := &StringsView{Tit: title}
	if len(rows) > 0 {
		view.Cols = rows[0]
		view.Rows = rows[1:]
	}
	return view
}

func (view *StringsView) Title() string     { return view.Tit }
func (view *StringsView) Columns() []string { return view.Cols }
func (view *StringsView) NumRows() int      { return len(view.Rows) }

func (view *StringsView) AnyValue(row, col int) any {
	if row < 0 || row >= len(view.Rows) || col < 0 || col >= len(view.Cols) {
		return nil
	}
	if col >= len(view.Rows[row]) {
		return "" // sparse row
	}
	return view.Rows[row][col]
}

func (view *StringsView) ReflectValue(row, col int) reflect.Value {
	if row < 0 || row >= len(view.Rows) || col < 0 || col >= len(view.Cols) {
		return reflect.Value{}
	}
	if col >= len(view.Rows[row]) {
		return reflect.ValueOf("")
	}
	return reflect.ValueOf(view.Rows[row][col])
}

// StringsViewer creates StringsView views
// and implements the Viewer interface for [][]string tables.
type StringsViewer struct{}

func (StringsViewer) NewView(title string, table any) (View, error) {
	rows, ok := table.([][]string)
	if !ok {
		return nil, fmt.Errorf("table must be [][]string, got %T", table)
	}
	return NewStringsView(title, rows), nil
}
