package nbtable

import (
	"fmt"
	"reflect"
)

// Ensure StructRowsView implements View
var _ View = new(StructRowsView)

// StructRowsView is a View implementation
// backed by a slice or array of structs
// where every struct represents a table row.
type StructRowsView struct {
	title   string
	columns []string
	fields  []int // flattened exported struct field index per column
	rows    reflect.Value
}

// NewStructRowsView creates a StructRowsView with a struct field index
// per column title. The rows value must be a slice or array of structs
// or pointers to structs.
func NewStructRowsView(title string, columns []string, fields []int, rows reflect.Value) View {
	if rows.Kind() != reflect.Slice && rows.Kind() != reflect.Array {
		panic(fmt.Errorf("rows must be a slice or array, got %s", rows.Type()))
	}
	if len(columns) != len(fields) {
		panic(fmt.Errorf("%d columns but %d field indices", len(columns), len(fields)))
	}
	return &StructRowsView{
		title:   title,
		columns: columns,
		fields:  fields,
		rows:    rows,
	}
}

func (view *StructRowsView) Title() string     { return view.title }
func (view *StructRowsView) Columns() []string { return view.columns }
func (view *StructRowsView) NumRows() int      { return view.rows.Len() }

func (view *StructRowsView) AnyValue(row, col int) any {
	v := view.ReflectValue(row, col)
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

func (view *StructRowsView) ReflectValue(row, col int) reflect.Value {
	if row < 0 || row >= view.rows.Len() || col < 0 || col >= len(view.columns) {
		return reflect.Value{}
	}
	strct := view.rows.Index(row)
	for strct.Kind() == reflect.Pointer {
		if strct.IsNil() {
			return reflect.Value{}
		}
		strct = strct.Elem()
	}
	return StructFieldValues(strct)[view.fields[col]]
}
