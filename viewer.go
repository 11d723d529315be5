package nbtable

import (
	"fmt"
	"reflect"
)

// Viewer implementations create a View for a table.
type Viewer interface {
	// NewView creates a View with the given title for the passed table
	NewView(title string, table any) (View, error)
}

// DefaultStructRowsViewer is used by SelectViewer
// for slices and arrays of structs.
// It names columns after the "col" struct field tag
// and ignores fields tagged with `col:"-"`.
var DefaultStructRowsViewer = &StructRowsViewer{Tag: "col", IgnoreTitle: "-"}

// SelectViewer returns a Viewer for the dynamic type of table.
//
// [][]string tables are viewed with StringsViewer,
// slices and arrays of structs (or pointers to structs)
// with DefaultStructRowsViewer.
func SelectViewer(table any) (Viewer, error) {
	if _, ok := table.([][]string); ok {
		return StringsViewer{}, nil
	}
	rows := reflect.ValueOf(table)
	for rows.Kind() == reflect.Pointer && !rows.IsNil() {
		rows = rows.Elem()
	}
	if rows.Kind() != reflect.Slice && rows.Kind() != reflect.Array {
		return nil, fmt.Errorf("table must be a slice or array, got %T", table)
	}
	rowType := rows.Type().Elem()
	if rowType.Kind() == reflect.Pointer {
		rowType = rowType.Elem()
	}
	if rowType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("table row type must be a struct, got %s", rowType)
	}
	return DefaultStructRowsViewer, nil
}
