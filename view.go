package nbtable

import "reflect"

// View provides read access to tabular data
// without copying it into an intermediate representation.
type View interface {
	// Title of the table view
	Title() string
	// Columns returns the column titles
	Columns() []string
	// NumRows returns the number of data rows
	NumRows() int
	// AnyValue returns the cell value at the
	// given coordinates or nil if out of bounds.
	AnyValue(row, col int) any
	// ReflectValue returns the cell value at the
	// given coordinates as reflect.Value.
	// An out of bounds cell yields the zero reflect.Value.
	ReflectValue(row, col int) reflect.Value
}

// NewView selects a Viewer for the table
// and creates a View with the given title.
func NewView(title string, table any) (View, error) {
	viewer, err := SelectViewer(table)
	if err != nil {
		return nil, err
	}
	return viewer.NewView(title, table)
}
