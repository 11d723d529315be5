package nbtable

import (
	"fmt"
	"reflect"
	"strings"
)

// Ensure StructRowsViewer implements Viewer
var _ Viewer = new(StructRowsViewer)

// StructRowsViewer creates views for slices and arrays of structs
// using a struct field tag for column naming.
type StructRowsViewer struct {
	// Tag is the struct field tag used as column title
	Tag string
	// IgnoreTitle will not create a column
	// for struct fields tagged with it.
	IgnoreTitle string
	// UntaggedTitleFunc is called with the struct field name
	// to derive a column title for fields without the Tag.
	// If nil, the field name is used unchanged.
	UntaggedTitleFunc func(fieldName string) string
}

func (v *StructRowsViewer) clone() *StructRowsViewer {
	mod := new(StructRowsViewer)
	*mod = *v
	return mod
}

// WithTag returns a new StructRowsViewer using the passed struct field tag.
func (v *StructRowsViewer) WithTag(tag string) *StructRowsViewer {
	mod := v.clone()
	mod.Tag = tag
	return mod
}

// WithIgnoreTitle returns a new StructRowsViewer
// ignoring struct fields tagged with ignoreTitle.
func (v *StructRowsViewer) WithIgnoreTitle(ignoreTitle string) *StructRowsViewer {
	mod := v.clone()
	mod.IgnoreTitle = ignoreTitle
	return mod
}

// WithSpacedTitles returns a new StructRowsViewer that derives
// column titles for untagged fields by spacing out CamelCase names.
func (v *StructRowsViewer) WithSpacedTitles() *StructRowsViewer {
	mod := v.clone()
	mod.UntaggedTitleFunc = SpacePascalCase
	return mod
}

func (v *StructRowsViewer) NewView(title string, table any) (View, error) {
	rows := reflect.ValueOf(table)
	for rows.Kind() == reflect.Pointer && !rows.IsNil() {
		rows = rows.Elem()
	}
	if rows.Kind() != reflect.Slice && rows.Kind() != reflect.Array {
		return nil, fmt.Errorf("table must be a slice or array, got %T", table)
	}
	structType := rows.Type().Elem()
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("table row type must be a struct, got %s", structType)
	}

	structFields := StructFieldTypes(structType)
	columns := make([]string, 0, len(structFields))
	fields := make([]int, 0, len(structFields))
	for i, structField := range structFields {
		columnTitle := v.titleFromStructField(structField)
		if columnTitle == v.IgnoreTitle && v.IgnoreTitle != "" {
			continue
		}
		columns = append(columns, columnTitle)
		fields = append(fields, i)
	}
	return NewStructRowsView(title, columns, fields, rows), nil
}

func (v *StructRowsViewer) titleFromStructField(structField reflect.StructField) string {
	if tag, ok := structField.Tag.Lookup(v.Tag); ok {
		if i := strings.IndexByte(tag, ','); i != -1 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	if v.UntaggedTitleFunc != nil {
		return v.UntaggedTitleFunc(structField.Name)
	}
	return structField.Name
}
