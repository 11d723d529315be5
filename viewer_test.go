package nbtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectViewer(t *testing.T) {
	type Row struct {
		Name string
	}
	tests := []struct {
		name       string
		table      any
		wantViewer Viewer
		wantErr    bool
	}{
		{name: "[][]string", table: [][]string{{"A"}}, wantViewer: StringsViewer{}},
		{name: "empty [][]string", table: [][]string{}, wantViewer: StringsViewer{}},
		{name: "struct slice", table: []Row{{"a"}}, wantViewer: DefaultStructRowsViewer},
		{name: "struct pointer slice", table: []*Row{{"a"}}, wantViewer: DefaultStructRowsViewer},
		{name: "pointer to struct slice", table: &[]Row{{"a"}}, wantViewer: DefaultStructRowsViewer},
		{name: "string", table: "nope", wantErr: true},
		{name: "int slice", table: []int{1}, wantErr: true},
		{name: "nil", table: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer, err := SelectViewer(tt.table)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantViewer, viewer)
		})
	}
}

func TestStructRowsViewer_NewView(t *testing.T) {
	type Row struct {
		Status      string   `col:"Status"`
		CompanyName string   `col:"Company"`
		Internal    []string `col:"-"`
		CompanyID   uint64
	}
	table := []Row{
		{Status: "new", CompanyName: "Company 1", Internal: []string{"x"}, CompanyID: 1},
		{Status: "old", CompanyName: "Company 2", CompanyID: 2},
	}

	view, err := DefaultStructRowsViewer.NewView("Title", table)
	require.NoError(t, err)
	require.Equal(t, "Title", view.Title())
	require.Equal(t, []string{"Status", "Company", "CompanyID"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "new", view.AnyValue(0, 0))
	require.Equal(t, "Company 2", view.AnyValue(1, 1))
	require.Equal(t, uint64(2), view.AnyValue(1, 2))
	require.Nil(t, view.AnyValue(2, 0), "row out of bounds")
	require.Nil(t, view.AnyValue(0, 3), "column out of bounds")
}

func TestStructRowsViewer_UntaggedTitleFunc(t *testing.T) {
	type Row struct {
		CompanyID uint64
	}
	viewer := DefaultStructRowsViewer.WithSpacedTitles()
	view, err := viewer.NewView("", []Row{{1}})
	require.NoError(t, err)
	require.Equal(t, []string{"Company ID"}, view.Columns())
}

func TestStructRowsViewer_UseTitle(t *testing.T) {
	type Row struct {
		CompanyID uint64
	}
	viewer := &StructRowsViewer{Tag: "col", UntaggedTitleFunc: UseTitle("ID")}
	view, err := viewer.NewView("", []Row{{1}})
	require.NoError(t, err)
	require.Equal(t, []string{"ID"}, view.Columns())
}

func TestStringsView(t *testing.T) {
	view, err := NewView("", [][]string{
		{"A", "B", "C"},
		{"0", "1", "2"},
		{"only first"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "2", view.AnyValue(0, 2))
	require.Equal(t, "only first", view.AnyValue(1, 0))
	require.Equal(t, "", view.AnyValue(1, 1), "sparse row")
	require.Nil(t, view.AnyValue(0, 3))
}
