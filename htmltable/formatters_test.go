package htmltable

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	nbtable "github.com/domonda/go-nbtable"
)

func cellOf(value any) *nbtable.Cell {
	return &nbtable.Cell{Value: reflect.ValueOf(value)}
}

func TestJSONCellFormatter_FormatCell(t *testing.T) {
	tests := []struct {
		name    string
		fmt     JSONCellFormatter
		value   any
		wantStr string
		wantRaw bool
		wantErr bool
	}{
		{name: "empty string", fmt: ``, value: ``, wantStr: ``, wantRaw: false, wantErr: false},
		{name: "compact string JSON", fmt: ``, value: `{"1": 1}`, wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "compact []byte JSON", fmt: ``, value: []byte(`{"1": 1}`), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "compact RawMessage JSON", fmt: ``, value: json.RawMessage(`{"1": 1}`), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "invalid JSON", fmt: ``, value: `{1}`, wantStr: ``, wantRaw: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := tt.fmt.FormatCell(context.Background(), cellOf(tt.value))
			require.Equal(t, tt.wantErr, err != nil, "err result: %v", err)
			require.Equal(t, tt.wantStr, str, "str result")
			require.Equal(t, tt.wantRaw, raw, "raw result")
		})
	}
}

func TestHTMLCellFormatters(t *testing.T) {
	ctx := context.Background()

	str, raw, err := HTMLPreCellFormatter(ctx, cellOf("<x>"))
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<pre>&lt;x&gt;</pre>", str)

	str, raw, err = HTMLCodeCellFormatter(ctx, cellOf("a&b"))
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<code>a&amp;b</code>", str)

	str, raw, err = ValueAsHTMLAnchorCellFormatter(ctx, cellOf("id1"))
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<a id='id1'>id1</a>", str)

	str, raw, err = HTMLSpanClassCellFormatter("mark").FormatCell(ctx, cellOf("<x>"))
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<span class='mark'>&lt;x&gt;</span>", str)
}
