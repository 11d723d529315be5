package htmltable

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/goccy/go-json"

	nbtable "github.com/domonda/go-nbtable"
)

var (
	// HTMLPreCellFormatter formats the HTML-escaped
	// cell value within a <pre> element.
	HTMLPreCellFormatter nbtable.CellFormatterFunc = func(ctx context.Context, cell *nbtable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(cell.Value.Interface()))
		return "<pre>" + value + "</pre>", true, nil
	}

	// HTMLCodeCellFormatter formats the HTML-escaped
	// cell value within a <code> element.
	HTMLCodeCellFormatter nbtable.CellFormatterFunc = func(ctx context.Context, cell *nbtable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(cell.Value.Interface()))
		return "<code>" + value + "</code>", true, nil
	}

	// ValueAsHTMLAnchorCellFormatter formats the HTML-escaped cell value
	// as an HTML anchor element with the value as id and inner text.
	ValueAsHTMLAnchorCellFormatter nbtable.CellFormatterFunc = func(ctx context.Context, cell *nbtable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(cell.Value.Interface()))
		return fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", value), true, nil
	}

	_ nbtable.CellFormatter = JSONCellFormatter("")
	_ nbtable.CellFormatter = HTMLSpanClassCellFormatter("")
)

// JSONCellFormatter formats JSON valued cells as
// indented JSON within a <pre> element using the
// underlying string for indentation.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, cell *nbtable.Cell) (str string, raw bool, err error) {
	var src bytes.Buffer
	_, err = fmt.Fprintf(&src, "%s", cell.Value.Interface())
	if err != nil {
		return "", false, err
	}
	if src.Len() == 0 {
		return "", false, nil
	}
	var buf bytes.Buffer
	if indent == "" {
		err = json.Compact(&buf, src.Bytes())
	} else {
		err = json.Indent(&buf, src.Bytes(), "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	return "<pre>" + buf.String() + "</pre>", true, nil
}

// HTMLSpanClassCellFormatter formats the HTML-escaped cell value
// within a <span> element with the underlying string as class.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, cell *nbtable.Cell) (str string, raw bool, err error) {
	value := template.HTMLEscapeString(fmt.Sprint(cell.Value.Interface()))
	return fmt.Sprintf("<span class='%s'>%s</span>", class, value), true, nil
}
