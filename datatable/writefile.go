package datatable

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	fs "github.com/ungerik/go-fs"
)

const documentHeader = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
`

const documentFooter = `</body>
</html>
`

// WriteFile writes the table as a standalone interactive
// HTML document to the passed file.
func (w *Writer[T]) WriteFile(ctx context.Context, file fs.File, table T, caption ...string) error {
	title := "Table"
	if len(caption) > 0 && caption[0] != "" {
		title = template.HTMLEscapeString(caption[0])
	}
	var buf bytes.Buffer
	_, err := fmt.Fprintf(&buf, documentHeader, title)
	if err != nil {
		return err
	}
	err = w.Write(ctx, &buf, table, caption...)
	if err != nil {
		return err
	}
	buf.WriteString(documentFooter)
	return file.WriteAllContext(ctx, buf.Bytes())
}
