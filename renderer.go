package nbtable

import (
	"context"
	"io"
)

// Renderer renders a table of type T as an HTML fragment.
//
// Both the static and the interactive HTML table
// writers of this module implement Renderer.
type Renderer[T any] interface {
	// Write renders the table to dest,
	// using the joined caption strings as table caption.
	Write(ctx context.Context, dest io.Writer, table T, caption ...string) error
}

// RendererFunc implements Renderer for a function.
type RendererFunc[T any] func(ctx context.Context, dest io.Writer, table T, caption ...string) error

func (f RendererFunc[T]) Write(ctx context.Context, dest io.Writer, table T, caption ...string) error {
	return f(ctx, dest, table, caption...)
}
