package nbtable

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCellFormatters(t *testing.T) {
	ctx := context.Background()
	intCell := &Cell{Value: reflect.ValueOf(666)}

	str, raw, err := SprintCellFormatter(false)(ctx, intCell)
	require.NoError(t, err)
	require.False(t, raw)
	require.Equal(t, "666", str)

	str, raw, err = SprintCellFormatter(true)(ctx, intCell)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "666", str)

	str, raw, err = PrintfCellFormatter("%05d").FormatCell(ctx, intCell)
	require.NoError(t, err)
	require.False(t, raw)
	require.Equal(t, "00666", str)

	str, raw, err = PrintfRawCellFormatter("<b>%d</b>").FormatCell(ctx, intCell)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<b>666</b>", str)

	str, raw, err = RawCellString("<hr>").FormatCell(ctx, intCell)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<hr>", str)
}

func TestLayoutCellFormatter(t *testing.T) {
	ctx := context.Background()
	someTime := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	str, raw, err := LayoutCellFormatter("2006-01-02").FormatCell(ctx, &Cell{Value: reflect.ValueOf(someTime)})
	require.NoError(t, err)
	require.False(t, raw)
	require.Equal(t, "2026-08-26", str)

	_, _, err = LayoutCellFormatter("2006-01-02").FormatCell(ctx, &Cell{Value: reflect.ValueOf("no time")})
	require.ErrorIs(t, err, errors.ErrUnsupported)
}
