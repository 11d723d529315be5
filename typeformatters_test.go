package nbtable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func formatValue(t *testing.T, f *TypeFormatters, value any) (string, bool, error) {
	t.Helper()
	cell := &Cell{Value: reflect.ValueOf(value)}
	return f.FormatCell(context.Background(), cell)
}

func TestTypeFormatters_FormatCell(t *testing.T) {
	var (
		timeType     = reflect.TypeOf(time.Time{})
		stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
		someTime     = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	)

	t.Run("nil TypeFormatters", func(t *testing.T) {
		var f *TypeFormatters
		_, _, err := formatValue(t, f, 1)
		require.ErrorIs(t, err, errors.ErrUnsupported)
	})

	t.Run("invalid value", func(t *testing.T) {
		f := NewTypeFormatters().WithKindFormatter(reflect.Int, PrintfCellFormatter("%d"))
		_, _, err := f.FormatCell(context.Background(), &Cell{})
		require.ErrorIs(t, err, errors.ErrUnsupported)
	})

	t.Run("exact type", func(t *testing.T) {
		f := NewTypeFormatters().WithTypeFormatter(timeType, LayoutCellFormatter("2006-01-02"))
		str, raw, err := formatValue(t, f, someTime)
		require.NoError(t, err)
		require.False(t, raw)
		require.Equal(t, "2026-08-26", str)
	})

	t.Run("pointer dereferencing", func(t *testing.T) {
		f := NewTypeFormatters().WithTypeFormatter(timeType, LayoutCellFormatter("2006-01-02"))
		str, _, err := formatValue(t, f, &someTime)
		require.NoError(t, err)
		require.Equal(t, "2026-08-26", str)
	})

	t.Run("interface type", func(t *testing.T) {
		f := NewTypeFormatters().WithInterfaceTypeFormatter(stringerType, SprintCellFormatter(false))
		str, _, err := formatValue(t, f, time.Minute)
		require.NoError(t, err)
		require.Equal(t, "1m0s", str)
	})

	t.Run("kind", func(t *testing.T) {
		f := NewTypeFormatters().WithKindFormatter(reflect.Int, PrintfCellFormatter("int:%d"))
		str, _, err := formatValue(t, f, 666)
		require.NoError(t, err)
		require.Equal(t, "int:666", str)
	})

	t.Run("type has precedence over kind", func(t *testing.T) {
		type myInt int
		f := NewTypeFormatters().
			WithTypeFormatter(reflect.TypeOf(myInt(0)), PrintfCellFormatter("my:%d")).
			WithKindFormatter(reflect.Int, PrintfCellFormatter("int:%d"))
		str, _, err := formatValue(t, f, myInt(1))
		require.NoError(t, err)
		require.Equal(t, "my:1", str)
	})

	t.Run("fallthrough on ErrUnsupported", func(t *testing.T) {
		unsupported := CellFormatterFunc(func(ctx context.Context, cell *Cell) (string, bool, error) {
			return "", false, errors.ErrUnsupported
		})
		f := NewTypeFormatters().
			WithKindFormatter(reflect.Int, unsupported).
			WithDefaultFormatter(SprintCellFormatter(false))
		str, _, err := formatValue(t, f, 666)
		require.NoError(t, err)
		require.Equal(t, "666", str)
	})

	t.Run("no match", func(t *testing.T) {
		f := NewTypeFormatters().WithKindFormatter(reflect.Int, PrintfCellFormatter("%d"))
		_, _, err := formatValue(t, f, "string")
		require.ErrorIs(t, err, errors.ErrUnsupported)
	})
}

func TestTypeFormatters_immutable(t *testing.T) {
	base := NewTypeFormatters().WithKindFormatter(reflect.Int, PrintfCellFormatter("base:%d"))
	mod := base.WithKindFormatter(reflect.Int, PrintfCellFormatter("mod:%d"))

	str, _, err := formatValue(t, base, 1)
	require.NoError(t, err)
	require.Equal(t, "base:1", str)

	str, _, err = formatValue(t, mod, 1)
	require.NoError(t, err)
	require.Equal(t, "mod:1", str)
}
