package datatable

import (
	"fmt"
	"reflect"
	"time"

	"github.com/domonda/go-types/date"
	"github.com/domonda/go-types/money"

	nbtable "github.com/domonda/go-nbtable"
)

// cellValue converts a reflected cell value into a
// JSON serializable value for the client-side script.
func cellValue(v reflect.Value) any {
	if nbtable.ValueIsNil(v) {
		return nil
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch x := v.Interface().(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case date.Date:
		return string(x)
	case money.Amount:
		return float64(x)
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}

// columnType derives the client-side column type
// from the first non-nil converted value of the column.
func columnType(rows [][]any, col int) string {
	for _, row := range rows {
		switch row[col].(type) {
		case nil:
			continue
		case bool:
			return "boolean"
		case int64, uint64, float64:
			return "number"
		default:
			return "string"
		}
	}
	return "string"
}
