package record

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLayout is used to render time.Time values.
const DefaultTimeLayout = time.DateTime

// IsEmpty reports whether v should be replaced by the empty fallback:
// nil, a nil pointer, or the empty string.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case *string:
		return val == nil || *val == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	}
	return false
}

// IsBlank reports whether v renders to whitespace only.
func IsBlank(v any) bool {
	return strings.TrimSpace(Render(v, "")) == ""
}

// Render returns the string form of a scalar value. An empty timeLayout
// selects DefaultTimeLayout.
func Render(v any, timeLayout string) string {
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(timeLayout)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.Format(timeLayout)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Render(rv.Elem().Interface(), timeLayout)
	}
	return fmt.Sprint(v)
}
