package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlog/core"
)

// ErrorKey is the key used by Err.
const ErrorKey = "error"

// String returns a string field.
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Stringer returns a string field holding val.String(). A nil val
// yields "<nil>".
func Stringer(key string, val fmt.Stringer) core.Field {
	if val == nil {
		return String(key, "<nil>")
	}
	return String(key, val.String())
}

// Int returns an int field.
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 and Uint64 share the int64 slot; Uint64 values above
// math.MaxInt64 are stored as their decimal string.
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

func Uint64(key string, val uint64) core.Field {
	if val > 1<<63-1 {
		return String(key, fmt.Sprint(val))
	}
	return Int64(key, int64(val))
}

// Float64 returns a float field.
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool returns a bool field; true is stored as 1.
func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time stores val as Unix nanoseconds.
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration returns a duration field.
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err records err under ErrorKey. A nil error gives an empty value.
func Err(err error) core.Field { return NamedErr(ErrorKey, err) }

// NamedErr records err under key.
func NamedErr(key string, err error) core.Field {
	f := core.Field{Key: key, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any defers formatting of val to the formatter (%v).
func Any(key string, val interface{}) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}

// Map builds a map payload from alternating keys and values, for use
// with InfoMap and friends. A trailing key without a value is dropped.
func Map(keyValues ...string) *core.MapMessage {
	return core.MapMessageOf(keyValues...)
}
