package docmodel

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	j "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ValueOf converts a native Go value into a Value.
//
//   - nil, bool, signed integers, float32/float64, string, time.Time,
//     decimal.Decimal, Enum, Value, *Document map directly
//   - unsigned integers map to the smallest signed kind that holds them;
//     values above math.MaxInt64 are rejected
//   - named types over basic kinds convert like their underlying type
//   - json.Number becomes int64 when integral, float64 otherwise
//   - maps keyed by string become documents (keys sorted)
//   - slices become lists, Go arrays become arrays
//   - pointers are dereferenced unless they point at an opaque object
//   - anything else is stored as an opaque object
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Document:
		return FromDocument(t), nil
	case bool:
		return FromBool(t), nil
	case int:
		return FromInt(t), nil
	case int8:
		return FromInt8(t), nil
	case int16:
		return FromInt16(t), nil
	case int32:
		return FromInt32(t), nil
	case int64:
		return FromInt64(t), nil
	case uint8:
		return FromInt16(int16(t)), nil
	case uint16:
		return FromInt32(int32(t)), nil
	case uint32:
		return FromInt64(int64(t)), nil
	case uint:
		return fromUnsigned(uint64(t))
	case uint64:
		return fromUnsigned(t)
	case float32:
		return FromFloat32(t), nil
	case float64:
		return FromFloat64(t), nil
	case string:
		return FromString(t), nil
	case j.Number:
		return fromNumberText(string(t))
	case decimal.Decimal:
		return FromDecimal(t), nil
	case time.Time:
		return FromTime(t), nil
	case Enum:
		return FromEnum(t), nil
	case map[string]any:
		d := New()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, err := ValueOf(t[k])
			if err != nil {
				return Null(), fmt.Errorf("key %q: %w", k, err)
			}
			d.put(k, v)
		}
		return FromDocument(d), nil
	case []any:
		items := make([]Value, len(t))
		for i, it := range t {
			v, err := ValueOf(it)
			if err != nil {
				return Null(), fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Value{kind: KindList, ref: &seq{items: items}}, nil
	case []Value:
		return FromList(t...), nil
	}
	return valueOfReflect(reflect.ValueOf(x))
}

// MustValueOf is ValueOf for literals known to convert.
func MustValueOf(x any) Value {
	v, err := ValueOf(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromUnsigned(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Null(), fmt.Errorf("%w: unsigned value %d overflows int64", ErrInvalidFieldType, u)
	}
	return FromInt64(int64(u)), nil
}

func fromNumberText(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt64(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null(), fmt.Errorf("%w: number %q: %v", ErrInvalidFieldType, s, err)
	}
	return FromFloat64(f), nil
}

func valueOfReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Int8:
		return FromInt8(int8(rv.Int())), nil
	case reflect.Int16:
		return FromInt16(int16(rv.Int())), nil
	case reflect.Int32:
		return FromInt32(int32(rv.Int())), nil
	case reflect.Int, reflect.Int64:
		return FromInt64(rv.Int()), nil
	case reflect.Uint8:
		return FromInt16(int16(rv.Uint())), nil
	case reflect.Uint16:
		return FromInt32(int32(rv.Uint())), nil
	case reflect.Uint32:
		return FromInt64(int64(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return fromUnsigned(rv.Uint())
	case reflect.Float32:
		return FromFloat32(float32(rv.Float())), nil
	case reflect.Float64:
		return FromFloat64(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Null(), fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		kind := KindList
		if rv.Kind() == reflect.Array {
			kind = KindArray
		}
		return Value{kind: kind, ref: &seq{items: items}}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null(), nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		d := New()
		for _, k := range keys {
			v, err := ValueOf(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return Null(), fmt.Errorf("key %q: %w", k, err)
			}
			d.put(k, v)
		}
		return FromDocument(d), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		if rv.Kind() == reflect.Pointer {
			v, err := ValueOf(rv.Elem().Interface())
			if err != nil || v.kind != KindObject {
				return v, err
			}
		}
	}
	return FromObject(rv.Interface()), nil
}
