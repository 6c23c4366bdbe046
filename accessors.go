package docmodel

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// get resolves path and converts the value with conv. A value that exists but
// has no conversion yields ErrInvalidFieldType.
func get[T any](d *Document, path, want string, conv func(Value) (T, bool)) (T, error) {
	var zero T
	v, err := d.resolve(path)
	if err != nil {
		return zero, err
	}
	out, ok := conv(v)
	if !ok {
		return zero, invalidType(path, want, v.kind)
	}
	return out, nil
}

func intIn(lo, hi int64) func(Value) (int64, bool) {
	return func(v Value) (int64, bool) { return v.toInt(lo, hi) }
}

func (d *Document) Bool(path string) (bool, error) {
	return get(d, path, "bool", func(v Value) (bool, bool) {
		return v.num == 1, v.kind == KindBool
	})
}

// Int8 reads an integer of any width that fits in int8.
func (d *Document) Int8(path string) (int8, error) {
	n, err := get(d, path, "int8", intIn(math.MinInt8, math.MaxInt8))
	return int8(n), err
}

func (d *Document) Int16(path string) (int16, error) {
	n, err := get(d, path, "int16", intIn(math.MinInt16, math.MaxInt16))
	return int16(n), err
}

func (d *Document) Int32(path string) (int32, error) {
	n, err := get(d, path, "int32", intIn(math.MinInt32, math.MaxInt32))
	return int32(n), err
}

func (d *Document) Int64(path string) (int64, error) {
	return get(d, path, "int64", intIn(math.MinInt64, math.MaxInt64))
}

func (d *Document) Int(path string) (int, error) {
	n, err := get(d, path, "int", intIn(math.MinInt, math.MaxInt))
	return int(n), err
}

// Float32 reads a float32, a float64 that float32 represents exactly, or an
// integer of magnitude at most 2^24.
func (d *Document) Float32(path string) (float32, error) {
	return get(d, path, "float32", Value.toFloat32)
}

// Float64 reads either float kind or an integer of magnitude at most 2^53.
func (d *Document) Float64(path string) (float64, error) {
	return get(d, path, "float64", Value.toFloat64)
}

// Decimal reads any finite number.
func (d *Document) Decimal(path string) (decimal.Decimal, error) {
	return get(d, path, "decimal", Value.toDecimal)
}

// String reads a string value. Other scalars are not converted.
func (d *Document) String(path string) (string, error) {
	return get(d, path, "string", Value.toString)
}

// Time reads a timestamp stored natively, as a string in the configured layout
// (RFC 3339 accepted as a fallback), or as whole seconds from the configured
// epoch.
func (d *Document) Time(path string) (time.Time, error) {
	s := d.Settings()
	return get(d, path, "time", func(v Value) (time.Time, bool) { return v.toTime(s) })
}

// Enum reads a member of set stored natively, by name (any case) or by
// ordinal.
func (d *Document) Enum(path string, set *EnumSet) (Enum, error) {
	want := "enum"
	if set != nil {
		want = "enum " + set.Name()
	}
	return get(d, path, want, func(v Value) (Enum, bool) { return v.toEnum(set) })
}

// Document reads a nested document. The result is live: writes through it
// change d.
func (d *Document) Document(path string) (*Document, error) {
	return get(d, path, "document", Value.Document)
}

// List reads the live elements of a list.
func (d *Document) List(path string) ([]Value, error) {
	return get(d, path, "list", func(v Value) ([]Value, bool) { return v.toKind(KindList) })
}

// Array reads the live elements of a fixed-length array.
func (d *Document) Array(path string) ([]Value, error) {
	return get(d, path, "array", func(v Value) ([]Value, bool) { return v.toKind(KindArray) })
}

// Items reads the live elements of either a list or an array.
func (d *Document) Items(path string) ([]Value, error) {
	return get(d, path, "collection", Value.Items)
}

// Object returns the native form of any value (see Value.Interface); null
// reads as nil.
func (d *Document) Object(path string) (any, error) {
	return get(d, path, "object", func(v Value) (any, bool) { return v.Interface(), true })
}

// Chained setters. Each writes at path (see Set) and records the first failure
// in Err.

func (d *Document) SetNull(path string) *Document { return d.record(d.assign(path, Null())) }

func (d *Document) SetBool(path string, b bool) *Document {
	return d.record(d.assign(path, FromBool(b)))
}

func (d *Document) SetInt8(path string, i int8) *Document {
	return d.record(d.assign(path, FromInt8(i)))
}

func (d *Document) SetInt16(path string, i int16) *Document {
	return d.record(d.assign(path, FromInt16(i)))
}

func (d *Document) SetInt32(path string, i int32) *Document {
	return d.record(d.assign(path, FromInt32(i)))
}

func (d *Document) SetInt64(path string, i int64) *Document {
	return d.record(d.assign(path, FromInt64(i)))
}

func (d *Document) SetInt(path string, i int) *Document {
	return d.record(d.assign(path, FromInt(i)))
}

func (d *Document) SetFloat32(path string, f float32) *Document {
	return d.record(d.assign(path, FromFloat32(f)))
}

func (d *Document) SetFloat64(path string, f float64) *Document {
	return d.record(d.assign(path, FromFloat64(f)))
}

func (d *Document) SetDecimal(path string, n decimal.Decimal) *Document {
	return d.record(d.assign(path, FromDecimal(n)))
}

func (d *Document) SetString(path string, s string) *Document {
	return d.record(d.assign(path, FromString(s)))
}

// SetTime stores t in the document's default TimeMode.
func (d *Document) SetTime(path string, t time.Time) *Document {
	return d.SetTimeAs(path, t, d.Settings().TimeMode)
}

// SetTimeAs stores t natively, as a layout string or as epoch seconds.
func (d *Document) SetTimeAs(path string, t time.Time, mode TimeMode) *Document {
	s := d.Settings()
	var v Value
	switch mode {
	case TimeString:
		v = FromString(s.formatTime(t))
	case TimeUnix:
		n, err := s.timeUnix().Encode(t)
		if err != nil {
			return d.record(err)
		}
		v = FromInt64(n)
	default:
		v = FromTime(t)
	}
	return d.record(d.assign(path, v))
}

// SetTimeLayout stores t as a string formatted with layout.
func (d *Document) SetTimeLayout(path string, t time.Time, layout string) *Document {
	return d.record(d.assign(path, FromString(t.UTC().Format(layout))))
}

// SetEnum stores e in the document's default EnumMode.
func (d *Document) SetEnum(path string, e Enum) *Document {
	return d.SetEnumAs(path, e, d.Settings().EnumMode)
}

// SetEnumAs stores e natively, by name, or by ordinal as an int32.
func (d *Document) SetEnumAs(path string, e Enum, mode EnumMode) *Document {
	var v Value
	switch mode {
	case EnumString:
		v = FromString(e.Name())
	case EnumInteger:
		v = FromInt32(int32(e.Ordinal()))
	default:
		v = FromEnum(e)
	}
	return d.record(d.assign(path, v))
}

// SetDocument stores sub as a nested document. sub is stored by reference; a
// nil sub stores null.
func (d *Document) SetDocument(path string, sub *Document) *Document {
	return d.record(d.assign(path, FromDocument(sub)))
}

func (d *Document) SetList(path string, items ...Value) *Document {
	return d.record(d.assign(path, FromList(items...)))
}

func (d *Document) SetArray(path string, items ...Value) *Document {
	return d.record(d.assign(path, FromArray(items...)))
}

// SetObject stores o as an opaque value.
func (d *Document) SetObject(path string, o any) *Document {
	return d.record(d.assign(path, FromObject(o)))
}

// SetAny converts x with ValueOf and stores the result.
func (d *Document) SetAny(path string, x any) *Document {
	v, err := ValueOf(x)
	if err != nil {
		return d.record(&FieldError{Path: path, Field: path, Kind: ErrInvalidFieldType, Cause: err})
	}
	return d.record(d.assign(path, v))
}
