package docmodel

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags the representation held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDecimal
	KindString
	KindTime
	KindEnum
	KindDocument
	KindList
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindDecimal:  "decimal",
	KindString:   "string",
	KindTime:     "time",
	KindEnum:     "enum",
	KindDocument: "document",
	KindList:     "list",
	KindArray:    "array",
	KindObject:   "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a kind name (as produced by Kind.String) back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindNull, false
}

// IsInteger reports whether k is one of the signed integer kinds.
func (k Kind) IsInteger() bool { return k >= KindInt8 && k <= KindInt64 }

// IsNumber reports whether k is an integer, float or decimal kind.
func (k Kind) IsNumber() bool { return k >= KindInt8 && k <= KindDecimal }

// IsCollection reports whether k is a list or an array.
func (k Kind) IsCollection() bool { return k == KindList || k == KindArray }

// seq is the shared backing store of list and array values, so that element
// writes through one Value are visible through every copy of it.
type seq struct {
	items []Value
}

// Value is a tagged union over the document's semantic kinds. The zero Value
// is null.
type Value struct {
	kind Kind
	num  int64   // bool (0/1) and integer kinds
	fl   float64 // float kinds
	ref  any     // string, decimal.Decimal, time.Time, Enum, *Document, *seq, opaque object
}

// Null returns the null value.
func Null() Value { return Value{} }

func FromBool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

func FromInt8(i int8) Value   { return Value{kind: KindInt8, num: int64(i)} }
func FromInt16(i int16) Value { return Value{kind: KindInt16, num: int64(i)} }
func FromInt32(i int32) Value { return Value{kind: KindInt32, num: int64(i)} }
func FromInt64(i int64) Value { return Value{kind: KindInt64, num: i} }

// FromInt stores a Go int as a 64-bit integer.
func FromInt(i int) Value { return Value{kind: KindInt64, num: int64(i)} }

func FromFloat32(f float32) Value { return Value{kind: KindFloat32, fl: float64(f)} }
func FromFloat64(f float64) Value { return Value{kind: KindFloat64, fl: f} }

func FromDecimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, ref: d} }
func FromString(s string) Value           { return Value{kind: KindString, ref: s} }
func FromTime(t time.Time) Value          { return Value{kind: KindTime, ref: t} }
func FromEnum(e Enum) Value               { return Value{kind: KindEnum, ref: e} }

// FromDocument wraps d. A nil document yields null.
func FromDocument(d *Document) Value {
	if d == nil {
		return Null()
	}
	return Value{kind: KindDocument, ref: d}
}

// FromList builds a growable list holding a copy of items.
func FromList(items ...Value) Value {
	return Value{kind: KindList, ref: &seq{items: append([]Value{}, items...)}}
}

// FromArray builds a fixed-length array holding a copy of items.
func FromArray(items ...Value) Value {
	return Value{kind: KindArray, ref: &seq{items: append([]Value{}, items...)}}
}

// FromObject stores an opaque external value. nil yields null.
func FromObject(o any) Value {
	if o == nil {
		return Null()
	}
	return Value{kind: KindObject, ref: o}
}

// Kind returns the representation tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Document returns the nested document held by v.
func (v Value) Document() (*Document, bool) {
	if v.kind != KindDocument {
		return nil, false
	}
	return v.ref.(*Document), true
}

// Items returns the live element slice of a list or array. Element documents
// are shared with v; reassigning slots of the returned slice writes through.
func (v Value) Items() ([]Value, bool) {
	if !v.kind.IsCollection() {
		return nil, false
	}
	return v.ref.(*seq).items, true
}

// Len returns the element count of a collection, the rune count of a string,
// the field count of a document and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList, KindArray:
		return len(v.ref.(*seq).items)
	case KindString:
		return len([]rune(v.ref.(string)))
	case KindDocument:
		return v.ref.(*Document).Len()
	}
	return 0
}

// Number returns the numeric value of integer, float and decimal kinds.
func (v Value) Number() (decimal.Decimal, bool) {
	switch {
	case v.kind.IsInteger():
		return decimal.NewFromInt(v.num), true
	case v.kind == KindFloat32:
		if math.IsNaN(v.fl) || math.IsInf(v.fl, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(float32(v.fl)), true
	case v.kind == KindFloat64:
		if math.IsNaN(v.fl) || math.IsInf(v.fl, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v.fl), true
	case v.kind == KindDecimal:
		return v.ref.(decimal.Decimal), true
	}
	return decimal.Decimal{}, false
}

// Text returns the string form of scalar values. Documents, collections,
// null and opaque objects have none.
func (v Value) Text(s *Settings) (string, bool) {
	switch v.kind {
	case KindString:
		return v.ref.(string), true
	case KindBool:
		return strconv.FormatBool(v.num == 1), true
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.num, 10), true
	case KindFloat32:
		return strconv.FormatFloat(v.fl, 'g', -1, 32), true
	case KindFloat64:
		return strconv.FormatFloat(v.fl, 'g', -1, 64), true
	case KindDecimal:
		return v.ref.(decimal.Decimal).String(), true
	case KindTime:
		return s.orDefault().formatTime(v.ref.(time.Time)), true
	case KindEnum:
		return v.ref.(Enum).Name(), true
	}
	return "", false
}

// Interface returns the native Go form of v: nil, bool, int8…int64, float32,
// float64, decimal.Decimal, string, time.Time, Enum, map[string]any for
// documents, []any for collections, or the opaque object.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.num == 1
	case KindInt8:
		return int8(v.num)
	case KindInt16:
		return int16(v.num)
	case KindInt32:
		return int32(v.num)
	case KindInt64:
		return v.num
	case KindFloat32:
		return float32(v.fl)
	case KindFloat64:
		return v.fl
	case KindDocument:
		return v.ref.(*Document).ToMap()
	case KindList, KindArray:
		items := v.ref.(*seq).items
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = it.Interface()
		}
		return out
	}
	return v.ref
}

// Clone returns a deep copy. Opaque objects are shared.
func (v Value) Clone() Value {
	switch v.kind {
	case KindDocument:
		return Value{kind: KindDocument, ref: v.ref.(*Document).Clone()}
	case KindList, KindArray:
		src := v.ref.(*seq).items
		items := make([]Value, len(src))
		for i, it := range src {
			items[i] = it.Clone()
		}
		return Value{kind: v.kind, ref: &seq{items: items}}
	}
	return v
}

// Equal reports structural equality. Kinds must match exactly; documents
// compare by key set regardless of order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool, KindInt8, KindInt16, KindInt32, KindInt64:
		return v.num == o.num
	case KindFloat32, KindFloat64:
		return v.fl == o.fl
	case KindDecimal:
		return v.ref.(decimal.Decimal).Equal(o.ref.(decimal.Decimal))
	case KindString:
		return v.ref.(string) == o.ref.(string)
	case KindTime:
		return v.ref.(time.Time).Equal(o.ref.(time.Time))
	case KindEnum:
		return v.ref.(Enum).Equal(o.ref.(Enum))
	case KindDocument:
		return v.ref.(*Document).Equal(o.ref.(*Document))
	case KindList, KindArray:
		a, b := v.ref.(*seq).items, o.ref.(*seq).items
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(v.ref, o.ref)
}

// String renders v for debugging.
func (v Value) String() string {
	if t, ok := v.Text(nil); ok {
		return t
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindDocument:
		return v.ref.(*Document).render()
	case KindList, KindArray:
		return fmt.Sprint(v.Interface())
	}
	return fmt.Sprintf("%v", v.ref)
}
