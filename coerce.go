package docmodel

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Largest integer magnitudes that float32 / float64 represent exactly.
const (
	maxExactFloat32 = 1 << 24
	maxExactFloat64 = 1 << 53
)

func (v Value) toInt(lo, hi int64) (int64, bool) {
	if !v.kind.IsInteger() || v.num < lo || v.num > hi {
		return 0, false
	}
	return v.num, true
}

func (v Value) toFloat32() (float32, bool) {
	switch {
	case v.kind == KindFloat32:
		return float32(v.fl), true
	case v.kind == KindFloat64:
		f := float32(v.fl)
		if float64(f) != v.fl && !math.IsNaN(v.fl) {
			return 0, false
		}
		return f, true
	case v.kind.IsInteger():
		if v.num < -maxExactFloat32 || v.num > maxExactFloat32 {
			return 0, false
		}
		return float32(v.num), true
	}
	return 0, false
}

func (v Value) toFloat64() (float64, bool) {
	switch {
	case v.kind == KindFloat32, v.kind == KindFloat64:
		return v.fl, true
	case v.kind.IsInteger():
		if v.num < -maxExactFloat64 || v.num > maxExactFloat64 {
			return 0, false
		}
		return float64(v.num), true
	}
	return 0, false
}

func (v Value) toDecimal() (decimal.Decimal, bool) {
	// Number already rejects NaN and infinities.
	return v.Number()
}

func (v Value) toString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.ref.(string), true
}

func (v Value) toTime(s *Settings) (time.Time, bool) {
	switch {
	case v.kind == KindTime:
		return v.ref.(time.Time), true
	case v.kind == KindString:
		t, err := s.timeString().Decode(v.ref.(string))
		return t, err == nil
	case v.kind.IsInteger():
		t, err := s.timeUnix().Decode(v.num)
		return t, err == nil
	}
	return time.Time{}, false
}

func (v Value) toEnum(set *EnumSet) (Enum, bool) {
	if set == nil {
		return Enum{}, false
	}
	switch {
	case v.kind == KindEnum:
		e := v.ref.(Enum)
		if e.set == set {
			return e, true
		}
		return set.Lookup(e.Name())
	case v.kind.IsInteger():
		if v.num < 0 || v.num > math.MaxInt32 {
			return Enum{}, false
		}
		return set.At(int(v.num))
	case v.kind == KindString:
		return set.Lookup(v.ref.(string))
	}
	return Enum{}, false
}

func (v Value) toKind(k Kind) ([]Value, bool) {
	if v.kind != k {
		return nil, false
	}
	return v.ref.(*seq).items, true
}
