package docmodel

import (
	"github.com/reoring/docmodel/fieldpath"
)

// Probes never fail: any navigation error reads as false.

func (d *Document) kindAt(path string) (Kind, bool) {
	v, err := d.resolve(path)
	if err != nil {
		return KindNull, false
	}
	return v.kind, true
}

// IsNull reports whether path holds an explicit null.
func (d *Document) IsNull(path string) bool {
	k, ok := d.kindAt(path)
	return ok && k == KindNull
}

// IsNotNull reports whether path holds a value other than null.
func (d *Document) IsNotNull(path string) bool {
	k, ok := d.kindAt(path)
	return ok && k != KindNull
}

// IsType reports whether path holds a value of exactly kind k.
func (d *Document) IsType(path string, k Kind) bool {
	got, ok := d.kindAt(path)
	return ok && got == k
}

func (d *Document) IsBool(path string) bool     { return d.IsType(path, KindBool) }
func (d *Document) IsInt8(path string) bool     { return d.IsType(path, KindInt8) }
func (d *Document) IsInt16(path string) bool    { return d.IsType(path, KindInt16) }
func (d *Document) IsInt32(path string) bool    { return d.IsType(path, KindInt32) }
func (d *Document) IsInt64(path string) bool    { return d.IsType(path, KindInt64) }
func (d *Document) IsFloat32(path string) bool  { return d.IsType(path, KindFloat32) }
func (d *Document) IsFloat64(path string) bool  { return d.IsType(path, KindFloat64) }
func (d *Document) IsDecimal(path string) bool  { return d.IsType(path, KindDecimal) }
func (d *Document) IsString(path string) bool   { return d.IsType(path, KindString) }
func (d *Document) IsDocument(path string) bool { return d.IsType(path, KindDocument) }
func (d *Document) IsList(path string) bool     { return d.IsType(path, KindList) }
func (d *Document) IsArray(path string) bool    { return d.IsType(path, KindArray) }
func (d *Document) IsObject(path string) bool   { return d.IsType(path, KindObject) }

// IsInteger reports whether path holds an integer of any width.
func (d *Document) IsInteger(path string) bool {
	k, ok := d.kindAt(path)
	return ok && k.IsInteger()
}

// IsTime reports whether path holds a native timestamp.
func (d *Document) IsTime(path string) bool { return d.IsType(path, KindTime) }

// IsTimeAs reports whether path holds a timestamp stored the way mode stores
// it: natively, as a string that parses, or as an integer offset.
func (d *Document) IsTimeAs(path string, mode TimeMode) bool {
	v, err := d.resolve(path)
	if err != nil {
		return false
	}
	switch mode {
	case TimeString:
		if v.kind != KindString {
			return false
		}
		_, ok := v.toTime(d.Settings())
		return ok
	case TimeUnix:
		return v.kind.IsInteger()
	default:
		return v.kind == KindTime
	}
}

// IsEnum reports whether path holds a native enum tag of any set.
func (d *Document) IsEnum(path string) bool { return d.IsType(path, KindEnum) }

// IsEnumOf reports whether path holds something Enum(path, set) would accept.
func (d *Document) IsEnumOf(path string, set *EnumSet) bool {
	_, err := d.Enum(path, set)
	return err == nil
}

// IsEqual reports whether the value at path equals expected, which may be a
// Value or anything ValueOf accepts. Numbers compare by numeric value
// regardless of width; everything else compares structurally.
func (d *Document) IsEqual(path string, expected any) bool {
	v, err := d.resolve(path)
	if err != nil {
		return false
	}
	want, ok := expected.(Value)
	if !ok {
		if want, err = ValueOf(expected); err != nil {
			return false
		}
	}
	if v.kind.IsNumber() && want.kind.IsNumber() {
		a, aok := v.Number()
		b, bok := want.Number()
		return aok && bok && a.Equal(b)
	}
	return v.Equal(want)
}

// MergePolicy decides which side wins when Merge meets a key present in both
// documents.
type MergePolicy int

const (
	// MergeOverwrite replaces the target's value with the source's.
	MergeOverwrite MergePolicy = iota
	// MergeKeepFields keeps the target's value.
	MergeKeepFields
)

func (p MergePolicy) String() string {
	if p == MergeKeepFields {
		return "keep-fields"
	}
	return "overwrite"
}

// Merge copies every top-level field of src into d. Values are deep-copied,
// so src is never affected by later writes to d. Nested documents are not
// merged recursively.
func (d *Document) Merge(src *Document, policy MergePolicy) *Document {
	if src == nil {
		return d
	}
	for k, v := range src.All() {
		if _, exists := d.fields[k]; exists && policy == MergeKeepFields {
			continue
		}
		d.put(k, v.Clone())
	}
	return d
}

// CloneOnly returns a deep copy holding only the listed paths plus the
// ancestors needed to reach them. Missing paths are skipped. Collection
// slots before an indexed element are padded with null so that indices keep
// their meaning.
func (d *Document) CloneOnly(paths ...string) *Document {
	out := d.child()
	for _, path := range paths {
		v, err := d.resolve(path)
		if err != nil {
			continue
		}
		d.graft(out, fieldpath.Parse(path), v.Clone())
	}
	return out
}

// graft writes v into dst at p, copying the shape of d's collections along
// the way.
func (d *Document) graft(dst *Document, p fieldpath.Path, v Value) {
	src := d
	for i, seg := range p {
		last := i == len(p)-1
		sv := src.fields[seg.Name]
		if !seg.Indexed() {
			if last {
				dst.put(seg.Name, v)
				return
			}
			src, _ = sv.Document()
			next, ok := dst.fields[seg.Name].Document()
			if !ok {
				next = dst.child()
				dst.put(seg.Name, FromDocument(next))
			}
			dst = next
			continue
		}

		dv, ok := dst.fields[seg.Name]
		if !ok || dv.kind != sv.kind {
			dv = Value{kind: sv.kind, ref: &seq{}}
			dst.put(seg.Name, dv)
		}
		s := dv.ref.(*seq)
		for len(s.items) <= seg.Index {
			s.items = append(s.items, Null())
		}
		if last {
			s.items[seg.Index] = v
			return
		}
		src, _ = sv.ref.(*seq).items[seg.Index].Document()
		next, ok := s.items[seg.Index].Document()
		if !ok {
			next = dst.child()
			s.items[seg.Index] = FromDocument(next)
		}
		dst = next
	}
}

// CloneExcept returns a deep copy with the listed paths removed.
func (d *Document) CloneExcept(paths ...string) *Document {
	return d.Clone().Drop(paths...)
}
