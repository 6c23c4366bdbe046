package docmodel

import (
	"fmt"
	"slices"

	"github.com/reoring/docmodel/fieldpath"
)

// resolve reads the value addressed by path. Every non-terminal segment must
// hold a document; an indexed segment steps into a list or array element.
func (d *Document) resolve(path string) (Value, error) {
	p := fieldpath.Parse(path)
	cur := d
	for i, seg := range p {
		field := p.Prefix(i + 1)
		if seg.Append {
			return Null(), invalidField(path, field, "append marker is write-only")
		}
		v, ok := cur.fields[seg.Name]
		if !ok {
			return Null(), nonExisting(path, field, "")
		}
		if seg.Index != fieldpath.NoIndex {
			items, ok := v.Items()
			if !ok {
				return Null(), invalidField(path, field, fmt.Sprintf("%s value is not a collection", v.kind))
			}
			if seg.Index >= len(items) {
				return Null(), outOfRange(ErrNonExistingField, path, field, seg.Index, len(items))
			}
			v = items[seg.Index]
		}
		if i == len(p)-1 {
			return v, nil
		}
		next, ok := v.Document()
		if !ok {
			return Null(), invalidField(path, field, fmt.Sprintf("%s value is not a document", v.kind))
		}
		cur = next
	}
	return Null(), nil
}

// assign writes val at path. Non-terminal plain segments that are missing or
// hold anything but a document are replaced by a new empty document. An
// append marker adds to the end of a list (creating the list when the key is
// absent); an explicit index overwrites an existing slot.
func (d *Document) assign(path string, val Value) error {
	p := fieldpath.Parse(path)
	cur := d
	for i, seg := range p {
		field := p.Prefix(i + 1)
		last := i == len(p)-1
		if !seg.Indexed() {
			if last {
				cur.put(seg.Name, val)
				return nil
			}
			next, ok := cur.fields[seg.Name].Document()
			if !ok {
				next = cur.child()
				cur.put(seg.Name, FromDocument(next))
			}
			cur = next
			continue
		}

		v, exists := cur.fields[seg.Name]
		if seg.Append {
			var s *seq
			switch {
			case !exists:
				s = &seq{}
				cur.put(seg.Name, Value{kind: KindList, ref: s})
			case v.kind == KindList:
				s = v.ref.(*seq)
			case v.kind == KindArray:
				return &FieldError{Path: path, Field: field, Kind: ErrInvalidFieldType, Detail: "cannot append to a fixed-length array"}
			default:
				return invalidField(path, field, fmt.Sprintf("%s value is not a list", v.kind))
			}
			if last {
				s.items = append(s.items, val)
				return nil
			}
			next := cur.child()
			s.items = append(s.items, FromDocument(next))
			cur = next
			continue
		}

		if !exists {
			return outOfRange(ErrInvalidField, path, field, seg.Index, 0)
		}
		items, ok := v.Items()
		if !ok {
			return invalidField(path, field, fmt.Sprintf("%s value is not a collection", v.kind))
		}
		if seg.Index >= len(items) {
			return outOfRange(ErrInvalidField, path, field, seg.Index, len(items))
		}
		if last {
			items[seg.Index] = val
			return nil
		}
		next, ok := items[seg.Index].Document()
		if !ok {
			next = cur.child()
			items[seg.Index] = FromDocument(next)
		}
		cur = next
	}
	return nil
}

// remove deletes the value at path. It never creates structure and never
// fails: any missing or mistyped step turns it into a no-op. Removing a list
// element shrinks the list; removing an array element resets its slot to
// null.
func (d *Document) remove(path string) {
	p := fieldpath.Parse(path)
	cur := d
	for i, seg := range p {
		last := i == len(p)-1
		if seg.Append {
			return
		}
		v, ok := cur.fields[seg.Name]
		if !ok {
			return
		}
		if seg.Index != fieldpath.NoIndex {
			if !v.kind.IsCollection() {
				return
			}
			s := v.ref.(*seq)
			if seg.Index >= len(s.items) {
				return
			}
			if last {
				if v.kind == KindList {
					s.items = slices.Delete(s.items, seg.Index, seg.Index+1)
				} else {
					s.items[seg.Index] = Null()
				}
				return
			}
			v = s.items[seg.Index]
		} else if last {
			cur.del(seg.Name)
			return
		}
		next, ok := v.Document()
		if !ok {
			return
		}
		cur = next
	}
}

// Value returns the raw value at path.
func (d *Document) Value(path string) (Value, error) { return d.resolve(path) }

// Set writes v at path, creating intermediate documents as needed.
func (d *Document) Set(path string, v Value) error { return d.assign(path, v) }

// Has reports whether path resolves, including to an explicit null.
func (d *Document) Has(path string) bool {
	_, err := d.resolve(path)
	return err == nil
}

// Drop removes every listed path. Missing paths are ignored.
func (d *Document) Drop(paths ...string) *Document {
	for _, p := range paths {
		d.remove(p)
	}
	return d
}
