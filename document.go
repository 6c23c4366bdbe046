package docmodel

import (
	"iter"
	"slices"
)

// Document is a string-keyed mapping to Values. Keys are unique and matched
// exactly; insertion order is kept for iteration and encoding.
//
// A Document is not safe for concurrent use.
type Document struct {
	keys     []string
	fields   map[string]Value
	settings *Settings
	err      error // first failed chained write, see Err
}

// Option configures a new Document.
type Option func(*Document)

// WithSettings makes the document (and documents created beneath it by path
// writes) read coercion defaults from s.
func WithSettings(s *Settings) Option {
	return func(d *Document) { d.settings = s }
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{fields: map[string]Value{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

// FromMap builds a document from a native map (see ValueOf).
func FromMap(m map[string]any, opts ...Option) (*Document, error) {
	v, err := ValueOf(m)
	if err != nil {
		return nil, err
	}
	d, _ := v.Document()
	if d == nil {
		d = New()
	}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// Settings returns the coercion defaults in effect for d.
func (d *Document) Settings() *Settings { return d.settings.orDefault() }

// child creates an empty document inheriting d's settings.
func (d *Document) child() *Document {
	return &Document{fields: map[string]Value{}, settings: d.settings}
}

// Len returns the number of top-level keys.
func (d *Document) Len() int { return len(d.keys) }

// Keys returns the top-level keys in insertion order.
func (d *Document) Keys() []string { return slices.Clone(d.keys) }

// All iterates top-level fields in insertion order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range d.keys {
			if !yield(k, d.fields[k]) {
				return
			}
		}
	}
}

// Get returns the top-level value stored under key, without path parsing.
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.fields[key]
	return v, ok
}

func (d *Document) put(key string, v Value) {
	if d.fields == nil {
		d.fields = map[string]Value{}
	}
	if _, ok := d.fields[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = v
}

func (d *Document) del(key string) {
	if _, ok := d.fields[key]; !ok {
		return
	}
	delete(d.fields, key)
	if i := slices.Index(d.keys, key); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
}

// Err returns the first error recorded by a chained setter since the last
// ClearErr. Setters such as SetInt return the document for chaining, so
// failures (for example an out-of-range index) are kept here.
func (d *Document) Err() error { return d.err }

// ClearErr forgets a recorded setter error.
func (d *Document) ClearErr() { d.err = nil }

func (d *Document) record(err error) *Document {
	if err != nil && d.err == nil {
		d.err = err
	}
	return d
}

// Clone returns a fully independent deep copy sharing only the settings and
// opaque objects.
func (d *Document) Clone() *Document {
	c := &Document{keys: slices.Clone(d.keys), fields: make(map[string]Value, len(d.fields)), settings: d.settings}
	for k, v := range d.fields {
		c.fields[k] = v.Clone()
	}
	return c
}

// Equal reports whether both documents hold the same keys with structurally
// equal values. Key order is ignored.
func (d *Document) Equal(o *Document) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil || len(d.fields) != len(o.fields) {
		return false
	}
	for k, v := range d.fields {
		ov, ok := o.fields[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// ToMap returns the document as nested native Go values (see Value.Interface).
func (d *Document) ToMap() map[string]any {
	m := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		m[k] = v.Interface()
	}
	return m
}

// render returns the document as JSON for debugging output.
func (d *Document) render() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}
