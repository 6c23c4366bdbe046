// Package mapper converts between Go structs and documents using explicit
// field declarations. Each field is bound with a selector returning its
// address, so renaming a struct field breaks the build instead of the
// mapping:
//
//	type User struct {
//		ID    string
//		Email *string
//		Tags  []string
//	}
//
//	users := mapper.New[User]()
//	mapper.Field(users, "ID", func(u *User) *string { return &u.ID }, mapper.Alias("_id"))
//	mapper.Field(users, "Email", func(u *User) **string { return &u.Email }, mapper.SkipIfNull())
//	mapper.Field(users, "Tags", func(u *User) *[]string { return &u.Tags })
//
//	doc, err := users.ToDocument(&u)
//	back, err := users.FromDocument(doc)
//
// Keys (the field name, or the Alias) are document paths, so "meta.id" nests.
package mapper

import (
	"errors"
	"fmt"

	"github.com/reoring/docmodel"
)

// ErrEnumSetRequired is returned when an Enum field is declared without
// EnumOf.
var ErrEnumSetRequired = errors.New("mapper: enum field needs EnumOf")

// Mapping describes how a T is written to and read from a document.
type Mapping[T any] struct {
	fields []binding[T]
}

type binding[T any] struct {
	name string
	fieldOptions
	encode func(*T) (docmodel.Value, error)
	decode func(d *docmodel.Document, o fieldOptions, t *T) error
	zero   func(*T)
}

type fieldOptions struct {
	key        string
	skipIfNull bool
	ignore     bool
	enum       *docmodel.EnumSet
}

// FieldOption adjusts a field binding.
type FieldOption func(*fieldOptions)

// Alias stores the field under key instead of its name.
func Alias(key string) FieldOption { return func(o *fieldOptions) { o.key = key } }

// SkipIfNull leaves the key out of the document when the field encodes to
// null (nil pointers, slices and maps).
func SkipIfNull() FieldOption { return func(o *fieldOptions) { o.skipIfNull = true } }

// Ignore keeps the field out of both directions.
func Ignore() FieldOption { return func(o *fieldOptions) { o.ignore = true } }

// EnumOf names the set a docmodel.Enum field is read from.
func EnumOf(set *docmodel.EnumSet) FieldOption { return func(o *fieldOptions) { o.enum = set } }

// New returns an empty mapping.
func New[T any]() *Mapping[T] { return &Mapping[T]{} }

func (m *Mapping[T]) add(name string, opts []FieldOption, b binding[T]) *Mapping[T] {
	b.name = name
	b.key = name
	for _, o := range opts {
		o(&b.fieldOptions)
	}
	m.fields = append(m.fields, b)
	return m
}

// Field binds a scalar or collection field. Values are converted with
// docmodel.ValueOf on the way out and with the matching typed getter on the
// way in; types without a getter are decoded through their JSON form.
func Field[T, F any](m *Mapping[T], name string, sel func(*T) *F, opts ...FieldOption) *Mapping[T] {
	return m.add(name, opts, binding[T]{
		encode: func(t *T) (docmodel.Value, error) { return docmodel.ValueOf(*sel(t)) },
		decode: func(d *docmodel.Document, o fieldOptions, t *T) error {
			return decodeScalar(d, o.key, sel(t), o.enum)
		},
		zero: func(t *T) { var z F; *sel(t) = z },
	})
}

// Nested binds a pointer to a struct mapped by child. A nil pointer encodes
// as null.
func Nested[T, C any](m *Mapping[T], name string, sel func(*T) **C, child *Mapping[C], opts ...FieldOption) *Mapping[T] {
	return m.add(name, opts, binding[T]{
		encode: func(t *T) (docmodel.Value, error) {
			c := *sel(t)
			if c == nil {
				return docmodel.Null(), nil
			}
			sub, err := child.ToDocument(c)
			if err != nil {
				return docmodel.Null(), err
			}
			return docmodel.FromDocument(sub), nil
		},
		decode: func(d *docmodel.Document, o fieldOptions, t *T) error {
			sub, err := d.Document(o.key)
			if err != nil {
				return err
			}
			c := new(C)
			if err := child.Into(sub, c); err != nil {
				return err
			}
			*sel(t) = c
			return nil
		},
		zero: func(t *T) { *sel(t) = nil },
	})
}

// NestedList binds a slice of structs mapped by child. Elements become
// documents in a list.
func NestedList[T, C any](m *Mapping[T], name string, sel func(*T) *[]C, child *Mapping[C], opts ...FieldOption) *Mapping[T] {
	return m.add(name, opts, binding[T]{
		encode: func(t *T) (docmodel.Value, error) {
			src := *sel(t)
			if src == nil {
				return docmodel.Null(), nil
			}
			items := make([]docmodel.Value, len(src))
			for i := range src {
				sub, err := child.ToDocument(&src[i])
				if err != nil {
					return docmodel.Null(), fmt.Errorf("index %d: %w", i, err)
				}
				items[i] = docmodel.FromDocument(sub)
			}
			return docmodel.FromList(items...), nil
		},
		decode: func(d *docmodel.Document, o fieldOptions, t *T) error {
			items, err := d.Items(o.key)
			if err != nil {
				return err
			}
			out := make([]C, len(items))
			for i, it := range items {
				if it.IsNull() {
					continue
				}
				sub, ok := it.Document()
				if !ok {
					return fmt.Errorf("index %d: %w: %s is not a document", i, docmodel.ErrInvalidFieldType, it.Kind())
				}
				if err := child.Into(sub, &out[i]); err != nil {
					return fmt.Errorf("index %d: %w", i, err)
				}
			}
			*sel(t) = out
			return nil
		},
		zero: func(t *T) { *sel(t) = nil },
	})
}

// ToDocument writes every bound field of t into a new document.
func (m *Mapping[T]) ToDocument(t *T, opts ...docmodel.Option) (*docmodel.Document, error) {
	d := docmodel.New(opts...)
	for _, f := range m.fields {
		if f.ignore {
			continue
		}
		v, err := f.encode(t)
		if err != nil {
			return nil, fmt.Errorf("mapper: field %s: %w", f.name, err)
		}
		if f.skipIfNull && v.IsNull() {
			continue
		}
		if err := d.Set(f.key, v); err != nil {
			return nil, fmt.Errorf("mapper: field %s: %w", f.name, err)
		}
	}
	return d, nil
}

// FromDocument reads a new T from d.
func (m *Mapping[T]) FromDocument(d *docmodel.Document) (T, error) {
	var t T
	err := m.Into(d, &t)
	return t, err
}

// Into reads d into t. Keys missing from d leave their fields untouched;
// explicit nulls reset them to the zero value.
func (m *Mapping[T]) Into(d *docmodel.Document, t *T) error {
	for _, f := range m.fields {
		if f.ignore {
			continue
		}
		v, err := d.Value(f.key)
		if errors.Is(err, docmodel.ErrNonExistingField) {
			continue
		}
		if err == nil && v.IsNull() {
			f.zero(t)
			continue
		}
		if err == nil {
			err = f.decode(d, f.fieldOptions, t)
		}
		if err != nil {
			return fmt.Errorf("mapper: field %s: %w", f.name, err)
		}
	}
	return nil
}
