package docmodel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	j "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// MarshalJSON encodes d as a JSON object with keys in insertion order.
// Timestamps use the document's time layout, enum tags their member name and
// decimals their exact digits.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.appendJSON(nil, d.Settings())
}

// MarshalJSON encodes v on its own, formatting timestamps with the default
// layout.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValueJSON(nil, v, nil)
}

func (d *Document) appendJSON(buf []byte, s *Settings) ([]byte, error) {
	buf = append(buf, '{')
	for i, k := range d.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		if buf, err = appendValueJSON(buf, d.fields[k], s); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
	}
	return append(buf, '}'), nil
}

func appendValueJSON(buf []byte, v Value, s *Settings) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(buf, "null"...), nil
	case KindBool:
		return strconv.AppendBool(buf, v.num == 1), nil
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.AppendInt(buf, v.num, 10), nil
	case KindFloat32:
		return appendMarshal(buf, float32(v.fl))
	case KindFloat64:
		return appendMarshal(buf, v.fl)
	case KindDecimal:
		return append(buf, v.ref.(decimal.Decimal).String()...), nil
	case KindString:
		return appendMarshal(buf, v.ref.(string))
	case KindTime:
		return appendMarshal(buf, s.orDefault().formatTime(v.ref.(time.Time)))
	case KindEnum:
		return appendMarshal(buf, v.ref.(Enum).Name())
	case KindDocument:
		doc := v.ref.(*Document)
		if doc.settings != nil {
			s = doc.settings
		}
		return doc.appendJSON(buf, s)
	case KindList, KindArray:
		buf = append(buf, '[')
		for i, it := range v.ref.(*seq).items {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendValueJSON(buf, it, s); err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return append(buf, ']'), nil
	}
	return appendMarshal(buf, v.ref)
}

func appendMarshal(buf []byte, x any) ([]byte, error) {
	b, err := j.Marshal(x)
	if err != nil {
		return nil, err
	}
	return append(buf, b...), nil
}

// UnmarshalJSON replaces d's contents with the JSON object in data. Integral
// numbers decode as int64 and the rest as float64; nested objects become
// documents sharing d's settings and arrays become lists. Repeated keys are
// rejected with ErrDuplicateKey.
func (d *Document) UnmarshalJSON(data []byte) error {
	out, err := decodeJSON(bytes.NewReader(data), d.settings)
	if err != nil {
		return err
	}
	d.keys, d.fields = out.keys, out.fields
	return nil
}

// ParseJSON decodes a JSON object into a new document.
func ParseJSON(data []byte, opts ...Option) (*Document, error) {
	return ReadJSON(bytes.NewReader(data), opts...)
}

// ReadJSON decodes a single JSON object from r into a new document.
func ReadJSON(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)
	out, err := decodeJSON(r, d.settings)
	if err != nil {
		return nil, err
	}
	d.keys, d.fields = out.keys, out.fields
	return d, nil
}

var errNotObject = errors.New("docmodel: JSON input is not an object")

func decodeJSON(r io.Reader, s *Settings) (*Document, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != j.Delim('{') {
		return nil, errNotObject
	}
	d := &Document{fields: map[string]Value{}, settings: s}
	if err := decodeObject(dec, d, ""); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.New("docmodel: trailing data after JSON object")
		}
		return nil, err
	}
	return d, nil
}

// decodeObject reads members until the closing brace; the opening brace has
// been consumed.
func decodeObject(dec *j.Decoder, d *Document, at string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if tok == j.Delim('}') {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("docmodel: expected object key at %q, got %v", at, tok)
		}
		path := key
		if at != "" {
			path = at + "." + key
		}
		if _, dup := d.fields[key]; dup {
			return &FieldError{Path: path, Field: path, Kind: ErrInvalidField, Cause: ErrDuplicateKey}
		}
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		v, err := decodeValue(dec, d, tok, path)
		if err != nil {
			return err
		}
		d.put(key, v)
	}
}

// decodeValue converts the token just read, consuming the rest of it for
// containers.
func decodeValue(dec *j.Decoder, parent *Document, tok j.Token, at string) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case j.Number:
		return fromNumberText(string(t))
	case float64:
		return FromFloat64(t), nil
	case j.Delim:
		switch t {
		case '{':
			child := parent.child()
			if err := decodeObject(dec, child, at); err != nil {
				return Null(), err
			}
			return FromDocument(child), nil
		case '[':
			var items []Value
			for i := 0; ; i++ {
				tok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				if tok == j.Delim(']') {
					return Value{kind: KindList, ref: &seq{items: items}}, nil
				}
				v, err := decodeValue(dec, parent, tok, fmt.Sprintf("%s[%d]", at, i))
				if err != nil {
					return Null(), err
				}
				items = append(items, v)
			}
		}
	}
	return Null(), fmt.Errorf("docmodel: unexpected token %v at %q", tok, at)
}
