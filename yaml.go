package docmodel

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders d as a mapping node, keeping key order.
func (d *Document) MarshalYAML() (any, error) {
	return d.yamlNode(d.Settings())
}

// UnmarshalYAML replaces d's contents with a YAML mapping. Scalars keep their
// resolved YAML type: !!int becomes int64, !!float float64, !!timestamp a
// native time. Sequences become lists.
func (d *Document) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("docmodel: line %d: YAML input is not a mapping", n.Line)
	}
	out := &Document{fields: map[string]Value{}, settings: d.settings}
	if err := yamlMapping(n, out); err != nil {
		return err
	}
	d.keys, d.fields = out.keys, out.fields
	return nil
}

// ParseYAML decodes a YAML mapping into a new document.
func ParseYAML(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) yamlNode(s *Settings) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range d.keys {
		vn, err := yamlValue(d.fields[k], s)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
	}
	return n, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlValue(v Value, s *Settings) (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return scalar("!!null", "null"), nil
	case KindBool:
		return scalar("!!bool", strconv.FormatBool(v.num == 1)), nil
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return scalar("!!int", strconv.FormatInt(v.num, 10)), nil
	case KindFloat32, KindFloat64:
		t, _ := v.Text(s)
		return scalar("!!float", t), nil
	case KindDecimal:
		return scalar("!!float", v.ref.(decimal.Decimal).String()), nil
	case KindString:
		return scalar("!!str", v.ref.(string)), nil
	case KindTime:
		return scalar("!!str", s.orDefault().formatTime(v.ref.(time.Time))), nil
	case KindEnum:
		return scalar("!!str", v.ref.(Enum).Name()), nil
	case KindDocument:
		doc := v.ref.(*Document)
		if doc.settings != nil {
			s = doc.settings
		}
		return doc.yamlNode(s)
	case KindList, KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, it := range v.ref.(*seq).items {
			c, err := yamlValue(it, s)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v.ref); err != nil {
		return nil, err
	}
	return n, nil
}

func yamlMapping(n *yaml.Node, d *Document) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.Kind != yaml.ScalarNode {
			return fmt.Errorf("docmodel: line %d: mapping key is not a scalar", kn.Line)
		}
		if _, dup := d.fields[kn.Value]; dup {
			return &FieldError{Path: kn.Value, Field: kn.Value, Kind: ErrInvalidField, Cause: ErrDuplicateKey,
				Detail: fmt.Sprintf("line %d", kn.Line)}
		}
		v, err := yamlDecode(vn, d)
		if err != nil {
			return err
		}
		d.put(kn.Value, v)
	}
	return nil
}

func yamlDecode(n *yaml.Node, parent *Document) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlDecode(n.Alias, parent)
	case yaml.MappingNode:
		child := parent.child()
		if err := yamlMapping(n, child); err != nil {
			return Null(), err
		}
		return FromDocument(child), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlDecode(c, parent)
			if err != nil {
				return Null(), err
			}
			items = append(items, v)
		}
		return Value{kind: KindList, ref: &seq{items: items}}, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return Null(), nil
		case "!!bool":
			var b bool
			err := n.Decode(&b)
			return FromBool(b), err
		case "!!int":
			var i int64
			err := n.Decode(&i)
			return FromInt64(i), err
		case "!!float":
			var f float64
			err := n.Decode(&f)
			return FromFloat64(f), err
		case "!!timestamp":
			var t time.Time
			err := n.Decode(&t)
			return FromTime(t), err
		}
		return FromString(n.Value), nil
	}
	return Null(), fmt.Errorf("docmodel: line %d: unsupported YAML node", n.Line)
}
