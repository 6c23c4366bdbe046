package schema

import (
	"fmt"

	"github.com/reoring/docmodel"
	"github.com/reoring/docmodel/fieldpath"
	js "github.com/reoring/docmodel/jsonschema"
)

// JSONSchema projects the rules onto a JSON Schema object. Dotted paths
// become nested object properties and indexed segments become array items.
// MustHave paths and their ancestors are listed as required. Without a Type
// rule, size bounds are emitted for numbers, strings and arrays at once,
// since each keyword only applies to its own instance type. Expr rules have
// no JSON Schema equivalent and are only mentioned in the description.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	if s.err != nil {
		return nil, s.err
	}
	root := &js.Schema{Schema: js.Draft, Type: "object"}
	// Types first, so bounds know which keywords apply.
	ordered := make([]*Rule, 0, len(s.rules))
	for _, r := range s.rules {
		if r.Constraint == Type {
			ordered = append(ordered, r)
		}
	}
	for _, r := range s.rules {
		if r.Constraint != Type {
			ordered = append(ordered, r)
		}
	}
	for _, r := range ordered {
		node, err := locate(root, r.FieldPath)
		if err != nil {
			return nil, err
		}
		switch r.Constraint {
		case MustHave:
			requirePath(root, r.FieldPath)
		case NotNull:
			node.Not = &js.Schema{Type: "null"}
		case Type:
			k := r.Parameters[0].(docmodel.Kind)
			t, format := jsonType(k)
			if node.Properties != nil && t != "object" {
				return nil, fmt.Errorf("%w: %q is declared %s but has nested rules", ErrInvalidRule, r.FieldPath, k)
			}
			node.Type, node.Format = t, format
		case Min:
			applyBounds(node, bound(r.Parameters[0]).InexactFloat64(), true, false)
		case Max:
			applyBounds(node, bound(r.Parameters[0]).InexactFloat64(), false, true)
		case Range:
			applyBounds(node, bound(r.Parameters[0]).InexactFloat64(), true, false)
			applyBounds(node, bound(r.Parameters[1]).InexactFloat64(), false, true)
		case Size:
			n := float64(r.Parameters[0].(int))
			applyBounds(node, n, true, true)
		case Match:
			node.Pattern = r.Parameters[0].(string)
		case Expr:
			if node.Description != "" {
				node.Description += "; "
			}
			node.Description += "expr: " + r.Parameters[0].(string)
		}
	}
	return root, nil
}

// locate walks root along path, creating object and array nodes, and returns
// the node for the last segment.
func locate(root *js.Schema, path string) (*js.Schema, error) {
	node := root
	for _, seg := range fieldpath.Parse(path) {
		if node.Type != "" && node.Type != "object" {
			return nil, fmt.Errorf("%w: %q descends into a %s", ErrInvalidRule, path, node.Type)
		}
		node.Type = "object"
		node = node.Property(seg.Name)
		if seg.Indexed() {
			if node.Type != "" && node.Type != "array" {
				return nil, fmt.Errorf("%w: %q indexes a %s", ErrInvalidRule, path, node.Type)
			}
			node.Type = "array"
			if node.Items == nil {
				node.Items = &js.Schema{}
			}
			node = node.Items
		}
	}
	return node, nil
}

// requirePath marks every plain segment of path required in its parent, up to
// the first indexed segment. Presence of an element is not expressible.
func requirePath(root *js.Schema, path string) {
	node := root
	for _, seg := range fieldpath.Parse(path) {
		node.Require(seg.Name)
		if seg.Indexed() {
			return
		}
		node = node.Properties[seg.Name]
	}
}

func jsonType(k docmodel.Kind) (typ, format string) {
	switch {
	case k == docmodel.KindBool:
		return "boolean", ""
	case k.IsInteger():
		return "integer", ""
	case k.IsNumber():
		return "number", ""
	case k == docmodel.KindString, k == docmodel.KindEnum:
		return "string", ""
	case k == docmodel.KindTime:
		return "string", "date-time"
	case k == docmodel.KindDocument:
		return "object", ""
	case k.IsCollection():
		return "array", ""
	case k == docmodel.KindNull:
		return "null", ""
	}
	return "", ""
}

func applyBounds(node *js.Schema, n float64, lower, upper bool) {
	num := node.Type == "" || node.Type == "number" || node.Type == "integer"
	str := node.Type == "" || node.Type == "string"
	arr := node.Type == "" || node.Type == "array"
	count := int(n)
	whole := n >= 0 && float64(count) == n
	if num {
		if lower {
			node.Minimum = &n
		}
		if upper {
			node.Maximum = &n
		}
	}
	if str && whole {
		if lower {
			node.MinLength = &count
		}
		if upper {
			node.MaxLength = &count
		}
	}
	if arr && whole {
		if lower {
			node.MinItems = &count
		}
		if upper {
			node.MaxItems = &count
		}
	}
}
