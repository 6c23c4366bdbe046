package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/docmodel"
)

// fileRule is one entry of a YAML rule file:
//
//	fields:
//	  - path: name
//	    presence: must        # must (default) or should
//	    type: string
//	    size: 5
//	    messages:
//	      size: Wrong size.
//	  - path: age
//	    range: [0, 150]
//	    expr: value % 2 == 0
type fileRule struct {
	Path     string            `yaml:"path"`
	Presence string            `yaml:"presence"`
	NotNull  bool              `yaml:"notNull"`
	Type     string            `yaml:"type"`
	Min      *float64          `yaml:"min"`
	Max      *float64          `yaml:"max"`
	Range    []float64         `yaml:"range"`
	Size     *int              `yaml:"size"`
	Match    string            `yaml:"match"`
	Expr     string            `yaml:"expr"`
	Messages map[string]string `yaml:"messages"`
}

type file struct {
	Fields []fileRule `yaml:"fields"`
}

// FromYAML builds a schema from a YAML rule file. Rules of one entry are
// declared in a fixed order: presence, notNull, type, min, max, range, size,
// match, expr. Unknown keys are rejected.
func FromYAML(data []byte, opts ...Option) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	s := New(opts...)
	for i, fr := range f.Fields {
		if err := fr.declare(s); err != nil {
			return nil, fmt.Errorf("fields[%d] (%s): %w", i, fr.Path, err)
		}
	}
	return s, s.Err()
}

func (fr fileRule) declare(s *Schema) error {
	if fr.Path == "" {
		return fmt.Errorf("%w: missing path", ErrInvalidRule)
	}
	msg := func(c Constraint) {
		for k, text := range fr.Messages {
			if kc, ok := ParseConstraint(k); ok && kc == c {
				s.Message(text)
			}
		}
	}
	for k := range fr.Messages {
		if _, ok := ParseConstraint(k); !ok {
			return fmt.Errorf("%w: unknown constraint %q in messages", ErrInvalidRule, k)
		}
	}

	switch fr.Presence {
	case "", "must":
		s.MustHave(fr.Path)
		msg(MustHave)
	case "should":
		s.ShouldHave(fr.Path)
		msg(ShouldHave)
	default:
		return fmt.Errorf("%w: presence %q", ErrInvalidRule, fr.Presence)
	}
	if fr.NotNull {
		s.NotNull()
		msg(NotNull)
	}
	if fr.Type != "" {
		k, ok := docmodel.ParseKind(fr.Type)
		if !ok {
			return fmt.Errorf("%w: unknown type %q", ErrInvalidRule, fr.Type)
		}
		s.Type(k)
		msg(Type)
	}
	if fr.Min != nil {
		s.Min(*fr.Min)
		msg(Min)
	}
	if fr.Max != nil {
		s.Max(*fr.Max)
		msg(Max)
	}
	if fr.Range != nil {
		if len(fr.Range) != 2 {
			return fmt.Errorf("%w: range needs two bounds, got %d", ErrInvalidRule, len(fr.Range))
		}
		s.Range(fr.Range[0], fr.Range[1])
		msg(Range)
	}
	if fr.Size != nil {
		s.Size(*fr.Size)
		msg(Size)
	}
	if fr.Match != "" {
		s.Match(fr.Match)
		msg(Match)
	}
	if fr.Expr != "" {
		s.Expr(fr.Expr)
		msg(Expr)
	}
	return s.Err()
}
