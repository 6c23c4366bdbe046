// Package schema validates documents against declarative rules.
//
// Rules are declared fluently. MustHave and ShouldHave select a field path;
// the modifiers that follow constrain the value found there:
//
//	s := schema.New().
//		MustHave("name").Type(docmodel.KindString).Size(5).
//		MustHave("age").Range(0, 150).Message("age out of range").
//		ShouldHave("email").Match(`^[^@]+@[^@]+$`)
//	if err := s.Err(); err != nil {
//		// a declaration was malformed
//	}
//	res := s.Validate(doc)
//
// A missing MustHave path is a violation; a missing ShouldHave path is
// skipped together with its value rules. Violations are returned as data,
// never as errors.
package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/expr-lang/expr"

	"github.com/reoring/docmodel"
)

var (
	// ErrNoCurrentField is recorded when a modifier is declared before any
	// MustHave or ShouldHave.
	ErrNoCurrentField = errors.New("schema: constraint declared before MustHave or ShouldHave")
	// ErrInvalidRule is recorded for malformed rule arguments.
	ErrInvalidRule = errors.New("schema: invalid rule")
)

// Schema is an ordered set of rules. Declare it once, then call Validate from
// any number of goroutines.
type Schema struct {
	rules   []*Rule
	current string
	open    bool  // current is set
	last    *Rule // target of Message
	err     error
	logger  *slog.Logger
}

// Option configures a Schema.
type Option func(*Schema)

// WithLogger makes Validate log each violation at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Schema) { s.logger = l }
}

// New returns an empty schema.
func New(opts ...Option) *Schema {
	s := &Schema{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Err returns the first declaration error.
func (s *Schema) Err() error { return s.err }

func (s *Schema) fail(err error) *Schema {
	if s.err == nil {
		s.err = err
	}
	s.last = nil
	return s
}

// Rules returns copies of the declared rules in declaration order, with
// default messages filled in.
func (s *Schema) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = *r
		out[i].Parameters = slices.Clone(r.Parameters)
		out[i].defaultMessage()
	}
	return out
}

func (s *Schema) find(path string, c Constraint) *Rule {
	for _, r := range s.rules {
		if r.FieldPath == path && r.Constraint == c {
			return r
		}
	}
	return nil
}

// upsert returns the rule for (path, c), creating it if needed, and replaces
// its parameters.
func (s *Schema) upsert(path string, c Constraint, params ...any) *Rule {
	r := s.find(path, c)
	if r == nil {
		r = &Rule{FieldPath: path, Constraint: c}
		s.rules = append(s.rules, r)
	}
	r.Parameters = params
	r.compiled = nil
	s.last = r
	return r
}

func (s *Schema) presence(path string, c Constraint) *Schema {
	s.current, s.open = path, true
	s.upsert(path, c)
	return s
}

// MustHave declares that path must resolve and makes it current.
func (s *Schema) MustHave(path string) *Schema { return s.presence(path, MustHave) }

// ShouldHave makes path current; its value rules apply only when it resolves.
func (s *Schema) ShouldHave(path string) *Schema { return s.presence(path, ShouldHave) }

// constrain attaches a value rule to the current path.
func (s *Schema) constrain(c Constraint, params ...any) (*Rule, bool) {
	if !s.open {
		s.fail(fmt.Errorf("%w: %s", ErrNoCurrentField, c))
		return nil, false
	}
	return s.upsert(s.current, c, params...), true
}

// NotNull fails when the value is null.
func (s *Schema) NotNull() *Schema {
	s.constrain(NotNull)
	return s
}

// Type requires the value to be stored as exactly kind k. No widening is
// applied: an int32 does not satisfy Type(docmodel.KindInt64).
func (s *Schema) Type(k docmodel.Kind) *Schema {
	s.constrain(Type, k)
	return s
}

// Min requires the value's magnitude to be at least n. The magnitude of a
// number is the number itself, of a string its length in characters and of
// a list or array its element count. Other kinds violate the rule.
func (s *Schema) Min(n float64) *Schema {
	s.constrain(Min, n)
	return s
}

// Max requires the magnitude to be at most n (see Min).
func (s *Schema) Max(n float64) *Schema {
	s.constrain(Max, n)
	return s
}

// Range requires lo <= magnitude <= hi (see Min).
func (s *Schema) Range(lo, hi float64) *Schema {
	if lo > hi {
		return s.fail(fmt.Errorf("%w: range %v > %v on %q", ErrInvalidRule, lo, hi, s.current))
	}
	s.constrain(Range, lo, hi)
	return s
}

// Size requires the magnitude to equal n exactly (see Min).
func (s *Schema) Size(n int) *Schema {
	if n < 0 {
		return s.fail(fmt.Errorf("%w: negative size %d on %q", ErrInvalidRule, n, s.current))
	}
	s.constrain(Size, n)
	return s
}

// Match requires the value's text form to match the regular expression.
// Strings, numbers, booleans, timestamps (in the document's layout) and enum
// names have a text form; other kinds violate the rule.
func (s *Schema) Match(pattern string) *Schema {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return s.fail(fmt.Errorf("%w: match %q: %w", ErrInvalidRule, pattern, err))
	}
	if r, ok := s.constrain(Match, pattern); ok {
		r.compiled = re
	}
	return s
}

// Expr requires a boolean expression to hold. The expression sees the field
// as value (in its native Go form) and the whole document as doc:
//
//	s.MustHave("end").Expr(`value > doc.start`)
//
// An expression that fails at run time violates the rule.
func (s *Schema) Expr(source string) *Schema {
	prg, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return s.fail(fmt.Errorf("%w: expr %q: %w", ErrInvalidRule, source, err))
	}
	if r, ok := s.constrain(Expr, source); ok {
		r.compiled = prg
	}
	return s
}

// Message overrides the default message of the most recently declared rule.
func (s *Schema) Message(text string) *Schema {
	if s.last == nil {
		return s.fail(fmt.Errorf("%w: message %q", ErrNoCurrentField, text))
	}
	s.last.Message = text
	s.last.custom = true
	return s
}
