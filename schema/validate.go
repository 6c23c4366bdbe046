package schema

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"

	"github.com/reoring/docmodel"
)

// exprEnv is the environment Expr rules run in.
type exprEnv struct {
	Value any            `expr:"value"`
	Doc   map[string]any `expr:"doc"`
}

// Validate evaluates the schema against d. Presence rules run in declaration
// order; the value rules of a path run once, the first time a presence rule
// for it finds the path.
func (s *Schema) Validate(d *docmodel.Document) ValidationResult {
	if d == nil {
		d = docmodel.New()
	}
	var res ValidationResult
	checked := map[string]bool{}
	for _, p := range s.rules {
		if !p.Constraint.isPresence() {
			continue
		}
		v, err := d.Value(p.FieldPath)
		if err != nil {
			if p.Constraint == MustHave {
				s.violate(&res, p)
			}
			continue
		}
		if checked[p.FieldPath] {
			continue
		}
		checked[p.FieldPath] = true
		var ev *evaluation
		for _, r := range s.rules {
			if r.FieldPath != p.FieldPath || r.Constraint.isPresence() {
				continue
			}
			if ev == nil {
				ev = &evaluation{doc: d, value: v}
			}
			if !ev.holds(r) {
				s.violate(&res, r)
			}
		}
	}
	return res
}

func (s *Schema) violate(res *ValidationResult, r *Rule) {
	v := *r
	v.IsViolated = true
	v.defaultMessage()
	res.Violations = append(res.Violations, v)
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "schema rule violated",
		slog.String("path", v.FieldPath),
		slog.String("constraint", v.Constraint.String()),
		slog.Any("parameters", v.Parameters),
	)
}

// evaluation caches per-path derived values while a path's rules run.
type evaluation struct {
	doc   *docmodel.Document
	value docmodel.Value
	env   *exprEnv
}

func (e *evaluation) holds(r *Rule) bool {
	switch r.Constraint {
	case NotNull:
		return !e.value.IsNull()
	case Type:
		return e.value.Kind() == r.Parameters[0].(docmodel.Kind)
	case Min:
		m, ok := magnitude(e.value)
		return ok && m.GreaterThanOrEqual(bound(r.Parameters[0]))
	case Max:
		m, ok := magnitude(e.value)
		return ok && m.LessThanOrEqual(bound(r.Parameters[0]))
	case Range:
		m, ok := magnitude(e.value)
		return ok && m.GreaterThanOrEqual(bound(r.Parameters[0])) && m.LessThanOrEqual(bound(r.Parameters[1]))
	case Size:
		m, ok := magnitude(e.value)
		return ok && m.Equal(bound(r.Parameters[0]))
	case Match:
		text, ok := e.value.Text(e.doc.Settings())
		return ok && r.compiled.(*regexp.Regexp).MatchString(text)
	case Expr:
		if e.env == nil {
			e.env = &exprEnv{Value: e.value.Interface(), Doc: e.doc.ToMap()}
		}
		out, err := expr.Run(r.compiled.(*vm.Program), *e.env)
		ok, isBool := out.(bool)
		return err == nil && isBool && ok
	}
	return true
}

// magnitude is the measure compared by Min, Max, Range and Size.
func magnitude(v docmodel.Value) (decimal.Decimal, bool) {
	switch k := v.Kind(); {
	case k.IsNumber():
		return v.Number()
	case k == docmodel.KindString, k.IsCollection():
		return decimal.NewFromInt(int64(v.Len())), true
	}
	return decimal.Decimal{}, false
}

func bound(p any) decimal.Decimal {
	switch n := p.(type) {
	case int:
		return decimal.NewFromInt(int64(n))
	case float64:
		return decimal.NewFromFloat(n)
	}
	return decimal.Decimal{}
}
