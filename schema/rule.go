package schema

import (
	"fmt"
	"strings"

	"github.com/reoring/docmodel/i18n"
)

// Constraint identifies the kind of a rule.
type Constraint int

const (
	// MustHave requires the path to resolve.
	MustHave Constraint = iota
	// ShouldHave checks the path's value rules only when it resolves.
	ShouldHave
	NotNull
	Type
	Min
	Max
	Range
	Size
	Match
	Expr
)

var constraintNames = [...]string{
	MustHave:   "MustHave",
	ShouldHave: "ShouldHave",
	NotNull:    "NotNull",
	Type:       "Type",
	Min:        "Min",
	Max:        "Max",
	Range:      "Range",
	Size:       "Size",
	Match:      "Match",
	Expr:       "Expr",
}

func (c Constraint) String() string {
	if c >= 0 && int(c) < len(constraintNames) {
		return constraintNames[c]
	}
	return fmt.Sprintf("Constraint(%d)", int(c))
}

// ParseConstraint maps a constraint name to its Constraint, ignoring case.
func ParseConstraint(s string) (Constraint, bool) {
	for c, name := range constraintNames {
		if strings.EqualFold(name, s) {
			return Constraint(c), true
		}
	}
	return 0, false
}

func (c Constraint) isPresence() bool { return c == MustHave || c == ShouldHave }

// Rule is one declared constraint on a field path. Rules returned by
// Validate are copies with IsViolated set; the schema's own rules are never
// modified by validation.
type Rule struct {
	FieldPath  string
	Constraint Constraint
	// Parameters holds the constraint arguments: a docmodel.Kind for Type,
	// float64 bounds for Min, Max and Range, an int for Size and the source
	// text for Match and Expr.
	Parameters []any
	IsViolated bool
	Message    string

	custom   bool // Message set by the schema author
	compiled any  // *regexp.Regexp or *vm.Program
}

// defaultMessage fills in the localized message unless one was declared.
func (r *Rule) defaultMessage() {
	if r.custom {
		return
	}
	data := map[string]string{"path": r.FieldPath, "constraint": r.Constraint.String()}
	code := i18n.CodeRuleViolated
	if r.Constraint == MustHave {
		code = i18n.CodeFieldMissing
	}
	r.Message = i18n.T(code, data)
}

// ValidationResult holds the violated rules in evaluation order.
type ValidationResult struct {
	Violations []Rule
}

// IsValid reports whether no rule was violated.
func (r ValidationResult) IsValid() bool { return len(r.Violations) == 0 }

// Messages returns the violation messages in order.
func (r ValidationResult) Messages() []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Message
	}
	return out
}
