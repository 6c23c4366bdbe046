package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/docmodel"
	"github.com/reoring/docmodel/schema"
)

const rulesYAML = `
fields:
  - path: string1
    type: string
    size: 10
    messages:
      size: Wrong size.
  - path: int1
    presence: should
    type: int32
    range: [150, 200]
  - path: missing
`

func TestFromYAML_MatchesFluentDeclaration(t *testing.T) {
	fromFile, err := schema.FromYAML([]byte(rulesYAML))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	fluent := schema.New().
		MustHave("string1").Type(docmodel.KindString).Size(10).Message("Wrong size.").
		ShouldHave("int1").Type(docmodel.KindInt32).Range(150, 200).
		MustHave("missing")

	opt := cmp.AllowUnexported(schema.Rule{})
	if diff := cmp.Diff(fluent.Rules(), fromFile.Rules(), opt); diff != "" {
		t.Fatalf("rules (-fluent +file):\n%s", diff)
	}
	want := []violation{
		{"string1", schema.Size},
		{"int1", schema.Range},
		{"missing", schema.MustHave},
	}
	if diff := cmp.Diff(want, violations(fromFile.Validate(sample()))); diff != "" {
		t.Fatalf("violations (-want +got):\n%s", diff)
	}
}

func TestFromYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "fields:\n  - path: a\n    minimum: 3\n",
		"missing path":     "fields:\n  - type: string\n",
		"unknown type":     "fields:\n  - path: a\n    type: text\n",
		"bad presence":     "fields:\n  - path: a\n    presence: maybe\n",
		"short range":      "fields:\n  - path: a\n    range: [1]\n",
		"bad regexp":       "fields:\n  - path: a\n    match: \"(\"\n",
		"unknown message":  "fields:\n  - path: a\n    messages:\n      often: x\n",
		"not a rules file": "- 1\n- 2\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schema.FromYAML([]byte(in))
			if !errors.Is(err, schema.ErrInvalidRule) {
				t.Fatalf("err = %v, want ErrInvalidRule", err)
			}
		})
	}
}

func TestFromYAML_Empty(t *testing.T) {
	s, err := schema.FromYAML(nil)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if len(s.Rules()) != 0 {
		t.Fatalf("expected no rules")
	}
}
