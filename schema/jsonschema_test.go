package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/docmodel"
	"github.com/reoring/docmodel/jsonschema"
	"github.com/reoring/docmodel/schema"
)

func ptr[T any](v T) *T { return &v }

func TestJSONSchema_Export(t *testing.T) {
	s := schema.New().
		MustHave("name").Type(docmodel.KindString).Range(1, 20).Match(`^[a-z]+$`).
		ShouldHave("age").Type(docmodel.KindInt32).Min(0).
		MustHave("address.city").NotNull().
		ShouldHave("tags[0]").Size(3).
		ShouldHave("score").Max(10).Expr(`value != 7`)

	got, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("JSONSchema: %v", err)
	}
	want := &jsonschema.Schema{
		Schema:   jsonschema.Draft,
		Type:     "object",
		Required: []string{"name", "address"},
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string", MinLength: ptr(1), MaxLength: ptr(20), Pattern: `^[a-z]+$`},
			"age":  {Type: "integer", Minimum: ptr(0.0)},
			"address": {
				Type:       "object",
				Required:   []string{"city"},
				Properties: map[string]*jsonschema.Schema{"city": {Not: &jsonschema.Schema{Type: "null"}}},
			},
			"tags": {
				Type: "array",
				Items: &jsonschema.Schema{
					Minimum: ptr(3.0), Maximum: ptr(3.0),
					MinLength: ptr(3), MaxLength: ptr(3),
					MinItems: ptr(3), MaxItems: ptr(3),
				},
			},
			"score": {
				Maximum: ptr(10.0), MaxLength: ptr(10), MaxItems: ptr(10),
				Description: "expr: value != 7",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema (-want +got):\n%s", diff)
	}
}

func TestJSONSchema_Conflicts(t *testing.T) {
	cases := map[string]*schema.Schema{
		"scalar with children": schema.New().MustHave("a").Type(docmodel.KindString).MustHave("a.b"),
		"index into object":    schema.New().MustHave("a.b").MustHave("a[0]"),
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.JSONSchema(); !errors.Is(err, schema.ErrInvalidRule) {
				t.Fatalf("err = %v, want ErrInvalidRule", err)
			}
		})
	}
	if _, err := schema.New().Min(1).JSONSchema(); !errors.Is(err, schema.ErrNoCurrentField) {
		t.Fatalf("declaration errors should surface, got %v", err)
	}
}
