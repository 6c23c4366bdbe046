package docmodel_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/docmodel"
)

func TestProbes_NeverFail(t *testing.T) {
	d := docmodel.New().
		SetNull("null1").
		SetInt32("int1", 123456).
		SetString("foo", "test2")

	checks := []struct {
		name string
		got  bool
		want bool
	}{
		{"IsInt32 on null", d.IsInt32("null1"), false},
		{"IsInt32", d.IsInt32("int1"), true},
		{"IsInt64 on int32", d.IsInt64("int1"), false},
		{"IsInteger on int32", d.IsInteger("int1"), true},
		{"IsInt32 missing", d.IsInt32("nonExistingField"), false},
		{"IsInt32 through scalar", d.IsInt32("foo.nonExistingField"), false},
		{"IsNull", d.IsNull("null1"), true},
		{"IsNull missing", d.IsNull("nope"), false},
		{"IsNotNull", d.IsNotNull("foo"), true},
		{"IsNotNull on null", d.IsNotNull("null1"), false},
		{"IsType", d.IsType("foo", docmodel.KindString), true},
		{"IsType mismatch", d.IsType("foo", docmodel.KindBool), false},
		{"Has null", d.Has("null1"), true},
		{"Has bad index", d.Has("foo[0]"), false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestIsEqual(t *testing.T) {
	d := docmodel.New().
		SetString("foo", "foo string value").
		SetInt32("bar", 12345).
		SetNull("nil").
		SetList("l", docmodel.FromInt(1), docmodel.FromString("x"))

	if !d.IsEqual("foo", "foo string value") {
		t.Fatalf("foo should equal its string")
	}
	if !d.IsEqual("bar", 12345) {
		t.Fatalf("numbers compare by value across widths")
	}
	if d.IsEqual("bar", "12345") {
		t.Fatalf("a string never equals a number")
	}
	if d.IsEqual("nonExistingField", "some string value") {
		t.Fatalf("missing fields are never equal")
	}
	if !d.IsEqual("nil", nil) {
		t.Fatalf("null equals nil")
	}
	if !d.IsEqual("l", []any{1, "x"}) {
		t.Fatalf("lists compare element-wise")
	}
}

func TestMerge(t *testing.T) {
	newTarget := func() *docmodel.Document {
		return docmodel.New().SetString("a", "target").SetInt("only", 1)
	}
	src := docmodel.New().SetString("a", "source").SetInt("nested.n", 1)

	over := newTarget().Merge(src, docmodel.MergeOverwrite)
	if s, _ := over.String("a"); s != "source" {
		t.Fatalf("overwrite: a = %q", s)
	}
	keep := newTarget().Merge(src, docmodel.MergeKeepFields)
	if s, _ := keep.String("a"); s != "target" {
		t.Fatalf("keep-fields: a = %q", s)
	}
	for _, d := range []*docmodel.Document{over, keep} {
		if diff := cmp.Diff([]string{"a", "only", "nested"}, d.Keys()); diff != "" {
			t.Fatalf("key union (-want +got):\n%s", diff)
		}
	}

	// Later writes to the target must not reach the source.
	over.SetInt("nested.n", 99)
	if n, _ := src.Int("nested.n"); n != 1 {
		t.Fatalf("source mutated: nested.n = %d", n)
	}
	if diff := cmp.Diff([]string{"a", "nested"}, src.Keys()); diff != "" {
		t.Fatalf("source keys changed (-want +got):\n%s", diff)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	d := docmodel.New().SetInt("a.b", 1).SetList("tags", docmodel.FromString("x"))
	c := d.Clone()
	c.SetInt("a.b", 9).Append("tags", docmodel.FromString("y"))

	if n, _ := d.Int("a.b"); n != 1 {
		t.Fatalf("original a.b = %d", n)
	}
	if n, _ := d.Size("tags"); n != 1 {
		t.Fatalf("original tags size = %d", n)
	}
	if !d.Equal(d.Clone()) {
		t.Fatalf("a fresh clone should be equal")
	}
}

func TestCloneOnly(t *testing.T) {
	d := docmodel.New().
		SetInt("a.b", 1).
		SetInt("a.c", 2).
		SetString("top", "t").
		SetString("people[*].name", "ann").
		SetInt("people[0].age", 30).
		SetString("people[*].name", "bob").
		SetInt("people[1].age", 40)

	c := d.CloneOnly("a.b", "people[1].name", "missing", "a.zzz")

	if diff := cmp.Diff([]string{"a", "people"}, c.Keys()); diff != "" {
		t.Fatalf("top-level keys (-want +got):\n%s", diff)
	}
	if c.Has("a.c") || !c.Has("a.b") {
		t.Fatalf("a should hold only b: %v", c.ToMap())
	}
	if n, _ := c.Size("people"); n != 2 {
		t.Fatalf("people size = %d", n)
	}
	if !c.IsNull("people[0]") {
		t.Fatalf("slots before the kept element are padded with null")
	}
	if name, _ := c.String("people[1].name"); name != "bob" || c.Has("people[1].age") {
		t.Fatalf("people[1] = %v", c.ToMap())
	}

	c.SetString("people[1].name", "changed")
	if name, _ := d.String("people[1].name"); name != "bob" {
		t.Fatalf("source mutated: %q", name)
	}
}

func TestCloneExcept(t *testing.T) {
	d := docmodel.New().SetInt("a.b", 1).SetInt("a.c", 2).SetString("top", "t")
	c := d.CloneExcept("a.b", "top", "missing")

	want := map[string]any{"a": map[string]any{"c": int64(2)}}
	if diff := cmp.Diff(want, c.ToMap()); diff != "" {
		t.Fatalf("CloneExcept (-want +got):\n%s", diff)
	}
	if !d.Has("a.b") || !d.Has("top") {
		t.Fatalf("source must keep dropped paths")
	}
}
