package docmodel_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/reoring/docmodel"
)

func TestJSON_RoundTripKeepsOrder(t *testing.T) {
	in := `{"b":1,"a":{"x":[1,2.5,"s",null,true]},"c":{}}`
	d, err := docmodel.ParseJSON([]byte(in))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !d.IsInt64("b") || !d.IsFloat64("a.x[1]") || !d.IsNull("a.x[3]") || !d.IsDocument("c") {
		t.Fatalf("unexpected kinds: %v", d.ToMap())
	}
	out, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(out) != in {
		t.Fatalf("round trip:\n got %s\nwant %s", out, in)
	}
}

func TestJSON_EncodesRichKinds(t *testing.T) {
	d := docmodel.New().
		SetTime("at", time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)).
		SetEnum("c", color.MustLookup("Green")).
		SetDecimal("price", decimal.RequireFromString("10.25")).
		SetArray("pair", docmodel.FromInt8(1), docmodel.FromString("two"))
	out, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"at":"2025-01-02T03:04:05.006Z","c":"Green","price":10.25,"pair":[1,"two"]}`
	if string(out) != want {
		t.Fatalf("got %s\nwant %s", out, want)
	}
}

func TestJSON_RejectsDuplicateKeys(t *testing.T) {
	for _, in := range []string{`{"a":1,"a":2}`, `{"n":{"k":1,"k":2}}`} {
		_, err := docmodel.ParseJSON([]byte(in))
		if !errors.Is(err, docmodel.ErrDuplicateKey) {
			t.Fatalf("%s: err = %v, want ErrDuplicateKey", in, err)
		}
	}
}

func TestJSON_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{`[1,2]`, `"s"`, `{"a":1} {"b":2}`, `{"a":`} {
		if _, err := docmodel.ParseJSON([]byte(in)); err == nil {
			t.Fatalf("%s: expected an error", in)
		}
	}
}

func TestJSON_UnmarshalKeepsSettings(t *testing.T) {
	s := docmodel.DefaultSettings()
	s.TimeLayout = time.DateOnly
	d := docmodel.New(docmodel.WithSettings(s))
	if err := d.UnmarshalJSON([]byte(`{"day":"2025-03-04","n":{"x":1}}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	got, err := d.Time("day")
	if err != nil || !got.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Time(day) = %v, %v", got, err)
	}
	sub, _ := d.Document("n")
	if sub.Settings() != s {
		t.Fatalf("decoded sub-documents should inherit settings")
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	d := docmodel.New().
		SetString("name", "box").
		SetInt("size.w", 3).
		SetFloat64("size.h", 1.5).
		SetBool("open", true).
		SetString("label", "true").
		SetList("tags", docmodel.FromString("a"), docmodel.Null())

	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	if !strings.HasPrefix(string(out), "name: box\n") {
		t.Fatalf("expected insertion order, got:\n%s", out)
	}
	back, err := docmodel.ParseYAML(out)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if diff := cmp.Diff(d.Keys(), back.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch:\n%s", out)
	}
}

func TestYAML_TimesUseSettingsLayout(t *testing.T) {
	s := docmodel.DefaultSettings()
	s.TimeLayout = time.DateOnly
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	d := docmodel.New(docmodel.WithSettings(s)).SetTime("day", day)

	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	if !strings.Contains(string(out), "2025-03-04") || strings.Contains(string(out), "T00:00") {
		t.Fatalf("expected the settings layout, got:\n%s", out)
	}
	back, err := docmodel.ParseYAML(out, docmodel.WithSettings(s))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	got, err := back.Time("day")
	if err != nil || !got.Equal(day) {
		t.Fatalf("Time(day) = %v, %v", got, err)
	}
}

func TestYAML_RejectsDuplicateKeys(t *testing.T) {
	_, err := docmodel.ParseYAML([]byte("a: 1\na: 2\n"))
	if err == nil {
		t.Fatalf("expected an error for repeated keys")
	}
}
