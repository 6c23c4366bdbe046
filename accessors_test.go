package docmodel_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/reoring/docmodel"
)

var color = docmodel.MustEnumSet("Color", "Red", "Green", "Blue")

func TestAccessors_CoercionTable(t *testing.T) {
	type getter func(d *docmodel.Document) (any, error)
	int8Of := func(d *docmodel.Document) (any, error) { return d.Int8("v") }
	int64Of := func(d *docmodel.Document) (any, error) { return d.Int64("v") }
	intOf := func(d *docmodel.Document) (any, error) { return d.Int("v") }
	f32Of := func(d *docmodel.Document) (any, error) { return d.Float32("v") }
	f64Of := func(d *docmodel.Document) (any, error) { return d.Float64("v") }
	decOf := func(d *docmodel.Document) (any, error) { return d.Decimal("v") }
	strOf := func(d *docmodel.Document) (any, error) { return d.String("v") }
	boolOf := func(d *docmodel.Document) (any, error) { return d.Bool("v") }
	timeOf := func(d *docmodel.Document) (any, error) { return d.Time("v") }
	enumOf := func(d *docmodel.Document) (any, error) { return d.Enum("v", color) }
	listOf := func(d *docmodel.Document) (any, error) { return d.List("v") }
	arrOf := func(d *docmodel.Document) (any, error) { return d.Array("v") }
	objOf := func(d *docmodel.Document) (any, error) { return d.Object("v") }

	shade := docmodel.MustEnumSet("Shade", "Blue", "Red")
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	cases := []struct {
		name    string
		stored  docmodel.Value
		get     getter
		want    any
		wantErr bool
	}{
		{"bool", docmodel.FromBool(true), boolOf, true, false},
		{"int as bool", docmodel.FromInt(1), boolOf, nil, true},
		{"int16 widens to int64", docmodel.FromInt16(7), int64Of, int64(7), false},
		{"int64 fits int8", docmodel.FromInt64(-128), int8Of, int8(-128), false},
		{"int64 overflows int8", docmodel.FromInt64(300), int8Of, nil, true},
		{"int32 as int", docmodel.FromInt32(42), intOf, 42, false},
		{"float as int", docmodel.FromFloat64(1), intOf, nil, true},
		{"string as int", docmodel.FromString("5"), intOf, nil, true},
		{"2^24 as float32", docmodel.FromInt64(1 << 24), f32Of, float32(1 << 24), false},
		{"2^24+1 as float32", docmodel.FromInt64(1<<24 + 1), f32Of, nil, true},
		{"exact float64 as float32", docmodel.FromFloat64(0.5), f32Of, float32(0.5), false},
		{"inexact float64 as float32", docmodel.FromFloat64(0.1), f32Of, nil, true},
		{"float32 as float64", docmodel.FromFloat32(1.5), f64Of, 1.5, false},
		{"2^53 as float64", docmodel.FromInt64(1 << 53), f64Of, float64(1 << 53), false},
		{"2^53+1 as float64", docmodel.FromInt64(1<<53 + 1), f64Of, nil, true},
		{"decimal as float64", docmodel.FromDecimal(decimal.NewFromInt(1)), f64Of, nil, true},
		{"float as decimal", docmodel.FromFloat64(2.5), decOf, decimal.RequireFromString("2.5"), false},
		{"int as decimal", docmodel.FromInt8(-3), decOf, decimal.NewFromInt(-3), false},
		{"NaN as decimal", docmodel.FromFloat64(math.NaN()), decOf, nil, true},
		{"string", docmodel.FromString("s"), strOf, "s", false},
		{"int as string", docmodel.FromInt(5), strOf, nil, true},
		{"time", docmodel.FromTime(ts), timeOf, ts, false},
		{"layout string as time", docmodel.FromString("2025-01-02T03:04:05.006Z"), timeOf, ts, false},
		{"rfc3339 string as time", docmodel.FromString("2025-01-02T03:04:05Z"), timeOf, ts.Truncate(time.Second), false},
		{"garbage string as time", docmodel.FromString("yesterday"), timeOf, nil, true},
		{"unix seconds as time", docmodel.FromInt64(86400), timeOf, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"enum", docmodel.FromEnum(color.MustLookup("Green")), enumOf, color.MustLookup("Green"), false},
		{"enum by name", docmodel.FromString("blue"), enumOf, color.MustLookup("Blue"), false},
		{"enum by ordinal", docmodel.FromInt32(0), enumOf, color.MustLookup("Red"), false},
		{"enum ordinal out of range", docmodel.FromInt32(3), enumOf, nil, true},
		{"enum of another set", docmodel.FromEnum(shade.MustLookup("Red")), enumOf, color.MustLookup("Red"), false},
		{"unknown enum name", docmodel.FromString("Purple"), enumOf, nil, true},
		{"array as list", docmodel.FromArray(docmodel.FromInt(1)), listOf, nil, true},
		{"list as array", docmodel.FromList(docmodel.FromInt(1)), arrOf, nil, true},
		{"null as int", docmodel.Null(), intOf, nil, true},
		{"null as object", docmodel.Null(), objOf, nil, false},
		{"int as object", docmodel.FromInt32(9), objOf, int32(9), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := docmodel.New()
			if err := d.Set("v", tc.stored); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := tc.get(d)
			if tc.wantErr {
				if !errors.Is(err, docmodel.ErrInvalidFieldType) {
					t.Fatalf("err = %v, want ErrInvalidFieldType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmp.Comparer(func(a, b docmodel.Enum) bool { return a.Equal(b) })); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccessors_Items(t *testing.T) {
	d := docmodel.New().
		SetList("l", docmodel.FromInt(1)).
		SetArray("a", docmodel.FromInt(1), docmodel.FromInt(2))
	for path, want := range map[string]int{"l": 1, "a": 2} {
		items, err := d.Items(path)
		if err != nil || len(items) != want {
			t.Fatalf("Items(%s) = %d, %v", path, len(items), err)
		}
	}
}

func TestAccessors_SetTimeModes(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	d := docmodel.New().
		SetTime("native", ts).
		SetTimeAs("text", ts, docmodel.TimeString).
		SetTimeAs("unix", ts, docmodel.TimeUnix).
		SetTimeLayout("day", ts, "2006-01-02")
	if err := d.Err(); err != nil {
		t.Fatalf("setters: %v", err)
	}

	if !d.IsTime("native") {
		t.Fatalf("default mode should store a native time")
	}
	if s, _ := d.String("text"); s != "2025-01-02T03:04:05.006Z" {
		t.Fatalf("text = %q", s)
	}
	if n, _ := d.Int64("unix"); n != ts.Unix() {
		t.Fatalf("unix = %d, want %d", n, ts.Unix())
	}
	if s, _ := d.String("day"); s != "2025-01-02" {
		t.Fatalf("day = %q", s)
	}
	for _, path := range []string{"native", "text"} {
		got, err := d.Time(path)
		if err != nil || !got.Equal(ts) {
			t.Fatalf("Time(%s) = %v, %v", path, got, err)
		}
	}
	if got, _ := d.Time("unix"); !got.Equal(ts.Truncate(time.Second)) {
		t.Fatalf("Time(unix) = %v", got)
	}
	if !d.IsTimeAs("text", docmodel.TimeString) || !d.IsTimeAs("unix", docmodel.TimeUnix) || d.IsTimeAs("text", docmodel.TimeNative) {
		t.Fatalf("IsTimeAs mismatch")
	}
}

func TestAccessors_SettingsDriveDefaults(t *testing.T) {
	s := docmodel.DefaultSettings()
	s.TimeMode = docmodel.TimeUnix
	s.EnumMode = docmodel.EnumInteger
	s.Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	d := docmodel.New(docmodel.WithSettings(s)).
		SetTime("at", time.Date(2000, 1, 1, 0, 1, 0, 0, time.UTC)).
		SetEnum("c", color.MustLookup("Blue")).
		SetTime("nested.at", s.Epoch)

	if n, _ := d.Int64("at"); n != 60 {
		t.Fatalf("at = %d, want 60 seconds from epoch", n)
	}
	if !d.IsInt32("c") {
		t.Fatalf("enum should be stored as int32 ordinal")
	}
	if e, err := d.Enum("c", color); err != nil || e.Name() != "Blue" {
		t.Fatalf("Enum(c) = %v, %v", e, err)
	}
	sub, _ := d.Document("nested")
	if sub.Settings() != s {
		t.Fatalf("nested documents should inherit settings")
	}
	if n, _ := d.Int64("nested.at"); n != 0 {
		t.Fatalf("nested.at = %d", n)
	}
}

func TestAccessors_SetEnumAs(t *testing.T) {
	d := docmodel.New().
		SetEnum("native", color.MustLookup("Green")).
		SetEnumAs("name", color.MustLookup("Green"), docmodel.EnumString).
		SetEnumAs("ord", color.MustLookup("Green"), docmodel.EnumInteger)
	if !d.IsEnum("native") || !d.IsString("name") || !d.IsInt32("ord") {
		t.Fatalf("unexpected representations: %v", d.ToMap())
	}
	for _, path := range []string{"native", "name", "ord"} {
		if !d.IsEnumOf(path, color) {
			t.Fatalf("%s should read as Color", path)
		}
	}
}

func TestAccessors_SetAny(t *testing.T) {
	d := docmodel.New().
		SetAny("n", uint16(9)).
		SetAny("m", map[string]any{"k": "v"})
	if err := d.Err(); err != nil {
		t.Fatalf("SetAny: %v", err)
	}
	if !d.IsInt32("n") || !d.IsString("m.k") {
		t.Fatalf("unexpected conversion: %v", d.ToMap())
	}
	d.SetAny("bad", ^uint64(0))
	if !errors.Is(d.Err(), docmodel.ErrInvalidFieldType) {
		t.Fatalf("err = %v", d.Err())
	}
}
