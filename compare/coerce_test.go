package compare

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	. "github.com/Comcast/collate/util/testutil"
)

type coercion struct {
	pattern string
	a, b    interface{}
	want    int
}

func checkCoercions(t *testing.T, typ Type, tests []coercion) {
	t.Helper()
	for _, tt := range tests {
		cr, err := NewCriterion(Opts{Field: "v", Type: typ, Pattern: tt.pattern})
		if err != nil {
			t.Fatal(err)
		}
		a := map[string]interface{}{"v": tt.a}
		b := map[string]interface{}{"v": tt.b}
		n, err := cr.Compare(a, b)
		if err != nil {
			t.Errorf("%s %q: %#v vs %#v: %v", typ, tt.pattern, tt.a, tt.b, err)
			continue
		}
		if n != tt.want {
			t.Errorf("%s %q: %#v vs %#v: got %d, want %d", typ, tt.pattern, tt.a, tt.b, n, tt.want)
		}
	}
}

func checkFailures(t *testing.T, typ Type, pattern string, bad ...interface{}) {
	t.Helper()
	cr, err := NewCriterion(Opts{Field: "v", Type: typ, Pattern: pattern})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range bad {
		_, err := cr.coerce(x)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%s %q: %#v: got %v", typ, pattern, x, err)
			continue
		}
		if fe.Field != "v" || fe.Pattern != pattern {
			t.Errorf("%s %q: %#v: bad error %v", typ, pattern, x, fe)
		}
	}
}

func TestString(t *testing.T) {
	checkCoercions(t, String, []coercion{
		{"", "abc", "abd", -1},
		{"", 10, 9, -1},
		{"", "", nil, 1},
		{"", true, "true", 0},
	})
}

func TestInteger(t *testing.T) {
	checkCoercions(t, Integer, []coercion{
		{"", "5", "10", -1},
		{"", " +7 ", 7, 0},
		{"", json.Number("-2"), int64(-3), 1},
		{"", 3.0, "3", 0},
		{"", uint64(math.MaxUint64), int64(math.MaxInt64), 1},
		{"", big.NewInt(1), "2", -1},
	})
	checkFailures(t, Integer, "", "abc", "1.5", 2.5, true, math.NaN(), math.Inf(1), []int{1})
}

func TestDecimal(t *testing.T) {
	checkCoercions(t, Decimal, []coercion{
		{"", "1.10", "1.1", 0},
		{"", "0.1", 0.2, -1},
		{"", "-2.5", -2, -1},
		{"", json.Number("1e2"), 99, 1},
		{"", "", "-1000", -1},
	})
	checkFailures(t, Decimal, "", "1/3", "one", false, math.NaN())
}

func TestBoolean(t *testing.T) {
	checkCoercions(t, Boolean, []coercion{
		{"", "no", "YES", -1},
		{"", "on", true, 0},
		{"", "F", "t", -1},
		{"", 0, 1, -1},
		{"", 2, "y", 0},
		{"", " ", false, -1},
	})
	checkFailures(t, Boolean, "", "maybe", "tacos")
}

func TestObject(t *testing.T) {
	type thing struct {
		n int
	}
	p, q := &thing{1}, &thing{1}

	checkCoercions(t, Object, []coercion{
		{"", "XYZ", "ABC", 1},
		{"", 1, 1, 0},
		{"", 1, 1.0, 0},
		{"", json.Number("10"), 9, 1},
		{"", int8(-1), uint(0), -1},
		{"", math.NaN(), -1e300, -1},
		{"", math.NaN(), math.NaN(), 0},
		{"", nil, false, -1},
		{"", true, 0, -1},
		{"", 100, "1", -1},
		{"", "z", time.Unix(0, 0), -1},
		{"", time.Unix(1, 0), time.Unix(0, 0), 1},
		{"", time.Unix(1, 0), time.Second, -1},
		{"", time.Hour, time.Minute, 1},
		{"", struct{}{}, struct{}{}, 0},
		{"", p, p, 0},
		{"", p, q, 0},
		{"", thing{1}, thing{2}, -1},
	})

	// These print the same but aren't deeply equal.
	cr, _ := NewCriterion(Opts{Field: "v"})
	a := map[string]interface{}{"v": []interface{}{1}}
	b := map[string]interface{}{"v": []interface{}{int64(1)}}
	x, err := cr.Compare(a, b)
	if err != nil {
		t.Fatal(err)
	}
	y, err := cr.Compare(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if x == 0 || x != -y {
		t.Fatalf("distinct values: %d and %d", x, y)
	}
}

func TestObjectNoCoercion(t *testing.T) {
	// Object comparison never fails.
	cr, _ := NewCriterion(Opts{Field: "v"})
	for _, x := range []interface{}{"abc", 1, []int{1}, map[string]int{}, Rec(`{"a":1}`)} {
		k, err := cr.coerce(x)
		if err != nil {
			t.Fatal(err)
		}
		if k == nil {
			t.Fatalf("%#v became null", x)
		}
	}
}

func TestIsNull(t *testing.T) {
	var (
		m map[string]interface{}
		s []int
		p *int
	)
	for _, x := range []interface{}{nil, m, s, p} {
		if !isNull(x) {
			t.Errorf("%#v isn't null", x)
		}
	}
	for _, x := range []interface{}{0, "", false, []int{}} {
		if isNull(x) {
			t.Errorf("%#v is null", x)
		}
	}
}
