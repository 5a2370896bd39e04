package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Comcast/collate/record"
	. "github.com/Comcast/collate/util/testutil"

	"github.com/google/go-cmp/cmp"
)

func strs(rs []*record.Record) []string {
	acc := make([]string, len(rs))
	for i, r := range rs {
		acc[i] = r.String()
	}
	return acc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		s    string
		want Format
	}{
		{"json", JSON},
		{"JSON", JSON},
		{".yml", YAML},
		{"yaml", YAML},
		{" csv ", CSV},
		{"xlsx", XLSX},
		{"htm", HTML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.s)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("%q: got %s", tt.s, got)
		}
	}
	if _, err := ParseFormat("docx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal(err)
	}
}

func TestFormatFromFilename(t *testing.T) {
	f, err := FormatFromFilename("data/people.Csv")
	if err != nil {
		t.Fatal(err)
	}
	if f != CSV {
		t.Fatal(f)
	}
	if _, err = FormatFromFilename("README"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal(err)
	}
}

func TestJSONArray(t *testing.T) {
	in := `  [{"z":1,"a":{"y":2,"b":3}},{"n":12345678901234567890}]`
	rs, err := Read(strings.NewReader(in), JSON, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{`{"z":1,"a":{"y":2,"b":3}}`, `{"n":12345678901234567890}`}
	if diff := cmp.Diff(want, strs(rs)); diff != "" {
		t.Fatal(diff)
	}

	out := &bytes.Buffer{}
	if err = Write(out, JSON, rs, Options{}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != `[{"z":1,"a":{"y":2,"b":3}},{"n":12345678901234567890}]`+"\n" {
		t.Fatal(got)
	}
}

func TestJSONStream(t *testing.T) {
	in := "{\"a\":1}\n{\"b\":2}\n\n{\"c\":\"<3\"}\n"
	rs, err := Read(strings.NewReader(in), JSON, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 3 {
		t.Fatal(len(rs))
	}
	out := &bytes.Buffer{}
	if err = Write(out, JSON, rs[2:], Options{Pretty: true}); err != nil {
		t.Fatal(err)
	}
	if want := "[\n  {\n    \"c\": \"<3\"\n  }\n]\n"; out.String() != want {
		t.Fatal(out.String())
	}
}

func TestJSONErrors(t *testing.T) {
	for _, in := range []string{`[{"a":1},null]`, `[1]`, `{"a":1} 42`, `{"a":`} {
		if _, err := Read(strings.NewReader(in), JSON, Options{}); err == nil {
			t.Errorf("%s: no error", in)
		}
	}
	rs, err := Read(strings.NewReader("  \n"), JSON, Options{})
	if err != nil || len(rs) != 0 {
		t.Fatal(rs, err)
	}
}

func TestYAML(t *testing.T) {
	in := `
- name: Homer
  age: 39
  kids: [Bart, Lisa]
- age: 10
  name: Bart
`
	rs, err := Read(strings.NewReader(in), YAML, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`{"name":"Homer","age":39,"kids":["Bart","Lisa"]}`,
		`{"age":10,"name":"Bart"}`,
	}
	if diff := cmp.Diff(want, strs(rs)); diff != "" {
		t.Fatal(diff)
	}

	out := &bytes.Buffer{}
	if err = Write(out, YAML, Recs(`[{"b":1,"a":"x"}]`), Options{}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "- b: 1\n  a: x\n" {
		t.Fatal(got)
	}
}

func TestCSV(t *testing.T) {
	in := "\xEF\xBB\xBFname, age ,\n\nHomer,39,x\n,,\nBart,10\n"
	rs, err := Read(strings.NewReader(in), CSV, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`{"name":"Homer","age":"39","column_3":"x"}`,
		`{"name":"Bart","age":"10"}`,
	}
	if diff := cmp.Diff(want, strs(rs)); diff != "" {
		t.Fatal(diff)
	}
}

func TestCSVErrors(t *testing.T) {
	for _, in := range []string{"a,a\n1,2\n", "a\n1,2\n"} {
		if _, err := Read(strings.NewReader(in), CSV, Options{}); err == nil {
			t.Errorf("%q: no error", in)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	rs := Recs(`[{"name":"Homer","pet":{"likes":"tacos"}},{"age":10,"name":"Bart, Jr."},{"ok":true,"x":null}]`)
	out := &bytes.Buffer{}
	if err := Write(out, CSV, rs, Options{}); err != nil {
		t.Fatal(err)
	}
	want := `name,pet,age,ok,x
Homer,"{""likes"":""tacos""}",,,
"Bart, Jr.",,10,,
,,,true,
`
	if got := out.String(); got != want {
		t.Fatal(got)
	}
}

func TestXLSX(t *testing.T) {
	rs := Recs(`[{"name":"Homer","age":39},{"name":"Lisa","age":8,"smart":true}]`)

	for _, sheet := range []string{"", "people"} {
		buf := &bytes.Buffer{}
		if err := Write(buf, XLSX, rs, Options{Sheet: sheet}); err != nil {
			t.Fatal(err)
		}

		got, err := Read(bytes.NewReader(buf.Bytes()), XLSX, Options{Sheet: sheet})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatal(len(got))
		}
		if v, _ := got[0].Get("name"); v != "Homer" {
			t.Fatal(got[0])
		}
		if v, _ := got[1].Get("age"); v != "8" {
			t.Fatal(got[1])
		}
		if v, _ := got[1].Get("smart"); v != "TRUE" {
			t.Fatal(got[1])
		}
		if diff := cmp.Diff([]string{"name", "age", "smart"}, record.Columns(got)); diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestXLSXMissingSheet(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, XLSX, Recs(`[{"a":1}]`), Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(buf, XLSX, Options{Sheet: "nope"}); err == nil {
		t.Fatal("no error")
	}
}

func TestHTML(t *testing.T) {
	out := &bytes.Buffer{}
	if err := Write(out, HTML, Recs(`[{"a":1}]`), Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "<th>a</th>") {
		t.Fatal(out.String())
	}
	if _, err := Read(out, HTML, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal(err)
	}
}
