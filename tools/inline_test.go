package tools

import (
	"errors"
	"strings"
	"testing"
)

func TestInline(t *testing.T) {
	input := `
I like %inline("tacos"), and
I also like %inline ("queso").
Both are delicious.
`
	want := `
I like TACOS, and
I also like QUESO.
Both are delicious.
`

	find := func(name string) ([]byte, error) {
		return []byte(strings.ToUpper(name)), nil
	}

	got, err := Inline([]byte(input), find)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Fatalf("got %s", got)
	}
}

func TestInlineError(t *testing.T) {
	oops := errors.New("oops")
	_, err := Inline([]byte(`%inline("x")`), func(string) ([]byte, error) {
		return nil, oops
	})
	if !errors.Is(err, oops) {
		t.Fatal(err)
	}
}

func TestInlineQuoted(t *testing.T) {
	got, err := InlineQuoted([]byte(`doc: %inline("d")`), func(string) ([]byte, error) {
		return []byte("Line \"one\".\nLine two.\n"), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := `doc: "Line \"one\".\nLine two.\n"`; string(got) != want {
		t.Fatal(string(got))
	}
}

func TestReadProfileFile(t *testing.T) {
	p, err := ReadProfileFile("../profiles/people.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "people" || !strings.Contains(p.Doc, "**age**") {
		t.Fatal(p)
	}
	if len(p.Criteria) != 2 {
		t.Fatal(p.Criteria)
	}
}
