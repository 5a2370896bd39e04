package tools

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/Comcast/collate/util/testutil"
)

func TestRenderProfilePage(t *testing.T) {
	out := bytes.NewBuffer(make([]byte, 0, 1024*128))

	if err := ReadAndRenderProfilePage("../profiles/people.yaml", []string{"collate.css"}, out); err != nil {
		t.Fatal(err)
	}

	html := out.String()
	for _, want := range []string{
		"<title>people</title>",
		"<strong>age</strong>",
		"<code>age</code>",
		"descending",
		"INTEGER",
		`href="collate.css"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderRecordsHTML(t *testing.T) {
	out := &bytes.Buffer{}
	rs := Recs(`[{"name":"<b>","age":3},{"age":4,"pet":{"likes":"tacos"}}]`)
	if err := RenderRecordsHTML(rs, out); err != nil {
		t.Fatal(err)
	}
	html := out.String()

	if !strings.Contains(html, "<th>name</th>\n<th>age</th>\n<th>pet</th>") {
		t.Fatal(html)
	}
	if !strings.Contains(html, "&lt;b&gt;") {
		t.Fatal("not escaped")
	}
	if !strings.Contains(html, "{&#34;likes&#34;:&#34;tacos&#34;}") {
		t.Fatal(html)
	}
}

func TestRenderPageWithoutProfile(t *testing.T) {
	out := &bytes.Buffer{}
	if err := RenderPage(nil, Recs(`[{"a":1}]`), out, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "/static/collate.css") {
		t.Fatal(out.String())
	}
}
