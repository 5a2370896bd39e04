package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the command line with the given stdin and returns
// stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

const people = `[{"name":"b","n":"10"},{"name":"a","n":"10"},{"name":"c","n":9}]`

func TestSortStdin(t *testing.T) {
	got := mustRun(t, people, "sort", "--by", "-n:integer", "--by", "name")
	want := `[{"name":"a","n":"10"},{"name":"b","n":"10"},{"name":"c","n":9}]` + "\n"
	if got != want {
		t.Fatal(got)
	}
}

func TestSortFormatError(t *testing.T) {
	out, err := run(t, `[{"n":"1"},{"n":"x"}]`, "sort", "--by", "n:integer")
	if err == nil {
		t.Fatal("no error")
	}
	if !strings.Contains(err.Error(), `"n"`) {
		t.Fatal(err)
	}
	if out != "" {
		t.Fatal(out)
	}
}

func TestSortNoCriteria(t *testing.T) {
	if _, err := run(t, people, "sort"); err == nil {
		t.Fatal("no error")
	}
}

func TestSortCSVFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	if err := os.WriteFile(in, []byte("name,age\nHomer,39\nLisa,8\nBart,10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := mustRun(t, "", "sort", "--by", "age:integer", in)
	if want := "name,age\nLisa,8\nBart,10\nHomer,39\n"; got != want {
		t.Fatal(got)
	}

	// Write JSON to a file, with the format from its extension.
	outfile := filepath.Join(dir, "sorted.json")
	if got = mustRun(t, "", "sort", "--by", "-name", "--workers", "2", "--write", outfile, in); got != "" {
		t.Fatal(got)
	}
	bs, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"name":"Lisa","age":"8"},{"name":"Homer","age":"39"},{"name":"Bart","age":"10"}]` + "\n"
	if string(bs) != want {
		t.Fatal(string(bs))
	}
}

func TestSortHTML(t *testing.T) {
	got := mustRun(t, people, "sort", "-c", "../../profiles/people.yaml", "-o", "html")
	if !strings.Contains(got, "<title>people</title>") || !strings.Contains(got, "<th>name</th>") {
		t.Fatal(got)
	}
}

func TestSortCheck(t *testing.T) {
	if got := mustRun(t, people, "sort", "--check", "--by", "name"); got != "false\n" {
		t.Fatal(got)
	}
	if got := mustRun(t, people, "sort", "--check", "--by", "-n:integer"); got != "true\n" {
		t.Fatal(got)
	}
}

func TestCompare(t *testing.T) {
	got := mustRun(t, "", "compare", "--by", "n:integer", `{"n":"5"}`, `{"n":"10"}`)
	if got != "-1\n" {
		t.Fatal(got)
	}
	got = mustRun(t, "", "compare", "--by", "n:string", `{"n":"5"}`, `{"n":"10"}`)
	if got != "1\n" {
		t.Fatal(got)
	}
	if _, err := run(t, "", "compare", "--by", "n", `{"n":`, `{}`); err == nil {
		t.Fatal("no error")
	}
}

func TestCriteria(t *testing.T) {
	got := mustRun(t, "", "criteria", "--by", "-age:int", "--by", "when:datetime:yyyy-MM-dd")
	want := `- key: age
  type: integer
  descending: "true"
- key: when
  type: datetime
  pattern: yyyy-MM-dd
  descending: "false"
`
	if got != want {
		t.Fatal(got)
	}
}

func TestProfiles(t *testing.T) {
	db := filepath.Join(t.TempDir(), "profiles.db")

	mustRun(t, "", "profile", "save", "--db", db, "../../profiles/people.yaml")
	mustRun(t, "", "profile", "save", "--db", db, "--name", "events2", "../../profiles/events.yaml")

	if got := mustRun(t, "", "profile", "list", "--db", db); got != "events2\npeople\n" {
		t.Fatal(got)
	}

	got := mustRun(t, "", "profile", "show", "--db", db, "people")
	if !strings.Contains(got, "name: people") || !strings.Contains(got, "key: age") {
		t.Fatal(got)
	}

	got = mustRun(t, people, "sort", "--db", db, "--profile", "people")
	want := `[{"name":"a","n":"10"},{"name":"b","n":"10"},{"name":"c","n":9}]` + "\n"
	// People have no ages, so only names matter.
	if got != want {
		t.Fatal(got)
	}

	mustRun(t, "", "profile", "rm", "--db", db, "people")
	if _, err := run(t, "", "profile", "show", "--db", db, "people"); err == nil {
		t.Fatal("no error")
	}
	if _, err := run(t, "", "profile", "rm", "--db", db, "people"); err == nil {
		t.Fatal("no error")
	}
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "collate.yaml")
	src := "criteria:\n  - key: n\n    type: integer\n    descending: true\n"
	if err := os.WriteFile(cfg, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	got := mustRun(t, `[{"n":1},{"n":3},{"n":2}]`, "sort", "--config", cfg)
	if got != `[{"n":3},{"n":2},{"n":1}]`+"\n" {
		t.Fatal(got)
	}
}
