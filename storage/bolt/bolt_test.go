package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Comcast/collate/compare"
	"github.com/Comcast/collate/storage"

	"github.com/google/go-cmp/cmp"
)

func TestImpl(t *testing.T) {
	// Just confirm that this code compiles.
	var _ storage.Storage = &Storage{}
}

func open(t *testing.T) (*Storage, string) {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "profiles.db")
	s, err := NewStorage(filename)
	if err != nil {
		t.Fatal(err)
	}
	s.Debug = true
	if err := s.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s, filename
}

func TestBasics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, filename := open(t)

	byAge, err := compare.ParseCriterion("-age:integer")
	if err != nil {
		t.Fatal(err)
	}
	byWhen, err := compare.ParseCriterion("when:datetime:yyyy-MM-dd")
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []*storage.Profile{
		{Name: "people", Doc: "Oldest first.", Criteria: []*compare.Criterion{byAge}},
		{Name: "events", Criteria: []*compare.Criterion{byWhen, byAge}},
	} {
		if err := s.Put(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	check := func(name, doc string, want ...string) {
		t.Helper()
		p, err := s.Get(ctx, name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Name != name || p.Doc != doc {
			t.Fatal(p)
		}
		got := make([]string, len(p.Criteria))
		for i, c := range p.Criteria {
			got[i] = c.String()
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatal(diff)
		}
	}

	check("people", "Oldest first.", byAge.String())
	check("events", "", byWhen.String(), byAge.String())

	if _, err = s.Get(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal(err)
	}

	// Survives a reopen.
	if err = s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if s, err = NewStorage(filename); err != nil {
		t.Fatal(err)
	}
	if err = s.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := s.Close(ctx); err != nil {
			t.Fatal(err)
		}
	}()

	names, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"events", "people"}, names); diff != "" {
		t.Fatal(diff)
	}

	if err = s.Delete(ctx, "people"); err != nil {
		t.Fatal(err)
	}
	if err = s.Delete(ctx, "people"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal(err)
	}
	check("events", "", byWhen.String(), byAge.String())
}

func TestNotOpen(t *testing.T) {
	s, err := NewStorage("never.db")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = s.List(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Fatal(err)
	}
	if err = s.Put(context.Background(), &storage.Profile{Name: "x"}); !errors.Is(err, ErrNotOpen) {
		t.Fatal(err)
	}
}

func TestNoName(t *testing.T) {
	s, _ := open(t)
	defer s.Close(context.Background())
	if err := s.Put(context.Background(), &storage.Profile{}); !errors.Is(err, storage.ErrNoName) {
		t.Fatal(err)
	}
}

// BenchmarkBolt is just for fun.  Bolt is slow.
func BenchmarkBolt(b *testing.B) {
	filename := filepath.Join(b.TempDir(), "profiles.db")
	s, err := NewStorage(filename)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Open(ctx); err != nil {
		b.Fatal(err)
	}
	defer s.Close(ctx)

	c, _ := compare.ParseCriterion("-age:integer")
	p := &storage.Profile{Name: "people", Criteria: []*compare.Criterion{c}}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var err error
		if i%2 == 0 {
			err = s.Put(ctx, p)
		} else {
			_, err = s.Get(ctx, "people")
		}
		if err != nil {
			b.Fatal(err)
		}
	}
}
