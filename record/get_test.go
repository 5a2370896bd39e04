package record

import (
	"encoding/json"
	"testing"
)

func TestGet(t *testing.T) {
	var doc Record
	js := `{"name":"homer","a/b":"literal","address":{"city":"Springfield","zip":["49007","49008"]},"kids":[{"name":"bart"},{"name":"lisa"}]}`
	if err := json.Unmarshal([]byte(js), &doc); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		field string
		want  interface{}
		found bool
	}{
		{"name", "homer", true},
		{"nope", nil, false},
		{"a/b", "literal", true},
		{"address/city", "Springfield", true},
		{"address/zip/1", "49008", true},
		{"address/zip/2", nil, false},
		{"address/zip/-1", nil, false},
		{"kids/0/name", "bart", true},
		{"kids/x/name", nil, false},
		{"name/first", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, found := Get(&doc, tt.field)
			if found != tt.found {
				t.Fatalf("found %v", found)
			}
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestGetMaps(t *testing.T) {
	m := map[string]interface{}{
		"likes": "tacos",
		"more":  map[string]string{"with": "queso"},
	}
	if v, _ := Get(m, "likes"); v != "tacos" {
		t.Fatal(v)
	}
	if v, _ := Get(m, "more/with"); v != "queso" {
		t.Fatal(v)
	}
	if _, found := Get(nil, "likes"); found {
		t.Fatal("found in nil")
	}
	var r *Record
	if _, found := Get(r, "likes"); found {
		t.Fatal("found in nil record")
	}
	if _, found := Get("tacos", "likes"); found {
		t.Fatal("found in string")
	}
}

func TestIsRecord(t *testing.T) {
	var r *Record
	for _, x := range []interface{}{New(), map[string]interface{}{}, map[string]string{}} {
		if !IsRecord(x) {
			t.Fatalf("%#v", x)
		}
	}
	for _, x := range []interface{}{nil, r, "tacos", 42, []interface{}{}} {
		if IsRecord(x) {
			t.Fatalf("%#v", x)
		}
	}
}
