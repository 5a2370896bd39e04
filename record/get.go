package record

import (
	"strconv"
	"strings"
)

// Separator divides the segments of a field path.
var Separator = "/"

// Getter is something that can look up a field by name.
//
// *Record is a Getter.
type Getter interface {
	Get(field string) (interface{}, bool)
}

// IsRecord reports whether x is something Get knows how to look into.
func IsRecord(x interface{}) bool {
	switch vv := x.(type) {
	case *Record:
		return vv != nil
	case map[string]interface{}, map[string]string, Getter:
		return true
	default:
		return false
	}
}

// Get extracts the value for the field from x, which should be a
// *Record, a map[string]interface{}, a map[string]string, or a Getter.
//
// A key that exactly matches the field wins.  Otherwise a field that
// contains the Separator is treated as a path: each segment looks up
// a key in a nested record or, when numeric, an index into an array.
//
// When nothing is found, Get returns (nil, false).  That's not an
// error.
func Get(x interface{}, field string) (interface{}, bool) {
	if v, found := lookup(x, field); found {
		return v, true
	}
	if !strings.Contains(field, Separator) {
		return nil, false
	}
	at := x
	for _, seg := range strings.Split(field, Separator) {
		v, found := step(at, seg)
		if !found {
			return nil, false
		}
		at = v
	}
	return at, true
}

func lookup(x interface{}, k string) (interface{}, bool) {
	switch vv := x.(type) {
	case nil:
		return nil, false
	case *Record:
		return vv.Get(k)
	case map[string]interface{}:
		v, have := vv[k]
		return v, have
	case map[string]string:
		v, have := vv[k]
		return v, have
	case Getter:
		return vv.Get(k)
	default:
		return nil, false
	}
}

func step(x interface{}, seg string) (interface{}, bool) {
	switch vv := x.(type) {
	case []interface{}:
		if i, ok := index(seg, len(vv)); ok {
			return vv[i], true
		}
		return nil, false
	case []*Record:
		if i, ok := index(seg, len(vv)); ok {
			return vv[i], true
		}
		return nil, false
	case []string:
		if i, ok := index(seg, len(vv)); ok {
			return vv[i], true
		}
		return nil, false
	default:
		return lookup(x, seg)
	}
}

func index(seg string, n int) (int, bool) {
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || n <= i {
		return 0, false
	}
	return i, true
}
