/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package record provides an ordered key-value document.
//
// A Record remembers the order in which its keys were first set.
// That order survives JSON and YAML round trips, so a document that
// was read from a file can be written back out looking the same.
//
// Values are arbitrary.  Nested objects decoded from JSON or YAML are
// themselves *Records.
package record

import (
	"errors"
	"sort"
)

// Record is a map from strings to values that remembers the order of
// its keys.
//
// The zero value is an empty Record ready to use.  A nil *Record
// behaves like an empty, read-only Record.
type Record struct {
	keys []string
	vals map[string]interface{}
}

// New makes an empty Record.
func New() *Record {
	return &Record{
		vals: make(map[string]interface{}, 8),
	}
}

// Of makes a Record from alternating keys and values.
func Of(pairs ...interface{}) (*Record, error) {
	r := New()
	for i := 0; i < len(pairs); i += 2 {
		k, is := pairs[i].(string)
		if !is {
			return nil, errors.New("record.Of given a non-string key")
		}
		if len(pairs) <= i+1 {
			return nil, errors.New("odd args to record.Of")
		}
		r.Set(k, pairs[i+1])
	}
	return r, nil
}

// FromMap makes a Record from a map.
//
// Since a map has no order, the keys are sorted.
func FromMap(m map[string]interface{}) *Record {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	r := New()
	for _, k := range ks {
		r.Set(k, m[k])
	}
	return r
}

// Set adds or replaces the value for the given key.
//
// A replaced key keeps its original position.  The Record is modified
// and returned.
func (r *Record) Set(k string, v interface{}) *Record {
	if r.vals == nil {
		r.vals = make(map[string]interface{}, 8)
	}
	if _, have := r.vals[k]; !have {
		r.keys = append(r.keys, k)
	}
	r.vals[k] = v
	return r
}

// Get returns the value for the key, if any.
func (r *Record) Get(k string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	v, have := r.vals[k]
	return v, have
}

// Delete removes the given keys.
//
// The Record is modified and returned.
func (r *Record) Delete(ks ...string) *Record {
	if r == nil {
		return r
	}
	for _, k := range ks {
		if _, have := r.vals[k]; !have {
			continue
		}
		delete(r.vals, k)
		for i, x := range r.keys {
			if x == k {
				r.keys = append(r.keys[:i], r.keys[i+1:]...)
				break
			}
		}
	}
	return r
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	if r == nil || len(r.keys) == 0 {
		return nil
	}
	acc := make([]string, len(r.keys))
	copy(acc, r.keys)
	return acc
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls f for each key and value in order until f returns
// false.
func (r *Record) Range(f func(k string, v interface{}) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !f(k, r.vals[k]) {
			return
		}
	}
}

// Copy makes a shallow copy.
func (r *Record) Copy() *Record {
	acc := New()
	r.Range(func(k string, v interface{}) bool {
		acc.Set(k, v)
		return true
	})
	return acc
}

// Map returns the entries as a plain map.  Nested Records are not
// converted.
func (r *Record) Map() map[string]interface{} {
	acc := make(map[string]interface{}, r.Len())
	r.Range(func(k string, v interface{}) bool {
		acc[k] = v
		return true
	})
	return acc
}

// String renders the Record as JSON.
func (r *Record) String() string {
	bs, err := r.MarshalJSON()
	if err != nil {
		return "!" + err.Error()
	}
	return string(bs)
}

// Columns returns the union of the keys of the given Records in the
// order that they are first seen.
func Columns(rs []*Record) []string {
	seen := make(map[string]bool)
	acc := make([]string, 0, 8)
	for _, r := range rs {
		r.Range(func(k string, _ interface{}) bool {
			if !seen[k] {
				seen[k] = true
				acc = append(acc, k)
			}
			return true
		})
	}
	return acc
}
