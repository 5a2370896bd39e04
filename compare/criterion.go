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

package compare

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Comcast/collate/record"
	"github.com/Comcast/collate/util"

	"github.com/spf13/cast"
)

// Opts gives the parameters for a Criterion.
//
// Only Field is required.  The zero values of the other fields are
// the defaults: Object comparison, no pattern, ascending order.
type Opts struct {
	// Field names the value to extract from each record.  See
	// record.Get.
	Field string

	Type Type

	// Pattern is used to parse values when Type is Datetime or
	// Duration.  Otherwise it's ignored.
	Pattern string

	Descending bool
}

// Criterion is one ordering dimension of a multi-key comparison.
//
// A Criterion is immutable, so it's safe to share.
type Criterion struct {
	field      string
	typ        Type
	pattern    string
	descending bool
}

// NewCriterion makes a Criterion.
//
// Returns ErrMissingField if o.Field is empty.  An invalid Type is
// normalized to Object.
func NewCriterion(o Opts) (*Criterion, error) {
	if o.Field == "" {
		return nil, ErrMissingField
	}
	return &Criterion{
		field:      o.Field,
		typ:        o.Type.normalize(),
		pattern:    o.Pattern,
		descending: o.Descending,
	}, nil
}

// FromRecord makes a Criterion from its serialized form: a record
// with keys "key", "type", "pattern", and "descending?" (or
// "descending").
//
// The type token is normalized (see Normalize), and the descending
// flag is parsed leniently with a default of false.
func FromRecord(x interface{}) (*Criterion, error) {
	if x == nil {
		return nil, ErrNilRecord
	}
	if r, is := x.(*record.Record); is && r == nil {
		return nil, ErrNilRecord
	}
	if !record.IsRecord(x) {
		return nil, ErrNotRecord
	}

	key, err := stringAt(x, "key")
	if err != nil {
		return nil, err
	}
	token, err := stringAt(x, "type")
	if err != nil {
		return nil, err
	}
	pattern, err := stringAt(x, "pattern")
	if err != nil {
		return nil, err
	}

	desc, have := record.Get(x, "descending?")
	if !have || desc == nil {
		desc, _ = record.Get(x, "descending")
	}

	typ, known := Lookup(token)
	if !known && token != "" {
		util.Logf("criterion %q: unknown type %q; using %s", key, token, typ)
	}

	return NewCriterion(Opts{
		Field:      key,
		Type:       typ,
		Pattern:    pattern,
		Descending: parseFlag(desc),
	})
}

// FromRecords converts each serialized criterion.  If any of them is
// malformed, the whole batch fails with a *BatchError.
//
// A nil batch gives nil criteria.
func FromRecords(xs []interface{}) ([]*Criterion, error) {
	if xs == nil {
		return nil, nil
	}
	acc := make([]*Criterion, len(xs))
	for i, x := range xs {
		c, err := FromRecord(x)
		if err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		acc[i] = c
	}
	return acc, nil
}

// ParseCriterion reads the compact form "[-]key[:type[:pattern]]".
//
// A leading '-' means descending; a leading '+' is allowed and means
// ascending.  The pattern is everything after the second colon, so it
// can contain colons itself.
//
// Examples: "name", "-age:integer", "when:datetime:yyyy-MM-dd HH:mm".
func ParseCriterion(s string) (*Criterion, error) {
	o := Opts{}
	switch {
	case strings.HasPrefix(s, "-"):
		o.Descending = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	parts := strings.SplitN(s, ":", 3)
	o.Field = parts[0]
	if 1 < len(parts) {
		o.Type = Normalize(parts[1])
	}
	if 2 < len(parts) {
		o.Pattern = parts[2]
	}
	return NewCriterion(o)
}

func stringAt(x interface{}, k string) (string, error) {
	v, _ := record.Get(x, k)
	if v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("criterion %s: %w", k, err)
	}
	return s, nil
}

// parseFlag is lenient: anything that isn't recognizably true is
// false.
func parseFlag(x interface{}) bool {
	switch vv := x.(type) {
	case nil:
		return false
	case bool:
		return vv
	default:
		b, err := toBoolean(x)
		if err != nil {
			return false
		}
		return b
	}
}

// Field returns the name of the value to compare.
func (c *Criterion) Field() string {
	return c.field
}

// Type returns the Type of comparison.
func (c *Criterion) Type() Type {
	return c.typ
}

// Pattern returns the pattern for Datetime or Duration parsing, which
// might be empty.
func (c *Criterion) Pattern() string {
	return c.pattern
}

// Descending reports whether this Criterion's order is reversed.
func (c *Criterion) Descending() bool {
	return c.descending
}

// Ascending is the opposite of Descending.
func (c *Criterion) Ascending() bool {
	return !c.Descending()
}

// Record returns the serialized form of the Criterion.
//
// The type is in lower case, "pattern" only appears if there is one,
// and "descending" is "true" or "false".
func (c *Criterion) Record() *record.Record {
	r := record.New()
	r.Set("key", c.field)
	r.Set("type", strings.ToLower(c.typ.String()))
	if c.pattern != "" {
		r.Set("pattern", c.pattern)
	}
	r.Set("descending", strconv.FormatBool(c.descending))
	return r
}

func (c *Criterion) String() string {
	return fmt.Sprintf("key=%s,type=%s,pattern=%s,descending=%t",
		c.field, c.typ, c.pattern, c.descending)
}

// MarshalJSON writes the serialized form.
func (c *Criterion) MarshalJSON() ([]byte, error) {
	return c.Record().MarshalJSON()
}

// UnmarshalJSON reads the serialized form.
func (c *Criterion) UnmarshalJSON(bs []byte) error {
	var r record.Record
	if err := json.Unmarshal(bs, &r); err != nil {
		return err
	}
	parsed, err := FromRecord(&r)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// MarshalYAML writes the serialized form.
func (c *Criterion) MarshalYAML() (interface{}, error) {
	return c.Record().MarshalYAML()
}

// UnmarshalYAML reads the serialized form.
func (c *Criterion) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var m map[string]interface{}
	if err := unmarshal(&m); err != nil {
		return err
	}
	if m == nil {
		return ErrNilRecord
	}
	parsed, err := FromRecord(m)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}
