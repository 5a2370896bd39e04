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
	"strings"
)

// Type says how values should be coerced before they are compared.
type Type int

const (
	// Object compares values by their natural ordering.  This
	// Type is the default.
	Object Type = iota

	// String compares the string renderings of values.
	String

	// Integer compares values as arbitrary-precision integers.
	Integer

	// Decimal compares values as arbitrary-precision rationals.
	Decimal

	// Datetime parses values into instants using a Criterion's
	// pattern.
	Datetime

	// Duration parses values into durations using a Criterion's
	// pattern.
	Duration

	// Boolean compares values as booleans with false before true.
	Boolean
)

var typeNames = []string{
	"OBJECT",
	"STRING",
	"INTEGER",
	"DECIMAL",
	"DATETIME",
	"DURATION",
	"BOOLEAN",
}

// typeTokens maps lowercase tokens (including some aliases) to Types.
var typeTokens = map[string]Type{
	"object":    Object,
	"string":    String,
	"text":      String,
	"integer":   Integer,
	"int":       Integer,
	"long":      Integer,
	"decimal":   Decimal,
	"number":    Decimal,
	"float":     Decimal,
	"double":    Decimal,
	"datetime":  Datetime,
	"date":      Datetime,
	"time":      Datetime,
	"timestamp": Datetime,
	"duration":  Duration,
	"boolean":   Boolean,
	"bool":      Boolean,
}

// Normalize returns the Type named by the given token.
//
// Case and surrounding space don't matter.  An empty or unknown token
// gives Object rather than an error.
func Normalize(token string) Type {
	t, _ := Lookup(token)
	return t
}

// Lookup is Normalize that also reports whether the token was
// actually recognized.
func Lookup(token string) (Type, bool) {
	t, have := typeTokens[strings.ToLower(strings.TrimSpace(token))]
	if !have {
		return Object, false
	}
	return t, true
}

// Valid reports whether t is one of the declared Types.
func (t Type) Valid() bool {
	return 0 <= t && int(t) < len(typeNames)
}

func (t Type) normalize() Type {
	if !t.Valid() {
		return Object
	}
	return t
}

// String returns the upper-case name of the Type.
func (t Type) String() string {
	return typeNames[t.normalize()]
}

// ParsesPattern reports whether a Criterion's pattern matters for
// this Type.
func (t Type) ParsesPattern() bool {
	return t == Datetime || t == Duration
}

// MarshalText renders the Type in lower case.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText normalizes the given token.  It never fails.
func (t *Type) UnmarshalText(bs []byte) error {
	*t = Normalize(string(bs))
	return nil
}
