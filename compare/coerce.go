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
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// coerce converts a raw value into the representation that this
// Criterion's Type compares.  A nil result is null.
//
// For every Type except Object and String, a blank string is null.
func (c *Criterion) coerce(v interface{}) (interface{}, error) {
	if isNull(v) {
		return nil, nil
	}

	var (
		k   interface{}
		err error
	)

	switch c.typ {
	case Object:
		return v, nil
	case String:
		k, err = toString(v)
	default:
		if blank(v) {
			return nil, nil
		}
		switch c.typ {
		case Integer:
			k, err = toInteger(v)
		case Decimal:
			k, err = toDecimal(v)
		case Datetime:
			k, err = toDatetime(v, c.pattern)
		case Duration:
			k, err = toDuration(v, c.pattern)
		case Boolean:
			k, err = toBoolean(v)
		}
	}

	if err != nil {
		return nil, &FormatError{
			Field:   c.field,
			Type:    c.typ,
			Pattern: c.pattern,
			Value:   v,
			Err:     err,
		}
	}
	return k, nil
}

// compareKeys compares two coerced values in ascending order.
//
// Null sorts before everything else.
func (c *Criterion) compareKeys(x, y interface{}) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}

	switch c.typ {
	case String:
		return strings.Compare(x.(string), y.(string))
	case Integer:
		return x.(*big.Int).Cmp(y.(*big.Int))
	case Decimal:
		return x.(*big.Rat).Cmp(y.(*big.Rat))
	case Datetime:
		return x.(time.Time).Compare(y.(time.Time))
	case Duration:
		return cmpInt64(int64(x.(time.Duration)), int64(y.(time.Duration)))
	case Boolean:
		return cmpBool(x.(bool), y.(bool))
	default:
		return compareObjects(x, y)
	}
}

// isNull reports whether x is nil or a nil pointer, map, slice, or
// interface.
func isNull(x interface{}) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func blank(x interface{}) bool {
	switch vv := x.(type) {
	case string:
		return strings.TrimSpace(vv) == ""
	case json.Number:
		return strings.TrimSpace(string(vv)) == ""
	}
	return false
}

func cmpInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

func toString(x interface{}) (string, error) {
	return cast.ToStringE(x)
}

var errNotFinite = errors.New("not a finite number")

func toInteger(x interface{}) (*big.Int, error) {
	switch vv := x.(type) {
	case *big.Int:
		return vv, nil
	case string:
		return parseInteger(vv)
	case json.Number:
		return parseInteger(string(vv))
	case float32:
		return floatToInteger(float64(vv))
	case float64:
		return floatToInteger(vv)
	case uint:
		return new(big.Int).SetUint64(uint64(vv)), nil
	case uint64:
		return new(big.Int).SetUint64(vv), nil
	case bool:
		return nil, errors.New("a boolean is not an integer")
	}
	n, err := cast.ToInt64E(x)
	if err != nil {
		return nil, err
	}
	return big.NewInt(n), nil
}

func parseInteger(s string) (*big.Int, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "+")
	n, ok := new(big.Int).SetString(t, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	return n, nil
}

func floatToInteger(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errNotFinite
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

func toDecimal(x interface{}) (*big.Rat, error) {
	switch vv := x.(type) {
	case *big.Rat:
		return vv, nil
	case *big.Int:
		return new(big.Rat).SetInt(vv), nil
	case string:
		return parseDecimal(vv)
	case json.Number:
		return parseDecimal(string(vv))
	case float32:
		return floatToDecimal(float64(vv))
	case float64:
		return floatToDecimal(vv)
	case uint:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(uint64(vv))), nil
	case uint64:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(vv)), nil
	case bool:
		return nil, errors.New("a boolean is not a decimal")
	}
	n, err := cast.ToInt64E(x)
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetInt64(n), nil
}

func parseDecimal(s string) (*big.Rat, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "+")
	// big.Rat also accepts fractions like "1/3", which aren't
	// decimals.
	if strings.Contains(t, "/") {
		return nil, fmt.Errorf("%q is not a decimal", s)
	}
	r, ok := new(big.Rat).SetString(t)
	if !ok {
		return nil, fmt.Errorf("%q is not a decimal", s)
	}
	return r, nil
}

func floatToDecimal(f float64) (*big.Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errNotFinite
	}
	return new(big.Rat).SetFloat64(f), nil
}

var (
	truthy = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "on": true, "1": true}
	falsy  = map[string]bool{"false": true, "f": true, "no": true, "n": true, "off": true, "0": true}
)

func toBoolean(x interface{}) (bool, error) {
	switch vv := x.(type) {
	case bool:
		return vv, nil
	case string:
		return parseBoolean(vv)
	case json.Number:
		return parseBoolean(string(vv))
	}
	// Numbers: anything but zero is true.
	b, err := cast.ToBoolE(x)
	if err != nil {
		return false, fmt.Errorf("%v is not a boolean", x)
	}
	return b, nil
}

func parseBoolean(s string) (bool, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case truthy[t]:
		return true, nil
	case falsy[t]:
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", s)
	}
}
