package compare

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"
)

// rank orders values of different kinds for Object comparison.
type rank int

const (
	rankNull rank = iota
	rankBool
	rankNumber
	rankString
	rankTime
	rankDuration
	rankOther
)

// numberPrec is enough to represent any int64 or uint64 exactly.
const numberPrec = 256

// notANumber stands in for a NaN, which big.Float can't hold.  NaNs
// sort before all other numbers.
type notANumber struct{}

// classify is a generalization of the old "fudge" hack: all numbers
// become *big.Floats so that an int and a float64 compare sensibly.
func classify(x interface{}) (rank, interface{}) {
	switch vv := x.(type) {
	case nil:
		return rankNull, nil
	case bool:
		return rankBool, vv
	case string:
		return rankString, vv
	case time.Time:
		return rankTime, vv
	case time.Duration:
		return rankDuration, vv
	case json.Number:
		if f, ok := newFloat().SetString(string(vv)); ok {
			return rankNumber, f
		}
		return rankString, string(vv)
	case float64:
		return classifyFloat(vv)
	case float32:
		return classifyFloat(float64(vv))
	case int:
		return rankNumber, newFloat().SetInt64(int64(vv))
	case int8:
		return rankNumber, newFloat().SetInt64(int64(vv))
	case int16:
		return rankNumber, newFloat().SetInt64(int64(vv))
	case int32:
		return rankNumber, newFloat().SetInt64(int64(vv))
	case int64:
		return rankNumber, newFloat().SetInt64(vv)
	case uint:
		return rankNumber, newFloat().SetUint64(uint64(vv))
	case uint8:
		return rankNumber, newFloat().SetUint64(uint64(vv))
	case uint16:
		return rankNumber, newFloat().SetUint64(uint64(vv))
	case uint32:
		return rankNumber, newFloat().SetUint64(uint64(vv))
	case uint64:
		return rankNumber, newFloat().SetUint64(vv)
	case *big.Int:
		if vv != nil {
			return rankNumber, newFloat().SetInt(vv)
		}
	case *big.Rat:
		if vv != nil {
			return rankNumber, newFloat().SetRat(vv)
		}
	case *big.Float:
		if vv != nil {
			return rankNumber, vv
		}
	}
	if isNull(x) {
		return rankNull, nil
	}
	return rankOther, x
}

func newFloat() *big.Float {
	return new(big.Float).SetPrec(numberPrec)
}

func classifyFloat(f float64) (rank, interface{}) {
	if math.IsNaN(f) {
		return rankNumber, notANumber{}
	}
	return rankNumber, newFloat().SetFloat64(f)
}

// compareObjects gives values their natural ordering.
//
// Values of different kinds are ordered by kind: null, boolean,
// number, string, instant, duration, then everything else.  Values of
// the same kind compare naturally.
//
// Everything else is ordered by type name, then by string rendering.
// If those tie, only deeply equal values compare equal: the tie is
// broken by identity for pointer-like values and finally by the Go
// syntax rendering.
func compareObjects(x, y interface{}) int {
	rx, vx := classify(x)
	ry, vy := classify(y)
	if rx != ry {
		return cmpInt64(int64(rx), int64(ry))
	}

	switch rx {
	case rankNull:
		return 0
	case rankBool:
		return cmpBool(vx.(bool), vy.(bool))
	case rankNumber:
		return compareNumbers(vx, vy)
	case rankString:
		return strings.Compare(vx.(string), vy.(string))
	case rankTime:
		return vx.(time.Time).Compare(vy.(time.Time))
	case rankDuration:
		return cmpInt64(int64(vx.(time.Duration)), int64(vy.(time.Duration)))
	default:
		return compareOthers(vx, vy)
	}
}

func compareNumbers(x, y interface{}) int {
	_, xnan := x.(notANumber)
	_, ynan := y.(notANumber)
	switch {
	case xnan && ynan:
		return 0
	case xnan:
		return -1
	case ynan:
		return 1
	}
	return x.(*big.Float).Cmp(y.(*big.Float))
}

func compareOthers(x, y interface{}) int {
	if n := strings.Compare(fmt.Sprintf("%T", x), fmt.Sprintf("%T", y)); n != 0 {
		return n
	}
	if n := strings.Compare(fmt.Sprint(x), fmt.Sprint(y)); n != 0 {
		return n
	}
	if reflect.DeepEqual(x, y) {
		return 0
	}
	if n := compareIdentities(x, y); n != 0 {
		return n
	}
	return strings.Compare(fmt.Sprintf("%#v", x), fmt.Sprintf("%#v", y))
}

func compareIdentities(x, y interface{}) int {
	vx := reflect.ValueOf(x)
	vy := reflect.ValueOf(y)
	switch vx.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
	default:
		return 0
	}
	px, py := vx.Pointer(), vy.Pointer()
	switch {
	case px < py:
		return -1
	case px > py:
		return 1
	default:
		return 0
	}
}
