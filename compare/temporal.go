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
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/sosodev/duration"
	"github.com/spf13/cast"
)

// DatetimePatterns are named patterns for Datetime criteria.
//
// A pattern that isn't named here is a layout: either a Go reference
// layout (anything containing a digit, like "2006-01-02") or a
// Java-style pattern like "yyyy-MM-dd HH:mm:ss.SSS".
//
// The names "milliseconds" and "seconds" mean numbers since the Unix
// epoch.
var DatetimePatterns = map[string]string{
	"datetime":      time.RFC3339,
	"datetime.jdbc": "2006-01-02 15:04:05",
	"date":          "2006-01-02",
	"date.jdbc":     "2006-01-02",
	"time":          "15:04:05Z07:00",
	"time.jdbc":     "15:04:05",
	"rfc1123":       time.RFC1123,
	"rfc3339":       time.RFC3339,
}

// DurationUnits are the named patterns for numeric Duration criteria.
//
// The other recognized patterns are "xml" and "iso8601", which parse
// ISO 8601 durations like "P1DT2H".  With no pattern, a Duration
// criterion accepts Go duration syntax ("1h30m") or ISO 8601.
var DurationUnits = map[string]time.Duration{
	"nanoseconds":  time.Nanosecond,
	"microseconds": time.Microsecond,
	"milliseconds": time.Millisecond,
	"seconds":      time.Second,
	"minutes":      time.Minute,
	"hours":        time.Hour,
	"days":         24 * time.Hour,
}

func toDatetime(x interface{}, pattern string) (time.Time, error) {
	if t, is := x.(time.Time); is {
		return t, nil
	}

	switch pattern {
	case "":
		if s, is := x.(string); is {
			return cast.ToTimeE(strings.TrimSpace(s))
		}
		// Numbers without a pattern are epoch milliseconds.
		return epoch(x, time.Millisecond)
	case "milliseconds":
		return epoch(x, time.Millisecond)
	case "seconds":
		return epoch(x, time.Second)
	}

	s, err := cast.ToStringE(x)
	if err != nil {
		return time.Time{}, err
	}
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(layout, strings.TrimSpace(s))
}

func epoch(x interface{}, unit time.Duration) (time.Time, error) {
	r, err := toDecimal(x)
	if err != nil {
		return time.Time{}, err
	}
	f, _ := r.Float64()
	nanos := f * float64(unit)
	if math.Abs(nanos) > math.MaxInt64 {
		return time.Time{}, fmt.Errorf("%v is out of range", x)
	}
	return time.Unix(0, int64(nanos)).UTC(), nil
}

// Layout resolves a Datetime pattern into a Go layout.
func Layout(pattern string) (string, error) {
	if layout, have := DatetimePatterns[pattern]; have {
		return layout, nil
	}
	if strings.IndexFunc(pattern, unicode.IsDigit) >= 0 {
		return pattern, nil
	}
	return javaLayout(pattern)
}

// javaLayout translates a Java-style date pattern into a Go layout.
func javaLayout(pattern string) (string, error) {
	var (
		acc strings.Builder
		rs  = []rune(pattern)
	)
	for i := 0; i < len(rs); {
		r := rs[i]

		if r == '\'' {
			// Quoted literal text; '' is a single quote.
			j := i + 1
			if j < len(rs) && rs[j] == '\'' {
				acc.WriteRune('\'')
				i += 2
				continue
			}
			for ; j < len(rs); j++ {
				if rs[j] != '\'' {
					acc.WriteRune(rs[j])
					continue
				}
				if j+1 < len(rs) && rs[j+1] == '\'' {
					acc.WriteRune('\'')
					j++
					continue
				}
				break
			}
			if j == len(rs) {
				return "", fmt.Errorf("unterminated quote in pattern %q", pattern)
			}
			i = j + 1
			continue
		}

		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			acc.WriteRune(r)
			i++
			continue
		}

		n := 1
		for i+n < len(rs) && rs[i+n] == r {
			n++
		}
		i += n

		s, err := javaField(r, n)
		if err != nil {
			return "", fmt.Errorf("pattern %q: %w", pattern, err)
		}
		acc.WriteString(s)
	}
	return acc.String(), nil
}

func javaField(r rune, n int) (string, error) {
	switch r {
	case 'y', 'u':
		if n == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M', 'L':
		switch n {
		case 1:
			return "1", nil
		case 2:
			return "01", nil
		case 3:
			return "Jan", nil
		default:
			return "January", nil
		}
	case 'd':
		if n == 1 {
			return "2", nil
		}
		return "02", nil
	case 'H':
		return "15", nil
	case 'h':
		if n == 1 {
			return "3", nil
		}
		return "03", nil
	case 'm':
		if n == 1 {
			return "4", nil
		}
		return "04", nil
	case 's':
		if n == 1 {
			return "5", nil
		}
		return "05", nil
	case 'S':
		return strings.Repeat("0", n), nil
	case 'a':
		return "PM", nil
	case 'E':
		if n < 4 {
			return "Mon", nil
		}
		return "Monday", nil
	case 'z':
		return "MST", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch n {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		default:
			return "Z07:00", nil
		}
	case 'x':
		switch n {
		case 1:
			return "-07", nil
		case 2:
			return "-0700", nil
		default:
			return "-07:00", nil
		}
	default:
		return "", fmt.Errorf("unsupported pattern letter %q", r)
	}
}

var errNoDuration = errors.New("not a duration")

func toDuration(x interface{}, pattern string) (time.Duration, error) {
	if d, is := x.(time.Duration); is {
		return d, nil
	}

	switch pattern {
	case "":
		s, is := x.(string)
		if !is {
			// Numbers without a pattern are milliseconds.
			return amount(x, time.Millisecond)
		}
		s = strings.TrimSpace(s)
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		if d, err := parseISODuration(s); err == nil {
			return d, nil
		}
		return 0, fmt.Errorf("%q: %w", s, errNoDuration)
	case "xml", "iso8601", "iso":
		s, err := cast.ToStringE(x)
		if err != nil {
			return 0, err
		}
		return parseISODuration(strings.TrimSpace(s))
	}

	unit, have := DurationUnits[pattern]
	if !have {
		return 0, fmt.Errorf("unsupported duration pattern %q", pattern)
	}
	return amount(x, unit)
}

func parseISODuration(s string) (time.Duration, error) {
	d, err := duration.Parse(s)
	if err != nil {
		return 0, err
	}
	return d.ToTimeDuration(), nil
}

func amount(x interface{}, unit time.Duration) (time.Duration, error) {
	r, err := toDecimal(x)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	nanos := f * float64(unit)
	if math.Abs(nanos) > math.MaxInt64 {
		return 0, fmt.Errorf("%v is out of range", x)
	}
	return time.Duration(nanos), nil
}
