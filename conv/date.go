/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package conv

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	secondsInDay = 24 * 60 * 60
)

// Date is a calendar date without a time of day or zone. The zero value is
// not a valid calendar date and renders as "".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate returns the date for year, month and day. Out-of-range values are
// normalized the way time.Date does, so NewDate(2024, 2, 30) is 2024-03-01.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses an ISO-8601 calendar date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, invalid("conv.Date", s, err)
	}
	return DateOf(t), nil
}

// DateFromEpochDay returns the date n days after 1970-01-01.
func DateFromEpochDay(n int64) Date {
	return DateOf(time.Unix(n*secondsInDay, 0).UTC())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns d as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of d in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EpochDay returns the number of days between 1970-01-01 and d.
func (d Date) EpochDay() int64 {
	return d.Time(time.UTC).Unix() / secondsInDay
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ToDate converts v to a Date.
//
// Integers are read as epoch days. Strings are parsed as YYYY-MM-DD first and
// then as instants (see ToTime), keeping the instant's own calendar date.
// Nil and blank strings yield the zero Date.
func ToDate(v any) (Date, error) {
	if isNil(v) {
		return Date{}, nil
	}

	switch x := v.(type) {
	case Date:
		return x, nil
	case *Date:
		return *x, nil
	case time.Time:
		return DateOf(x), nil
	case *time.Time:
		return DateOf(*x), nil
	case json.Number:
		return parseDateText(v, string(x))
	case string:
		return parseDateText(v, x)
	case []byte:
		return parseDateText(v, string(x))
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return DateFromEpochDay(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := ToE[int64](rv.Uint())
		if err != nil {
			return Date{}, err
		}
		return DateFromEpochDay(n), nil
	case reflect.String:
		return parseDateText(v, rv.String())
	default:
		return Date{}, unsupported("conv.Date", v)
	}
}

func parseDateText(v any, s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return DateFromEpochDay(n), nil
	}
	t, err := parseTime(v, s)
	if err != nil {
		return Date{}, invalid("conv.Date", v, err)
	}
	return DateOf(t), nil
}

// ToDateOr is like ToDate but returns def when v is nil.
func ToDateOr(v any, def Date) (Date, error) {
	if isNil(v) {
		return def, nil
	}
	return ToDate(v)
}
