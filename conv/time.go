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
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ToTime converts v to an instant.
//
// Integers (and integer-valued strings or json.Number) are read as
// milliseconds since the Unix epoch and returned in UTC. Other strings are
// parsed as RFC 3339 first and then with the layouts spf13/cast knows. A
// Date converts to midnight UTC. Nil and blank strings yield the zero time.
func ToTime(v any) (time.Time, error) {
	if isNil(v) {
		return time.Time{}, nil
	}

	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		return *x, nil
	case Date:
		return x.Time(time.UTC), nil
	case *Date:
		return x.Time(time.UTC), nil
	case json.Number:
		return parseTime(v, string(x))
	case string:
		return parseTime(v, x)
	case []byte:
		return parseTime(v, string(x))
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return TimeFromMillis(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := ToE[int64](rv.Uint())
		if err != nil {
			return time.Time{}, err
		}
		return TimeFromMillis(n), nil
	case reflect.String:
		return parseTime(v, rv.String())
	default:
		return time.Time{}, unsupported("time.Time", v)
	}
}

func parseTime(v any, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return TimeFromMillis(ms), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := cast.StringToDate(s)
	if err != nil {
		return time.Time{}, invalid("time.Time", v, err)
	}
	return t, nil
}

// ToTimeOr is like ToTime but returns def when v is nil. Conversion errors
// are still reported.
func ToTimeOr(v any, def time.Time) (time.Time, error) {
	if isNil(v) {
		return def, nil
	}
	return ToTime(v)
}

// MustTime is like ToTime but panics on error.
func MustTime(v any) time.Time {
	t, err := ToTime(v)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeToMillis returns *p as milliseconds since the Unix epoch, or 0 for nil.
func TimeToMillis(p *time.Time) int64 {
	if p == nil {
		return 0
	}
	return p.UnixMilli()
}

// TimeFromMillis returns the UTC instant ms milliseconds after the Unix
// epoch.
func TimeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
