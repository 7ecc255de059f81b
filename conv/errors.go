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
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedType is returned when a value's dynamic type cannot be
	// converted to the requested target.
	ErrUnsupportedType = errors.New("commons(conv): unsupported type")

	// ErrInvalidValue is returned when a value has a supported type but its
	// content cannot be converted (for example, "abc" to an integer).
	ErrInvalidValue = errors.New("commons(conv): invalid value")

	// ErrOverflow is returned when a numeric value does not fit the target.
	ErrOverflow = errors.New("commons(conv): value out of range")

	// ErrShortBuffer is returned by the decoders when the input holds fewer
	// bytes than the target type needs.
	ErrShortBuffer = errors.New("commons(conv): buffer too short")

	// ErrInvalidDecimalBytes is returned by DecimalFromBytes for malformed
	// input.
	ErrInvalidDecimalBytes = errors.New("commons(conv): invalid decimal bytes")
)

// Empty is the shared zero-length byte slice returned for nil inputs by the
// encoders. It is never nil, so callers can distinguish "encoded nothing"
// from "not encoded".
var Empty = []byte{}

func unsupported(target string, v any) error {
	return fmt.Errorf("%w: cannot convert %T to %s", ErrUnsupportedType, v, target)
}

func invalid(target string, v any, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: cannot convert %T(%v) to %s", ErrInvalidValue, v, v, target)
	}
	return fmt.Errorf("%w: cannot convert %T(%v) to %s: %v", ErrInvalidValue, v, v, target, cause)
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or
// channel wrapped in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// isText reports whether v carries its value as text, in which case a failed
// conversion is a content problem rather than a type problem.
func isText(v any) bool {
	switch v.(type) {
	case string, *string, []byte, json.Number, *json.Number:
		return true
	default:
		return false
	}
}

// fail classifies a conversion error from an underlying parser.
func fail(target string, v any, cause error) error {
	if isText(v) {
		return invalid(target, v, cause)
	}
	return unsupported(target, v)
}
