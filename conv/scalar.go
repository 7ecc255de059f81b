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
	"fmt"
	"math"
	"reflect"

	"github.com/spf13/cast"
	"golang.org/x/exp/constraints"
)

// Scalar is the set of types the coercion helpers can produce.
type Scalar interface {
	~bool | ~string | constraints.Integer | constraints.Float
}

// To converts v to T, returning the zero value when v is nil or cannot be
// converted.
func To[T Scalar](v any) T {
	out, err := ToE[T](v)
	if err != nil {
		var zero T
		return zero
	}
	return out
}

// ToOr converts v to T, returning def when v is nil or cannot be converted.
func ToOr[T Scalar](v any, def T) T {
	if isNil(v) {
		return def
	}
	out, err := ToE[T](v)
	if err != nil {
		return def
	}
	return out
}

// ToPtr converts v to a freshly allocated T. A nil v, or one that cannot be
// converted, yields nil.
func ToPtr[T Scalar](v any) *T {
	return ToPtrOr[T](v, nil)
}

// ToPtrOr is like ToPtr but returns def instead of nil.
func ToPtrOr[T Scalar](v any, def *T) *T {
	if isNil(v) {
		return def
	}
	out, err := ToE[T](v)
	if err != nil {
		return def
	}
	return &out
}

// ToE converts v to T and reports why it could not.
//
// A nil v converts to the zero value without error. Values already of type T
// (or *T) are returned as is. Everything else is delegated to spf13/cast
// according to T's kind, and integer results are range-checked against T:
// converting 300 to int8 fails with ErrOverflow instead of wrapping.
func ToE[T Scalar](v any) (T, error) {
	var out T
	if isNil(v) {
		return out, nil
	}
	switch x := v.(type) {
	case T:
		return x, nil
	case *T:
		return *x, nil
	}

	rv := reflect.ValueOf(&out).Elem()
	target := rv.Type().String()
	switch rv.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return out, fail(target, v, err)
		}
		rv.SetBool(b)
	case reflect.String:
		s, err := cast.ToStringE(v)
		if err != nil {
			return out, fail(target, v, err)
		}
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if u, ok := unsignedSource(v); ok && u > math.MaxInt64 {
			return out, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, u, target)
		}
		n, err := cast.ToInt64E(v)
		if err != nil {
			return out, fail(target, v, err)
		}
		if rv.OverflowInt(n) {
			return out, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, n, target)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if negativeSource(v) {
			return out, fmt.Errorf("%w: %v does not fit %s", ErrOverflow, v, target)
		}
		n, err := cast.ToUint64E(v)
		if err != nil {
			return out, fail(target, v, err)
		}
		if rv.OverflowUint(n) {
			return out, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, n, target)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return out, fail(target, v, err)
		}
		if !math.IsInf(f, 0) && rv.OverflowFloat(f) {
			return out, fmt.Errorf("%w: %g does not fit %s", ErrOverflow, f, target)
		}
		rv.SetFloat(f)
	default:
		return out, unsupported(target, v)
	}
	return out, nil
}

// unsignedSource returns v's value when v (or what it points to) is an
// unsigned integer.
func unsignedSource(v any) (uint64, bool) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	}
	return 0, false
}

// negativeSource reports whether v (or what it points to) is a negative
// signed integer or float.
func negativeSource(v any) bool {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() < 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() < 0
	}
	return false
}
