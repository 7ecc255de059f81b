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

package hashing

import (
	"math"
	"reflect"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/shopspring/decimal"

	"dirpx.dev/commons/apis"
)

const (
	// Seed is the starting value for field-by-field combination.
	Seed int32 = 17
	// Multiplier is applied to the running hash before each new code is added.
	Multiplier int32 = 31

	// maxDepth bounds reflective recursion on deep acyclic graphs.
	maxDepth = 32
)

// Combine folds the code of v into the running hash h.
func Combine(h int32, v any) int32 {
	return Multiplier*h + Of(v)
}

// CombineAll folds vs left to right starting from Seed.
func CombineAll(vs ...any) int32 {
	h := Seed
	for _, v := range vs {
		h = Combine(h, v)
	}
	return h
}

// OfSlice hashes s element by element the way java.util.Arrays.hashCode
// does: a nil slice is 0, otherwise the fold starts at 1.
func OfSlice[T any](s []T) int32 {
	if s == nil {
		return 0
	}
	h := int32(1)
	for _, e := range s {
		h = Combine(h, e)
	}
	return h
}

// Of returns the hash code of v. Nil is 0 and apis.Hasher implementations
// hash themselves. See the package documentation for the other kinds.
func Of(v any) int32 {
	if code, ok := known(v); ok {
		return code
	}
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		return Bool(x)
	case int:
		return Int64(int64(x))
	case int8:
		return int32(x)
	case int16:
		return int32(x)
	case int32:
		return x
	case int64:
		return Int64(x)
	case uint:
		return Int64(int64(x))
	case uint8:
		return int32(x)
	case uint16:
		return int32(x)
	case uint32:
		return int32(x)
	case uint64:
		return Int64(int64(x))
	case float32:
		return Float32(x)
	case float64:
		return Float64(x)
	case string:
		return String(x)
	case []byte:
		return Bytes(x)
	}
	var w walker
	return w.of(addressable(reflect.ValueOf(v)), 0)
}

// known covers types whose code must not be derived from their fields.
func known(v any) (int32, bool) {
	switch x := v.(type) {
	case apis.Hasher:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return 0, true
		}
		return x.HashCode(), true
	case time.Time:
		return Int64(x.UnixNano()), true
	case decimal.Decimal:
		// String trims trailing zeros, so 1.0 and 1.00 share a code.
		return String(x.String()), true
	}
	return 0, false
}

// Bool returns 1231 for true and 1237 for false.
func Bool(b bool) int32 {
	if b {
		return 1231
	}
	return 1237
}

// Int64 folds the high and low halves of v.
func Int64(v int64) int32 {
	return int32(v ^ int64(uint64(v)>>32))
}

// Float32 returns the IEEE-754 bits of v with NaN canonicalized.
func Float32(v float32) int32 {
	if v != v {
		return 0x7fc00000
	}
	return int32(math.Float32bits(v))
}

// Float64 folds the IEEE-754 bits of v with NaN canonicalized.
func Float64(v float64) int32 {
	if math.IsNaN(v) {
		return Int64(0x7ff8000000000000)
	}
	return Int64(int64(math.Float64bits(v)))
}

// String hashes s over its UTF-16 code units: s[0]*31^(n-1) + ... + s[n-1].
func String(s string) int32 {
	var h int32
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = Multiplier*h + hi
			h = Multiplier*h + lo
			continue
		}
		h = Multiplier*h + r
	}
	return h
}

// Bytes hashes b like java.util.Arrays.hashCode(byte[]); bytes are signed.
func Bytes(b []byte) int32 {
	if b == nil {
		return 0
	}
	h := int32(1)
	for _, c := range b {
		h = Multiplier*h + int32(int8(c))
	}
	return h
}

// walker hashes a value graph. A pointer, map or slice reached again while
// its own code is being computed contributes 0; finished codes are reused,
// so shared subgraphs are walked once.
type walker struct {
	active map[visit]struct{}
	done   map[visit]int32
}

type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

func (w *walker) of(rv reflect.Value, depth int) int32 {
	if !rv.IsValid() || depth > maxDepth {
		return 0
	}
	rv = exposed(rv)
	if rv.CanInterface() && (rv.Kind() != reflect.Interface || !rv.IsNil()) {
		if code, ok := known(rv.Interface()); ok {
			return code
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return int32(rv.Int())
	case reflect.Int, reflect.Int64:
		return Int64(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return Int64(int64(rv.Uint()))
	case reflect.Float32:
		return Float32(float32(rv.Float()))
	case reflect.Float64:
		return Float64(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return Multiplier*(Multiplier*Seed+Float64(real(c))) + Float64(imag(c))
	case reflect.String:
		return String(rv.String())
	case reflect.Interface:
		if rv.IsNil() {
			return 0
		}
		return w.of(addressable(rv.Elem()), depth+1)
	case reflect.Pointer:
		if rv.IsNil() {
			return 0
		}
		return w.once(visit{rv.Pointer(), rv.Type(), 0}, func() int32 {
			return w.of(rv.Elem(), depth+1)
		})
	case reflect.Slice:
		if rv.IsNil() {
			return 0
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes())
		}
		return w.once(visit{rv.Pointer(), rv.Type(), rv.Len()}, func() int32 {
			return w.sequence(rv, depth)
		})
	case reflect.Array:
		return w.sequence(rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return 0
		}
		return w.once(visit{rv.Pointer(), rv.Type(), 0}, func() int32 {
			var h int32
			it := rv.MapRange()
			for it.Next() {
				h += w.of(addressable(it.Key()), depth+1) ^ w.of(addressable(it.Value()), depth+1)
			}
			return h
		})
	case reflect.Struct:
		h := Seed
		for i := 0; i < rv.NumField(); i++ {
			h = Multiplier*h + w.of(rv.Field(i), depth+1)
		}
		return h
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return Int64(int64(rv.Pointer()))
	}
	return 0
}

// once computes the code behind v at most once per walk.
func (w *walker) once(v visit, code func() int32) int32 {
	if c, ok := w.done[v]; ok {
		return c
	}
	if _, ok := w.active[v]; ok {
		return 0
	}
	if w.active == nil {
		w.active = make(map[visit]struct{})
		w.done = make(map[visit]int32)
	}
	w.active[v] = struct{}{}
	c := code()
	delete(w.active, v)
	w.done[v] = c
	return c
}

func (w *walker) sequence(rv reflect.Value, depth int) int32 {
	h := int32(1)
	for i := 0; i < rv.Len(); i++ {
		h = Multiplier*h + w.of(rv.Index(i), depth+1)
	}
	return h
}

// addressable returns rv itself or an addressable copy of it, so that the
// unexported fields below it can be exposed.
func addressable(rv reflect.Value) reflect.Value {
	if !rv.IsValid() || rv.CanAddr() || !rv.CanInterface() {
		return rv
	}
	c := reflect.New(rv.Type()).Elem()
	c.Set(rv)
	return c
}

// exposed returns an interfaceable view of an addressable value read
// through an unexported field, so it hashes like an exported one.
func exposed(rv reflect.Value) reflect.Value {
	if rv.CanInterface() || !rv.CanAddr() {
		return rv
	}
	return reflect.NewAt(rv.Type(), unsafe.Pointer(rv.UnsafeAddr())).Elem()
}
