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
	"reflect"
	"unsafe"
)

// Fixed is the set of types with a fixed-width binary encoding.
type Fixed interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Fixed]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Encode returns the fixed-width encoding of v in the given byte order.
func Encode[T Fixed](v T, order Order) []byte {
	return Append(make([]byte, 0, SizeOf[T]()), v, order)
}

// EncodePtr is like Encode but returns Empty when p is nil.
func EncodePtr[T Fixed](p *T, order Order) []byte {
	if p == nil {
		return Empty
	}
	return Encode(*p, order)
}

// Append appends the fixed-width encoding of v to dst and returns the
// extended buffer.
//
// Floats are written from their raw bits, so NaN payloads and signed zeros
// survive a round trip. Booleans are written as a single 0 or 1 byte.
func Append[T Fixed](dst []byte, v T, order Order) []byte {
	bo := order.appendOrder()
	p := unsafe.Pointer(&v)
	switch unsafe.Sizeof(v) {
	case 1:
		b := *(*uint8)(p)
		if isBool[T]() && b != 0 {
			b = 1
		}
		return append(dst, b)
	case 2:
		return bo.AppendUint16(dst, *(*uint16)(p))
	case 4:
		return bo.AppendUint32(dst, *(*uint32)(p))
	default:
		return bo.AppendUint64(dst, *(*uint64)(p))
	}
}

// Decode reads a T from the first SizeOf[T]() bytes of b. Extra trailing
// bytes are ignored.
func Decode[T Fixed](b []byte, order Order) (T, error) {
	var out T
	n := int(unsafe.Sizeof(out))
	if len(b) < n {
		return out, fmt.Errorf("%w: %s needs %d bytes, got %d",
			ErrShortBuffer, reflect.TypeFor[T](), n, len(b))
	}

	bo := order.ByteOrder()
	p := unsafe.Pointer(&out)
	switch n {
	case 1:
		v := b[0]
		if isBool[T]() && v != 0 {
			v = 1
		}
		*(*uint8)(p) = v
	case 2:
		*(*uint16)(p) = bo.Uint16(b)
	case 4:
		*(*uint32)(p) = bo.Uint32(b)
	default:
		*(*uint64)(p) = bo.Uint64(b)
	}
	return out, nil
}

// DecodeOr is like Decode but returns def for nil or short input.
func DecodeOr[T Fixed](b []byte, order Order, def T) T {
	out, err := Decode[T](b, order)
	if err != nil {
		return def
	}
	return out
}

func isBool[T Fixed]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Bool
}
