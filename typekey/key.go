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

// Package typekey provides Key, a name-only surrogate for a Go type.
//
// A Key holds the fully qualified name of a type ("dirpx.dev/billing.Invoice")
// rather than the reflect.Type itself. Long-lived caches keyed by Key can be
// persisted, shipped across process boundaries and compared with keys
// produced elsewhere: equality, hashing and ordering depend only on the name.
package typekey

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/config"
	"dirpx.dev/commons/hashing"
	uref "dirpx.dev/commons/utils/reflect"
)

// ErrTypeNotFound is returned when a Key cannot be resolved back to a type.
var ErrTypeNotFound = errors.New("commons(typekey): type not found")

// Key identifies a type by its fully qualified name. The zero Key names no
// type. Key is comparable and can be used directly as a map key.
type Key struct {
	name string
}

var _ apis.Hasher = Key{}

// New returns the Key of the nearest named type of t (pointers, slices,
// arrays, channels and maps are unwrapped). Nil and unnamed types yield the
// zero Key.
func New(t reflect.Type) Key {
	name, err := uref.QualifiedName(t, config.DefaultConfig())
	if err != nil {
		return Key{}
	}
	return Key{name: name}
}

// For returns the Key of T.
func For[T any]() Key {
	return New(reflect.TypeFor[T]())
}

// OfValue returns the Key of v's dynamic type. A nil v yields the zero Key.
//
// The key is always the Go qualified name: apis.Named values and registry
// aliases name a type for display, they never change its Key.
func OfValue(v any) Key {
	if v == nil {
		return Key{}
	}
	return New(reflect.TypeOf(v))
}

// FromName wraps an already qualified type name.
func FromName(name string) Key {
	return Key{name: strings.TrimSpace(name)}
}

// Name returns the qualified type name.
func (k Key) Name() string { return k.name }

// String implements fmt.Stringer.
func (k Key) String() string { return k.name }

// IsZero reports whether k names no type.
func (k Key) IsZero() bool { return k.name == "" }

// Equal reports whether k and o name the same type.
func (k Key) Equal(o Key) bool { return k.name == o.name }

// Compare orders keys by name; it returns -1, 0 or +1.
func (k Key) Compare(o Key) int { return strings.Compare(k.name, o.name) }

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool { return k.name < o.name }

// HashCode returns the string hash of the name.
func (k Key) HashCode() int32 { return hashing.String(k.name) }

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	*k = FromName(string(text))
	return nil
}

// ActualType resolves k back to a reflect.Type through reg. Go cannot load
// a type from its name, so only types registered in reg are found; reg
// matches k against both registered names and the keys of registered types.
func (k Key) ActualType(reg apis.TypeRegistry) (reflect.Type, error) {
	if k.name == "" {
		return nil, fmt.Errorf("%w: zero key", ErrTypeNotFound)
	}
	if reg != nil {
		if t, ok := reg.Find(k.name); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, k.name)
}

// MustActualType is like ActualType but panics when the type is unknown.
func (k Key) MustActualType(reg apis.TypeRegistry) reflect.Type {
	t, err := k.ActualType(reg)
	if err != nil {
		panic(err)
	}
	return t
}
