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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/config"
	"dirpx.dev/commons/typekey"
	uref "dirpx.dev/commons/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("commons(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("commons(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different name.
	ErrConflictingRegistration = errors.New("commons(registry): conflicting type registration")
	// ErrConflictingName indicates an attempt to register a name that is
	// already bound to a different type.
	ErrConflictingName = errors.New("commons(registry): name already bound to another type")
)

// New constructs a TypeRegistry that normalizes types according to cfg.
// Only MaxUnwrap and MapPreferElem are used here.
func New(cfg apis.Config) *Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &Registry{cfg: cfg}
}

// Registry is a bidirectional type <-> name registry backed by sync.Map.
// Reads never lock; writes serialize on mu so that every direction and the
// counter stay consistent.
type Registry struct {
	cfg apis.Config
	mu  sync.Mutex
	// byType maps normalized reflect.Type to registered name.
	byType sync.Map
	// byName maps registered name to normalized reflect.Type.
	byName sync.Map
	// byKey maps the typekey name of each registered type to the type.
	byKey sync.Map
	count int
}

var (
	_ apis.TypeRegistry = (*Registry)(nil)
	_ apis.Clearable    = (*Registry)(nil)
)

// Register associates the nearest named type of t with name.
// It is idempotent for the same (type, name) pair.
func (r *Registry) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Lock-free idempotency check for the common re-registration case.
	if done, err := r.check(b, name); done {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if done, err := r.check(b, name); done {
		return err
	}

	r.byType.Store(b, name)
	r.byName.Store(name, b)
	if k := typekey.New(b); !k.IsZero() {
		r.byKey.Store(k.Name(), b)
	}
	r.count++
	return nil
}

// check reports whether Register can finish without storing: done is true
// when either side is already bound, with err nil for an exact duplicate.
func (r *Registry) check(b reflect.Type, name string) (done bool, err error) {
	if old, ok := r.byType.Load(b); ok {
		if old.(string) == name {
			return true, nil
		}
		return true, ErrConflictingRegistration
	}
	if _, ok := r.byName.Load(name); ok {
		return true, ErrConflictingName
	}
	return false, nil
}

// Lookup returns the name registered for t's nearest named type.
func (r *Registry) Lookup(t reflect.Type) (name string, ok bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.byType.Load(nt); ok {
		return v.(string), true
	}
	return "", false
}

// Find returns the type registered under name. Besides registered names it
// accepts the typekey name of any registered type, so every Key produced by
// typekey resolves as long as its type is registered. Registered names win
// when both match.
func (r *Registry) Find(name string) (reflect.Type, bool) {
	if name == "" {
		return nil, false
	}
	if v, ok := r.byName.Load(name); ok {
		return v.(reflect.Type), true
	}
	if v, ok := r.byKey.Load(name); ok {
		return v.(reflect.Type), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *Registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.byType.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			Name: value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType.Clear()
	r.byName.Clear()
	r.byKey.Clear()
	r.count = 0
}

// Clear is an alias of Reset.
func (r *Registry) Clear() { r.Reset() }
