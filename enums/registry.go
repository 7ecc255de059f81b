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

package enums

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/config"
	"dirpx.dev/commons/typekey"
	uref "dirpx.dev/commons/utils/reflect"
)

var (
	// ErrEmptyBasename is returned by Register when basename is empty.
	ErrEmptyBasename = errors.New("commons(enums): empty basename")

	// ErrNoValues is returned by Register when no constants are given.
	ErrNoValues = errors.New("commons(enums): no values to register")

	// ErrConflictingBasename is returned by Register when the type is
	// already registered under a different basename.
	ErrConflictingBasename = errors.New("commons(enums): type already registered with a different basename")

	// ErrConflictingType is returned by Register when another Go type is
	// registered under the same key, such as E and *E.
	ErrConflictingType = errors.New("commons(enums): key already registered for another type")

	// ErrUnnamedType is returned by Register for types without a key.
	ErrUnnamedType = errors.New("commons(enums): enum type has no name")
)

// Enum is the constraint for localizable types.
type Enum interface {
	comparable
	fmt.Stringer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report bundle loading problems.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFallback sets the locale used when a lookup passes language.Und.
func WithFallback(tag language.Tag) Option {
	return func(r *Registry) {
		if tag != language.Und {
			r.fallback = tag
		}
	}
}

// Registry maps enum types to message bundles and caches localized names.
//
// Both maps are keyed by typekey.Key, so a registration survives only as a
// name and never pins the reflect.Type. Lookups are lock-free once a
// (type, locale) pair has been loaded. Registration serializes on a mutex
// and publishes a fresh binding, so readers never observe a half-built one.
type Registry struct {
	loader   apis.BundleLoader
	logger   *zap.Logger
	fallback language.Tag

	mu sync.Mutex
	// bindings maps typekey.Key -> *binding.
	bindings sync.Map
	// names maps typekey.Key -> *localeCache.
	names sync.Map
}

// binding is immutable once stored.
type binding struct {
	basename string
	// typ guards against two Go types sharing one key, e.g. E and *E.
	typ      reflect.Type
	typeName string
	values   []any
	known    map[any]struct{}
}

// localeCache holds the per-locale names computed for one binding.
type localeCache struct {
	owner *binding
	m     sync.Map // locale string -> map[any]string
}

var _ apis.Clearable = (*Registry)(nil)

// New returns a Registry reading bundles through loader. A nil loader is
// allowed; every name then falls back to the constant's String().
func New(loader apis.BundleLoader, opts ...Option) *Registry {
	r := &Registry{
		loader:   loader,
		logger:   zap.NewNop(),
		fallback: language.English,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates E with basename and records its constants.
//
// Registering again with the same basename adds any new constants and
// drops the cached names for E. A different basename fails with
// ErrConflictingBasename; another Go type already registered under the
// same key fails with ErrConflictingType.
func Register[E Enum](r *Registry, basename string, values ...E) error {
	if basename == "" {
		return ErrEmptyBasename
	}
	if len(values) == 0 {
		return ErrNoValues
	}

	t := reflect.TypeFor[E]()
	key := typekey.For[E]()
	if key.IsZero() {
		return fmt.Errorf("%w: %s", ErrUnnamedType, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var prev *binding
	if v, ok := r.bindings.Load(key); ok {
		prev = v.(*binding)
		if prev.typ != t {
			return fmt.Errorf("%w: %s is taken by %s", ErrConflictingType, key, prev.typ)
		}
		if prev.basename != basename {
			return fmt.Errorf("%w: %s is bound to %q, not %q",
				ErrConflictingBasename, key, prev.basename, basename)
		}
	}

	next := &binding{
		basename: basename,
		typ:      t,
		typeName: uref.ShortName(t, config.DefaultConfig()),
		known:    make(map[any]struct{}, len(values)),
	}
	if prev != nil {
		next.values = append(next.values, prev.values...)
		for k := range prev.known {
			next.known[k] = struct{}{}
		}
	}
	for _, v := range values {
		if _, dup := next.known[v]; dup {
			continue
		}
		next.known[v] = struct{}{}
		next.values = append(next.values, v)
	}

	r.bindings.Store(key, next)
	r.names.Delete(key)
	r.logger.Debug("enum registered",
		zap.Stringer("key", key),
		zap.String("basename", basename),
		zap.Int("values", len(next.values)))
	return nil
}

// Unregister removes E and its cached names. It reports whether E was
// registered.
func Unregister[E Enum](r *Registry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lookup[E](r) == nil {
		return false
	}
	key := typekey.For[E]()
	r.bindings.Delete(key)
	r.names.Delete(key)
	return true
}

// IsRegistered reports whether E has been registered.
func IsRegistered[E Enum](r *Registry) bool {
	return lookup[E](r) != nil
}

// Basename returns the bundle basename E was registered with.
func Basename[E Enum](r *Registry) (string, bool) {
	b := lookup[E](r)
	if b == nil {
		return "", false
	}
	return b.basename, true
}

// LocalizedName returns the name of v in the given locale.
//
// Unregistered types, and constants that were not passed to Register,
// return v.String(). language.Und selects the registry's fallback locale.
func LocalizedName[E Enum](r *Registry, v E, tag language.Tag) string {
	b := lookup[E](r)
	if b == nil {
		return v.String()
	}
	if name, ok := r.namesFor(typekey.For[E](), b, tag)[v]; ok {
		return name
	}
	return v.String()
}

// LocalizedNames returns the localized names of every registered constant of
// E. The map is a fresh copy; nil is returned for unregistered types.
func LocalizedNames[E Enum](r *Registry, tag language.Tag) map[E]string {
	b := lookup[E](r)
	if b == nil {
		return nil
	}
	names := r.namesFor(typekey.For[E](), b, tag)
	out := make(map[E]string, len(names))
	for k, v := range names {
		out[k.(E)] = v
	}
	return out
}

// Keys returns the keys of the registered types in name order.
func (r *Registry) Keys() []typekey.Key {
	var keys []typekey.Key
	r.bindings.Range(func(k, _ any) bool {
		keys = append(keys, k.(typekey.Key))
		return true
	})
	slices.SortFunc(keys, typekey.Key.Compare)
	return keys
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	n := 0
	r.bindings.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear drops every cached locale map, keeping registrations. The next
// lookup reloads from the bundle loader.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names.Clear()
}

// Reset drops all registrations and caches.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings.Clear()
	r.names.Clear()
}

func lookup[E Enum](r *Registry) *binding {
	v, ok := r.bindings.Load(typekey.For[E]())
	if !ok {
		return nil
	}
	b := v.(*binding)
	if b.typ != reflect.TypeFor[E]() {
		return nil
	}
	return b
}

// cacheFor returns the locale cache of key built for b. A cache left over
// from an earlier binding is replaced.
func (r *Registry) cacheFor(key typekey.Key, b *binding) *localeCache {
	v, _ := r.names.LoadOrStore(key, &localeCache{owner: b})
	c := v.(*localeCache)
	if c.owner == b {
		return c
	}
	fresh := &localeCache{owner: b}
	if r.names.CompareAndSwap(key, c, fresh) {
		return fresh
	}
	// Lost to a concurrent writer; serve this lookup uncached.
	return &localeCache{owner: b}
}

// namesFor returns the cached names of b's constants for tag, loading the
// bundle on first use. Concurrent first lookups may each load; the first
// stored map wins.
func (r *Registry) namesFor(key typekey.Key, b *binding, tag language.Tag) map[any]string {
	if tag == language.Und {
		tag = r.fallback
	}
	locale := tag.String()
	c := r.cacheFor(key, b)
	if m, ok := c.m.Load(locale); ok {
		return m.(map[any]string)
	}

	messages := r.load(b.basename, tag)
	out := make(map[any]string, len(b.values))
	var missing []string
	for _, v := range b.values {
		name := v.(fmt.Stringer).String()
		switch {
		case messages[b.typeName+"."+name] != "":
			out[v] = messages[b.typeName+"."+name]
		case messages[name] != "":
			out[v] = messages[name]
		default:
			out[v] = name
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 && messages != nil {
		r.logger.Debug("enum messages missing, using constant names",
			zap.Stringer("key", key),
			zap.String("locale", locale),
			zap.Strings("constants", missing))
	}

	actual, _ := c.m.LoadOrStore(locale, out)
	return actual.(map[any]string)
}

func (r *Registry) load(basename string, tag language.Tag) map[string]string {
	if r.loader == nil {
		return nil
	}
	messages, err := r.loader.Load(basename, tag)
	if err != nil {
		r.logger.Warn("enum bundle unavailable, using constant names",
			zap.String("basename", basename),
			zap.String("locale", tag.String()),
			zap.Error(err))
		return nil
	}
	r.logger.Debug("enum bundle loaded",
		zap.String("basename", basename),
		zap.String("locale", tag.String()),
		zap.Int("messages", len(messages)))
	return messages
}
