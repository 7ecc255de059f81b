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

package commons

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/builder"
	"dirpx.dev/commons/config"
	"dirpx.dev/commons/enums"
	"dirpx.dev/commons/typekey"
	uref "dirpx.dev/commons/utils/reflect"
)

// init publishes the default snapshot.
func init() {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	st.Store(&state{
		cfg: cfg,
		reg: reg,
		res: b.BuildResolver(cfg, reg, nil, nil),
		bld: b,
		enm: enums.New(nil, enums.WithFallback(cfg.DefaultLocale)),
		log: zap.NewNop(),
	})
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("commons: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("commons: builder returned nil resolver")
)

// KeyOf returns the key of v's type. It is the same key typekey.OfValue
// produces: the Go qualified name, unaffected by apis.Named and registry
// aliases. The type is remembered so ActualType can resolve the key later.
func KeyOf(v any) typekey.Key {
	if v == nil {
		return typekey.Key{}
	}
	k := typekey.OfValue(v)
	remember(k, reflect.TypeOf(v), st.Load().cfg)
	return k
}

// KeyOfType is like KeyOf for a reflect.Type.
func KeyOfType(t reflect.Type) typekey.Key {
	if t == nil {
		return typekey.Key{}
	}
	k := typekey.New(t)
	remember(k, t, st.Load().cfg)
	return k
}

// NameOf returns the display name of v's type as chosen by the global
// resolver: apis.Named first, then a registered alias, then the qualified
// Go name.
func NameOf(v any) string {
	if v == nil {
		return ""
	}
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// NameOfType is like NameOf for a reflect.Type.
func NameOfType(t reflect.Type) string {
	if t == nil {
		return ""
	}
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// RegisterType adds a type-name mapping to the global registry.
func RegisterType(t reflect.Type, name string) error {
	return st.Load().reg.Register(t, name)
}

// ActualType resolves k back to its type. The global registry is consulted
// first (registered names and the keys of registered types), then the types
// seen by KeyOf and KeyOfType in this process. Other names fail with
// typekey.ErrTypeNotFound.
func ActualType(k typekey.Key) (reflect.Type, error) {
	t, err := k.ActualType(st.Load().reg)
	if err == nil {
		return t, nil
	}
	if v, ok := seen.Load(k.Name()); ok {
		return v.(reflect.Type), nil
	}
	return nil, err
}

// seen maps key names produced by KeyOf/KeyOfType to their normalized types.
var seen sync.Map

func remember(k typekey.Key, t reflect.Type, cfg apis.Config) {
	if k.IsZero() {
		return
	}
	if _, ok := seen.Load(k.Name()); ok {
		return
	}
	if nt, err := uref.Normalize(t, cfg); err == nil {
		seen.LoadOrStore(k.Name(), nt)
	}
}

// RegisterEnum registers E's constants with the global enum registry.
//
// The default global registry has no bundle loader, so every name falls
// back to the constant's String() until a registry with a loader is
// installed:
//
//	commons.SetEnums(enums.New(enums.FSLoader{FS: bundles}))
func RegisterEnum[E enums.Enum](basename string, values ...E) error {
	return enums.Register(st.Load().enm, basename, values...)
}

// LocalizedName returns the localized name of v. language.Und selects the
// configured default locale.
func LocalizedName[E enums.Enum](v E, tag language.Tag) string {
	s := st.Load()
	return enums.LocalizedName(s.enm, v, s.locale(tag))
}

// LocalizedNames returns the localized names of every registered constant
// of E.
func LocalizedNames[E enums.Enum](tag language.Tag) map[E]string {
	s := st.Load()
	return enums.LocalizedNames[E](s.enm, s.locale(tag))
}

// SetAll explicitly sets the configuration, extension and type layers.
//
// Nil arguments leave the corresponding component unchanged, except for ext
// which is always replaced. A non-nil reg or res is pinned; nil ones are
// rebuilt and unpinned. The enum registry and logger are kept.
func SetAll(cfg *apis.Config, ext any, reg apis.TypeRegistry, res apis.Resolver, bld apis.Builder) {
	publish("all", func(old *state) *state {
		next := old.clone()
		if cfg != nil {
			next.cfg = *cfg
		}
		if bld != nil {
			next.bld = bld
		}
		next.ext = ext
		next.reg, next.preg = reg, reg != nil
		next.res, next.pres = res, res != nil
		next.rebuild(old)
		return next
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds the layers that
// are not pinned.
func SetConfig(cfg apis.Config) {
	publish("config", func(old *state) *state {
		next := old.clone()
		next.cfg = cfg
		next.rebuild(old)
		return next
	})
}

// Registry returns the global type registry.
func Registry() apis.TypeRegistry {
	return st.Load().reg
}

// SetRegistry installs reg and pins it. An unpinned resolver is rebuilt on
// top of it. A nil reg is ignored.
func SetRegistry(reg apis.TypeRegistry) {
	if reg == nil {
		return
	}
	publish("registry", func(old *state) *state {
		next := old.clone()
		next.reg, next.preg = reg, true
		next.rebuild(old)
		return next
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res and pins it. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	publish("resolver", func(old *state) *state {
		next := old.clone()
		next.res, next.pres = res, true
		return next
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds the layers that are not pinned. A nil b
// is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish("builder", func(old *state) *state {
		next := old.clone()
		next.bld = b
		next.rebuild(old)
		return next
	})
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	publish("ext", func(old *state) *state {
		next := old.clone()
		next.ext = ext
		next.rebuild(old)
		return next
	})
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// Enums returns the global enum registry.
func Enums() *enums.Registry {
	return st.Load().enm
}

// SetEnums installs r as the global enum registry. A nil r is ignored.
func SetEnums(r *enums.Registry) {
	if r == nil {
		return
	}
	publish("enums", func(old *state) *state {
		next := old.clone()
		next.enm = r
		return next
	})
}

// Logger returns the global logger. It is a no-op logger unless SetLogger
// was called.
func Logger() *zap.Logger {
	return st.Load().log
}

// SetLogger installs l as the global logger. A nil l restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	publish("logger", func(old *state) *state {
		next := old.clone()
		next.log = l
		return next
	})
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() { setPins(ptr(true), nil) }

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() { setPins(ptr(false), nil) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops the global resolver from being rebuilt.
func PinResolver() { setPins(nil, ptr(true)) }

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() { setPins(nil, ptr(false)) }

func setPins(preg, pres *bool) {
	publish("pins", func(old *state) *state {
		next := old.clone()
		if preg != nil {
			next.preg = *preg
		}
		if pres != nil {
			next.pres = *pres
		}
		return next
	})
}

func ptr(b bool) *bool { return &b }

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// publish derives a new snapshot from the current one under buildMu and
// stores it.
func publish(what string, derive func(old *state) *state) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := derive(st.Load())
	st.Store(next)
	next.log.Debug("commons: snapshot published",
		zap.String("change", what),
		zap.Bool("registry_pinned", next.preg),
		zap.Bool("resolver_pinned", next.pres))
}

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state.
type state struct {
	cfg apis.Config
	ext any
	reg apis.TypeRegistry
	res apis.Resolver
	bld apis.Builder
	enm *enums.Registry
	log *zap.Logger
	// preg and pres mark the registry and resolver as pinned.
	preg bool
	pres bool
}

func (s *state) clone() *state {
	c := *s
	return &c
}

// rebuild recreates the unpinned layers of s with s.bld, migrating from
// old. It panics when the builder returns nil.
func (s *state) rebuild(old *state) {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, old.reg, s.ext)
	}
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, old.res, s.ext)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
}

func (s *state) locale(tag language.Tag) language.Tag {
	if tag == language.Und {
		return s.cfg.DefaultLocale
	}
	return tag
}
