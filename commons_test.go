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
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/builder"
	"dirpx.dev/commons/config"
	"dirpx.dev/commons/enums"
	"dirpx.dev/commons/registry"
	"dirpx.dev/commons/typekey"
)

// Reset to a clean snapshot using b. Pins are reset because nil reg/res are
// passed.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config, ext any) {
	tb.Helper()
	SetAll(&cfg, ext, nil, nil, b)
}

// resetDefaults restores the production builder with an empty registry.
func resetDefaults(tb testing.TB) {
	tb.Helper()
	cfg := config.DefaultConfig()
	SetAll(&cfg, nil, registry.New(cfg), nil, builder.New())
	UnpinRegistry()
	SetEnums(enums.New(nil))
	SetLogger(nil)
}

func cfgString(cfg apis.Config) string {
	return strconv.FormatBool(cfg.IncludeBuiltins) + ":" +
		strconv.FormatBool(cfg.MapPreferElem) + ":" +
		strconv.Itoa(cfg.MaxUnwrap)
}

// ---------------------- Test doubles ----------------------

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[reflect.Type]string
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[reflect.Type]string)}
}

func (m *mockRegistry) Register(t reflect.Type, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[t] = name
	return nil
}

func (m *mockRegistry) Lookup(t reflect.Type) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.data[t]
	return n, ok
}

func (m *mockRegistry) Find(name string) (reflect.Type, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for t, n := range m.data {
		if n == name {
			return t, true
		}
	}
	return nil, false
}

func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]apis.Entry, 0, len(m.data))
	for t, n := range m.data {
		out = append(out, apis.Entry{Type: t, Name: n})
	}
	return out
}

func (m *mockRegistry) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *mockRegistry) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[reflect.Type]string)
}

type mockResolver struct {
	id string
}

func (r *mockResolver) Resolve(_ any, cfg apis.Config) string {
	return r.id + ":" + cfgString(cfg)
}

func (r *mockResolver) ResolveType(t reflect.Type, cfg apis.Config) string {
	return r.Resolve(nil, cfg) + ":" + t.String()
}

type mockBuilder struct {
	mu         sync.Mutex
	lastCfg    apis.Config
	lastExt    any
	lastPrev   string
	regCounter int
	resCounter int
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.TypeRegistry, ext any) apis.TypeRegistry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if mr, ok := prev.(*mockRegistry); ok {
		b.lastPrev = mr.id
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.TypeRegistry, _ apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter)}
}

func (b *mockBuilder) counters() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.resCounter
}

type nilBuilder struct{}

func (nilBuilder) BuildRegistry(apis.Config, apis.TypeRegistry, any) apis.TypeRegistry { return nil }
func (nilBuilder) BuildResolver(apis.Config, apis.TypeRegistry, apis.Resolver, any) apis.Resolver {
	return nil
}

var baseCfg = apis.Config{IncludeBuiltins: false, MapPreferElem: true, MaxUnwrap: 8}

// ---------------------- Snapshot tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, baseCfg, nil)

	s1Reg := Registry()
	s1Res := Resolver()

	SetConfig(apis.Config{IncludeBuiltins: true, MapPreferElem: false, MaxUnwrap: 4})

	if s1Reg == Registry() {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if s1Res == Resolver() {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}

	b.mu.Lock()
	gotCfg, gotPrev := b.lastCfg, b.lastPrev
	b.mu.Unlock()
	if gotCfg.MaxUnwrap != 4 || !gotCfg.IncludeBuiltins || gotCfg.MapPreferElem {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if gotPrev != "reg#1" {
		t.Fatalf("builder did not receive the previous registry, got %q", gotPrev)
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, baseCfg, nil)

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry did not pin the registry")
	}

	beforeRes := Resolver()
	SetConfig(apis.Config{IncludeBuiltins: true, MapPreferElem: true, MaxUnwrap: 8})

	if Registry() != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if Resolver() == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, baseCfg, nil)

	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	regBefore := Registry()

	SetConfig(apis.Config{IncludeBuiltins: true, MapPreferElem: true, MaxUnwrap: 8})

	if Resolver() != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if Registry() == regBefore {
		t.Fatalf("registry was not rebuilt on SetConfig when resolver is pinned")
	}
}

func TestSetters_IgnoreNil(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, baseCfg, nil)
	reg, res, bld, enm := Registry(), Resolver(), Builder(), Enums()

	SetRegistry(nil)
	SetResolver(nil)
	SetBuilder(nil)
	SetEnums(nil)

	if Registry() != reg || Resolver() != res || Builder() != bld || Enums() != enm {
		t.Fatalf("nil setter replaced a component")
	}
	if IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("nil setter pinned a layer")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, baseCfg, nil)

	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	if Registry() == regBefore {
		t.Fatalf("registry did not rebuild after SetBuilder (unpinned)")
	}
	if Resolver() != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder")
	}
	if regs, _ := b.counters(); regs != 1 {
		t.Fatalf("new builder built %d registries, want 1", regs)
	}
}

func TestSetExt_Rebuilds_Unpinned_and_PassesValue(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, baseCfg, nil)

	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	if ec, ok := got.(extCfg); !ok || ec.X != 42 {
		t.Fatalf("builder did not receive ext properly: %#v", got)
	}
	if ec, ok := ExtAs[extCfg](); !ok || ec.X != 42 {
		t.Fatalf("ExtAs = %#v, %v", ec, ok)
	}
	if _, ok := ExtAs[string](); ok {
		t.Fatalf("ExtAs[string] should not match")
	}

	PinRegistry()
	PinResolver()
	rBefore, sBefore := b.counters()
	SetExt(extCfg{X: 7})
	rAfter, sAfter := b.counters()
	if rAfter != rBefore || sAfter != sBefore {
		t.Fatalf("SetExt should not rebuild when both layers are pinned")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, baseCfg, nil)

	PinRegistry()
	PinResolver()
	if !IsRegistryPinned() || !IsResolverPinned() {
		t.Fatalf("Pin did not pin")
	}

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(apis.Config{IncludeBuiltins: true, MapPreferElem: false, MaxUnwrap: 4})
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	SetConfig(apis.Config{IncludeBuiltins: false, MapPreferElem: false, MaxUnwrap: 6})
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestSetAll_PinsGivenLayers(t *testing.T) {
	b := &mockBuilder{}
	reg := newMockRegistry("given")
	SetAll(&baseCfg, "ext", reg, nil, b)

	if Registry() != reg || !IsRegistryPinned() {
		t.Fatalf("SetAll did not install and pin the registry")
	}
	if IsResolverPinned() {
		t.Fatalf("SetAll pinned a resolver it built")
	}
	if got, _ := ExtAs[string](); got != "ext" {
		t.Fatalf("ExtAs = %q", got)
	}
	if Config() != baseCfg {
		t.Fatalf("Config = %+v", Config())
	}
}

func TestNilBuilderPanics(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, baseCfg, nil)
	defer resetDefaults(t)

	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrNilRegistry) {
			t.Fatalf("recover() = %v, want ErrNilRegistry", err)
		}
	}()
	SetBuilder(nilBuilder{})
}

// ---------------------- Keys ----------------------

type invoice struct{}

type aliased struct{}

type namedThing struct{}

func (namedThing) QualifiedName() string { return "custom.thing" }

func TestKeyOf_IsQualifiedName(t *testing.T) {
	resetDefaults(t)

	if got := KeyOf(invoice{}).Name(); got != "dirpx.dev/commons.invoice" {
		t.Fatalf("KeyOf(invoice) = %q", got)
	}
	if KeyOf(&invoice{}) != KeyOf(invoice{}) {
		t.Fatalf("pointer and value keys differ")
	}
	if !KeyOf(nil).IsZero() || !KeyOfType(nil).IsZero() {
		t.Fatalf("nil should yield the zero key")
	}

	if err := RegisterType(reflect.TypeOf(aliased{}), "billing.aliased"); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	for _, tc := range []struct {
		got, want typekey.Key
	}{
		{KeyOf(namedThing{}), typekey.For[namedThing]()},
		{KeyOf(aliased{}), typekey.For[aliased]()},
		{KeyOfType(reflect.TypeOf([]*aliased{})), typekey.For[aliased]()},
	} {
		if tc.got != tc.want {
			t.Fatalf("key = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestNameOf_UsesResolverChain(t *testing.T) {
	resetDefaults(t)

	if got := NameOf(invoice{}); got != "dirpx.dev/commons.invoice" {
		t.Fatalf("NameOf(invoice) = %q", got)
	}
	if got := NameOf(namedThing{}); got != "custom.thing" {
		t.Fatalf("NameOf(namedThing) = %q", got)
	}
	if err := RegisterType(reflect.TypeOf(aliased{}), "billing.aliased"); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	if got := NameOfType(reflect.TypeOf([]*aliased{})); got != "billing.aliased" {
		t.Fatalf("NameOfType(alias) = %q", got)
	}
	if NameOf(nil) != "" || NameOfType(nil) != "" {
		t.Fatalf("nil should yield an empty name")
	}
}

func TestActualType(t *testing.T) {
	resetDefaults(t)

	if err := RegisterType(reflect.TypeOf(aliased{}), "billing.aliased"); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	got, err := ActualType(typekey.FromName("billing.aliased"))
	if err != nil || got != reflect.TypeOf(aliased{}) {
		t.Fatalf("ActualType(alias) = %v, %v", got, err)
	}

	// A key built without KeyOf still resolves once its type is registered.
	key := typekey.For[aliased]()
	got, err = key.ActualType(Registry())
	if err != nil || got != reflect.TypeOf(aliased{}) {
		t.Fatalf("For[aliased]().ActualType(Registry()) = %v, %v", got, err)
	}

	k := KeyOf(&namedThing{})
	got, err = ActualType(k)
	if err != nil || got != reflect.TypeOf(namedThing{}) {
		t.Fatalf("ActualType(%s) = %v, %v", k, got, err)
	}

	if _, err := ActualType(typekey.FromName("no.such.Type")); !errors.Is(err, typekey.ErrTypeNotFound) {
		t.Fatalf("ActualType(unknown) error = %v", err)
	}
}

// ---------------------- Enums and logging ----------------------

type level int

const (
	low level = iota
	high
)

func (l level) String() string {
	if l == low {
		return "LOW"
	}
	return "HIGH"
}

func TestLocalizedName_UsesConfiguredLocale(t *testing.T) {
	resetDefaults(t)
	SetEnums(enums.New(enums.MapLoader{
		"levels":    {"HIGH": "high"},
		"levels_de": {"level.LOW": "niedrig", "level.HIGH": "hoch"},
	}))

	if err := RegisterEnum("levels", low, high); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}

	if got := LocalizedName(low, language.German); got != "niedrig" {
		t.Fatalf("LocalizedName(low, de) = %q", got)
	}
	if got := LocalizedName(low, language.Und); got != "LOW" {
		t.Fatalf("LocalizedName(low, und) = %q", got)
	}

	cfg := config.NewConfig(config.WithDefaultLocale(language.German))
	SetConfig(cfg)
	if got := LocalizedName(high, language.Und); got != "hoch" {
		t.Fatalf("LocalizedName(high, und) with de default = %q", got)
	}

	names := LocalizedNames[level](language.English)
	if names[low] != "LOW" || names[high] != "high" {
		t.Fatalf("LocalizedNames(en) = %v", names)
	}
}

func TestSetLogger_ReceivesSnapshotEvents(t *testing.T) {
	resetDefaults(t)
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	SetConfig(config.DefaultConfig())

	entries := logs.FilterMessage("commons: snapshot published").All()
	if len(entries) == 0 {
		t.Fatalf("no snapshot event logged")
	}
	last := entries[len(entries)-1]
	if got := last.ContextMap()["change"]; got != "config" {
		t.Fatalf("change = %v, want config", got)
	}
	if Logger().Core() != core {
		t.Fatalf("Logger() is not the installed logger")
	}
}

// ---------------------- Concurrency ----------------------

func TestKeyOf_Concurrent_With_SetConfig(t *testing.T) {
	resetDefaults(t)

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if KeyOf(token{}).IsZero() {
					t.Errorf("KeyOf(token) returned the zero key")
					return
				}
				_ = KeyOfType(reflect.TypeOf(token{}))
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(
				config.WithMapPreferElem(i%3 == 0),
				config.WithMaxUnwrap(4+(i%5)),
			))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
