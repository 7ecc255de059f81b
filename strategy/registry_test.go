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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/commons/apis"
	cregistry "dirpx.dev/commons/registry"
	"dirpx.dev/commons/strategy"
)

type A struct{}
type G[T any] struct{}

func baseCfg() apis.Config {
	return apis.Config{IncludeBuiltins: true, MaxUnwrap: 8, MapPreferElem: true}
}

func TestRegistryStrategy_AliasesWrappedTypes(t *testing.T) {
	conf := baseCfg()
	reg := cregistry.New(conf)
	if err := reg.Register(reflect.TypeOf(A{}), "legacy.A"); err != nil {
		t.Fatalf("Register(A): %v", err)
	}
	s := strategy.NewRegistryStrategy(reg)

	for _, v := range []any{A{}, &A{}, []A{}, [2]A{}, make(chan A), map[string]A{}} {
		if got, ok := s.TryResolve(v, conf); !ok || got != "legacy.A" {
			t.Fatalf("TryResolve(%T) = (%q,%v), want (legacy.A,true)", v, got, ok)
		}
		if got, ok := s.TryResolveType(reflect.TypeOf(v), conf); !ok || got != "legacy.A" {
			t.Fatalf("TryResolveType(%T) = (%q,%v), want (legacy.A,true)", v, got, ok)
		}
	}

	// Unregistered types fall through to the next strategy.
	if got, ok := s.TryResolve(G[int]{}, conf); ok || got != "" {
		t.Fatalf("TryResolve(G[int]{}) = (%q,%v), want ('',false)", got, ok)
	}
	if got, ok := s.TryResolve(nil, conf); ok || got != "" {
		t.Fatalf("TryResolve(nil) = (%q,%v), want ('',false)", got, ok)
	}
}

func TestRegistryStrategy_NilRegistry(t *testing.T) {
	s := strategy.NewRegistryStrategy(nil)
	if got, ok := s.TryResolve(A{}, baseCfg()); ok || got != "" {
		t.Fatalf("nil registry: got (%q,%v), want ('',false)", got, ok)
	}
}

func TestRegistryStrategy_Concurrent(t *testing.T) {
	conf := baseCfg()
	reg := cregistry.New(conf)
	if err := reg.Register(reflect.TypeOf(A{}), "legacy.A"); err != nil {
		t.Fatalf("Register(A): %v", err)
	}
	if err := reg.Register(reflect.TypeOf(""), "legacy.string"); err != nil {
		t.Fatalf("Register(string): %v", err)
	}
	s := strategy.NewRegistryStrategy(reg)

	types := []reflect.Type{reflect.TypeOf(&A{}), reflect.TypeOf(map[string]A{}), reflect.TypeOf("")}
	want := []string{"legacy.A", "legacy.A", "legacy.string"}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				idx := i % len(types)
				if got, ok := s.TryResolveType(types[idx], conf); !ok || got != want[idx] {
					errCh <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatalf("concurrent mismatch: got=%q", e)
	}
}
