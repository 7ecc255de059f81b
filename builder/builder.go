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

package builder

import (
	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/registry"
	"dirpx.dev/commons/resolver"
	"dirpx.dev/commons/strategy"
)

// New returns the default apis.Builder.
func New() apis.Builder {
	return builder{}
}

type builder struct{}

// BuildRegistry returns a fresh registry for cfg and copies prev's entries
// into it. Entries that no longer normalize under cfg are dropped.
func (builder) BuildRegistry(cfg apis.Config, prev apis.TypeRegistry, _ any) apis.TypeRegistry {
	reg := registry.New(cfg)
	if prev == nil {
		return reg
	}
	for _, e := range prev.Entries() {
		_ = reg.Register(e.Type, e.Name)
	}
	return reg
}

// BuildResolver chains Named -> Registry -> Reflect over reg.
// The previous resolver carries no state worth migrating.
func (builder) BuildResolver(_ apis.Config, reg apis.TypeRegistry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewNamedStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
