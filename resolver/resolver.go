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

package resolver

import (
	"reflect"

	"dirpx.dev/commons/apis"
)

// New returns an apis.Resolver that consults strategies in order and stops
// at the first one that handles the input. Nil strategies are dropped.
// The chain itself is immutable; concurrent use is safe as long as the
// strategies are.
func New(strategies ...apis.Strategy) apis.Resolver {
	c := make(chain, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			c = append(c, s)
		}
	}
	return c
}

type chain []apis.Strategy

// Resolve returns the first handled name for v, or "".
func (c chain) Resolve(v any, cfg apis.Config) string {
	for _, s := range c {
		if name, ok := s.TryResolve(v, cfg); ok {
			return name
		}
	}
	return ""
}

// ResolveType returns the first handled name for t, or "".
func (c chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	for _, s := range c {
		if name, ok := s.TryResolveType(t, cfg); ok {
			return name
		}
	}
	return ""
}
