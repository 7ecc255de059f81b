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

package strategy

import (
	"reflect"

	"dirpx.dev/commons/apis"
)

// NewNamedStrategy creates an apis.Strategy that uses apis.Named.
func NewNamedStrategy() apis.Strategy {
	return namedStrategy{}
}

// namedStrategy is the reflection-free fast path: if v implements
// apis.Named with a non-empty name, that name wins.
type namedStrategy struct{}

var _ apis.Strategy = namedStrategy{}

// TryResolve returns v.QualifiedName() when v implements apis.Named.
// An empty name falls through to the next strategy.
func (namedStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	n, ok := v.(apis.Named)
	if !ok {
		return "", false
	}
	name := n.QualifiedName()
	return name, name != ""
}

// TryResolveType always returns false: Named requires an instance.
func (namedStrategy) TryResolveType(_ reflect.Type, _ apis.Config) (string, bool) {
	return "", false
}
