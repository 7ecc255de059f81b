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
	"sync"

	"dirpx.dev/commons/apis"
	uref "dirpx.dev/commons/utils/reflect"
)

// NewReflectStrategy creates the terminal apis.Strategy that derives the
// fully qualified name of the nearest named type via reflection.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy always handles non-nil input. Types without a nearest
// named type, and builtins when IncludeBuiltins is false, resolve to "".
type reflectStrategy struct{}

var _ apis.Strategy = reflectStrategy{}

// cacheKey covers every config knob that influences the resolved name.
type cacheKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int16
	mapPreferElem  bool
}

// nameCache memoizes qualified names by (type, config knobs).
var nameCache sync.Map // key: cacheKey, val: string

// TryResolve computes the qualified name of v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return qualified(reflect.TypeOf(v), cfg), true
}

// TryResolveType computes the qualified name of t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return qualified(t, cfg), true
}

func qualified(t reflect.Type, cfg apis.Config) string {
	key := cacheKey{
		t:              t,
		includeBuiltin: cfg.IncludeBuiltins,
		maxUnwrap:      int16(cfg.MaxUnwrap),
		mapPreferElem:  cfg.MapPreferElem,
	}
	if v, ok := nameCache.Load(key); ok {
		return v.(string)
	}
	// Errors memoize as "" so unnamed types are not re-walked.
	name, _ := uref.QualifiedName(t, cfg)
	v, _ := nameCache.LoadOrStore(key, name)
	return v.(string)
}
