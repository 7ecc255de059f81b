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

package reflect

import (
	"reflect"

	"dirpx.dev/commons/apis"
)

// QualifiedName returns the fully qualified name of the nearest named type
// of t: "<import path>.<Name>" for declared types, or the bare name for
// builtins such as "int". Generic instantiations keep their type arguments,
// so G[int] and G[string] produce distinct names.
//
// Builtins yield "" when cfg.IncludeBuiltins is false.
func QualifiedName(t reflect.Type, cfg apis.Config) (string, error) {
	base, err := Normalize(t, cfg)
	if err != nil {
		return "", err
	}
	if p := base.PkgPath(); p != "" {
		return p + "." + base.Name(), nil
	}
	if !cfg.IncludeBuiltins {
		return "", nil
	}
	return base.Name(), nil
}

// ShortName returns the declared name of the nearest named type of t
// without its import path, e.g. "Color" for dirpx.dev/paint.Color.
// Unnamed or nil types yield "".
func ShortName(t reflect.Type, cfg apis.Config) string {
	base, err := Normalize(t, cfg)
	if err != nil {
		return ""
	}
	return base.Name()
}
