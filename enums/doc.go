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

// Package enums localizes the names of enum-like types.
//
// An enum here is any comparable Go type with a String method that returns
// the constant's identifier, the usual shape of an iota block with a
// stringer. Go cannot enumerate a type's constants, so they are handed to
// Register together with the basename of the message bundle that holds
// their translations:
//
//	enums.Register(r, "messages", Red, Green, Blue)
//	name := enums.LocalizedName(r, Red, language.German) // "Rot"
//
// For every (type, locale) pair the bundle is loaded once through an
// apis.BundleLoader and the resulting names are cached. A message is looked
// up under "<TypeName>.<Const>" first and then under "<Const>"; when neither
// exists, or the bundle cannot be loaded, the constant's own String() is
// used. TypeName is the declared name without its import path.
//
// Registrations and caches are keyed by typekey.Key, the type's qualified
// name, rather than by reflect.Type.
package enums
