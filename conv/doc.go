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

// Package conv holds null-safe conversion helpers.
//
// The helpers follow one convention throughout: a nil input is never an
// error. Functions without a default return the zero value (or nil for
// pointer results), and the "Or" variants return the supplied default.
// Functions ending in E report why a non-nil value could not be converted,
// wrapping ErrUnsupportedType when the dynamic type is wrong and
// ErrInvalidValue when the type is right but the content is not.
//
// The package covers scalar coercion on top of spf13/cast, fixed-width byte
// encoding in either byte Order, hex, arbitrary-precision decimals on
// shopspring/decimal, instants and calendar Dates, UUIDs, and Holder, a
// mutable nullable box.
package conv
