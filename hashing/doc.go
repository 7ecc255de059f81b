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

// Package hashing folds values into deterministic 32-bit hash codes.
//
// The arithmetic follows the classic recipe from Effective Java: start from
// a non-zero seed, then for every field compute
//
//	h = 31*h + code(field)
//
// with int32 two's-complement wrap-around. Codes for primitives match the
// JVM's boxed hashCode implementations, so values hashed here agree with
// peers that hash the same data on the JVM. Results are stable across
// processes; no per-process random seed is involved.
//
// Other values are walked by reflection. Unexported fields hash exactly
// like exported ones. A pointer, map or slice met again while its own code
// is still being computed contributes 0, so cyclic graphs terminate.
package hashing
