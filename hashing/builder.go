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

package hashing

import "dirpx.dev/commons/apis"

// Builder accumulates a hash code field by field.
//
//	func (p Point) HashCode() int32 {
//		return hashing.New().Add(p.X).Add(p.Y).Sum()
//	}
//
// A Builder is not safe for concurrent use.
type Builder struct {
	h int32
}

var _ apis.Clearable = (*Builder)(nil)

// New returns a Builder positioned at Seed.
func New() *Builder {
	return &Builder{h: Seed}
}

// Add folds the code of v into the running hash.
func (b *Builder) Add(v any) *Builder {
	b.h = Combine(b.h, v)
	return b
}

// AddAll folds every value in order.
func (b *Builder) AddAll(vs ...any) *Builder {
	for _, v := range vs {
		b.h = Combine(b.h, v)
	}
	return b
}

// AddCode folds a precomputed code, e.g. from a nested HashCode call.
func (b *Builder) AddCode(code int32) *Builder {
	b.h = Multiplier*b.h + code
	return b
}

// Sum returns the running hash.
func (b *Builder) Sum() int32 { return b.h }

// Clear rewinds the builder to Seed.
func (b *Builder) Clear() { b.h = Seed }
