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

package conv

import (
	"dirpx.dev/commons/apis"
)

// Holder is a mutable box that may or may not hold a value of type T.
//
// A Holder distinguishes "set to the zero value" from "not set". It is not
// safe for concurrent use; callers that share one must synchronize.
type Holder[T any] struct {
	value T
	set   bool
}

var (
	_ apis.Clearable                = (*Holder[int])(nil)
	_ apis.Swappable[*Holder[int]]  = (*Holder[int])(nil)
	_ apis.Assignable[*Holder[int]] = (*Holder[int])(nil)
)

// NewHolder returns a Holder set to v.
func NewHolder[T any](v T) *Holder[T] {
	return &Holder[T]{value: v, set: true}
}

// HolderOf returns a Holder set to *p, or an empty Holder when p is nil.
func HolderOf[T any](p *T) *Holder[T] {
	if p == nil {
		return &Holder[T]{}
	}
	return NewHolder(*p)
}

// Get returns the held value, or the zero value when the Holder is empty.
func (h *Holder[T]) Get() T {
	return h.value
}

// GetOr returns the held value, or def when the Holder is empty.
func (h *Holder[T]) GetOr(def T) T {
	if !h.set {
		return def
	}
	return h.value
}

// Set stores v.
func (h *Holder[T]) Set(v T) {
	h.value = v
	h.set = true
}

// IsSet reports whether the Holder holds a value.
func (h *Holder[T]) IsSet() bool {
	return h.set
}

// Ptr returns a pointer to a copy of the held value, or nil when empty.
func (h *Holder[T]) Ptr() *T {
	if !h.set {
		return nil
	}
	v := h.value
	return &v
}

// Clear empties the Holder.
func (h *Holder[T]) Clear() {
	var zero T
	h.value = zero
	h.set = false
}

// Swap exchanges the contents of h and other. A nil other is a no-op.
func (h *Holder[T]) Swap(other *Holder[T]) {
	if other == nil || other == h {
		return
	}
	h.value, other.value = other.value, h.value
	h.set, other.set = other.set, h.set
}

// Assign copies the contents of from into h. A nil from empties h.
func (h *Holder[T]) Assign(from *Holder[T]) {
	if from == nil {
		h.Clear()
		return
	}
	h.value = from.value
	h.set = from.set
}
