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

package apis

// Clearable is implemented by holders and caches that can drop their
// content and return to an empty state.
type Clearable interface {
	// Clear removes all content. It must be safe to call on an already
	// empty value.
	Clear()
}

// Swappable is implemented by mutable holders that can exchange their
// content with another holder of the same kind.
type Swappable[T any] interface {
	// Swap exchanges the receiver's content with other's content.
	Swap(other T)
}

// Assignable is implemented by mutable holders that can copy another
// holder's content into themselves.
type Assignable[T any] interface {
	// Assign replaces the receiver's content with a copy of from's content.
	Assign(from T)
}

// Hasher lets a type provide its own hash code to the hashing package.
// The code must be deterministic and consistent with the type's equality.
type Hasher interface {
	HashCode() int32
}
