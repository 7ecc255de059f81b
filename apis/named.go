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

// Named is the zero-reflection fast path for key resolution. When a value
// implements Named, resolvers use QualifiedName() and stop the chain.
//
// The returned name is type-level: it must not depend on instance state and
// must stay stable across executions, e.g. "dirpx.dev/billing.Invoice".
type Named interface {
	QualifiedName() string
}
