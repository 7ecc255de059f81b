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

package codec

import "github.com/pelletier/go-toml/v2"

// TOML wraps pelletier/go-toml/v2. Only tables (maps and structs) can be
// marshaled at the top level.
type TOML struct{}

// Marshal serializes v to TOML bytes.
func (TOML) Marshal(v any) ([]byte, error) {
	return toml.Marshal(v)
}

// Unmarshal deserializes TOML bytes into v.
func (TOML) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// Name returns "toml".
func (TOML) Name() string { return "toml" }
