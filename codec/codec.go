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

// Package codec provides the encode/decode interface used for message
// bundles and CLI output, with JSON, MessagePack, YAML and TOML
// implementations.
package codec

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Codec encodes and decodes values.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for lookup and diagnostics.
	Name() string
}

// ErrUnknownCodec is returned by ByName and ByExtension.
var ErrUnknownCodec = errors.New("commons(codec): unknown codec")

// Default is the default codec instance.
var Default Codec = JSON{}

// All lists every built-in codec in lookup order.
func All() []Codec {
	return []Codec{JSON{}, YAML{}, TOML{}, MsgPack{}}
}

// ByName returns the codec whose Name matches name, ignoring case. "yml" is
// accepted as an alias for YAML.
func ByName(name string) (Codec, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "yml" {
		n = "yaml"
	}
	for _, c := range All() {
		if c.Name() == n {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// ByExtension returns the codec for a file name or bare extension such as
// "messages.yaml" or ".toml".
func ByExtension(file string) (Codec, error) {
	ext := path.Ext(file)
	if ext == "" {
		ext = "." + file
	}
	c, err := ByName(strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, fmt.Errorf("%w: extension of %q", ErrUnknownCodec, file)
	}
	return c, nil
}

// Extensions returns the file extensions ByExtension understands, with the
// leading dot, in lookup order.
func Extensions() []string {
	return []string{".json", ".yaml", ".yml", ".toml", ".msgpack"}
}
