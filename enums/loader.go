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

package enums

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"

	"github.com/spf13/cast"
	"golang.org/x/text/language"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/codec"
)

// ErrBundleNotFound is returned by the loaders when no bundle exists for a
// basename at any level of the locale chain.
var ErrBundleNotFound = errors.New("commons(enums): bundle not found")

var (
	_ apis.BundleLoader = FSLoader{}
	_ apis.BundleLoader = MapLoader{}
)

// Candidates returns the bundle names searched for basename and tag, least
// specific first: "messages", "messages_de", "messages_de_CH". Only
// explicitly given subtags count; "de" does not imply region DE.
func Candidates(basename string, tag language.Tag) []string {
	out := []string{basename}

	base, conf := tag.Base()
	if conf != language.Exact {
		return out
	}
	lang := basename + "_" + base.String()
	out = append(out, lang)

	if region, conf := tag.Region(); conf == language.Exact {
		out = append(out, lang+"_"+region.String())
	}
	return out
}

// FSLoader reads bundles from a file system. For each candidate name it
// tries every extension in codec.Extensions, decoding with the matching
// codec; messages from more specific candidates override less specific ones.
// Nested tables are flattened to dotted keys, so
//
//	Color:
//	  RED: Rot
//
// yields the key "Color.RED".
type FSLoader struct {
	FS fs.FS
}

// Load implements apis.BundleLoader.
func (l FSLoader) Load(basename string, tag language.Tag) (map[string]string, error) {
	if l.FS == nil {
		return nil, fmt.Errorf("%w: %q: no file system", ErrBundleNotFound, basename)
	}

	out := make(map[string]string)
	found := false
	for _, name := range Candidates(basename, tag) {
		for _, ext := range codec.Extensions() {
			data, err := fs.ReadFile(l.FS, name+ext)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("commons(enums): read %s%s: %w", name, ext, err)
			}

			c, err := codec.ByExtension(ext)
			if err != nil {
				return nil, err
			}
			var doc map[string]any
			if err := c.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("commons(enums): decode %s%s: %w", name, ext, err)
			}
			if err := flatten(out, "", doc); err != nil {
				return nil, fmt.Errorf("commons(enums): %s%s: %w", name, ext, err)
			}
			found = true
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %q for %s", ErrBundleNotFound, basename, tag)
	}
	return out, nil
}

// MapLoader serves bundles from memory, keyed by candidate name
// ("messages", "messages_de", ...). It applies the same candidate chain as
// FSLoader.
type MapLoader map[string]map[string]string

// Load implements apis.BundleLoader.
func (l MapLoader) Load(basename string, tag language.Tag) (map[string]string, error) {
	out := make(map[string]string)
	found := false
	for _, name := range Candidates(basename, tag) {
		if bundle, ok := l[name]; ok {
			maps.Copy(out, bundle)
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q for %s", ErrBundleNotFound, basename, tag)
	}
	return out, nil
}

func flatten(dst map[string]string, prefix string, node map[string]any) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch x := v.(type) {
		case map[string]any:
			if err := flatten(dst, key, x); err != nil {
				return err
			}
		case map[any]any:
			nested := make(map[string]any, len(x))
			for nk, nv := range x {
				nested[cast.ToString(nk)] = nv
			}
			if err := flatten(dst, key, nested); err != nil {
				return err
			}
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			dst[key] = s
		}
	}
	return nil
}
