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

import "golang.org/x/text/language"

// BundleLoader loads localized messages for a bundle basename.
//
// The returned map is keyed by message key. Implementations resolve the
// parent chain of tag themselves (e.g. "de-CH" -> "de" -> root) and merge it
// so that the most specific bundle wins. A loader returns an error when no
// bundle exists for basename at any level of the chain.
type BundleLoader interface {
	Load(basename string, tag language.Tag) (map[string]string, error)
}
