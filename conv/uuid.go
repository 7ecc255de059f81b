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
	"strings"

	"github.com/google/uuid"
)

// ToUUID converts v to a UUID. Nil and blank strings yield uuid.Nil;
// 16-byte slices are taken as raw bytes and anything else textual is parsed
// by uuid.Parse (canonical, braced, urn:uuid: and bare-hex forms).
func ToUUID(v any) (uuid.UUID, error) {
	if isNil(v) {
		return uuid.Nil, nil
	}

	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case *uuid.UUID:
		return *x, nil
	case [16]byte:
		return uuid.UUID(x), nil
	case uuid.NullUUID:
		if !x.Valid {
			return uuid.Nil, nil
		}
		return x.UUID, nil
	case []byte:
		if len(x) == 16 {
			return uuid.FromBytes(x)
		}
		return parseUUID(v, string(x))
	case string:
		return parseUUID(v, x)
	case *string:
		return parseUUID(v, *x)
	default:
		return uuid.Nil, unsupported("uuid.UUID", v)
	}
}

func parseUUID(v any, s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, invalid("uuid.UUID", v, err)
	}
	return id, nil
}

// UUIDToBytes returns the 16 raw bytes of *p, or Empty for nil.
func UUIDToBytes(p *uuid.UUID) []byte {
	if p == nil {
		return Empty
	}
	out := make([]byte, len(p))
	copy(out, p[:])
	return out
}

// UUIDOr returns *p, or def when p is nil.
func UUIDOr(p *uuid.UUID, def uuid.UUID) uuid.UUID {
	return ValueOr(p, def)
}
