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
	"encoding/binary"
	"fmt"
	"strings"

	"dirpx.dev/commons/apis"
)

// Order selects the byte order used by the fixed-width encoders.
//
// # Overview
//
// Order is a small enumerated type naming one of the two byte orders the
// encoders in this package understand. It is a thin, text-friendly wrapper
// around encoding/binary's ByteOrder values so that the order can be read
// from configuration files, environment variables and CLI flags.
//
// # Values
//
//   - BigEndian:    most significant byte first (network order).
//   - LittleEndian: least significant byte first.
//
// # Contract
//
//   - The zero value is BigEndian, matching the default of
//     java.nio.ByteBuffer and of config.DefaultBigEndian.
//   - Order values are plain integers and are safe to share between
//     goroutines.
type Order int

const (
	// BigEndian writes the most significant byte first.
	BigEndian Order = iota

	// LittleEndian writes the least significant byte first.
	LittleEndian
)

// OrderOf returns the byte order selected by cfg.BigEndian.
func OrderOf(cfg apis.Config) Order {
	if cfg.BigEndian {
		return BigEndian
	}
	return LittleEndian
}

// String returns a stable identifier for the order.
//
// Known values map to "BigEndian" and "LittleEndian". Unknown values are
// rendered as "Unknown(<n>)" so that corrupted values can still be logged;
// String never panics.
func (o Order) String() string {
	switch o {
	case BigEndian:
		return "BigEndian"
	case LittleEndian:
		return "LittleEndian"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// ByteOrder returns the encoding/binary order for o. Unknown values fall
// back to big-endian.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (o Order) appendOrder() binary.AppendByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ParseOrder parses a textual byte order.
//
// # Overview
//
// Matching is case-insensitive and ignores surrounding whitespace. Besides
// the canonical tokens produced by String, the short forms "big", "be",
// "little" and "le" are accepted:
//
//   - "BigEndian", "big", "be"       -> BigEndian
//   - "LittleEndian", "little", "le" -> LittleEndian
//
// # Contract
//
//   - On failure ParseOrder returns BigEndian and a non-nil error; callers
//     MUST NOT rely on the returned value in that case.
//   - ParseOrder MUST NOT panic for any input.
func ParseOrder(s string) (Order, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return BigEndian, fmt.Errorf("commons(conv): empty byte order")
	}

	switch strings.ToLower(trimmed) {
	case "bigendian", "big_endian", "big", "be":
		return BigEndian, nil
	case "littleendian", "little_endian", "little", "le":
		return LittleEndian, nil
	default:
		return BigEndian, fmt.Errorf("commons(conv): unknown byte order %q", s)
	}
}

// MustParseOrder is like ParseOrder but panics on invalid input. It is meant
// for hard-coded values and tests:
//
//	var wire = conv.MustParseOrder("le")
func MustParseOrder(s string) Order {
	o, err := ParseOrder(s)
	if err != nil {
		panic(err)
	}
	return o
}

// MarshalText implements encoding.TextMarshaler.
//
// Known values marshal to the same tokens String returns. Unknown values
// produce an error rather than persisting an "Unknown(...)" form.
func (o Order) MarshalText() ([]byte, error) {
	switch o {
	case BigEndian, LittleEndian:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("commons(conv): cannot marshal unknown byte order %d", int(o))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// inputs as ParseOrder; on failure *o is left unchanged.
func (o *Order) UnmarshalText(text []byte) error {
	value, err := ParseOrder(string(text))
	if err != nil {
		return err
	}

	*o = value
	return nil
}
