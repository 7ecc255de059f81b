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
	"encoding/hex"
	"fmt"
	"strings"
)

// ToHex returns the big-endian fixed-width encoding of v as lowercase hex,
// e.g. ToHex(int16(1)) == "0001".
func ToHex[T Fixed](v T) string {
	return hex.EncodeToString(Encode(v, BigEndian))
}

// ToHexPtr is like ToHex but returns "" when p is nil.
func ToHexPtr[T Fixed](p *T) string {
	if p == nil {
		return ""
	}
	return ToHex(*p)
}

// FromHex parses the output of ToHex. An optional "0x" prefix is accepted
// and shorter inputs are zero-extended on the left, so FromHex[int32]("ff")
// yields 255.
func FromHex[T Fixed](s string) (T, error) {
	var zero T
	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")

	width := SizeOf[T]() * 2
	if digits == "" || len(digits) > width {
		return zero, invalid(fmt.Sprintf("%T", zero), s, nil)
	}
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return zero, invalid(fmt.Sprintf("%T", zero), s, err)
	}
	return Decode[T](b, BigEndian)
}

// BytesToHex returns b as lowercase hex. A nil slice yields "".
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytes decodes a hex string, accepting an optional "0x" prefix. An
// empty input yields Empty.
func HexToBytes(s string) ([]byte, error) {
	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	if digits == "" {
		return Empty, nil
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, invalid("[]byte", s, err)
	}
	return b, nil
}
