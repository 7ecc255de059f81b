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
	"github.com/shopspring/decimal"
)

// ToNumeric converts v to an arbitrary-precision number. A nil v yields
// (nil, nil). Booleans are not numbers and are rejected with
// ErrUnsupportedType, as is any type ToDecimalE does not accept.
func ToNumeric(v any) (*decimal.Decimal, error) {
	if isNil(v) {
		return nil, nil
	}
	if _, ok := v.(bool); ok {
		return nil, unsupported("number", v)
	}
	d, err := ToDecimalE(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// IsNumeric reports whether v is a non-nil value ToNumeric accepts.
func IsNumeric(v any) bool {
	if isNil(v) {
		return false
	}
	_, err := ToNumeric(v)
	return err == nil
}
