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
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// ratPrecision bounds the fractional digits kept when converting a *big.Rat
// with a non-terminating expansion (decimal128 precision).
const ratPrecision = 34

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// ToDecimal converts v to a decimal, returning zero for nil or unconvertible
// input.
func ToDecimal(v any) decimal.Decimal {
	d, err := ToDecimalE(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToDecimalOr converts v to a decimal, returning def for nil or
// unconvertible input.
func ToDecimalOr(v any, def decimal.Decimal) decimal.Decimal {
	if isNil(v) {
		return def
	}
	d, err := ToDecimalE(v)
	if err != nil {
		return def
	}
	return d
}

// ToDecimalPtr converts v to a freshly allocated decimal. Nil or
// unconvertible input yields nil.
func ToDecimalPtr(v any) *decimal.Decimal {
	if isNil(v) {
		return nil
	}
	d, err := ToDecimalE(v)
	if err != nil {
		return nil
	}
	return &d
}

// ToDecimalE converts v to a decimal.
//
// Supported inputs are decimal.Decimal (and its pointer and NullDecimal
// forms), all integer and float kinds, *big.Int, *big.Rat, *big.Float,
// json.Number and numeric strings. Floats convert through their shortest
// decimal representation, so 0.1 becomes exactly 0.1. NaN and infinities
// are rejected with ErrInvalidValue; other types with ErrUnsupportedType.
func ToDecimalE(v any) (decimal.Decimal, error) {
	if isNil(v) {
		return decimal.Zero, nil
	}

	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		return *x, nil
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero, nil
		}
		return x.Decimal, nil
	case *big.Int:
		return decimal.NewFromBigInt(x, 0), nil
	case *big.Rat:
		if x.IsInt() {
			return decimal.NewFromBigInt(x.Num(), 0), nil
		}
		return decimal.NewFromBigRat(x, ratPrecision), nil
	case *big.Float:
		if x.IsInf() {
			return decimal.Zero, invalid("decimal.Decimal", v, nil)
		}
		return decimal.NewFromString(x.Text('f', -1))
	case json.Number:
		return parseDecimal(v, string(x))
	case string:
		return parseDecimal(v, x)
	case []byte:
		return parseDecimal(v, string(x))
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0), nil
		}
		return decimal.NewFromInt(int64(u)), nil
	case reflect.Float32:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, invalid("decimal.Decimal", v, nil)
		}
		return decimal.NewFromFloat32(float32(f)), nil
	case reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, invalid("decimal.Decimal", v, nil)
		}
		return decimal.NewFromFloat(f), nil
	case reflect.String:
		return parseDecimal(v, rv.String())
	default:
		return decimal.Zero, unsupported("decimal.Decimal", v)
	}
}

func parseDecimal(v any, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, invalid("decimal.Decimal", v, err)
	}
	return d, nil
}

// DecimalEqual reports whether a and b hold the same numeric value,
// ignoring scale: 1.0 equals 1.00. Two nils are equal; a nil never equals a
// non-nil value.
func DecimalEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// DecimalCompare orders a and b by value, with nil sorting before any
// non-nil value.
func DecimalCompare(a, b *decimal.Decimal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Cmp(*b)
	}
}

// StripTrailingZeros returns d with the smallest scale that represents the
// same value, so 1.500 becomes 1.5 and 100 becomes 1E+2. Zero is returned
// with scale 0.
func StripTrailingZeros(d decimal.Decimal) decimal.Decimal {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return decimal.Zero
	}

	exp := d.Exponent()
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(coef, bigTen, r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(q)
		exp++
	}
	return decimal.NewFromBigInt(coef, exp)
}

// DecimalToString renders p in plain notation keeping its scale, so a
// decimal with value 1.50 and scale 2 prints as "1.50". Nil yields "".
func DecimalToString(p *decimal.Decimal) string {
	if p == nil {
		return ""
	}
	if exp := p.Exponent(); exp < 0 {
		return p.StringFixed(-exp)
	}
	return p.String()
}

// DecimalToBytes encodes p as a 4-byte big-endian scale followed by the
// minimal big-endian two's-complement bytes of its unscaled value. A nil
// pointer yields Empty.
func DecimalToBytes(p *decimal.Decimal) []byte {
	if p == nil {
		return Empty
	}
	unscaled := signedBytes(p.Coefficient())
	out := make([]byte, 4, 4+len(unscaled))
	binary.BigEndian.PutUint32(out, uint32(-p.Exponent()))
	return append(out, unscaled...)
}

// DecimalFromBytes decodes the output of DecimalToBytes.
func DecimalFromBytes(b []byte) (decimal.Decimal, error) {
	if len(b) < 5 {
		return decimal.Zero, fmt.Errorf("%w: need at least 5 bytes, got %d", ErrInvalidDecimalBytes, len(b))
	}
	scale := int32(binary.BigEndian.Uint32(b))
	if scale == math.MinInt32 {
		return decimal.Zero, fmt.Errorf("%w: scale out of range", ErrInvalidDecimalBytes)
	}
	return decimal.NewFromBigInt(fromSignedBytes(b[4:]), -scale), nil
}

// signedBytes returns the minimal two's-complement big-endian encoding of x;
// zero encodes as a single 0x00 byte.
func signedBytes(x *big.Int) []byte {
	if x.Sign() >= 0 {
		return x.FillBytes(make([]byte, x.BitLen()/8+1))
	}
	// For x < 0 the width is set by |x|-1, which is the magnitude the
	// complement actually stores.
	mag := new(big.Int).Neg(x)
	mag.Sub(mag, bigOne)
	n := mag.BitLen()/8 + 1
	v := new(big.Int).Lsh(bigOne, uint(n*8))
	v.Add(v, x)
	return v.FillBytes(make([]byte, n))
}

func fromSignedBytes(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(bigOne, uint(len(b)*8)))
	}
	return v
}
