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

package conv_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/commons/conv"
)

func TestToTime(t *testing.T) {
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"nil", nil, time.Time{}},
		{"blank", "  ", time.Time{}},
		{"millis int64", int64(1700000000000), want},
		{"millis uint", uint(1700000000000), want},
		{"millis string", "1700000000000", want},
		{"millis json", json.Number("1700000000000"), want},
		{"rfc3339", "2023-11-14T22:13:20Z", want},
		{"date", conv.NewDate(2023, 11, 14), time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"time", want, want},
		{"time ptr", &want, want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestToTimeLenientLayouts(t *testing.T) {
	got, err := conv.ToTime("2023-11-14 22:13:20")
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, 22, got.Hour())
}

func TestToTimeErrors(t *testing.T) {
	_, err := conv.ToTime("not a time")
	assert.ErrorIs(t, err, conv.ErrInvalidValue)

	_, err = conv.ToTime(1.5)
	assert.ErrorIs(t, err, conv.ErrUnsupportedType)

	_, err = conv.ToTime(uint64(math.MaxUint64))
	assert.ErrorIs(t, err, conv.ErrOverflow)

	assert.Panics(t, func() { conv.MustTime(struct{}{}) })
}

func TestToTimeOr(t *testing.T) {
	def := time.Unix(42, 0).UTC()
	got, err := conv.ToTimeOr(nil, def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = conv.ToTimeOr(int64(0), def)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Unix())
}

func TestMillis(t *testing.T) {
	assert.Equal(t, int64(0), conv.TimeToMillis(nil))

	ts := conv.TimeFromMillis(-1)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, int64(-1), conv.TimeToMillis(&ts))
}

func TestDate(t *testing.T) {
	d := conv.NewDate(2024, time.January, 1)
	assert.Equal(t, "2024-01-01", d.String())
	assert.Equal(t, int64(19723), d.EpochDay())
	assert.Equal(t, d, conv.DateFromEpochDay(19723))
	assert.Equal(t, "1969-12-31", conv.DateFromEpochDay(-1).String())

	assert.Equal(t, "2024-03-01", conv.NewDate(2024, time.February, 30).String())
	assert.Equal(t, "2023-12-31", d.AddDays(-1).String())

	assert.True(t, conv.Date{}.IsZero())
	assert.Equal(t, "", conv.Date{}.String())

	later := conv.NewDate(2024, time.January, 2)
	assert.True(t, d.Before(later))
	assert.True(t, later.After(d))
	assert.Equal(t, 0, d.Compare(conv.DateOf(d.Time(time.UTC))))
	assert.Equal(t, 1, conv.NewDate(2025, 1, 1).Compare(conv.NewDate(2024, 12, 31)))
}

func TestDateText(t *testing.T) {
	type doc struct {
		Day conv.Date `json:"day"`
	}

	out, err := json.Marshal(doc{Day: conv.NewDate(2024, 5, 6)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2024-05-06"}`, string(out))

	var back doc
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, conv.NewDate(2024, 5, 6), back.Day)

	var d conv.Date
	require.NoError(t, d.UnmarshalText(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.UnmarshalText([]byte("2024-13-01")))

	_, err = conv.ParseDate("yesterday")
	assert.ErrorIs(t, err, conv.ErrInvalidValue)
}

func TestToDate(t *testing.T) {
	want := conv.NewDate(2024, 1, 1)
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 5*3600))

	tests := []struct {
		name string
		in   any
		want conv.Date
	}{
		{"nil", nil, conv.Date{}},
		{"epoch day", 19723, want},
		{"epoch day string", "19723", want},
		{"iso", "2024-01-01", want},
		{"instant keeps own date", "2024-01-01T23:30:00+05:00", want},
		{"time", noon, want},
		{"time ptr", &noon, want},
		{"date", want, want},
		{"date ptr", &want, want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := conv.ToDate(2.5)
	assert.ErrorIs(t, err, conv.ErrUnsupportedType)

	_, err = conv.ToDate(uint64(1) << 63)
	assert.ErrorIs(t, err, conv.ErrOverflow)

	_, err = conv.ToDate("sometime")
	assert.ErrorIs(t, err, conv.ErrInvalidValue)

	got, err := conv.ToDateOr(nil, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
