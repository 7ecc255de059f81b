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

package config_test

import (
	"testing"

	"golang.org/x/text/language"

	"dirpx.dev/commons/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.IncludeBuiltins != config.DefaultIncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want %v", got.IncludeBuiltins, config.DefaultIncludeBuiltins)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.MapPreferElem != config.DefaultMapPreferElem {
		t.Fatalf("MapPreferElem = %v, want %v", got.MapPreferElem, config.DefaultMapPreferElem)
	}
	if got.BigEndian != config.DefaultBigEndian {
		t.Fatalf("BigEndian = %v, want %v", got.BigEndian, config.DefaultBigEndian)
	}
	if got.DefaultLocale != config.DefaultLocale {
		t.Fatalf("DefaultLocale = %v, want %v", got.DefaultLocale, config.DefaultLocale)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithIncludeBuiltins(t *testing.T) {
	c := config.NewConfig(config.WithIncludeBuiltins(false))
	if c.IncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want false", c.IncludeBuiltins)
	}

	c2 := config.NewConfig(config.WithIncludeBuiltins(true))
	if !c2.IncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want true", c2.IncludeBuiltins)
	}
}

func TestWithMapPreferElem(t *testing.T) {
	c := config.NewConfig(config.WithMapPreferElem(false))
	if c.MapPreferElem {
		t.Fatalf("MapPreferElem = %v, want false", c.MapPreferElem)
	}
}

func TestWithMaxUnwrap(t *testing.T) {
	if c := config.NewConfig(config.WithMaxUnwrap(3)); c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
	if c := config.NewConfig(config.WithMaxUnwrap(-1)); c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	// Zero is kept; consumers substitute the default at use time.
	if c := config.NewConfig(config.WithMaxUnwrap(0)); c.MaxUnwrap != 0 {
		t.Fatalf("MaxUnwrap = %d, want 0", c.MaxUnwrap)
	}
}

func TestWithBigEndian(t *testing.T) {
	if c := config.NewConfig(config.WithBigEndian(false)); c.BigEndian {
		t.Fatalf("BigEndian = %v, want false", c.BigEndian)
	}
}

func TestWithDefaultLocale(t *testing.T) {
	c := config.NewConfig(config.WithDefaultLocale(language.German))
	if c.DefaultLocale != language.German {
		t.Fatalf("DefaultLocale = %v, want de", c.DefaultLocale)
	}

	// Und falls back to the package default.
	c2 := config.NewConfig(config.WithDefaultLocale(language.Und))
	if c2.DefaultLocale != config.DefaultLocale {
		t.Fatalf("DefaultLocale = %v, want %v", c2.DefaultLocale, config.DefaultLocale)
	}
}

func TestWithLocaleString(t *testing.T) {
	c := config.NewConfig(config.WithLocaleString("fr-CA"))
	if c.DefaultLocale != language.MustParse("fr-CA") {
		t.Fatalf("DefaultLocale = %v, want fr-CA", c.DefaultLocale)
	}

	c2 := config.NewConfig(config.WithLocaleString("!!"))
	if c2.DefaultLocale != config.DefaultLocale {
		t.Fatalf("DefaultLocale = %v, want default on parse error", c2.DefaultLocale)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithIncludeBuiltins(false),
		config.WithIncludeBuiltins(true),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithDefaultLocale(language.French),
		config.WithDefaultLocale(language.Japanese),
	)

	if !c.IncludeBuiltins {
		t.Errorf("IncludeBuiltins = %v, want true (last option wins)", c.IncludeBuiltins)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if c.DefaultLocale != language.Japanese {
		t.Errorf("DefaultLocale = %v, want ja (last option wins)", c.DefaultLocale)
	}
}
