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

package config

import (
	"golang.org/x/text/language"

	"dirpx.dev/commons/apis"
)

const (
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, built-in types produce key names.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, map value types are preferred when searching for named inner types.
	DefaultMapPreferElem = true
	// DefaultBigEndian represents the default for BigEndian.
	// Network byte order matches the fixed-width layout of the JVM.
	DefaultBigEndian = true
)

// DefaultLocale is the locale used for enum localization when none is given.
var DefaultLocale = language.English

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.DefaultLocale == language.Und {
		cfg.DefaultLocale = DefaultLocale
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		BigEndian:       DefaultBigEndian,
		DefaultLocale:   DefaultLocale,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}

// WithBigEndian sets the BigEndian option.
func WithBigEndian(big bool) Option {
	return func(c *apis.Config) {
		c.BigEndian = big
	}
}

// WithDefaultLocale sets the DefaultLocale option.
// language.Und resets to DefaultLocale.
func WithDefaultLocale(tag language.Tag) Option {
	return func(c *apis.Config) {
		c.DefaultLocale = tag
	}
}

// WithLocaleString parses s as a BCP 47 tag and sets DefaultLocale.
// Unparseable input leaves the current value untouched.
func WithLocaleString(s string) Option {
	return func(c *apis.Config) {
		tag, err := language.Parse(s)
		if err != nil {
			return
		}
		c.DefaultLocale = tag
	}
}
