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

// Package settings loads the configuration of the commons binaries from the
// environment and an optional .env file.
package settings

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"dirpx.dev/commons/apis"
	"dirpx.dev/commons/config"
	"dirpx.dev/commons/conv"
	"dirpx.dev/commons/internal/logger"
)

// Settings holds all configuration for the commons binaries.
type Settings struct {
	// Log holds configuration for the logger (LOG_LEVEL, LOG_FORMAT).
	Log logger.Config `mapstructure:"log"`
	// Commons holds the library configuration (COMMONS_*).
	Commons Commons `mapstructure:"commons"`
}

// Commons mirrors apis.Config in environment-friendly form.
type Commons struct {
	ByteOrder       string `mapstructure:"byte_order" default:"big"`
	Locale          string `mapstructure:"locale" default:"en"`
	MaxUnwrap       int    `mapstructure:"max_unwrap" default:"8"`
	IncludeBuiltins bool   `mapstructure:"include_builtins" default:"true"`
	MapPreferElem   bool   `mapstructure:"map_prefer_elem" default:"true"`
}

// Load reads settings from the environment after overlaying the .env file
// in dir, if one exists. Nested keys map to upper-case variables joined by
// underscores: commons.byte_order is COMMONS_BYTE_ORDER.
func Load(dir string) (*Settings, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Settings{}, "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return &s, nil
}

// Config translates the library section into an apis.Config.
func (s *Settings) Config() (apis.Config, error) {
	order, err := conv.ParseOrder(s.Commons.ByteOrder)
	if err != nil {
		return apis.Config{}, fmt.Errorf("settings: COMMONS_BYTE_ORDER: %w", err)
	}
	tag, err := language.Parse(s.Commons.Locale)
	if err != nil {
		return apis.Config{}, fmt.Errorf("settings: COMMONS_LOCALE %q: %w", s.Commons.Locale, err)
	}

	return config.NewConfig(
		config.WithBigEndian(order == conv.BigEndian),
		config.WithDefaultLocale(tag),
		config.WithMaxUnwrap(s.Commons.MaxUnwrap),
		config.WithIncludeBuiltins(s.Commons.IncludeBuiltins),
		config.WithMapPreferElem(s.Commons.MapPreferElem),
	), nil
}

// bindValues walks the struct and registers every mapstructure key with its
// 'default' tag, so AutomaticEnv can find it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
