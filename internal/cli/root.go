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

// Package cli implements the commons command-line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/commons"
	"dirpx.dev/commons/internal/logger"
	"dirpx.dev/commons/internal/settings"
)

// options are the persistent flags shared by every command.
type options struct {
	output string
	envDir string
	log    *zap.Logger
}

// NewRootCommand returns the command tree of the commons tool.
func NewRootCommand() *cobra.Command {
	opts := &options{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "commons",
		Short: "Conversion, encoding and hashing helpers",
		Long: `commons exposes the conversion, byte encoding, decimal, date, UUID and
hashing helpers of the commons library on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.log.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text",
		"output format: text, json, yaml, toml or msgpack")
	root.PersistentFlags().StringVar(&opts.envDir, "env-dir", ".",
		"directory holding an optional .env file")

	root.AddCommand(
		newEncodeCommand(opts),
		newDecodeCommand(opts),
		newHashCommand(opts),
		newDecimalCommand(opts),
		newUUIDCommand(opts),
		newDateCommand(opts),
	)
	return root
}

// setup loads settings and installs the library configuration and logger.
func (o *options) setup() error {
	s, err := settings.Load(o.envDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	l, err := logger.New(&s.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	o.log = l
	commons.SetLogger(l)
	commons.SetConfig(cfg)
	l.Debug("settings loaded",
		zap.Bool("big_endian", cfg.BigEndian),
		zap.String("locale", cfg.DefaultLocale.String()),
		zap.Int("max_unwrap", cfg.MaxUnwrap))
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
