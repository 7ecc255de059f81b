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

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/commons"
	"dirpx.dev/commons/conv"
	"dirpx.dev/commons/hashing"
)

// fixedType encodes and decodes one fixed-width Go type.
type fixedType struct {
	encode func(s string, o conv.Order) ([]byte, error)
	decode func(b []byte, o conv.Order) (any, error)
}

func fixed[T conv.Fixed]() fixedType {
	return fixedType{
		encode: func(s string, o conv.Order) ([]byte, error) {
			v, err := conv.ToE[T](s)
			if err != nil {
				return nil, err
			}
			return conv.Encode(v, o), nil
		},
		decode: func(b []byte, o conv.Order) (any, error) {
			v, err := conv.Decode[T](b, o)
			return v, err
		},
	}
}

var fixedTypes = map[string]fixedType{
	"bool":    fixed[bool](),
	"int8":    fixed[int8](),
	"int16":   fixed[int16](),
	"int32":   fixed[int32](),
	"int64":   fixed[int64](),
	"uint8":   fixed[uint8](),
	"uint16":  fixed[uint16](),
	"uint32":  fixed[uint32](),
	"uint64":  fixed[uint64](),
	"float32": fixed[float32](),
	"float64": fixed[float64](),
}

func lookupFixed(name string) (fixedType, error) {
	ft, ok := fixedTypes[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(fixedTypes))
		for n := range fixedTypes {
			names = append(names, n)
		}
		slices.Sort(names)
		return fixedType{}, fmt.Errorf("unknown type %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return ft, nil
}

// resolveOrder parses the --order flag, falling back to the configured
// default byte order when it is empty.
func resolveOrder(flag string) (conv.Order, error) {
	if flag == "" {
		return conv.OrderOf(commons.Config()), nil
	}
	return conv.ParseOrder(flag)
}

func newEncodeCommand(opts *options) *cobra.Command {
	var typeName, order string
	cmd := &cobra.Command{
		Use:   "encode <value>",
		Short: "Encode a value as fixed-width bytes (hex)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := lookupFixed(typeName)
			if err != nil {
				return err
			}
			o, err := resolveOrder(order)
			if err != nil {
				return err
			}
			b, err := ft.encode(args[0], o)
			if err != nil {
				return err
			}
			opts.log.Debug("encoded", zap.String("type", typeName), zap.Stringer("order", o), zap.Int("bytes", len(b)))
			return opts.write(cmd.OutOrStdout(), result{Command: "encode", Input: args, Result: conv.BytesToHex(b)})
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "int64", "fixed-width type")
	cmd.Flags().StringVar(&order, "order", "", "byte order: big or little (default from COMMONS_BYTE_ORDER)")
	return cmd
}

func newDecodeCommand(opts *options) *cobra.Command {
	var typeName, order string
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode fixed-width bytes (hex) into a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := lookupFixed(typeName)
			if err != nil {
				return err
			}
			o, err := resolveOrder(order)
			if err != nil {
				return err
			}
			b, err := conv.HexToBytes(args[0])
			if err != nil {
				return err
			}
			v, err := ft.decode(b, o)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), result{Command: "decode", Input: args, Result: v})
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "int64", "fixed-width type")
	cmd.Flags().StringVar(&order, "order", "", "byte order: big or little (default from COMMONS_BYTE_ORDER)")
	return cmd
}

func newHashCommand(opts *options) *cobra.Command {
	var ints bool
	cmd := &cobra.Command{
		Use:   "hash <values...>",
		Short: "Combine the hash codes of the arguments",
		Long: `hash folds the JVM-compatible hash codes of its arguments from seed 17
with multiplier 31. Arguments are hashed as strings unless --ints is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, 0, len(args))
			for _, a := range args {
				if !ints {
					values = append(values, a)
					continue
				}
				n, err := conv.ToE[int64](a)
				if err != nil {
					return err
				}
				values = append(values, n)
			}
			return opts.write(cmd.OutOrStdout(), result{Command: "hash", Input: args, Result: hashing.CombineAll(values...)})
		},
	}
	cmd.Flags().BoolVar(&ints, "ints", false, "hash arguments as int64")
	return cmd
}

func newDecimalCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decimal",
		Short: "Arbitrary-precision decimal helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "equal <a> <b>",
		Short: "Compare two decimals by value, ignoring scale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := conv.ToDecimalE(args[0])
			if err != nil {
				return err
			}
			b, err := conv.ToDecimalE(args[1])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), result{Command: "decimal equal", Input: args, Result: conv.DecimalEqual(&a, &b)})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "bytes <a>",
		Short: "Encode a decimal as scale + unscaled two's-complement bytes (hex)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := conv.ToDecimalE(args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), result{Command: "decimal bytes", Input: args, Result: conv.BytesToHex(conv.DecimalToBytes(&d))})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "strip <a>",
		Short: "Remove trailing zeros from a decimal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := conv.ToDecimalE(args[0])
			if err != nil {
				return err
			}
			s := conv.StripTrailingZeros(d)
			return opts.write(cmd.OutOrStdout(), result{Command: "decimal strip", Input: args, Result: conv.DecimalToString(&s)})
		},
	})
	return cmd
}

func newUUIDCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "UUID helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "bytes <uuid>",
		Short: "Print the 16 raw bytes of a UUID (hex)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := conv.ToUUID(args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), result{Command: "uuid bytes", Input: args, Result: conv.BytesToHex(conv.UUIDToBytes(&id))})
		},
	})
	return cmd
}

func newDateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Calendar date helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "epoch <date>",
		Short: "Print the number of days since 1970-01-01",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := conv.ToDate(args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), result{Command: "date epoch", Input: args, Result: d.EpochDay()})
		},
	})
	return cmd
}
