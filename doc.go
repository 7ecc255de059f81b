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

// Package commons is the process-wide entry point of the commons toolkit.
//
// Most of the toolkit is stateless and lives in subpackages:
//
//   - conv: null-safe conversions, fixed-width byte encoding, hex,
//     decimals, instants, dates, UUIDs and Holder.
//   - hashing: deterministic 32-bit hash codes compatible with the JVM.
//   - typekey: Key, a name-only surrogate for a Go type.
//   - enums: localized names for enum-like types.
//   - codec: JSON, YAML, TOML and MessagePack codecs.
//
// This package holds the pieces that need shared state: the type registry
// and resolver behind NameOf and ActualType, the enum registry behind LocalizedName, and the
// logger the toolkit reports through.
//
// # Design
//
// The core is a read-mostly global snapshot (state) holding:
//
//   - Config: rules for naming types (unwrap depth, builtins, map side),
//     the default byte order and the default locale.
//
//   - Registry: a process-wide mapping from Go types to explicit names.
//     Aliases registered here are what NameOf returns for those types.
//     ActualType resolves keys back through it, by alias or by key name.
//
//   - Resolver: answers "what is the name of this value or type?" by trying,
//     in priority order:
//     1. If the value implements apis.Named, use v.QualifiedName().
//     2. If the type is found in the Registry, use that name.
//     3. Otherwise, derive "import/path.Type" from the Go type.
//
//   - Builder: constructs Registry and Resolver instances for a Config and
//     migrates entries from the previous Registry on rebuild.
//
//   - Enums and Logger: the enum registry and the zap logger.
//
// The package holds an atomic pointer to the current state. Readers load
// that pointer and never mutate it; writers build a new state under a mutex
// and swap it in. Lookups are lock-free on the hot path:
//
//	key := commons.KeyOf(invoice)   // always the Go qualified name
//	name := commons.NameOf(invoice) // alias-aware display name
//	label := commons.LocalizedName(StatusPaid, language.German)
//
// # Pinning
//
// SetRegistry and SetResolver install a component and pin it: SetConfig,
// SetBuilder and SetExt stop rebuilding a pinned layer until
// UnpinRegistry or UnpinResolver is called.
//
// # Extension config
//
// The snapshot carries an opaque ext value owned by the embedding binary.
// It is handed to the Builder on every rebuild so custom builders can carry
// extra naming policy.
//
// # Testing
//
// SetAll replaces config, ext, builder, registry and resolver in one shot,
// which gives tests a deterministic snapshot.
package commons
