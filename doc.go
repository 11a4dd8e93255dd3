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

// Package cbx is the bootstrap and resolver layer of a client-library SPI.
//
// cbx locates, at first use, the single concrete implementation of two
// extension points among possibly many implementations registered by
// independent modules loaded into the same process:
//
//   - the builder factory (apis.BuilderFactory), which produces fresh,
//     independently configurable client builders, and
//   - the resolver provider (apis.ResolverProvider), which produces those
//     factories and is itself discovered through the same mechanism.
//
// The package does not care what a builder does once obtained (HTTP
// invocation, proxying, marshaling); it only answers how exactly one
// implementation is found, selected, and cached.
//
// # Design
//
// The core of cbx is a read-mostly global snapshot (state). The snapshot
// holds five things:
//
//   - Config: discovery knobs (default candidate priority, scope-chain
//     depth guard, logger).
//
//   - Registry: the process-wide extension registry. Plugin modules file
//     implementation constructors under an extension-point kind and an
//     isolation scope, typically from their init routines. Discovery
//     instantiates every visible registration on each pass, so candidates
//     are always fresh.
//
//   - Resolver: the owner of the process-wide ResolverProvider singleton.
//     The provider is resolved lazily and exactly once: the first caller
//     walks the scope chain from the outermost root scope inward and takes
//     the single provider registered at the outermost depth that has one.
//     More than one provider at the same depth is a fatal configuration
//     error (resolver.ErrAmbiguousProvider); none at all is equally fatal
//     but distinguishable (resolver.ErrNoProvider). The resolved provider
//     is cached for the process lifetime unless explicitly overridden.
//
//   - Current scope: the isolation scope lookups start from, analogous to
//     a thread-context boundary. Nil means the registry baseline.
//
//   - Bootstrap: a pluggable composer that knows how to construct Registry
//     and Resolver instances for a given Config (and optional extension
//     data).
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in.
//
// # Two-level lookup
//
// Obtaining a builder is a two-level plugin lookup:
//
//	bf, err := cbx.NewBuilder()
//
// first establishes the process resolver (cached after the first call),
// then delegates to it: the provider discovers every builder-factory
// candidate visible from the current scope plus every candidate visible
// from the registry baseline, concatenated without de-duplication, and
// selects the highest-priority one (declared via apis.Prioritized, default
// priority 1). Selection re-runs on every call, so each call returns a
// distinct, independently configurable instance.
//
// # Errors
//
// Misconfiguration fails loudly and deterministically on first use rather
// than limping along with a wrong implementation:
//
//   - selector.ErrNoImplementation: zero builder-factory candidates.
//   - resolver.ErrNoProvider: zero resolver providers across the chain.
//   - resolver.ErrAmbiguousProvider: more than one provider at the same
//     scope depth; the error names every conflicting implementation.
//
// None of these are caught or retried internally; a silent fallback to an
// arbitrary implementation would defeat the "exactly one implementation"
// contract this layer exists to enforce.
//
// # Concurrency model
//
// Reads (NewBuilder, Provider, Registry, Resolver, Config) are wait-free at
// the snapshot level: they load the current *state atomically and never
// take locks. First resolution of the provider takes a short mutex inside
// the resolver; exactly one goroutine performs the discovery walk while
// racers wait, and everyone afterwards reads the published value lock-free.
//
// Writes (SetConfig, SetBootstrap, SetExt, SetRegistry, SetResolver,
// SetCurrentScope, SetAll, Reset) take a short build mutex, assemble a
// brand-new state struct, and publish it via an atomic pointer swap.
// SetProvider is the exception: it writes straight through to the current
// resolver (atomic, last-write-wins) because an override must not depend on
// a rebuild.
//
// # Overrides and pinning
//
// Embedding hosts that want to bypass discovery entirely call
//
//	cbx.SetProvider(myProvider)
//
// after which every Provider/NewBuilder call uses myProvider until it is
// overridden again; SetProvider(nil) clears the singleton so the next read
// re-triggers discovery.
//
// SetRegistry and SetResolver pin their layer: once pinned, SetConfig,
// SetBootstrap, SetExt, and SetCurrentScope stop rebuilding it until
// UnpinRegistry/UnpinResolver. Pinning is for advanced scenarios where one
// layer is under full caller control while the others keep evolving.
//
// # Usage pattern in a binary
//
// A typical plugin module does, from init:
//
//	func init() {
//		_ = cbx.RegisterResolverProvider(nil, func() apis.ResolverProvider {
//			return resolver.NewProvider(cbx.Config(), cbx.Registry(), nil, nil)
//		})
//		_ = cbx.RegisterBuilderFactory(nil, func() apis.BuilderFactory {
//			return &myFactory{}
//		})
//	}
//
// and application code simply calls cbx.NewBuilder(). Tests use
// cbx.Reset() (or SetAll) for deterministic state between cases.
//
// # Scope
//
// cbx is intentionally small. It is not a DI container or a service
// locator. It solves one job:
//
//	"Among every implementation registered in this process, find the one
//	 that should serve, exactly once, and hand out fresh builders from it."
//
// Everything a builder does afterwards belongs to the implementation.
package cbx
