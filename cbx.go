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

package cbx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/bootstrap"
	"dirpx.dev/cbx/config"
)

// init initializes the global cbx state.
func init() {
	// Initialize state with default cfg, reg, and res.
	s := &state{cfg: config.DefaultConfig()}
	b := bootstrap.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil, nil)
	s.boot = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a bootstrap returns a nil registry.
	ErrNilRegistry = errors.New("cbx: bootstrap returned nil registry")
	// ErrNilResolver is returned when a bootstrap returns a nil resolver.
	ErrNilResolver = errors.New("cbx: bootstrap returned nil resolver")
)

// NewBuilder returns a fresh, independently configurable BuilderFactory,
// selected among all registered builder-factory implementations by the
// process resolver. The selection re-runs on every call: two consecutive
// calls return two distinct instances even when the chosen implementation
// is the same.
//
// Fails with selector.ErrNoImplementation when zero builder-factory
// implementations are registered anywhere, and with the resolver errors
// when the process resolver itself cannot be established.
func NewBuilder() (apis.BuilderFactory, error) {
	return st.Load().res.NewBuilder()
}

// Provider returns the process-wide ResolverProvider, lazily resolving it
// on first call. Subsequent calls observe the cached value.
func Provider() (apis.ResolverProvider, error) {
	return st.Load().res.Provider()
}

// SetProvider assigns the process-wide ResolverProvider directly, bypassing
// discovery. It is the escape hatch for embedding hosts that statically
// wire a known implementation. A nil value clears the singleton so the next
// Provider call re-triggers discovery.
func SetProvider(p apis.ResolverProvider) {
	st.Load().res.Override(p)
}

// RegisterBuilderFactory registers a builder-factory constructor at the
// given scope of the global registry. A nil scope registers at the
// registry's baseline. Plugin modules typically call this from init.
func RegisterBuilderFactory(sc apis.Scope, ctor func() apis.BuilderFactory) error {
	if ctor == nil {
		return st.Load().reg.Register(apis.KindBuilderFactory, sc, nil)
	}
	return st.Load().reg.Register(apis.KindBuilderFactory, sc, func() any { return ctor() })
}

// RegisterResolverProvider registers a resolver-provider constructor at the
// given scope of the global registry. A nil scope registers at the
// registry's baseline.
func RegisterResolverProvider(sc apis.Scope, ctor func() apis.ResolverProvider) error {
	if ctor == nil {
		return st.Load().reg.Register(apis.KindResolverProvider, sc, nil)
	}
	return st.Load().reg.Register(apis.KindResolverProvider, sc, func() any { return ctor() })
}

// SetAll explicitly sets all global cbx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext and current which are always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, current apis.Scope, reg apis.Registry, res apis.Resolver, boot apis.Bootstrap) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Bootstrap
	nboot := old.boot
	if boot != nil {
		nboot = boot
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nboot.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nboot.BuildResolver(ncfg, nreg, old.res, current, next)
	} else {
		npres = true
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   ncfg,
			ext:   next,
			scope: current,
			reg:   nreg,
			res:   nres,
			boot:  nboot,
			preg:  npreg,
			pres:  npres,
		},
	)
}

// Reset restores the global cbx state to its initial defaults: default
// configuration and bootstrap, an empty registry, and an unresolved
// resolver. Intended for test isolation.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()

	s := &state{cfg: config.DefaultConfig()}
	b := bootstrap.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil, nil)
	s.boot = b
	st.Store(s)
}

// Config returns the global cbx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global cbx configuration to cfg.
// It rebuilds the global reg and res using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.boot

	// Build new reg and res based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, nreg, old.res, old.scope, old.ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   cfg,
			ext:   old.ext,
			scope: old.scope,
			reg:   nreg,
			res:   nres,
			boot:  b,
			preg:  old.preg,
			pres:  old.pres,
		},
	)
}

// Registry returns the global cbx registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global cbx registry to reg.
// It uses the global cbx configuration to rebuild the global resolver.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.boot

	// Build new res based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, reg, old.res, old.scope, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			scope: old.scope,
			reg:   reg,
			res:   nres,
			boot:  b,
			preg:  true,
			pres:  old.pres,
		},
	)
}

// Resolver returns the global cbx resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global cbx resolver to res.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			scope: old.scope,
			reg:   old.reg,
			res:   res,
			boot:  old.boot,
			preg:  old.preg,
			pres:  true,
		},
	)
}

// Bootstrap returns the global cbx bootstrap.
func Bootstrap() apis.Bootstrap {
	return st.Load().boot
}

// SetBootstrap sets the global cbx bootstrap to b.
// This is a convenience wrapper around the global state.
func SetBootstrap(b apis.Bootstrap) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and res based on the new bootstrap and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, old.res, old.scope, old.ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			scope: old.scope,
			reg:   nreg,
			res:   nres,
			boot:  b,
			preg:  old.preg,
			pres:  old.pres,
		},
	)
}

// CurrentScope returns the global current isolation scope, or nil when the
// resolver probes the registry baseline directly.
func CurrentScope() apis.Scope {
	return st.Load().scope
}

// SetCurrentScope sets the global current isolation scope to sc.
// It rebuilds the global resolver so the next resolution walks the new
// chain; an already-resolved or overridden resolver stays untouched only
// if it is pinned.
func SetCurrentScope(sc apis.Scope) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.boot

	// Build new res based on the new scope and old state.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, old.reg, old.res, sc, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			scope: sc,
			reg:   old.reg,
			res:   nres,
			boot:  b,
			preg:  old.preg,
			pres:  old.pres,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the bootstrap.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.boot

	// Build new reg and res based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, old.res, old.scope, ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   ext,
			scope: old.scope,
			reg:   nreg,
			res:   nres,
			boot:  b,
			preg:  old.preg,
			pres:  old.pres,
		},
	)
}

// ExtAs returns the global cbx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global cbx registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global cbx registry immutable.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.preg = true }))
}

// UnpinRegistry makes the global cbx registry mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.preg = false }))
}

// IsResolverPinned returns whether the global cbx resolver is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global cbx resolver immutable.
func PinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.pres = true }))
}

// UnpinResolver makes the global cbx resolver mutable again.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.pres = false }))
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global cbx state.
var st atomic.Pointer[state]

// state is the global cbx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global cbx configuration.
	cfg apis.Config
	// ext is the global cbx extension configuration.
	ext any
	// scope is the current isolation scope resolutions start from.
	scope apis.Scope
	// reg is the global extension registry.
	reg apis.Registry
	// res is the global singleton resolver.
	res apis.Resolver
	// boot is the global bootstrap composer.
	boot apis.Bootstrap
	// preg indicates whether the registry is pinned (immutable).
	preg bool
	// pres indicates whether the resolver is pinned (immutable).
	pres bool
}

// with returns a shallow copy of s after applying mutate to it.
func (s *state) with(mutate func(*state)) *state {
	c := *s
	mutate(&c)
	return &c
}
