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

package resolver

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/scope"
	uref "dirpx.dev/cbx/utils/reflect"
	"dirpx.dev/cbx/xapi/lifecycle"
)

var (
	// ErrNoProvider is returned when no resolver provider is registered at
	// any depth of the scope chain. Nothing else can function without one,
	// so this surfaces as a startup/configuration error.
	ErrNoProvider = errors.New("cbx(resolver): no resolver provider implementation found")
	// ErrAmbiguousProvider is returned when more than one resolver provider
	// is registered at the same scope depth. The wrapped message names every
	// conflicting implementation so operators can fix module wiring.
	ErrAmbiguousProvider = errors.New("cbx(resolver): multiple resolver provider implementations found")
	// ErrInvalidProvider is returned when a registration filed under the
	// resolver-provider kind does not implement apis.ResolverProvider.
	ErrInvalidProvider = errors.New("cbx(resolver): registered implementation is not a ResolverProvider")
)

// NewSingleton constructs the Resolver that owns the process-wide
// ResolverProvider singleton. Resolution discovers providers through reg,
// walking the chain of current (nil means the registry baseline) from the
// root inward.
func NewSingleton(cfg apis.Config, reg apis.Registry, current apis.Scope) *Singleton {
	if cfg.MaxScopeDepth <= 0 {
		cfg.MaxScopeDepth = config.DefaultMaxScopeDepth
	}
	if current == nil && reg != nil {
		current = reg.Baseline()
	}
	return &Singleton{
		cfg:   cfg,
		reg:   reg,
		scope: current,
		log:   cfg.Logger.WithName("resolver"),
	}
}

// Singleton resolves and caches the process-wide ResolverProvider.
//
// Lifecycle: Unresolved -> Resolving -> Resolved, with Overridden reachable
// from any state via Override. The cached value is published through an
// atomic pointer after it is fully initialized, so readers that miss the
// lock still observe a complete value (classic double-checked pattern).
type Singleton struct {
	cfg   apis.Config
	reg   apis.Registry
	scope apis.Scope
	log   logr.Logger

	// mu serializes the transition out of Unresolved; exactly one
	// goroutine performs the discovery walk.
	mu sync.Mutex
	// cur is nil while unresolved; otherwise it holds the published value.
	cur atomic.Pointer[slot]
	// resolving is set while the discovery walk is in flight (introspection only).
	resolving atomic.Bool
}

// slot wraps the published provider together with how it got there.
type slot struct {
	p          apis.ResolverProvider
	overridden bool
}

// Ensure Singleton implements apis.Resolver.
var _ apis.Resolver = (*Singleton)(nil)

// Provider returns the cached provider, resolving it on first call.
func (s *Singleton) Provider() (apis.ResolverProvider, error) {
	// Fast path: already published, no lock.
	if sl := s.cur.Load(); sl != nil {
		return sl.p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under lock: a racing goroutine may have resolved meanwhile,
	// or an override may have landed while we waited.
	if sl := s.cur.Load(); sl != nil {
		return sl.p, nil
	}

	s.resolving.Store(true)
	defer s.resolving.Store(false)

	p, err := s.resolve()
	if err != nil {
		// Failures are surfaced, never cached: the next read retries after
		// the operator fixes the wiring.
		return nil, err
	}
	s.cur.Store(&slot{p: p})
	return p, nil
}

// Override assigns the provider directly, bypassing discovery. A nil p
// clears the singleton so the next Provider call re-resolves. Each write is
// atomic and fully visible to subsequent reads; racing overrides are
// last-write-wins.
func (s *Singleton) Override(p apis.ResolverProvider) {
	if p == nil {
		s.cur.Store(nil)
		s.log.V(1).Info("provider override cleared")
		return
	}
	s.cur.Store(&slot{p: p, overridden: true})
	s.log.V(1).Info("provider overridden", "provider", uref.Name(p))
}

// NewBuilder returns a fresh BuilderFactory via the cached provider.
// Factory selection happens inside the provider on every call; only the
// provider itself is cached here.
func (s *Singleton) NewBuilder() (apis.BuilderFactory, error) {
	p, err := s.Provider()
	if err != nil {
		return nil, err
	}
	return p.NewBuilder()
}

// State reports the current lifecycle state for introspection and tests.
func (s *Singleton) State() lifecycle.State {
	if sl := s.cur.Load(); sl != nil {
		if sl.overridden {
			return lifecycle.Overridden
		}
		return lifecycle.Resolved
	}
	if s.resolving.Load() {
		return lifecycle.Resolving
	}
	return lifecycle.Unresolved
}

// resolve walks the scope chain from the root inward and returns the single
// provider registered at the outermost depth that has one. A depth with
// more than one registration is a fatal configuration error; a walk that
// finds none at all is equally fatal but distinguishable.
func (s *Singleton) resolve() (apis.ResolverProvider, error) {
	chain := scope.Chain(s.scope, s.cfg.MaxScopeDepth)
	if len(chain) == 0 {
		// No current scope at all: probe the baseline once.
		chain = []apis.Scope{nil}
	}

	for _, sc := range chain {
		cands := s.reg.DiscoverAt(apis.KindResolverProvider, sc)
		if len(cands) == 0 {
			continue
		}
		if len(cands) > 1 {
			names := lo.Map(cands, func(c apis.Candidate, _ int) string {
				return uref.Name(c.Instance)
			})
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousProvider, strings.Join(names, " and "))
		}
		p, ok := cands[0].Instance.(apis.ResolverProvider)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, uref.Name(cands[0].Instance))
		}
		s.log.V(1).Info("provider resolved", "provider", uref.Name(p), "scope", scopeName(sc))
		return p, nil
	}
	return nil, ErrNoProvider
}

// scopeName labels a scope for logs, tolerating the nil baseline probe.
func scopeName(sc apis.Scope) string {
	if sc == nil {
		return "baseline"
	}
	return sc.Name()
}
