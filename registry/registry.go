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

package registry

import (
	"errors"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/scope"
	uref "dirpx.dev/cbx/utils/reflect"
)

var (
	// ErrEmptyKind is returned when an empty extension-point kind is provided.
	ErrEmptyKind = errors.New("cbx(registry): empty extension-point kind provided")
	// ErrNilConstructor is returned when a nil constructor is provided.
	ErrNilConstructor = errors.New("cbx(registry): nil constructor provided")
)

// New constructs a Registry rooted at the given baseline scope.
// A nil baseline gets a dedicated root scope. Only DefaultPriority and
// MaxScopeDepth are read from cfg here (plus the Logger).
func New(cfg apis.Config, baseline apis.Scope) apis.Registry {
	if cfg.DefaultPriority <= 0 {
		cfg.DefaultPriority = config.DefaultPriority
	}
	if cfg.MaxScopeDepth <= 0 {
		cfg.MaxScopeDepth = config.DefaultMaxScopeDepth
	}
	if baseline == nil {
		baseline = scope.Root("baseline")
	}
	return &registry{
		cfg:      cfg,
		baseline: baseline,
		log:      cfg.Logger.WithName("registry"),
		regs:     make(map[apis.Kind][]registration),
	}
}

// registration is one (scope, constructor) pair filed under a kind.
type registration struct {
	scope apis.Scope
	ctor  apis.Constructor
}

// registry is a static, in-process Registry implementation. Plugin modules
// populate it from their initialization routines; discovery instantiates
// fresh candidates on every pass.
type registry struct {
	// cfg is the configuration used for priority defaults and chain depth.
	cfg apis.Config
	// baseline is the registry's own root scope, probed on every Discover.
	baseline apis.Scope
	log      logr.Logger
	// mu guards regs and count.
	mu sync.Mutex
	// regs maps extension-point kind to its registrations in registration order.
	regs map[apis.Kind][]registration
	// count tracks the number of registrations across all kinds.
	count int
}

// Register associates a constructor with kind at the given scope.
// A nil scope registers at the baseline. Duplicate registrations are
// allowed on purpose: selection tolerates them.
func (r *registry) Register(kind apis.Kind, sc apis.Scope, ctor apis.Constructor) error {
	// Validate inputs early.
	if kind == "" {
		return ErrEmptyKind
	}
	if ctor == nil {
		return ErrNilConstructor
	}
	if sc == nil {
		sc = r.baseline
	}

	r.mu.Lock()
	r.regs[kind] = append(r.regs[kind], registration{scope: sc, ctor: ctor})
	r.count++
	r.mu.Unlock()

	r.log.V(1).Info("implementation registered", "kind", string(kind), "scope", sc.Name())
	return nil
}

// Discover instantiates all implementations of kind visible from sc, then
// all visible from the baseline, concatenated. Duplicates between the two
// passes are intentional and not removed.
func (r *registry) Discover(kind apis.Kind, sc apis.Scope) []apis.Candidate {
	if sc == nil {
		sc = r.baseline
	}
	out := r.visibleFrom(kind, sc)
	out = append(out, r.visibleFrom(kind, r.baseline)...)
	r.log.V(1).Info("discovery pass complete", "kind", string(kind), "scope", sc.Name(), "candidates", len(out))
	return out
}

// DiscoverAt instantiates implementations registered exactly at sc.
func (r *registry) DiscoverAt(kind apis.Kind, sc apis.Scope) []apis.Candidate {
	if sc == nil {
		sc = r.baseline
	}
	return r.instantiate(kind, sc)
}

// Baseline returns the registry's baseline scope.
func (r *registry) Baseline() apis.Scope {
	return r.baseline
}

// visibleFrom collects candidates registered at sc or any of its ancestors,
// outermost scope first.
func (r *registry) visibleFrom(kind apis.Kind, sc apis.Scope) []apis.Candidate {
	var out []apis.Candidate
	for _, link := range scope.Chain(sc, r.cfg.MaxScopeDepth) {
		out = append(out, r.instantiate(kind, link)...)
	}
	return out
}

// instantiate runs the constructors registered for (kind, sc) and wraps the
// results as candidates. Constructors run outside the lock so they may call
// back into the registry.
func (r *registry) instantiate(kind apis.Kind, sc apis.Scope) []apis.Candidate {
	r.mu.Lock()
	matched := lo.Filter(r.regs[kind], func(reg registration, _ int) bool {
		return reg.scope == sc
	})
	r.mu.Unlock()

	cands := make([]apis.Candidate, 0, len(matched))
	for _, reg := range matched {
		inst := reg.ctor()
		if inst == nil {
			r.log.V(1).Info("constructor returned nil instance, skipped", "kind", string(kind), "scope", sc.Name())
			continue
		}
		cands = append(cands, apis.Candidate{
			ID:       uuid.NewString(),
			Instance: inst,
			Priority: priorityOf(inst, r.cfg),
			Scope:    sc,
		})
		r.log.V(1).Info("candidate discovered",
			"kind", string(kind), "scope", sc.Name(),
			"impl", uref.Name(inst), "priority", cands[len(cands)-1].Priority)
	}
	return cands
}

// Entries returns a snapshot for diagnostics (registration order per kind).
func (r *registry) Entries() []apis.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]apis.Entry, 0, r.count)
	for kind, regs := range r.regs {
		for _, reg := range regs {
			entries = append(entries, apis.Entry{
				Kind:        kind,
				Scope:       reg.scope,
				Constructor: reg.ctor,
			})
		}
	}
	return entries
}

// Count returns the number of registrations across all kinds.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registrations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = make(map[apis.Kind][]registration)
	r.count = 0
}

// priorityOf reads the declared priority of inst, falling back to the
// configured default when inst does not expose Prioritized.
func priorityOf(inst any, cfg apis.Config) int {
	if p, ok := inst.(apis.Prioritized); ok {
		return p.Priority()
	}
	return cfg.DefaultPriority
}
