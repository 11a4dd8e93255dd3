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

	"github.com/go-logr/logr"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/selector"
	uref "dirpx.dev/cbx/utils/reflect"
)

// ErrInvalidImplementation is returned when a registration filed under the
// builder-factory kind does not implement apis.BuilderFactory.
var ErrInvalidImplementation = errors.New("cbx(resolver): selected implementation is not a BuilderFactory")

// NewProvider constructs the default discovery-backed ResolverProvider.
// Its NewBuilder runs a full discovery pass over the builder-factory kind
// visible from current (nil means the registry baseline) and selects one
// candidate through sel (nil falls back to the priority selector). Plugin
// modules may register their own providers to replace this behavior; the
// default is what gets registered when nothing more specific is wired.
func NewProvider(cfg apis.Config, reg apis.Registry, current apis.Scope, sel apis.Selector) apis.ResolverProvider {
	if sel == nil {
		sel = selector.NewPriority()
	}
	if current == nil && reg != nil {
		current = reg.Baseline()
	}
	return &provider{
		cfg:   cfg,
		reg:   reg,
		scope: current,
		sel:   sel,
		log:   cfg.Logger.WithName("provider"),
	}
}

// provider discovers builder factories and picks the highest-priority one.
// Stateless apart from its wiring; safe for concurrent use.
type provider struct {
	cfg   apis.Config
	reg   apis.Registry
	scope apis.Scope
	sel   apis.Selector
	log   logr.Logger
}

// Ensure provider implements apis.ResolverProvider.
var _ apis.ResolverProvider = (*provider)(nil)

// NewBuilder discovers, selects, and returns a fresh BuilderFactory.
// Every call re-runs discovery and selection; nothing is cached, so two
// consecutive calls return two distinct instances.
func (p *provider) NewBuilder() (apis.BuilderFactory, error) {
	cands := p.reg.Discover(apis.KindBuilderFactory, p.scope)
	chosen, err := p.sel.Select(cands, p.cfg)
	if err != nil {
		return nil, err
	}
	bf, ok := chosen.Instance.(apis.BuilderFactory)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImplementation, uref.Name(chosen.Instance))
	}
	p.log.V(1).Info("builder factory selected",
		"impl", uref.Name(bf), "priority", chosen.Priority, "candidates", len(cands), "id", chosen.ID)
	return bf, nil
}
