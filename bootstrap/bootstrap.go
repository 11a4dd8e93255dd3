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

package bootstrap

import (
	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/registry"
	"dirpx.dev/cbx/resolver"
)

// New creates and returns a new instance of an apis.Bootstrap.
func New() apis.Bootstrap {
	return &composer{}
}

// composer is an empty struct to be used as a receiver for bootstrap methods.
type composer struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its baseline scope is kept and its registrations are copied into
// the new registry.
func (c *composer) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	var baseline apis.Scope
	if prev != nil {
		baseline = prev.Baseline()
	}
	nreg := registry.New(cfg, baseline)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Kind, e.Scope, e.Constructor)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver bound to the provided
// registry and current scope. The new resolver starts unresolved: a cached or
// overridden provider from a pre-existing resolver is not carried over, so a
// rebuild re-triggers discovery on the next read.
func (c *composer) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver, current apis.Scope, _ any) apis.Resolver {
	return resolver.NewSingleton(cfg, reg, current)
}
