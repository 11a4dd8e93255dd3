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

package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/bootstrap"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/resolver"
	"dirpx.dev/cbx/scope"
)

type fixtureProvider struct{}

func (fixtureProvider) NewBuilder() (apis.BuilderFactory, error) { return nil, nil }

func TestBuildRegistryFresh(t *testing.T) {
	b := bootstrap.New()
	reg := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	require.NotNil(t, reg)
	assert.Zero(t, reg.Count())
	assert.NotNil(t, reg.Baseline())
}

func TestBuildRegistryMigratesEntries(t *testing.T) {
	b := bootstrap.New()
	cfg := config.DefaultConfig()

	prev := b.BuildRegistry(cfg, nil, nil)
	child := scope.Child(prev.Baseline(), "app")
	require.NoError(t, prev.Register(apis.KindResolverProvider, nil, func() any { return fixtureProvider{} }))
	require.NoError(t, prev.Register(apis.KindBuilderFactory, child, func() any { return nil }))

	next := b.BuildRegistry(cfg, prev, nil)
	assert.Equal(t, prev.Count(), next.Count())
	// The baseline carries over so scoped registrations stay resolvable.
	assert.Same(t, prev.Baseline(), next.Baseline())
	assert.Len(t, next.DiscoverAt(apis.KindResolverProvider, nil), 1)
}

func TestBuildResolverStartsUnresolved(t *testing.T) {
	b := bootstrap.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	require.NoError(t, reg.Register(apis.KindResolverProvider, nil, func() any { return fixtureProvider{} }))

	prev := b.BuildResolver(cfg, reg, nil, nil, nil)
	prev.Override(fixtureProvider{})

	// A rebuilt resolver does not inherit the override: it re-resolves.
	next := b.BuildResolver(cfg, reg, prev, nil, nil)
	require.NotNil(t, next)
	p, err := next.Provider()
	require.NoError(t, err)
	assert.IsType(t, fixtureProvider{}, p)

	if sin, ok := next.(*resolver.Singleton); ok {
		assert.NotSame(t, prev, sin)
	}
}
