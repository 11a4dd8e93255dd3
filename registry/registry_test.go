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

package registry_test

import (
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/registry"
	"dirpx.dev/cbx/scope"
)

// impl is a plain implementation without a declared priority.
type impl struct{ tag string }

// prioritized declares its own selection priority.
type prioritized struct {
	tag  string
	prio int
}

func (p *prioritized) Priority() int { return p.prio }

const kind apis.Kind = "test.point"

func newRegistry(t *testing.T) apis.Registry {
	t.Helper()
	cfg := config.NewConfig(config.WithLogger(testr.New(t)))
	return registry.New(cfg, nil)
}

func TestRegisterValidation(t *testing.T) {
	reg := newRegistry(t)
	require.ErrorIs(t, reg.Register("", nil, func() any { return &impl{} }), registry.ErrEmptyKind)
	require.ErrorIs(t, reg.Register(kind, nil, nil), registry.ErrNilConstructor)
	assert.Zero(t, reg.Count())
}

func TestRegisterNilScopeUsesBaseline(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Register(kind, nil, func() any { return &impl{tag: "a"} }))

	entries := reg.Entries()
	require.Len(t, entries, 1)
	assert.Same(t, reg.Baseline(), entries[0].Scope)
}

func TestDiscoverAtExactScopeOnly(t *testing.T) {
	reg := newRegistry(t)
	base := reg.Baseline()
	child := scope.Child(base, "app")

	require.NoError(t, reg.Register(kind, base, func() any { return &impl{tag: "base"} }))
	require.NoError(t, reg.Register(kind, child, func() any { return &impl{tag: "child"} }))

	atBase := reg.DiscoverAt(kind, base)
	require.Len(t, atBase, 1)
	assert.Equal(t, "base", atBase[0].Instance.(*impl).tag)

	atChild := reg.DiscoverAt(kind, child)
	require.Len(t, atChild, 1)
	assert.Equal(t, "child", atChild[0].Instance.(*impl).tag)
}

// Discover performs two lookups (given scope, then baseline) and concatenates
// without removing duplicates; registrations at ancestor scopes are visible
// from descendants, outermost first.
func TestDiscoverConcatenatesBothPasses(t *testing.T) {
	reg := newRegistry(t)
	base := reg.Baseline()
	child := scope.Child(base, "app")

	require.NoError(t, reg.Register(kind, base, func() any { return &impl{tag: "base"} }))
	require.NoError(t, reg.Register(kind, child, func() any { return &impl{tag: "child"} }))

	cands := reg.Discover(kind, child)
	require.Len(t, cands, 3)
	// Pass 1, visible from child: base (outermost) then child.
	assert.Equal(t, "base", cands[0].Instance.(*impl).tag)
	assert.Equal(t, "child", cands[1].Instance.(*impl).tag)
	// Pass 2, visible from baseline: base again. Intentional duplicate.
	assert.Equal(t, "base", cands[2].Instance.(*impl).tag)
}

func TestDiscoverNilScopeFallsBackToBaseline(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Register(kind, nil, func() any { return &impl{tag: "a"} }))

	cands := reg.Discover(kind, nil)
	// Both passes run against the baseline; the duplicate is tolerated.
	assert.Len(t, cands, 2)
}

func TestDiscoverEmptyNeverFails(t *testing.T) {
	reg := newRegistry(t)
	assert.Empty(t, reg.Discover(kind, nil))
	assert.Empty(t, reg.DiscoverAt("other.point", nil))
}

func TestDiscoverInstantiatesFreshCandidates(t *testing.T) {
	reg := newRegistry(t)
	calls := 0
	require.NoError(t, reg.Register(kind, nil, func() any {
		calls++
		return &impl{tag: "fresh"}
	}))

	first := reg.DiscoverAt(kind, nil)
	second := reg.DiscoverAt(kind, nil)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, 2, calls)
	assert.NotSame(t, first[0].Instance.(*impl), second[0].Instance.(*impl))
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestCandidatePriorities(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Register(kind, nil, func() any { return &impl{tag: "plain"} }))
	require.NoError(t, reg.Register(kind, nil, func() any { return &prioritized{tag: "high", prio: 5} }))

	cands := reg.DiscoverAt(kind, nil)
	require.Len(t, cands, 2)
	assert.Equal(t, config.DefaultPriority, cands[0].Priority)
	assert.Equal(t, 5, cands[1].Priority)
}

func TestNilInstancesAreSkipped(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Register(kind, nil, func() any { return nil }))
	require.NoError(t, reg.Register(kind, nil, func() any { return &impl{tag: "ok"} }))

	cands := reg.DiscoverAt(kind, nil)
	require.Len(t, cands, 1)
	assert.Equal(t, "ok", cands[0].Instance.(*impl).tag)
}

func TestEntriesCountReset(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Register(kind, nil, func() any { return &impl{} }))
	require.NoError(t, reg.Register("other.point", nil, func() any { return &impl{} }))

	assert.Equal(t, 2, reg.Count())
	assert.Len(t, reg.Entries(), 2)

	reg.Reset()
	assert.Zero(t, reg.Count())
	assert.Empty(t, reg.Entries())
	assert.Empty(t, reg.DiscoverAt(kind, nil))
}

func TestBaselineIsStable(t *testing.T) {
	base := scope.Root("host")
	reg := registry.New(config.DefaultConfig(), base)
	assert.Same(t, base, reg.Baseline())
}
