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

package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/scope"
)

func TestChainRootFirst(t *testing.T) {
	root := scope.Root("root")
	mid := scope.Child(root, "mid")
	leaf := scope.Child(mid, "leaf")

	chain := scope.Chain(leaf, config.DefaultMaxScopeDepth)
	require.Len(t, chain, 3)
	assert.Same(t, root, chain[0])
	assert.Same(t, mid, chain[1])
	assert.Same(t, leaf, chain[2])
}

func TestChainSingleRoot(t *testing.T) {
	root := scope.Root("root")
	chain := scope.Chain(root, 0) // non-positive max falls back to the default
	require.Len(t, chain, 1)
	assert.Same(t, root, chain[0])
}

func TestChainNilScope(t *testing.T) {
	assert.Empty(t, scope.Chain(nil, config.DefaultMaxScopeDepth))
	assert.Zero(t, scope.Depth(nil, config.DefaultMaxScopeDepth))
}

// cyclic is a pathological scope whose parent is itself.
type cyclic struct{}

func (cyclic) Name() string { return "cyclic" }

func (c cyclic) Parent() apis.Scope { return c }

func TestChainDepthGuard(t *testing.T) {
	chain := scope.Chain(cyclic{}, 4)
	// The walk must terminate at the configured depth instead of spinning.
	assert.Len(t, chain, 4)
}

func TestScopesCompareByIdentity(t *testing.T) {
	a := scope.Root("same")
	b := scope.Root("same")
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Name(), b.Name())
}

func TestDepth(t *testing.T) {
	root := scope.Root("root")
	leaf := scope.Child(scope.Child(root, "mid"), "leaf")
	assert.Equal(t, 1, scope.Depth(root, 0))
	assert.Equal(t, 3, scope.Depth(leaf, 0))
}
