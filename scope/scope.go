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

package scope

import (
	"github.com/samber/lo"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
)

// Root constructs a new root isolation scope with no parent.
func Root(name string) apis.Scope {
	return &node{name: name}
}

// Child constructs a scope nested directly under parent.
func Child(parent apis.Scope, name string) apis.Scope {
	return &node{name: name, parent: parent}
}

// node is an immutable link in a scope chain. Scopes compare by identity:
// two nodes with equal names are still distinct scopes.
type node struct {
	name   string
	parent apis.Scope
}

// Name returns the diagnostic label of the scope.
func (n *node) Name() string { return n.name }

// Parent returns the enclosing scope, or nil for a root.
func (n *node) Parent() apis.Scope { return n.parent }

// Chain returns the scopes from the outermost root down to s, root first.
// Traversal walks at most max links; a non-positive max falls back to
// config.DefaultMaxScopeDepth. A nil s yields an empty chain.
func Chain(s apis.Scope, max int) []apis.Scope {
	if s == nil {
		return nil
	}
	if max <= 0 {
		max = config.DefaultMaxScopeDepth
	}
	out := make([]apis.Scope, 0, max)
	for cur := s; cur != nil && len(out) < max; cur = cur.Parent() {
		out = append(out, cur)
	}
	return lo.Reverse(out)
}

// Depth returns the number of links from the root to s inclusive,
// bounded by max the same way Chain is.
func Depth(s apis.Scope, max int) int {
	return len(Chain(s, max))
}
