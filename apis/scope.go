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

package apis

// Scope is an isolation boundary that determines which registered
// implementations are visible to a lookup. Scopes form an ordered chain
// from a root scope down to a "current" scope; lookups consider the chain
// outermost (root) first.
type Scope interface {
	// Name returns a stable diagnostic label for the scope.
	Name() string

	// Parent returns the enclosing scope, or nil for a root scope.
	Parent() Scope
}
