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

import "github.com/go-logr/logr"

// Config carries read-only discovery knobs that influence registries,
// selectors, and resolvers. It is passed by value and should be treated
// as immutable by implementations.
type Config struct {
	// DefaultPriority is assigned to candidates whose implementation does
	// not expose Prioritized. The canonical default is 1.
	DefaultPriority int

	// MaxScopeDepth limits scope-chain traversal depth (root to current).
	// Acts as a safety guard against cyclic or pathological parent chains.
	MaxScopeDepth int

	// Logger receives structured discovery and resolution events.
	// The zero value is safe; constructors fall back to logr.Discard().
	Logger logr.Logger
}
