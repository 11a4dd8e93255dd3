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

// Resolver owns the process-wide ResolverProvider singleton. It resolves
// the provider lazily and exactly once, and exposes an explicit override
// for embedding environments that want to bypass discovery.
type Resolver interface {
	// Provider returns the cached provider, resolving it on first call.
	// Resolution walks the scope chain from the root inward and fails on
	// ambiguity or total absence; neither failure is cached or retried
	// internally.
	Provider() (ResolverProvider, error)

	// Override assigns the provider directly, bypassing discovery.
	// Overriding with nil clears the singleton; the next Provider call
	// re-triggers discovery.
	Override(p ResolverProvider)

	// NewBuilder returns a fresh BuilderFactory obtained through the
	// cached provider. Selection among factory candidates is re-executed
	// on every call; only the provider itself is cached.
	NewBuilder() (BuilderFactory, error)
}
