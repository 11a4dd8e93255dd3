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

// Registry is the process-wide extension registry. Plugin modules register
// implementation constructors against an extension-point kind and an
// isolation scope; discovery instantiates every registration visible to a
// lookup. Multiple registrations per (kind, scope) are allowed.
type Registry interface {
	// Register associates a constructor with kind at the given scope.
	// A nil scope registers at the registry's baseline scope.
	Register(kind Kind, scope Scope, ctor Constructor) error

	// Discover instantiates every implementation of kind visible from
	// scope, then every implementation visible from the registry's
	// baseline scope, and concatenates the results. Duplicates are not
	// removed; priority selection tolerates them by picking one maximal
	// element. Returns an empty slice, never fails, when nothing is
	// registered. A nil scope falls back to the baseline.
	Discover(kind Kind, scope Scope) []Candidate

	// DiscoverAt instantiates implementations registered exactly at scope,
	// ignoring ancestors. A nil scope means the baseline.
	DiscoverAt(kind Kind, scope Scope) []Candidate

	// Baseline returns the registry's own baseline scope.
	Baseline() Scope

	// Entries returns a snapshot for diagnostics/docs (order follows
	// registration order per kind).
	Entries() []Entry

	// Count returns the number of registrations.
	Count() int

	// Reset clears all registrations.
	Reset()
}

// Entry is a single (kind, scope, constructor) registration in a Registry
// snapshot.
type Entry struct {
	// Kind is the extension-point kind the constructor was registered for.
	Kind Kind
	// Scope is the isolation scope of the registration.
	Scope Scope
	// Constructor instantiates the implementation.
	Constructor Constructor
}
