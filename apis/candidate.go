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

// Constructor instantiates one implementation of an extension point.
// It is invoked once per discovery pass; construction cost is the
// discovering caller's concern.
type Constructor func() any

// Candidate is one discovered implementation of an extension point.
// Candidates are ephemeral: each discovery pass creates fresh instances,
// and all but the selected one are discarded after selection.
type Candidate struct {
	// ID uniquely identifies this discovered instance within the process.
	// It is regenerated on every discovery pass and intended for logs and
	// diagnostics only.
	ID string

	// Instance is the freshly constructed implementation.
	Instance any

	// Priority is the declared priority of the implementation, or the
	// configured default when the implementation does not declare one.
	Priority int

	// Scope is the isolation scope the implementation was registered at.
	Scope Scope
}
