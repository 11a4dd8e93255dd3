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

package lifecycle

import (
	"fmt"
	"strings"
)

// State describes the lifecycle of the process-wide resolver singleton.
//
// # Overview
//
// State is a small enumerated type reported by resolver implementations for
// introspection, diagnostics, and tests. It reflects where the singleton is
// within its establish-once lifecycle:
//
//	Unresolved -> Resolving -> Resolved
//
// with Overridden reachable from any state through an explicit override.
//
// State is observational only: transitions are driven by the resolver, and
// consumers MUST NOT attempt to force a transition by any means other than
// the resolver's own operations (first read, override, override-to-nil).
//
// # Contract
//
//   - Resolver implementations MUST report states consistently with the
//     value a concurrent reader would observe: a resolver reporting
//     Resolved or Overridden MUST serve the cached provider without
//     re-running discovery.
//   - State values MUST be safe to use concurrently across goroutines
//     (they are plain integers).
//   - Adding new values is allowed, but existing values MUST NOT change
//     their semantics in breaking ways.
type State int

const (
	// Unresolved indicates that no provider has been resolved or assigned.
	//
	// # Semantics
	//
	// The singleton is empty. The next read triggers the discovery walk.
	// A resolver returns to this state when an override clears the
	// singleton (override with a nil provider).
	Unresolved State = iota

	// Resolving indicates that a discovery walk is in flight.
	//
	// # Semantics
	//
	// Exactly one goroutine performs the walk while holding the resolution
	// lock; concurrent readers block until the walk publishes a result or
	// fails. Failures do not advance the state: the resolver reverts to
	// Unresolved so a later read can retry after reconfiguration.
	Resolving

	// Resolved indicates that discovery succeeded and the provider is cached.
	//
	// # Semantics
	//
	// The cached provider is served on the lock-free fast path. It lives
	// for the process lifetime unless explicitly replaced or cleared by an
	// override.
	Resolved

	// Overridden indicates that the provider was assigned explicitly,
	// bypassing discovery.
	//
	// # Semantics
	//
	// Embedding hosts use overrides to statically wire a known
	// implementation. The overridden provider is served until overridden
	// again or the process exits; discovery never runs while an override
	// is in place.
	Overridden
)

// String returns the lowercase textual form of the state.
func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	case Overridden:
		return "overridden"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Parse converts a textual state back into a State value.
// Matching is case-insensitive. Unknown values return an error.
func Parse(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unresolved":
		return Unresolved, nil
	case "resolving":
		return Resolving, nil
	case "resolved":
		return Resolved, nil
	case "overridden":
		return Overridden, nil
	default:
		return Unresolved, fmt.Errorf("lifecycle: unknown state %q", s)
	}
}
