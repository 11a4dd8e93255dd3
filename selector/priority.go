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

package selector

import (
	"errors"

	"github.com/samber/lo"

	"dirpx.dev/cbx/apis"
)

// ErrNoImplementation is returned when a selection runs over zero candidates.
// It is unrecoverable at the call site: there is no retry and no default.
var ErrNoImplementation = errors.New("cbx(selector): no implementation found for extension point")

// NewPriority returns the canonical priority Selector: the candidate with
// the maximum priority wins; among equal maxima the first one in discovery
// order is chosen, which keeps ties deterministic within a single call.
func NewPriority() apis.Selector {
	return prioritySelector{}
}

// prioritySelector is stateless and safe for concurrent use.
type prioritySelector struct{}

// Ensure prioritySelector implements apis.Selector.
var _ apis.Selector = prioritySelector{}

// Select picks the first maximal-priority candidate.
func (prioritySelector) Select(candidates []apis.Candidate, _ apis.Config) (apis.Candidate, error) {
	if len(candidates) == 0 {
		return apis.Candidate{}, ErrNoImplementation
	}
	// MaxBy keeps the earliest element among equal maxima.
	best := lo.MaxBy(candidates, func(a, b apis.Candidate) bool {
		return a.Priority > b.Priority
	})
	return best, nil
}
