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

// Selector picks one candidate among the results of a discovery pass.
// The canonical implementation selects the highest-priority candidate;
// alternative policies can be swapped in through the bootstrap layer.
type Selector interface {
	// Select returns the chosen candidate. It fails when candidates is
	// empty; ties are broken deterministically within a single call.
	Select(candidates []Candidate, cfg Config) (Candidate, error)
}
