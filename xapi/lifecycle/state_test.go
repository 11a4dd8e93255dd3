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

package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cbx/xapi/lifecycle"
)

func TestStringParseRoundTrip(t *testing.T) {
	states := []lifecycle.State{
		lifecycle.Unresolved,
		lifecycle.Resolving,
		lifecycle.Resolved,
		lifecycle.Overridden,
	}
	for _, s := range states {
		parsed, err := lifecycle.Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	parsed, err := lifecycle.Parse("  ReSolVed ")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Resolved, parsed)
}

func TestParseUnknown(t *testing.T) {
	_, err := lifecycle.Parse("pending")
	require.Error(t, err)
}

func TestStringUnknownValue(t *testing.T) {
	assert.Equal(t, "state(42)", lifecycle.State(42).String())
}
