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

package registry_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/registry"
	"dirpx.dev/cbx/scope"
)

// TestConcurrentRegisterAndDiscover verifies that Register/Discover/Entries/
// Count are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndDiscover(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), nil)
	child := scope.Child(reg.Baseline(), "app")

	kinds := []apis.Kind{"p.a", "p.b", "p.c", "p.d"}

	// Seed one registration per kind so readers always find something.
	for _, k := range kinds {
		if err := reg.Register(k, nil, func() any { return &impl{tag: string(k)} }); err != nil {
			t.Fatalf("register %s: %v", k, err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				k := kinds[i%len(kinds)]
				if got := reg.Discover(k, child); len(got) == 0 {
					t.Errorf("discover %s: no candidates", k)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (additional registrations at the child scope)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := kinds[(i+id)%len(kinds)]
				_ = reg.Register(k, child, func() any { return &impl{tag: "w"} })
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	want := len(kinds) + workers*200
	if reg.Count() != want {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), want)
	}
	if len(reg.Entries()) != want {
		t.Fatalf("entries mismatch: got %d want %d", len(reg.Entries()), want)
	}
	for _, k := range kinds {
		if got := reg.DiscoverAt(k, nil); len(got) != 1 {
			t.Fatalf("baseline candidates for %s: got %d want 1", k, len(got))
		}
	}
}
