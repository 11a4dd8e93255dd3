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

// Kind identifies an extension point: an abstract capability with multiple
// possible concrete implementations, selected at runtime.
type Kind string

const (
	// KindBuilderFactory is the extension point producing fresh client
	// builder instances.
	KindBuilderFactory Kind = "cbx.builder.factory"

	// KindResolverProvider is the extension point producing the
	// process-wide resolver. It is itself discovered through the registry.
	KindResolverProvider Kind = "cbx.resolver.provider"
)

// BuilderFactory is the extension point that produces fresh, independently
// configurable client builders. What a built client does (invocation,
// proxying, marshaling) is the implementation's contract; the bootstrap
// layer only selects a factory and hands it out.
type BuilderFactory interface {
	// Property sets a named configuration value on the builder and returns
	// the same builder for chaining.
	Property(key string, value any) BuilderFactory

	// Build assembles the client the builder was configured for.
	Build() (any, error)
}

// ResolverProvider produces builder factories. It is subject to the same
// discovery mechanism as the factories it produces, and is cached
// process-wide after its first successful resolution.
type ResolverProvider interface {
	// NewBuilder returns a fresh BuilderFactory, never a shared instance.
	NewBuilder() (BuilderFactory, error)
}

// Prioritized is an optional capability: implementations that declare a
// selection priority expose it here. Implementations without it receive
// Config.DefaultPriority. Higher values win.
type Prioritized interface {
	// Priority returns the declared selection priority.
	Priority() int
}

// Namer is an optional capability: implementations may expose a canonical
// name used in logs and error messages. Implementations without it are
// named after their Go type.
type Namer interface {
	// EntityName returns the canonical name for this implementation.
	EntityName() string
}
