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

package config

import (
	"github.com/go-logr/logr"

	"dirpx.dev/cbx/apis"
)

const (
	// DefaultPriority represents the default for DefaultPriority.
	// Candidates without a declared priority are treated as priority 1.
	DefaultPriority = 1
	// DefaultMaxScopeDepth represents the default for MaxScopeDepth.
	// A value of 8 should be sufficient for all practical scope chains.
	DefaultMaxScopeDepth = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxScopeDepth is valid.
	if cfg.MaxScopeDepth <= 0 {
		cfg.MaxScopeDepth = DefaultMaxScopeDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DefaultPriority: DefaultPriority,
		MaxScopeDepth:   DefaultMaxScopeDepth,
		Logger:          logr.Discard(),
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDefaultPriority sets the DefaultPriority option.
// A non-positive value resets to the default.
func WithDefaultPriority(p int) Option {
	return func(c *apis.Config) {
		if p <= 0 {
			c.DefaultPriority = DefaultPriority
			return
		}
		c.DefaultPriority = p
	}
}

// WithMaxScopeDepth sets the MaxScopeDepth option.
// A non-positive value resets to the default.
func WithMaxScopeDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxScopeDepth = DefaultMaxScopeDepth
			return
		}
		c.MaxScopeDepth = depth
	}
}

// WithLogger sets the Logger option.
func WithLogger(log logr.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = log
	}
}
