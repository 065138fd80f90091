/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package config defines the provider-neutral configuration model. Concrete
// providers (the file provider today) parse their own formats and hand back
// these types with context inheritance already applied.
package config

import (
	"context"
)

// ConfigProvider defines the interface for loading and managing configuration
type ConfigProvider interface {
	// LoadConfig loads configuration for a specific context
	LoadConfig(ctx context.Context, context string) (*Config, error)

	// ListContexts returns all available contexts in the configuration
	ListContexts() ([]string, error)

	// GetStack returns stack configuration for a specific stack and context
	GetStack(stackName, context string) (*StackConfig, error)

	// ListStacks returns all available stack names for a specific context,
	// in declaration order
	ListStacks(context string) ([]string, error)

	// Validate checks the configuration for consistency and errors
	Validate() error
}

// Config represents the resolved configuration for a specific context
type Config struct {
	Project string
	Region  string
	Tags    map[string]string
	Context *ContextConfig // Resolved context
	Stacks  []*StackConfig // Resolved stacks, in declaration order
}

// ContextConfig represents resolved context-specific configuration
type ContextConfig struct {
	Name    string
	Account string
	Region  string
	Tags    map[string]string
}

// StackConfig represents resolved stack configuration with context overrides applied
type StackConfig struct {
	Name         string
	Template     string // URI to template (file://, or a bare path)
	Parameters   map[string]*ParameterValue
	Tags         map[string]string
	Dependencies []string
	Capabilities []string
}

// ParameterValue represents a parameter that may need dynamic resolution.
// ResolutionType selects the resolver ("literal", "env", "ssm", "output",
// "list"); ResolutionConfig carries the resolver-specific keys.
type ParameterValue struct {
	ResolutionType   string
	ResolutionConfig map[string]string
	ListItems        []*ParameterValue // populated when ResolutionType is "list"
}

// NewLiteralParameterValue wraps a plain string as a literal parameter
func NewLiteralParameterValue(value string) *ParameterValue {
	return &ParameterValue{
		ResolutionType: "literal",
		ResolutionConfig: map[string]string{
			"value": value,
		},
	}
}
