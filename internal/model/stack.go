/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

// Context represents a named deployment target (account/region pairing)
type Context struct {
	Name    string
	Account string
	Region  string
	Tags    map[string]string
}

// Stack represents a fully resolved stack ready for provisioning.
// It is produced by the resolver and never mutated afterwards; the
// provider owns all runtime stack state.
type Stack struct {
	Name         string
	Context      *Context
	TemplateBody string
	Parameters   map[string]string
	Tags         map[string]string
	Capabilities []string
	Dependencies []string
}

// ResolvedStacks represents a collection of resolved stacks together with
// the order in which they should be created
type ResolvedStacks struct {
	Context         string
	Stacks          []*Stack
	DeploymentOrder []string
}

// StacksInOrder returns the stacks arranged by deployment order
func (rs *ResolvedStacks) StacksInOrder() []*Stack {
	byName := make(map[string]*Stack, len(rs.Stacks))
	for _, stack := range rs.Stacks {
		byName[stack.Name] = stack
	}

	ordered := make([]*Stack, 0, len(rs.DeploymentOrder))
	for _, name := range rs.DeploymentOrder {
		if stack, ok := byName[name]; ok {
			ordered = append(ordered, stack)
		}
	}
	return ordered
}
