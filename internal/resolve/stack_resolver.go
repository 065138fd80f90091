/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package resolve turns configuration into provision-ready stacks: template
// bodies read and rendered, parameters resolved to plain strings, tags
// merged, and a deployment order computed from declared dependencies.
package resolve

import (
	"context"
	"fmt"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/config"
	"github.com/stackdrill/stackdrill/internal/model"
)

// Resolver resolves configuration into deployment-ready stacks
type Resolver interface {
	ResolveStack(ctx context.Context, contextName string, stackName string) (*model.Stack, error)
	Resolve(ctx context.Context, contextName string, stackNames []string) (*model.ResolvedStacks, error)
}

// StackResolver implements Resolver on top of a config provider
type StackResolver struct {
	configProvider     config.ConfigProvider
	fileSystemResolver FileSystemResolver
	templateProcessor  TemplateProcessor
	paramResolver      *ParameterResolver
}

// NewStackResolver creates a new stack resolver instance
func NewStackResolver(configProvider config.ConfigProvider, clientFactory awsinternal.ClientFactory) *StackResolver {
	return &StackResolver{
		configProvider:     configProvider,
		fileSystemResolver: &DefaultFileSystemResolver{},
		templateProcessor:  NewCfnTemplateProcessor(),
		paramResolver:      NewParameterResolver(clientFactory),
	}
}

// SetFileSystemResolver allows injecting a custom file system resolver (for testing)
func (r *StackResolver) SetFileSystemResolver(fileSystemResolver FileSystemResolver) {
	r.fileSystemResolver = fileSystemResolver
}

// SetTemplateProcessor allows injecting a custom template processor (for testing)
func (r *StackResolver) SetTemplateProcessor(templateProcessor TemplateProcessor) {
	r.templateProcessor = templateProcessor
}

// ResolveStack resolves a single stack configuration
func (r *StackResolver) ResolveStack(ctx context.Context, contextName string, stackName string) (*model.Stack, error) {
	cfg, err := r.configProvider.LoadConfig(ctx, contextName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	stackConfig, err := r.configProvider.GetStack(stackName, contextName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stack %s: %w", stackName, err)
	}

	stackCtx := &model.Context{
		Name:    cfg.Context.Name,
		Account: cfg.Context.Account,
		Region:  cfg.Context.Region,
		Tags:    cfg.Context.Tags,
	}

	templateContent, err := r.fileSystemResolver.ReadTemplate(stackConfig.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	templateBody, err := r.templateProcessor.Process(templateContent, map[string]interface{}{
		"Context": stackCtx,
		"Stack":   stackConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process template for stack %s: %w", stackName, err)
	}

	parameters, err := r.resolveParameters(ctx, stackCtx, stackConfig.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parameters for stack %s: %w", stackName, err)
	}

	tags := r.mergeTags(cfg.Tags, stackConfig.Tags)

	return &model.Stack{
		Name:         stackConfig.Name,
		Context:      stackCtx,
		TemplateBody: templateBody,
		Parameters:   parameters,
		Tags:         tags,
		Capabilities: stackConfig.Capabilities,
		Dependencies: stackConfig.Dependencies,
	}, nil
}

// Resolve resolves multiple stacks and calculates deployment order
func (r *StackResolver) Resolve(ctx context.Context, contextName string, stackNames []string) (*model.ResolvedStacks, error) {
	var resolvedStacks []*model.Stack

	for _, stackName := range stackNames {
		resolved, err := r.ResolveStack(ctx, contextName, stackName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stack %s: %w", stackName, err)
		}
		resolvedStacks = append(resolvedStacks, resolved)
	}

	deploymentOrder, err := r.calculateDependencyOrder(resolvedStacks)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate dependency order: %w", err)
	}

	return &model.ResolvedStacks{
		Context:         contextName,
		Stacks:          resolvedStacks,
		DeploymentOrder: deploymentOrder,
	}, nil
}

// resolveParameters resolves every configured parameter value to a string
func (r *StackResolver) resolveParameters(ctx context.Context, stackCtx *model.Context, params map[string]*config.ParameterValue) (map[string]string, error) {
	result := make(map[string]string, len(params))
	for key, value := range params {
		resolved, err := r.paramResolver.ResolveValue(ctx, stackCtx, value)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		result[key] = resolved
	}
	return result, nil
}

// mergeTags merges tags with inheritance
func (r *StackResolver) mergeTags(globalTags, stackTags map[string]string) map[string]string {
	result := make(map[string]string)

	for k, v := range globalTags {
		result[k] = v
	}

	// Stack tags override global
	for k, v := range stackTags {
		result[k] = v
	}

	return result
}

// calculateDependencyOrder topologically sorts stacks by their declared
// dependencies. Stacks with no ordering constraint between them keep their
// input order, so a dependency-free fleet drills in configured order.
func (r *StackResolver) calculateDependencyOrder(stacks []*model.Stack) ([]string, error) {
	stackMap := make(map[string]*model.Stack, len(stacks))
	for _, stack := range stacks {
		stackMap[stack.Name] = stack
	}

	inDegree := make(map[string]int, len(stacks))
	for _, stack := range stacks {
		inDegree[stack.Name] = 0
	}
	for _, stack := range stacks {
		for _, dep := range stack.Dependencies {
			// Dependencies on stacks outside this run impose no ordering
			if _, exists := stackMap[dep]; exists {
				inDegree[stack.Name]++
			}
		}
	}

	emitted := make(map[string]bool, len(stacks))
	result := make([]string, 0, len(stacks))

	// Kahn's algorithm, scanning in input order so ties preserve it
	for len(result) < len(stacks) {
		progressed := false
		for _, stack := range stacks {
			if emitted[stack.Name] || inDegree[stack.Name] > 0 {
				continue
			}

			emitted[stack.Name] = true
			result = append(result, stack.Name)
			progressed = true

			for _, other := range stacks {
				if emitted[other.Name] {
					continue
				}
				for _, dep := range other.Dependencies {
					if dep == stack.Name {
						inDegree[other.Name]--
					}
				}
			}
		}

		if !progressed {
			return nil, fmt.Errorf("circular dependency detected in stacks")
		}
	}

	return result, nil
}
