/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/config"
	"github.com/stackdrill/stackdrill/internal/model"
)

// ParameterResolver turns configured parameter values into plain strings.
// Literal and env values resolve locally; ssm and output values call the
// provider in the stack context's region. Resolvers that fetch secrets keep
// credentials out of the configuration file.
type ParameterResolver struct {
	clientFactory awsinternal.ClientFactory
}

// NewParameterResolver creates a parameter resolver backed by the given client factory
func NewParameterResolver(clientFactory awsinternal.ClientFactory) *ParameterResolver {
	return &ParameterResolver{
		clientFactory: clientFactory,
	}
}

// ResolveValue resolves one parameter value for a stack in the given context
func (pr *ParameterResolver) ResolveValue(ctx context.Context, stackCtx *model.Context, value *config.ParameterValue) (string, error) {
	if value == nil {
		return "", fmt.Errorf("parameter value is nil")
	}

	switch value.ResolutionType {
	case "literal":
		return value.ResolutionConfig["value"], nil

	case "env":
		name := value.ResolutionConfig["name"]
		if name == "" {
			return "", fmt.Errorf("env parameter resolver requires a 'name'")
		}
		resolved, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return resolved, nil

	case "ssm":
		return pr.resolveSSM(ctx, stackCtx, value.ResolutionConfig)

	case "output":
		return pr.resolveOutput(ctx, stackCtx, value.ResolutionConfig)

	case "list":
		items := make([]string, 0, len(value.ListItems))
		for i, item := range value.ListItems {
			resolved, err := pr.ResolveValue(ctx, stackCtx, item)
			if err != nil {
				return "", fmt.Errorf("failed to resolve list item %d: %w", i, err)
			}
			items = append(items, resolved)
		}
		// CloudFormation list parameters take comma-separated values
		return strings.Join(items, ","), nil

	default:
		return "", fmt.Errorf("unknown parameter resolution type: %s", value.ResolutionType)
	}
}

// resolveSSM fetches a parameter from SSM Parameter Store, always with
// decryption so SecureString values work transparently
func (pr *ParameterResolver) resolveSSM(ctx context.Context, stackCtx *model.Context, cfg map[string]string) (string, error) {
	name := cfg["name"]
	if name == "" {
		return "", fmt.Errorf("ssm parameter resolver requires a 'name'")
	}

	region := cfg["region"]
	if region == "" {
		region = stackCtx.Region
	}

	ssmOps, err := pr.clientFactory.GetSSMOperations(ctx, region)
	if err != nil {
		return "", fmt.Errorf("failed to get SSM operations for region %s: %w", region, err)
	}

	resolved, err := ssmOps.GetParameter(ctx, name, true)
	if err != nil {
		return "", fmt.Errorf("failed to resolve SSM parameter %s: %w", name, err)
	}
	return resolved, nil
}

// resolveOutput looks up an output exported by another stack
func (pr *ParameterResolver) resolveOutput(ctx context.Context, stackCtx *model.Context, cfg map[string]string) (string, error) {
	stackName := cfg["stack_name"]
	outputKey := cfg["output_key"]
	if stackName == "" || outputKey == "" {
		return "", fmt.Errorf("output parameter resolver requires 'stack_name' and 'output_key'")
	}

	region := cfg["region"]
	if region == "" {
		region = stackCtx.Region
	}

	cfnOps, err := pr.clientFactory.GetCloudFormationOperations(ctx, region)
	if err != nil {
		return "", fmt.Errorf("failed to get CloudFormation operations for region %s: %w", region, err)
	}

	stack, err := cfnOps.GetStack(ctx, stackName)
	if err != nil {
		return "", fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	resolved, ok := stack.Outputs[outputKey]
	if !ok {
		return "", fmt.Errorf("stack %s has no output %s", stackName, outputKey)
	}
	return resolved, nil
}
