/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"
	"fmt"
	"io"
	"os"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/config"
	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stackdrill/stackdrill/internal/resolve"
)

// Validator orchestrates template validation
type Validator interface {
	ValidateSingleStack(ctx context.Context, stackName, contextName string) error
	ValidateAllStacks(ctx context.Context, contextName string) error
}

// TemplateValidator implements the Validator interface
type TemplateValidator struct {
	clientFactory  awsinternal.ClientFactory
	configProvider config.ConfigProvider
	resolver       resolve.Resolver
	out            io.Writer
}

// NewTemplateValidator creates a new validator
func NewTemplateValidator(
	clientFactory awsinternal.ClientFactory,
	configProvider config.ConfigProvider,
	resolver resolve.Resolver,
) *TemplateValidator {
	return &TemplateValidator{
		clientFactory:  clientFactory,
		configProvider: configProvider,
		resolver:       resolver,
		out:            os.Stdout,
	}
}

// SetOutput redirects progress output (for testing)
func (v *TemplateValidator) SetOutput(w io.Writer) {
	v.out = w
}

// ValidateSingleStack validates a single stack's template
func (v *TemplateValidator) ValidateSingleStack(ctx context.Context, stackName, contextName string) error {
	fmt.Fprintf(v.out, "Validating template for stack '%s' in context '%s'...\n", stackName, contextName)

	stack, err := v.resolver.ResolveStack(ctx, contextName, stackName)
	if err != nil {
		return fmt.Errorf("failed to resolve stack %s: %w", stackName, err)
	}

	if err := v.validateStack(ctx, stack); err != nil {
		fmt.Fprintf(v.out, "\n✗ Validation failed for stack '%s'\n", stackName)
		fmt.Fprintf(v.out, "  Error: %v\n", err)
		return err
	}

	fmt.Fprintf(v.out, "\n✓ Template is valid for stack '%s'\n", stackName)
	return nil
}

// ValidateAllStacks validates all stacks in a context
func (v *TemplateValidator) ValidateAllStacks(ctx context.Context, contextName string) error {
	stackNames, err := v.configProvider.ListStacks(contextName)
	if err != nil {
		return fmt.Errorf("failed to list stacks for context %s: %w", contextName, err)
	}

	if len(stackNames) == 0 {
		fmt.Fprintf(v.out, "No stacks defined in context '%s'\n", contextName)
		return nil
	}

	fmt.Fprintf(v.out, "Validating %d stack(s) in context '%s'...\n\n", len(stackNames), contextName)

	results := make([]ValidationResult, 0, len(stackNames))
	hasErrors := false

	for _, stackName := range stackNames {
		fmt.Fprintf(v.out, "→ Validating '%s'... ", stackName)

		stack, err := v.resolver.ResolveStack(ctx, contextName, stackName)
		if err != nil {
			fmt.Fprintf(v.out, "✗\n")
			results = append(results, ValidationResult{
				StackName: stackName,
				Valid:     false,
				Error:     fmt.Sprintf("failed to resolve stack: %v", err),
			})
			hasErrors = true
			continue
		}

		if err := v.validateStack(ctx, stack); err != nil {
			fmt.Fprintf(v.out, "✗\n")
			results = append(results, ValidationResult{
				StackName: stackName,
				Valid:     false,
				Error:     err.Error(),
			})
			hasErrors = true
		} else {
			fmt.Fprintf(v.out, "✓\n")
			results = append(results, ValidationResult{
				StackName: stackName,
				Valid:     true,
			})
		}
	}

	v.printSummary(results)

	if hasErrors {
		return fmt.Errorf("validation failed for one or more stacks")
	}

	return nil
}

// validateStack validates a resolved stack's template using the CloudFormation API
func (v *TemplateValidator) validateStack(ctx context.Context, stack *model.Stack) error {
	cfnOps, err := v.clientFactory.GetCloudFormationOperations(ctx, stack.Context.Region)
	if err != nil {
		return fmt.Errorf("failed to get CloudFormation operations: %w", err)
	}

	if err := cfnOps.ValidateTemplate(ctx, stack.TemplateBody); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}

	return nil
}

// printSummary prints validation results summary
func (v *TemplateValidator) printSummary(results []ValidationResult) {
	fmt.Fprintln(v.out, "\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(v.out, "Validation Summary")
	fmt.Fprintln(v.out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	validCount := 0
	invalidCount := 0

	for _, result := range results {
		if result.Valid {
			validCount++
			fmt.Fprintf(v.out, "✓ %s\n", result.StackName)
		} else {
			invalidCount++
			fmt.Fprintf(v.out, "✗ %s\n", result.StackName)
			fmt.Fprintf(v.out, "  Error: %s\n", result.Error)
		}
	}

	fmt.Fprintln(v.out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(v.out, "Total:   %d\n", len(results))
	fmt.Fprintf(v.out, "Valid:   %d\n", validCount)
	fmt.Fprintf(v.out, "Invalid: %d\n", invalidCount)

	if invalidCount == 0 {
		fmt.Fprintln(v.out, "\n✓ All templates are valid")
	} else {
		fmt.Fprintln(v.out, "\n✗ Some templates failed validation")
	}
}

// ValidationResult contains the outcome of a single stack validation
type ValidationResult struct {
	StackName string
	Valid     bool
	Error     string
}
