/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"github.com/stackdrill/stackdrill/internal/validate"
	"github.com/spf13/cobra"
)

var (
	// validator can be injected for testing
	validator validate.Validator
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <context> [stack-name]",
	Short: "Validate CloudFormation templates",
	Long: `Validate CloudFormation templates against the AWS validation API.

Templates are resolved exactly as they would be for a drill: read from
disk, rendered, and submitted for validation in the context's region.

If no stack name is provided, all stacks in the context are validated and a
summary is printed.

Examples:
  stackdrill validate test            # Validate all stacks in the test context
  stackdrill validate test vpc        # Validate a single stack`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contextName := args[0]
		ctx := cmd.Context()

		v, err := getValidator(cmd)
		if err != nil {
			return err
		}

		if len(args) > 1 {
			return v.ValidateSingleStack(ctx, args[1], contextName)
		}
		return v.ValidateAllStacks(ctx, contextName)
	},
}

// getValidator returns the validator instance, creating a default one if none is set
func getValidator(cmd *cobra.Command) (validate.Validator, error) {
	if validator != nil {
		return validator, nil
	}

	ctx := cmd.Context()
	provider, resolver, err := createResolver(ctx, cmd)
	if err != nil {
		return nil, err
	}

	factory, err := getClientFactory(ctx, cmd)
	if err != nil {
		return nil, err
	}

	validator = validate.NewTemplateValidator(factory, provider, resolver)
	return validator, nil
}

// SetValidator allows injection of a validator (for testing)
func SetValidator(v validate.Validator) {
	validator = v
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
