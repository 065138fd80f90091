/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/stackdrill/stackdrill/internal/lifecycle"
	"github.com/spf13/cobra"
)

var (
	// stackLifecycle can be injected for testing
	stackLifecycle lifecycle.Lifecycle
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up <context> [stack-name]",
	Short: "Create CloudFormation stacks",
	Long: `Create CloudFormation stacks and wait for them to reach a terminal state.

Stacks that already exist are skipped, not updated. Provisioning events are
printed as they happen, and a stack that rolls back has its rollback events
reported with their causes.

If no stack name is provided, all stacks in the context are created in
dependency order.

Examples:
  stackdrill up test            # Create all stacks in the test context
  stackdrill up test vpc        # Create a single stack`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contextName := args[0]
		var stackNames []string
		if len(args) > 1 {
			stackNames = args[1:]
		}
		ctx := cmd.Context()

		provider, resolver, err := createResolver(ctx, cmd)
		if err != nil {
			return err
		}

		stacks, err := resolveFleet(ctx, provider, resolver, contextName, stackNames)
		if err != nil {
			return err
		}
		if len(stacks) == 0 {
			fmt.Printf("No stacks found in context %s\n", contextName)
			return nil
		}

		lc, err := getLifecycle(cmd)
		if err != nil {
			return err
		}

		for _, stack := range stacks {
			result, err := lc.Create(ctx, stack)
			if err != nil {
				return fmt.Errorf("error creating stack %s: %w", stack.Name, err)
			}
			if result.Outcome == lifecycle.OutcomeCreated {
				fmt.Printf("Successfully created stack %s in context %s\n", stack.Name, contextName)
			}
		}

		return nil
	},
}

// getLifecycle returns the lifecycle instance, creating a default one if none is set
func getLifecycle(cmd *cobra.Command) (lifecycle.Lifecycle, error) {
	if stackLifecycle != nil {
		return stackLifecycle, nil
	}

	factory, err := getClientFactory(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}

	stackLifecycle = lifecycle.NewStackLifecycle(factory)
	return stackLifecycle, nil
}

// SetLifecycle allows injection of a lifecycle engine (for testing)
func SetLifecycle(lc lifecycle.Lifecycle) {
	stackLifecycle = lc
}

func init() {
	rootCmd.AddCommand(upCmd)
}
