/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stackdrill/stackdrill/internal/prompt"
	"github.com/spf13/cobra"
)

// downCmd represents the down command
var downCmd = &cobra.Command{
	Use:   "down <context> [stack-name]",
	Short: "Delete CloudFormation stacks",
	Long: `Delete CloudFormation stacks and wait for the deletions to complete.

When deleting multiple stacks they are processed in reverse dependency
order, so dependent stacks are removed before the stacks they depend on.
Deletion events are printed as they happen.

If no stack name is provided, all stacks in the context are deleted.

Examples:
  stackdrill down test            # Delete all stacks in the test context
  stackdrill down test vpc        # Delete a single stack
  stackdrill down test --yes      # Delete without the confirmation prompt

CAUTION: Deletion is destructive and cannot be undone. Always verify what
will be deleted before confirming.`,
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

		// Reverse the deployment order for safe deletion
		reversed := make([]*model.Stack, len(stacks))
		for i, stack := range stacks {
			reversed[len(stacks)-1-i] = stack
		}

		assumeYes, _ := cmd.Flags().GetBool("yes")
		if !assumeYes {
			confirmed, err := prompt.Confirm(fmt.Sprintf("Delete %d stack(s) in context %s?", len(reversed), contextName))
			if err != nil {
				return fmt.Errorf("failed to confirm deletion: %w", err)
			}
			if !confirmed {
				fmt.Println("Deletion cancelled")
				return nil
			}
		}

		lc, err := getLifecycle(cmd)
		if err != nil {
			return err
		}

		for _, stack := range reversed {
			if _, err := lc.Delete(ctx, stack); err != nil {
				return fmt.Errorf("error deleting stack %s: %w", stack.Name, err)
			}
			fmt.Printf("Successfully deleted stack %s in context %s\n", stack.Name, contextName)
		}

		return nil
	},
}

func init() {
	downCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(downCmd)
}
