/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/stackdrill/stackdrill/internal/ui"
	"github.com/spf13/cobra"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events <context> <stack-name>",
	Short: "Show recent stack events",
	Long: `Show the recorded events for a CloudFormation stack, oldest first.

Each line shows the event time, resource status, resource type and logical
id, with the status reason when the provider supplied one.

Examples:
  stackdrill events test rds      # Show events for the rds stack`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contextName := args[0]
		stackName := args[1]
		ctx := cmd.Context()

		_, resolver, err := createResolver(ctx, cmd)
		if err != nil {
			return err
		}

		stack, err := resolver.ResolveStack(ctx, contextName, stackName)
		if err != nil {
			return fmt.Errorf("failed to resolve stack %s: %w", stackName, err)
		}

		factory, err := getClientFactory(ctx, cmd)
		if err != nil {
			return err
		}

		cfnOps, err := factory.GetCloudFormationOperations(ctx, stack.Context.Region)
		if err != nil {
			return fmt.Errorf("failed to get CloudFormation operations for region %s: %w", stack.Context.Region, err)
		}

		events, err := cfnOps.DescribeStackEvents(ctx, stack.Name)
		if err != nil {
			return fmt.Errorf("failed to describe events for stack %s: %w", stackName, err)
		}

		if len(events) == 0 {
			fmt.Printf("No events recorded for stack %s\n", stackName)
			return nil
		}

		styles := ui.NewStyleSet(ui.ShouldUseColour())

		// The API returns newest first; print oldest first
		for i := len(events) - 1; i >= 0; i-- {
			event := events[i]
			fmt.Printf("%s  %s  %s  %s\n",
				event.Timestamp.Format("2006-01-02 15:04:05"),
				styles.RenderStatus(event.ResourceStatus),
				event.ResourceType,
				event.LogicalResourceId)
			if event.ResourceStatusReason != "" {
				fmt.Printf("    Reason: %s\n", event.ResourceStatusReason)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
