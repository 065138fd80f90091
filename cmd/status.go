/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/stackdrill/stackdrill/internal/describe"
	"github.com/spf13/cobra"
)

var (
	// describer can be injected for testing
	describer describe.Describer
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <context> <stack-name>",
	Short: "Show detailed stack status",
	Long: `Show detailed information about a CloudFormation stack: status,
parameters, outputs and tags. A stack that failed and rolled back is
flagged, with its rollback events reported.

Examples:
  stackdrill status test vpc      # Show status of the vpc stack`,
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

		d, err := getDescriber(cmd)
		if err != nil {
			return err
		}

		desc, err := d.DescribeStack(ctx, stack)
		if err != nil {
			return fmt.Errorf("failed to describe stack %s: %w", stackName, err)
		}

		fmt.Print(describe.FormatStackDescription(desc))

		if desc.RolledBack {
			lc, err := getLifecycle(cmd)
			if err != nil {
				return err
			}
			if err := lc.DetectRollback(ctx, stack); err != nil {
				return err
			}
		}

		return nil
	},
}

// getDescriber returns the describer instance, creating a default one if none is set
func getDescriber(cmd *cobra.Command) (describe.Describer, error) {
	if describer != nil {
		return describer, nil
	}

	factory, err := getClientFactory(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}

	describer = describe.NewStackDescriber(factory)
	return describer, nil
}

// SetDescriber allows injection of a describer (for testing)
func SetDescriber(d describe.Describer) {
	describer = d
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
