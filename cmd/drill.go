/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/stackdrill/stackdrill/internal/drill"
	"github.com/stackdrill/stackdrill/internal/lifecycle"
	"github.com/spf13/cobra"
)

var (
	// runner can be injected for testing
	runner drill.Runner
)

// drillCmd represents the drill command
var drillCmd = &cobra.Command{
	Use:   "drill <context> [stack-name...]",
	Short: "Create a fleet of stacks and tear it down again",
	Long: `Drill a fleet of CloudFormation stacks: create each stack in order, then
delete every one of them again.

Stacks are created in dependency order (declaration order when no
dependencies are declared). A stack that already exists is skipped, and a
failed create never stops the sequence. Provisioning events are printed as
they happen, and a stack that rolls back has its rollback events reported
with their causes.

Teardown always covers the whole fleet, in the same order the creates were
attempted, so a partially failed run still cleans up after itself. Use
--keep to leave the created stacks in place.

If no stack names are given, every stack in the context is drilled.

Examples:
  stackdrill drill test                  # Drill every stack in the test context
  stackdrill drill test vpc rds          # Drill only vpc and rds
  stackdrill drill test --keep           # Create the fleet and keep it`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contextName := args[0]
		stackNames := args[1:]
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

		keep, _ := cmd.Flags().GetBool("keep")

		r, err := getRunner(cmd)
		if err != nil {
			return err
		}

		report := r.Run(ctx, stacks, drill.Options{Keep: keep})
		if report.Failed() {
			return fmt.Errorf("drill completed with failures")
		}
		return nil
	},
}

// getRunner returns the runner instance, creating a default one if none is set
func getRunner(cmd *cobra.Command) (drill.Runner, error) {
	if runner != nil {
		return runner, nil
	}

	factory, err := getClientFactory(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}

	runner = drill.NewDrillRunner(lifecycle.NewStackLifecycle(factory))
	return runner, nil
}

// SetRunner allows injection of a runner (for testing)
func SetRunner(r drill.Runner) {
	runner = r
}

func init() {
	drillCmd.Flags().Bool("keep", false, "keep created stacks, skipping teardown")
	rootCmd.AddCommand(drillCmd)
}
