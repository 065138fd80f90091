/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/stackdrill/stackdrill/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackdrill",
	Short: "A command-line tool for drilling AWS CloudFormation stacks",
	Long: `Stackdrill exercises CloudFormation stacks end to end: it creates each
stack in a fleet, watches the provisioning events as they happen, reports
rollbacks with their causes, and tears everything down again.

• Declarative fleet configuration in YAML files
• Context-specific parameter management with env, SSM and stack-output resolvers
• Stack dependency resolution
• Live provisioning event output and rollback diagnosis
• Guaranteed teardown, even when creation fails partway

Use stackdrill to prove that your templates deploy cleanly and clean up
after themselves before they reach a long-lived environment.`,
	Version: version.Short(),
}

// Execute runs the root command with the given context.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(version.Short()),
	)
}

// RootCommand returns the root command, for documentation generation
func RootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "stackdrill.yaml", "configuration file (default is stackdrill.yaml)")
	rootCmd.PersistentFlags().String("region", "", "AWS region (overrides configuration)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile (overrides configuration)")
}
