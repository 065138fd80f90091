/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"bytes"
	"testing"

	"github.com/stackdrill/stackdrill/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "stackdrill", rootCmd.Use)
	assert.Equal(t, "A command-line tool for drilling AWS CloudFormation stacks", rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	assert.Contains(t, rootCmd.Long, "Stackdrill exercises CloudFormation stacks end to end")
	assert.Contains(t, rootCmd.Long, "Declarative fleet configuration in YAML files")
	assert.Contains(t, rootCmd.Long, "Stack dependency resolution")
	assert.Contains(t, rootCmd.Long, "Guaranteed teardown")
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	configFlag := flags.Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "stackdrill.yaml", configFlag.DefValue)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Contains(t, configFlag.Usage, "configuration file")

	regionFlag := flags.Lookup("region")
	require.NotNil(t, regionFlag)
	assert.Equal(t, "string", regionFlag.Value.Type())

	profileFlag := flags.Lookup("profile")
	require.NotNil(t, profileFlag)
	assert.Equal(t, "p", profileFlag.Shorthand)
}

func TestRootCmd_Help(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()

	assert.NoError(t, err)

	helpOutput := buf.String()
	assert.Contains(t, helpOutput, "stackdrill")
	assert.Contains(t, helpOutput, "Stackdrill exercises CloudFormation stacks end to end")
	assert.Contains(t, helpOutput, "Available Commands:")
	assert.Contains(t, helpOutput, "drill")
	assert.Contains(t, helpOutput, "--config")
}

func TestRootCmd_Version(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{
		Use:     "stackdrill",
		Version: version.Short(),
	}
	cmd.SetVersionTemplate(version.Info() + "\n")
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "stackdrill")
	assert.Contains(t, output, "Git commit:")
	assert.Contains(t, output, "Build date:")
	assert.Contains(t, output, "Go version:")
	assert.Contains(t, output, "Platform:")
}

func TestRootCmd_Subcommands(t *testing.T) {
	commands := rootCmd.Commands()

	commandNames := make([]string, len(commands))
	for i, cmd := range commands {
		commandNames[i] = cmd.Name()
	}

	assert.Contains(t, commandNames, "drill")
	assert.Contains(t, commandNames, "up")
	assert.Contains(t, commandNames, "down")
	assert.Contains(t, commandNames, "status")
	assert.Contains(t, commandNames, "events")
	assert.Contains(t, commandNames, "validate")
	assert.Contains(t, commandNames, "version")
}

func TestRootCmd_InvalidFlag(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	rootCmd.SetArgs([]string{"--invalid-flag"})

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestRootCmd_FlagInheritance(t *testing.T) {
	drillCmd := findCommand(rootCmd, "drill")
	require.NotNil(t, drillCmd)

	inheritedFlags := drillCmd.InheritedFlags()

	assert.NotNil(t, inheritedFlags.Lookup("config"))
	assert.NotNil(t, inheritedFlags.Lookup("region"))
	assert.NotNil(t, inheritedFlags.Lookup("profile"))
}
