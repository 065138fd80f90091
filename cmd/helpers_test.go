/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// findCommand locates a registered subcommand by its Use line
func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

// createTempConfigWithTemplates writes a config file plus empty template
// files and returns the directory
func createTempConfigWithTemplates(t *testing.T, configContent string, templateNames []string) string {
	t.Helper()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "stackdrill.yaml"), []byte(configContent), 0o644))

	templatesDir := filepath.Join(tmpDir, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))
	for _, name := range templateNames {
		require.NoError(t, os.WriteFile(filepath.Join(templatesDir, name), []byte("Resources: {}\n"), 0o644))
	}

	return tmpDir
}

// chdir switches to dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(oldWd))
	})
}

// injectMockFactory installs a client factory that hands out the given
// CloudFormation operations for any region
func injectMockFactory(t *testing.T) *awsinternal.MockClientFactory {
	t.Helper()

	mockFactory := &awsinternal.MockClientFactory{}

	oldFactory := clientFactory
	SetClientFactory(mockFactory)
	t.Cleanup(func() { SetClientFactory(oldFactory) })

	return mockFactory
}

const testFleetConfig = `
project: netdrill
region: us-east-1

contexts:
  dev:
    account: "123456789012"

stacks:
  - name: vpc
    template: templates/vpc.yaml
    parameters:
      VpcCidr: 10.0.0.0/16
  - name: rds
    template: templates/rds.yaml
    depends_on:
      - vpc
`

var testFleetTemplates = []string{"vpc.yaml", "rds.yaml"}
