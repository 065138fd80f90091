/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/config"
	"github.com/stackdrill/stackdrill/internal/config/file"
	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stackdrill/stackdrill/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	// clientFactory can be injected for testing
	clientFactory awsinternal.ClientFactory
)

// SetClientFactory allows injection of a client factory (for testing)
func SetClientFactory(f awsinternal.ClientFactory) {
	clientFactory = f
}

// getClientFactory returns the client factory, creating a default one from
// the global flags if none is set
func getClientFactory(ctx context.Context, cmd *cobra.Command) (awsinternal.ClientFactory, error) {
	if clientFactory != nil {
		return clientFactory, nil
	}

	region, _ := cmd.Flags().GetString("region")
	profile, _ := cmd.Flags().GetString("profile")

	factory, err := awsinternal.NewClientFactory(ctx, awsinternal.Config{
		Region:  region,
		Profile: profile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client factory: %w", err)
	}

	clientFactory = factory
	return clientFactory, nil
}

// createResolver creates a configuration provider and resolver from the
// --config flag
func createResolver(ctx context.Context, cmd *cobra.Command) (config.ConfigProvider, resolve.Resolver, error) {
	configFile, _ := cmd.Flags().GetString("config")
	provider := file.NewProvider(configFile)

	factory, err := getClientFactory(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	return provider, resolve.NewStackResolver(provider, factory), nil
}

// resolveFleet resolves the named stacks, or every stack in the context when
// none are named, and returns them in deployment order
func resolveFleet(ctx context.Context, provider config.ConfigProvider, resolver resolve.Resolver, contextName string, stackNames []string) ([]*model.Stack, error) {
	if len(stackNames) == 0 {
		var err error
		stackNames, err = provider.ListStacks(contextName)
		if err != nil {
			return nil, fmt.Errorf("failed to get stacks for context %s: %w", contextName, err)
		}
	}

	if len(stackNames) == 0 {
		return nil, nil
	}

	resolved, err := resolver.Resolve(ctx, contextName, stackNames)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stack dependencies: %w", err)
	}

	return resolved.StacksInOrder(), nil
}
