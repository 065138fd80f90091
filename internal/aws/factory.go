/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Config holds configuration for creating the client factory
type Config struct {
	Region  string
	Profile string
}

// ClientFactory creates AWS service clients with proper region configuration.
// A single factory is shared across the whole process so credentials are
// loaded once and each region's clients are constructed once.
type ClientFactory interface {
	// GetCloudFormationOperations returns CloudFormation operations for the specified region
	GetCloudFormationOperations(ctx context.Context, region string) (CloudFormationOperations, error)

	// GetSSMOperations returns SSM parameter store operations for the specified region
	GetSSMOperations(ctx context.Context, region string) (SSMOperations, error)

	// GetBaseConfig returns the shared AWS configuration
	GetBaseConfig() aws.Config
}

// DefaultClientFactory implements ClientFactory with caching and shared authentication
type DefaultClientFactory struct {
	baseConfig aws.Config
	cfnCache   map[string]CloudFormationOperations
	ssmCache   map[string]SSMOperations
	mutex      sync.RWMutex
}

// NewClientFactory creates a client factory with shared authentication.
// Region and profile overrides apply to the base configuration; individual
// clients may still be constructed for other regions.
func NewClientFactory(ctx context.Context, cfg Config) (*DefaultClientFactory, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	baseConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &DefaultClientFactory{
		baseConfig: baseConfig,
		cfnCache:   make(map[string]CloudFormationOperations),
		ssmCache:   make(map[string]SSMOperations),
	}, nil
}

// GetCloudFormationOperations returns CloudFormation operations for the specified region
func (f *DefaultClientFactory) GetCloudFormationOperations(ctx context.Context, region string) (CloudFormationOperations, error) {
	if region == "" {
		region = f.baseConfig.Region
	}
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	f.mutex.RLock()
	if ops, exists := f.cfnCache[region]; exists {
		f.mutex.RUnlock()
		return ops, nil
	}
	f.mutex.RUnlock()

	regionConfig := f.baseConfig.Copy()
	regionConfig.Region = region

	cfnClient := cloudformation.NewFromConfig(regionConfig)
	ops := NewCloudFormationOperationsWithClient(cfnClient)

	f.mutex.Lock()
	f.cfnCache[region] = ops
	f.mutex.Unlock()

	return ops, nil
}

// GetSSMOperations returns SSM parameter store operations for the specified region
func (f *DefaultClientFactory) GetSSMOperations(ctx context.Context, region string) (SSMOperations, error) {
	if region == "" {
		region = f.baseConfig.Region
	}
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	f.mutex.RLock()
	if ops, exists := f.ssmCache[region]; exists {
		f.mutex.RUnlock()
		return ops, nil
	}
	f.mutex.RUnlock()

	regionConfig := f.baseConfig.Copy()
	regionConfig.Region = region

	ssmClient := ssm.NewFromConfig(regionConfig)
	ops := NewSSMOperationsWithClient(ssmClient)

	f.mutex.Lock()
	f.ssmCache[region] = ops
	f.mutex.Unlock()

	return ops, nil
}

// GetBaseConfig returns the shared AWS configuration
func (f *DefaultClientFactory) GetBaseConfig() aws.Config {
	return f.baseConfig
}
