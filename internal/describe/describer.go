/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"fmt"
	"time"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/model"
)

// StackDescriber implements the Describer interface using AWS CloudFormation operations
type StackDescriber struct {
	clientFactory awsinternal.ClientFactory
}

// NewStackDescriber creates a new describer with the provided client factory
func NewStackDescriber(clientFactory awsinternal.ClientFactory) Describer {
	return &StackDescriber{
		clientFactory: clientFactory,
	}
}

// DescribeStack retrieves comprehensive information about a CloudFormation stack
func (d *StackDescriber) DescribeStack(ctx context.Context, stack *model.Stack) (*StackDescription, error) {
	cfOps, err := d.clientFactory.GetCloudFormationOperations(ctx, stack.Context.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to get CloudFormation operations for region %s: %w", stack.Context.Region, err)
	}

	stackInfo, err := cfOps.GetStack(ctx, stack.Name)
	if err != nil {
		return nil, err
	}

	return &StackDescription{
		Name:        stackInfo.Name,
		Status:      string(stackInfo.Status),
		CreatedTime: dereferenceTime(stackInfo.CreatedTime),
		UpdatedTime: stackInfo.UpdatedTime,
		Description: stackInfo.Description,
		RolledBack:  stackInfo.Status.IsRollbackComplete(),
		Parameters:  orEmptyMap(stackInfo.Parameters),
		Outputs:     orEmptyMap(stackInfo.Outputs),
		Tags:        orEmptyMap(stackInfo.Tags),
		Region:      stack.Context.Region,
	}, nil
}

// dereferenceTime safely dereferences a time pointer
func dereferenceTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}
