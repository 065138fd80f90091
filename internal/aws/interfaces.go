/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// CloudFormationClient defines the interface for CloudFormation client operations
// This allows for easier testing with mock implementations
type CloudFormationClient interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(ctx context.Context, params *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
	ListStacks(ctx context.Context, params *cloudformation.ListStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error)
	ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error)
	GetTemplate(ctx context.Context, params *cloudformation.GetTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.GetTemplateOutput, error)
}

// SSMClient defines the interface for the SSM parameter store operations we use
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Ensure that the actual AWS clients implement our interfaces
var _ CloudFormationClient = (*cloudformation.Client)(nil)
var _ SSMClient = (*ssm.Client)(nil)

// Ensure that the default implementations satisfy their interfaces
var _ CloudFormationOperations = (*DefaultCloudFormationOperations)(nil)
var _ SSMOperations = (*DefaultSSMOperations)(nil)
var _ ClientFactory = (*DefaultClientFactory)(nil)

// CloudFormationOperations defines the interface for CloudFormation operations
type CloudFormationOperations interface {
	CreateStack(ctx context.Context, input CreateStackInput) error
	DeleteStack(ctx context.Context, input DeleteStackInput) error
	GetStack(ctx context.Context, stackName string) (*Stack, error)
	ListStacks(ctx context.Context) ([]*Stack, error)
	ValidateTemplate(ctx context.Context, templateBody string) error
	StackExists(ctx context.Context, stackName string) (bool, error)
	GetTemplate(ctx context.Context, stackName string) (string, error)
	DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error)
	WaitForStackCreate(ctx context.Context, stackName string, since time.Time, eventCallback func(StackEvent)) error
	WaitForStackDelete(ctx context.Context, stackName string, since time.Time, eventCallback func(StackEvent)) error
}

// SSMOperations defines the interface for SSM parameter store access
type SSMOperations interface {
	GetParameter(ctx context.Context, name string, withDecryption bool) (string, error)
}
