/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStackStatus_IsRollbackComplete(t *testing.T) {
	tests := []struct {
		status   StackStatus
		expected bool
	}{
		{StackStatusRollbackComplete, true},
		{StackStatus("UPDATE_ROLLBACK_COMPLETE"), true},
		{StackStatus("IMPORT_ROLLBACK_COMPLETE"), true},
		{StackStatusCreateComplete, false},
		{StackStatusRollbackInProgress, false},
		{StackStatusDeleteComplete, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsRollbackComplete())
		})
	}
}

func TestStackStatus_IsInProgress(t *testing.T) {
	assert.True(t, StackStatusCreateInProgress.IsInProgress())
	assert.True(t, StackStatusDeleteInProgress.IsInProgress())
	assert.False(t, StackStatusCreateComplete.IsInProgress())
}

func TestStackStatus_IsFailed(t *testing.T) {
	assert.True(t, StackStatusCreateFailed.IsFailed())
	assert.True(t, StackStatusRollbackComplete.IsFailed())
	assert.True(t, StackStatusDeleteFailed.IsFailed())
	assert.False(t, StackStatusCreateComplete.IsFailed())
}

func TestStackExists_ReturnsTrueWhenStackFound(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DescribeStacks", mock.Anything, mock.MatchedBy(func(input *cloudformation.DescribeStacksInput) bool {
		return aws.ToString(input.StackName) == "test-stack"
	})).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{StackName: aws.String("test-stack")}},
	}, nil)

	exists, err := cfOps.StackExists(context.Background(), "test-stack")

	require.NoError(t, err)
	assert.True(t, exists)
	mockClient.AssertExpectations(t)
}

func TestStackExists_ReturnsFalseWhenStackDoesNotExist(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(nil, errors.New("ValidationError: Stack with id test-stack does not exist"))

	exists, err := cfOps.StackExists(context.Background(), "test-stack")

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStackExists_PropagatesUnexpectedErrors(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(nil, errors.New("AccessDenied: not authorised"))

	exists, err := cfOps.StackExists(context.Background(), "test-stack")

	require.Error(t, err)
	assert.False(t, exists)
	assert.Contains(t, err.Error(), "failed to check if stack exists")
}

func TestCreateStack_ConvertsInput(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("CreateStack", mock.Anything, mock.MatchedBy(func(input *cloudformation.CreateStackInput) bool {
		if aws.ToString(input.StackName) != "test-stack" {
			return false
		}
		if aws.ToString(input.TemplateBody) != "template-body" {
			return false
		}
		if len(input.Parameters) != 1 || aws.ToString(input.Parameters[0].ParameterKey) != "VpcCIDR" {
			return false
		}
		return len(input.Capabilities) == 1 && input.Capabilities[0] == types.CapabilityCapabilityIam
	})).Return(&cloudformation.CreateStackOutput{StackId: aws.String("stack-id")}, nil)

	err := cfOps.CreateStack(context.Background(), CreateStackInput{
		StackName:    "test-stack",
		TemplateBody: "template-body",
		Parameters:   []Parameter{{Key: "VpcCIDR", Value: "10.0.0.0/16"}},
		Tags:         map[string]string{"Project": "stackdrill"},
		Capabilities: []string{"CAPABILITY_IAM"},
	})

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestCreateStack_WrapsSubmissionError(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("CreateStack", mock.Anything, mock.Anything).
		Return(nil, errors.New("template is malformed"))

	err := cfOps.CreateStack(context.Background(), CreateStackInput{StackName: "bad-stack"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create stack bad-stack")
}

func TestDeleteStack_SubmitsRequest(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DeleteStack", mock.Anything, mock.MatchedBy(func(input *cloudformation.DeleteStackInput) bool {
		return aws.ToString(input.StackName) == "test-stack"
	})).Return(&cloudformation.DeleteStackOutput{}, nil)

	err := cfOps.DeleteStack(context.Background(), DeleteStackInput{StackName: "test-stack"})

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestGetStack_MapsStackFields(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{
			StackName:    aws.String("test-stack"),
			StackStatus:  types.StackStatusCreateComplete,
			CreationTime: &created,
			Description:  aws.String("a test stack"),
			Parameters: []types.Parameter{
				{ParameterKey: aws.String("VpcCIDR"), ParameterValue: aws.String("10.0.0.0/16")},
			},
			Outputs: []types.Output{
				{OutputKey: aws.String("VpcId"), OutputValue: aws.String("vpc-123")},
			},
			Tags: []types.Tag{
				{Key: aws.String("Project"), Value: aws.String("stackdrill")},
			},
		}},
	}, nil)

	stack, err := cfOps.GetStack(context.Background(), "test-stack")

	require.NoError(t, err)
	assert.Equal(t, "test-stack", stack.Name)
	assert.Equal(t, StackStatusCreateComplete, stack.Status)
	assert.Equal(t, "a test stack", stack.Description)
	assert.Equal(t, "10.0.0.0/16", stack.Parameters["VpcCIDR"])
	assert.Equal(t, "vpc-123", stack.Outputs["VpcId"])
	assert.Equal(t, "stackdrill", stack.Tags["Project"])
}

func TestDescribeStackEvents_MapsEvents(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	timestamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockClient.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{{
			EventId:              aws.String("event-1"),
			StackName:            aws.String("test-stack"),
			LogicalResourceId:    aws.String("Vpc"),
			ResourceType:         aws.String("AWS::EC2::VPC"),
			ResourceStatus:       types.ResourceStatusCreateComplete,
			ResourceStatusReason: aws.String("Resource creation complete"),
			Timestamp:            &timestamp,
		}},
	}, nil)

	events, err := cfOps.DescribeStackEvents(context.Background(), "test-stack")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "event-1", events[0].EventId)
	assert.Equal(t, "Vpc", events[0].LogicalResourceId)
	assert.Equal(t, "AWS::EC2::VPC", events[0].ResourceType)
	assert.Equal(t, "CREATE_COMPLETE", events[0].ResourceStatus)
	assert.Equal(t, timestamp, events[0].Timestamp)
}

func TestWaitForStackCreate_StreamsEventsAndStopsAfterWait(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)
	cfOps.SetPollInterval(5 * time.Millisecond)

	since := time.Now()
	eventTime := since.Add(time.Second)

	// Waiter resolves on its first describe because the stack is already complete
	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{
			StackName:   aws.String("test-stack"),
			StackStatus: types.StackStatusCreateComplete,
		}},
	}, nil)

	mockClient.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{{
			EventId:        aws.String("event-1"),
			StackName:      aws.String("test-stack"),
			ResourceStatus: types.ResourceStatusCreateComplete,
			ResourceType:   aws.String("AWS::CloudFormation::Stack"),
			Timestamp:      &eventTime,
		}},
	}, nil).Maybe()

	var callbackCount atomic.Int64
	err := cfOps.WaitForStackCreate(context.Background(), "test-stack", since, func(event StackEvent) {
		callbackCount.Add(1)
	})

	require.NoError(t, err)

	// Once the wait has resolved the streamer must be fully stopped
	settled := callbackCount.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, callbackCount.Load())
}

func TestWaitForStackCreate_ReturnsWaiterError(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)
	cfOps.SetPollInterval(5 * time.Millisecond)

	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).
		Return(nil, errors.New("ValidationError: Stack with id test-stack does not exist"))
	mockClient.On("DescribeStackEvents", mock.Anything, mock.Anything).
		Return(nil, errors.New("ValidationError: Stack with id test-stack does not exist")).Maybe()

	err := cfOps.WaitForStackCreate(context.Background(), "test-stack", time.Now(), func(StackEvent) {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to wait for creation of stack test-stack")
}

func TestWaitForStackDelete_SucceedsWithoutCallback(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{
			StackName:   aws.String("test-stack"),
			StackStatus: types.StackStatusDeleteComplete,
		}},
	}, nil)

	err := cfOps.WaitForStackDelete(context.Background(), "test-stack", time.Now(), nil)

	require.NoError(t, err)
}
