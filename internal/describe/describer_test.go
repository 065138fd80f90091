/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"errors"
	"testing"
	"time"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDescriber(t *testing.T) (Describer, *awsinternal.MockCloudFormationOperations) {
	t.Helper()

	mockOps := &awsinternal.MockCloudFormationOperations{}
	mockFactory := &awsinternal.MockClientFactory{}
	mockFactory.On("GetCloudFormationOperations", mock.Anything, "us-east-1").Return(mockOps, nil)

	return NewStackDescriber(mockFactory), mockOps
}

func TestDescribeStack_MapsStackInfo(t *testing.T) {
	describer, mockOps := newTestDescriber(t)
	stack := model.NewTestStackWithDefaults("test-vpc")

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockOps.On("GetStack", mock.Anything, "test-vpc").Return(&awsinternal.Stack{
		Name:        "test-vpc",
		Status:      awsinternal.StackStatusCreateComplete,
		CreatedTime: &created,
		Description: "network baseline",
		Parameters:  map[string]string{"VpcCIDR": "10.0.0.0/16"},
		Outputs:     map[string]string{"VpcId": "vpc-0abc"},
		Tags:        map[string]string{"Team": "platform"},
	}, nil)

	desc, err := describer.DescribeStack(context.Background(), stack)

	require.NoError(t, err)
	assert.Equal(t, "test-vpc", desc.Name)
	assert.Equal(t, "CREATE_COMPLETE", desc.Status)
	assert.False(t, desc.RolledBack)
	assert.Equal(t, created, desc.CreatedTime)
	assert.Equal(t, "us-east-1", desc.Region)
	assert.Equal(t, "vpc-0abc", desc.Outputs["VpcId"])
}

func TestDescribeStack_FlagsRollback(t *testing.T) {
	describer, mockOps := newTestDescriber(t)
	stack := model.NewTestStackWithDefaults("test-rds")

	mockOps.On("GetStack", mock.Anything, "test-rds").Return(&awsinternal.Stack{
		Name:   "test-rds",
		Status: awsinternal.StackStatusRollbackComplete,
	}, nil)

	desc, err := describer.DescribeStack(context.Background(), stack)

	require.NoError(t, err)
	assert.True(t, desc.RolledBack)
}

func TestDescribeStack_NilMapsBecomeEmpty(t *testing.T) {
	describer, mockOps := newTestDescriber(t)
	stack := model.NewTestStackWithDefaults("test-vpc")

	mockOps.On("GetStack", mock.Anything, "test-vpc").Return(&awsinternal.Stack{
		Name:   "test-vpc",
		Status: awsinternal.StackStatusCreateComplete,
	}, nil)

	desc, err := describer.DescribeStack(context.Background(), stack)

	require.NoError(t, err)
	assert.NotNil(t, desc.Parameters)
	assert.NotNil(t, desc.Outputs)
	assert.NotNil(t, desc.Tags)
}

func TestDescribeStack_PropagatesError(t *testing.T) {
	describer, mockOps := newTestDescriber(t)
	stack := model.NewTestStackWithDefaults("test-vpc")

	mockOps.On("GetStack", mock.Anything, "test-vpc").
		Return(nil, errors.New("does not exist"))

	_, err := describer.DescribeStack(context.Background(), stack)

	require.Error(t, err)
}
