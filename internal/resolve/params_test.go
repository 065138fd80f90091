/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"errors"
	"testing"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/config"
	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveValue_Literal(t *testing.T) {
	pr := NewParameterResolver(&awsinternal.MockClientFactory{})
	stackCtx := model.NewDefaultTestContext()

	value, err := pr.ResolveValue(context.Background(), stackCtx, config.NewLiteralParameterValue("10.0.0.0/16"))

	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", value)
}

func TestResolveValue_EnvReadsVariable(t *testing.T) {
	pr := NewParameterResolver(&awsinternal.MockClientFactory{})
	stackCtx := model.NewDefaultTestContext()

	t.Setenv("DRILL_TEST_DB_PASSWORD", "s3cret")

	value, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType:   "env",
		ResolutionConfig: map[string]string{"name": "DRILL_TEST_DB_PASSWORD"},
	})

	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
}

func TestResolveValue_EnvUnsetVariableErrors(t *testing.T) {
	pr := NewParameterResolver(&awsinternal.MockClientFactory{})
	stackCtx := model.NewDefaultTestContext()

	_, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType:   "env",
		ResolutionConfig: map[string]string{"name": "DRILL_TEST_DEFINITELY_UNSET"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DRILL_TEST_DEFINITELY_UNSET is not set")
}

func TestResolveValue_SSMFetchesWithDecryption(t *testing.T) {
	mockFactory := &awsinternal.MockClientFactory{}
	mockSSM := &awsinternal.MockSSMOperations{}
	mockFactory.On("GetSSMOperations", mock.Anything, "us-east-1").Return(mockSSM, nil)
	mockSSM.On("GetParameter", mock.Anything, "/drill/db/password", true).
		Return("hunter2", nil)

	pr := NewParameterResolver(mockFactory)
	stackCtx := model.NewDefaultTestContext()

	value, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType:   "ssm",
		ResolutionConfig: map[string]string{"name": "/drill/db/password"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)
	mockSSM.AssertExpectations(t)
}

func TestResolveValue_SSMHonoursRegionOverride(t *testing.T) {
	mockFactory := &awsinternal.MockClientFactory{}
	mockSSM := &awsinternal.MockSSMOperations{}
	mockFactory.On("GetSSMOperations", mock.Anything, "eu-west-1").Return(mockSSM, nil)
	mockSSM.On("GetParameter", mock.Anything, "/drill/key", true).Return("v", nil)

	pr := NewParameterResolver(mockFactory)
	stackCtx := model.NewDefaultTestContext()

	_, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType: "ssm",
		ResolutionConfig: map[string]string{
			"name":   "/drill/key",
			"region": "eu-west-1",
		},
	})

	require.NoError(t, err)
	mockFactory.AssertCalled(t, "GetSSMOperations", mock.Anything, "eu-west-1")
}

func TestResolveValue_OutputLooksUpStackOutput(t *testing.T) {
	mockFactory := &awsinternal.MockClientFactory{}
	mockOps := &awsinternal.MockCloudFormationOperations{}
	mockFactory.On("GetCloudFormationOperations", mock.Anything, "us-east-1").Return(mockOps, nil)
	mockOps.On("GetStack", mock.Anything, "test-vpc").Return(&awsinternal.Stack{
		Name:    "test-vpc",
		Outputs: map[string]string{"VpcId": "vpc-0abc"},
	}, nil)

	pr := NewParameterResolver(mockFactory)
	stackCtx := model.NewDefaultTestContext()

	value, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType: "output",
		ResolutionConfig: map[string]string{
			"stack_name": "test-vpc",
			"output_key": "VpcId",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "vpc-0abc", value)
}

func TestResolveValue_OutputMissingKeyErrors(t *testing.T) {
	mockFactory := &awsinternal.MockClientFactory{}
	mockOps := &awsinternal.MockCloudFormationOperations{}
	mockFactory.On("GetCloudFormationOperations", mock.Anything, "us-east-1").Return(mockOps, nil)
	mockOps.On("GetStack", mock.Anything, "test-vpc").Return(&awsinternal.Stack{
		Name:    "test-vpc",
		Outputs: map[string]string{},
	}, nil)

	pr := NewParameterResolver(mockFactory)
	stackCtx := model.NewDefaultTestContext()

	_, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType: "output",
		ResolutionConfig: map[string]string{
			"stack_name": "test-vpc",
			"output_key": "VpcId",
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no output VpcId")
}

func TestResolveValue_ListJoinsResolvedItems(t *testing.T) {
	pr := NewParameterResolver(&awsinternal.MockClientFactory{})
	stackCtx := model.NewDefaultTestContext()

	value, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType: "list",
		ListItems: []*config.ParameterValue{
			config.NewLiteralParameterValue("subnet-a"),
			config.NewLiteralParameterValue("subnet-b"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "subnet-a,subnet-b", value)
}

func TestResolveValue_ListItemFailurePropagates(t *testing.T) {
	pr := NewParameterResolver(&awsinternal.MockClientFactory{})
	stackCtx := model.NewDefaultTestContext()

	_, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType: "list",
		ListItems: []*config.ParameterValue{
			config.NewLiteralParameterValue("ok"),
			{ResolutionType: "env", ResolutionConfig: map[string]string{"name": "DRILL_TEST_DEFINITELY_UNSET"}},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list item 1")
}

func TestResolveValue_UnknownTypeErrors(t *testing.T) {
	pr := NewParameterResolver(&awsinternal.MockClientFactory{})
	stackCtx := model.NewDefaultTestContext()

	_, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType: "vault",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parameter resolution type")
}

func TestResolveValue_SSMErrorWrapped(t *testing.T) {
	mockFactory := &awsinternal.MockClientFactory{}
	mockSSM := &awsinternal.MockSSMOperations{}
	mockFactory.On("GetSSMOperations", mock.Anything, "us-east-1").Return(mockSSM, nil)
	mockSSM.On("GetParameter", mock.Anything, "/drill/key", true).
		Return("", errors.New("ParameterNotFound"))

	pr := NewParameterResolver(mockFactory)
	stackCtx := model.NewDefaultTestContext()

	_, err := pr.ResolveValue(context.Background(), stackCtx, &config.ParameterValue{
		ResolutionType:   "ssm",
		ResolutionConfig: map[string]string{"name": "/drill/key"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve SSM parameter /drill/key")
}
