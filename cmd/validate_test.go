/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"errors"
	"testing"

	"github.com/stackdrill/stackdrill/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Exists(t *testing.T) {
	validateCmd := findCommand(rootCmd, "validate")

	require.NotNil(t, validateCmd, "validate command should be registered")
	assert.Equal(t, "validate <context> [stack-name]", validateCmd.Use)
}

func TestValidateCommand_SingleStack(t *testing.T) {
	mockValidator := &validate.MockValidator{}
	oldValidator := validator
	SetValidator(mockValidator)
	defer SetValidator(oldValidator)

	mockValidator.On("ValidateSingleStack", mock.Anything, "vpc", "dev").Return(nil)

	rootCmd.SetArgs([]string{"validate", "dev", "vpc"})
	err := rootCmd.Execute()

	require.NoError(t, err)
	mockValidator.AssertExpectations(t)
}

func TestValidateCommand_AllStacks(t *testing.T) {
	mockValidator := &validate.MockValidator{}
	oldValidator := validator
	SetValidator(mockValidator)
	defer SetValidator(oldValidator)

	mockValidator.On("ValidateAllStacks", mock.Anything, "dev").Return(nil)

	rootCmd.SetArgs([]string{"validate", "dev"})
	err := rootCmd.Execute()

	require.NoError(t, err)
	mockValidator.AssertExpectations(t)
}

func TestValidateCommand_PropagatesFailure(t *testing.T) {
	mockValidator := &validate.MockValidator{}
	oldValidator := validator
	SetValidator(mockValidator)
	defer SetValidator(oldValidator)

	mockValidator.On("ValidateAllStacks", mock.Anything, "dev").
		Return(errors.New("validation failed for one or more stacks"))

	rootCmd.SetArgs([]string{"validate", "dev"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
