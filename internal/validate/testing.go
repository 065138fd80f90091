/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockValidator implements Validator for testing
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateSingleStack(ctx context.Context, stackName, contextName string) error {
	args := m.Called(ctx, stackName, contextName)
	return args.Error(0)
}

func (m *MockValidator) ValidateAllStacks(ctx context.Context, contextName string) error {
	args := m.Called(ctx, contextName)
	return args.Error(0)
}
