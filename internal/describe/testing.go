/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"

	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockDescriber implements Describer for testing
type MockDescriber struct {
	mock.Mock
}

func (m *MockDescriber) DescribeStack(ctx context.Context, stack *model.Stack) (*StackDescription, error) {
	args := m.Called(ctx, stack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StackDescription), args.Error(1)
}
