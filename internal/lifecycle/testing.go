/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package lifecycle

import (
	"context"

	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockLifecycle implements Lifecycle for testing
type MockLifecycle struct {
	mock.Mock
}

func (m *MockLifecycle) Exists(ctx context.Context, stack *model.Stack) (bool, error) {
	args := m.Called(ctx, stack)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycle) Create(ctx context.Context, stack *model.Stack) (*Result, error) {
	args := m.Called(ctx, stack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockLifecycle) Delete(ctx context.Context, stack *model.Stack) (*Result, error) {
	args := m.Called(ctx, stack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockLifecycle) DetectRollback(ctx context.Context, stack *model.Stack) error {
	args := m.Called(ctx, stack)
	return args.Error(0)
}
