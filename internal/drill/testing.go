/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package drill

import (
	"context"

	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRunner implements Runner for testing
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, stacks []*model.Stack, opts Options) *Report {
	args := m.Called(ctx, stacks, opts)
	return args.Get(0).(*Report)
}
