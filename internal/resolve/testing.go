/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"

	"github.com/stackdrill/stackdrill/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockFileSystemResolver implements FileSystemResolver for testing
type MockFileSystemResolver struct {
	mock.Mock
}

func (m *MockFileSystemResolver) ReadTemplate(fileURI string) (string, error) {
	args := m.Called(fileURI)
	return args.String(0), args.Error(1)
}

// MockTemplateProcessor implements TemplateProcessor for testing
type MockTemplateProcessor struct {
	mock.Mock
}

func (m *MockTemplateProcessor) Process(templateContent string, variables map[string]interface{}) (string, error) {
	args := m.Called(templateContent, variables)
	return args.String(0), args.Error(1)
}

// MockResolver implements Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveStack(ctx context.Context, contextName string, stackName string) (*model.Stack, error) {
	args := m.Called(ctx, contextName, stackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stack), args.Error(1)
}

func (m *MockResolver) Resolve(ctx context.Context, contextName string, stackNames []string) (*model.ResolvedStacks, error) {
	args := m.Called(ctx, contextName, stackNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResolvedStacks), args.Error(1)
}
