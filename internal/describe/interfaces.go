/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"time"

	"github.com/stackdrill/stackdrill/internal/model"
)

// Describer defines the interface for retrieving detailed stack information
type Describer interface {
	DescribeStack(ctx context.Context, stack *model.Stack) (*StackDescription, error)
}

// StackDescription contains comprehensive information about a CloudFormation stack
type StackDescription struct {
	// Basic stack information
	Name        string
	Status      string
	CreatedTime time.Time
	UpdatedTime *time.Time
	Description string

	// RolledBack is set when the status indicates a completed rollback
	RolledBack bool

	// Stack configuration
	Parameters map[string]string
	Outputs    map[string]string
	Tags       map[string]string

	// Additional metadata
	Region string
}
