/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package lifecycle drives individual stack operations end to end: create
// with event streaming and rollback detection, and delete with event
// streaming. All provisioning state lives with the provider; this package
// only submits requests and observes the reported status.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	awsinternal "github.com/stackdrill/stackdrill/internal/aws"
	"github.com/stackdrill/stackdrill/internal/model"
)

// defaultCapabilities is granted when a stack configuration names none.
// Templates that create IAM resources are rejected without it.
var defaultCapabilities = []string{"CAPABILITY_IAM"}

// Outcome classifies how a stack operation concluded
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped-exists"
	OutcomeDeleted Outcome = "deleted"
)

// Result describes a concluded stack operation
type Result struct {
	StackName string
	Outcome   Outcome
	Duration  time.Duration
}

// OperationError reports a failed create or delete. Op distinguishes a
// rejected submission from a failed wait so callers can tell "provider
// rejected template" apart from "stack never reached a terminal state".
type OperationError struct {
	StackName string
	Op        string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("stack %s: %s failed: %v", e.StackName, e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Lifecycle defines the interface for single-stack lifecycle operations
type Lifecycle interface {
	Exists(ctx context.Context, stack *model.Stack) (bool, error)
	Create(ctx context.Context, stack *model.Stack) (*Result, error)
	Delete(ctx context.Context, stack *model.Stack) (*Result, error)
	DetectRollback(ctx context.Context, stack *model.Stack) error
}

// StackLifecycle implements Lifecycle using AWS CloudFormation
type StackLifecycle struct {
	clientFactory awsinternal.ClientFactory
	out           io.Writer
}

// NewStackLifecycle creates a lifecycle engine writing progress to stdout
func NewStackLifecycle(clientFactory awsinternal.ClientFactory) *StackLifecycle {
	return &StackLifecycle{
		clientFactory: clientFactory,
		out:           os.Stdout,
	}
}

// SetOutput redirects progress output (for testing)
func (l *StackLifecycle) SetOutput(w io.Writer) {
	l.out = w
}

// Exists checks whether the stack is present in its context's region.
// Unexpected describe failures propagate; this is the one operation that
// re-signals errors instead of converting them.
func (l *StackLifecycle) Exists(ctx context.Context, stack *model.Stack) (bool, error) {
	cfnOps, err := l.operations(ctx, stack)
	if err != nil {
		return false, err
	}

	exists, err := cfnOps.StackExists(ctx, stack.Name)
	if err != nil {
		return false, fmt.Errorf("failed to check if stack %s exists: %w", stack.Name, err)
	}
	return exists, nil
}

// Create provisions the stack and blocks until it reaches a terminal state.
// An already-existing stack is skipped, not updated. Events emitted during
// the wait are printed as they arrive, and a successful wait is followed by
// exactly one rollback check.
func (l *StackLifecycle) Create(ctx context.Context, stack *model.Stack) (*Result, error) {
	cfnOps, err := l.operations(ctx, stack)
	if err != nil {
		return nil, err
	}

	exists, err := cfnOps.StackExists(ctx, stack.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check if stack %s exists: %w", stack.Name, err)
	}
	if exists {
		fmt.Fprintf(l.out, "Stack %s already exists, skipping creation\n", stack.Name)
		return &Result{StackName: stack.Name, Outcome: OutcomeSkipped}, nil
	}

	capabilities := stack.Capabilities
	if len(capabilities) == 0 {
		capabilities = defaultCapabilities
	}

	parameters := make([]awsinternal.Parameter, 0, len(stack.Parameters))
	for key, value := range stack.Parameters {
		parameters = append(parameters, awsinternal.Parameter{Key: key, Value: value})
	}

	// Capture start time so event streaming covers only this operation
	start := time.Now()

	err = cfnOps.CreateStack(ctx, awsinternal.CreateStackInput{
		StackName:    stack.Name,
		TemplateBody: stack.TemplateBody,
		Parameters:   parameters,
		Tags:         stack.Tags,
		Capabilities: capabilities,
	})
	if err != nil {
		return nil, &OperationError{StackName: stack.Name, Op: "create", Err: err}
	}

	fmt.Fprintf(l.out, "Creating stack %s...\n", stack.Name)

	err = cfnOps.WaitForStackCreate(ctx, stack.Name, start, l.printEvent)
	if err != nil {
		return nil, &OperationError{StackName: stack.Name, Op: "wait-create", Err: err}
	}

	fmt.Fprintf(l.out, "Stack %s created successfully\n", stack.Name)

	// A detection failure is reported but never turns a successful create
	// into an error
	_ = l.DetectRollback(ctx, stack)

	return &Result{
		StackName: stack.Name,
		Outcome:   OutcomeCreated,
		Duration:  time.Since(start),
	}, nil
}

// Delete removes the stack and blocks until deletion completes, printing
// events as they arrive
func (l *StackLifecycle) Delete(ctx context.Context, stack *model.Stack) (*Result, error) {
	cfnOps, err := l.operations(ctx, stack)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	err = cfnOps.DeleteStack(ctx, awsinternal.DeleteStackInput{StackName: stack.Name})
	if err != nil {
		return nil, &OperationError{StackName: stack.Name, Op: "delete", Err: err}
	}

	fmt.Fprintf(l.out, "Deleting stack %s...\n", stack.Name)

	err = cfnOps.WaitForStackDelete(ctx, stack.Name, start, l.printEvent)
	if err != nil {
		return nil, &OperationError{StackName: stack.Name, Op: "wait-delete", Err: err}
	}

	fmt.Fprintf(l.out, "Stack %s deleted successfully\n", stack.Name)

	return &Result{
		StackName: stack.Name,
		Outcome:   OutcomeDeleted,
		Duration:  time.Since(start),
	}, nil
}

// DetectRollback inspects the stack's current status. A rollback-complete
// status prints every ROLLBACK event with its reason; any other status
// prints a success line. Failures are reported on the output writer and
// returned, but callers running after a successful create treat them as
// advisory.
func (l *StackLifecycle) DetectRollback(ctx context.Context, stack *model.Stack) error {
	cfnOps, err := l.operations(ctx, stack)
	if err != nil {
		return err
	}

	current, err := cfnOps.GetStack(ctx, stack.Name)
	if err != nil {
		fmt.Fprintf(l.out, "Error detecting rollback for stack %s: %v\n", stack.Name, err)
		return fmt.Errorf("failed to detect rollback for stack %s: %w", stack.Name, err)
	}

	if !current.Status.IsRollbackComplete() {
		fmt.Fprintf(l.out, "Stack %s created successfully without rollback\n", stack.Name)
		return nil
	}

	fmt.Fprintf(l.out, "Stack %s failed and rolled back, checking reason for rollback...\n", stack.Name)

	events, err := cfnOps.DescribeStackEvents(ctx, stack.Name)
	if err != nil {
		fmt.Fprintf(l.out, "Error detecting rollback for stack %s: %v\n", stack.Name, err)
		return fmt.Errorf("failed to detect rollback for stack %s: %w", stack.Name, err)
	}

	for _, event := range events {
		if strings.Contains(event.ResourceStatus, "ROLLBACK") {
			fmt.Fprintf(l.out, "Rollback event: %s - %s: %s - %s\n",
				event.Timestamp.Format(time.RFC3339), event.ResourceStatus,
				event.ResourceType, event.ResourceStatusReason)
		}
	}

	return nil
}

// operations returns region-specific CloudFormation operations for the stack
func (l *StackLifecycle) operations(ctx context.Context, stack *model.Stack) (awsinternal.CloudFormationOperations, error) {
	cfnOps, err := l.clientFactory.GetCloudFormationOperations(ctx, stack.Context.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to get CloudFormation operations for region %s: %w", stack.Context.Region, err)
	}
	return cfnOps, nil
}

// printEvent writes one event line: timestamp, status, resource type and
// logical id, plus the status reason when the provider supplies one
func (l *StackLifecycle) printEvent(event awsinternal.StackEvent) {
	fmt.Fprintf(l.out, "  %s - %s: %s - %s\n",
		event.Timestamp.Format("15:04:05"), event.ResourceStatus,
		event.ResourceType, event.LogicalResourceId)
	if event.ResourceStatusReason != "" {
		fmt.Fprintf(l.out, "    Reason: %s\n", event.ResourceStatusReason)
	}
}
