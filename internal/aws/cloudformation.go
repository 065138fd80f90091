/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

const (
	// stackWaitTimeout caps how long a single waiter invocation may block.
	// Matches the polling budget the SDK waiters are tuned for.
	stackWaitTimeout = 60 * time.Minute

	// defaultEventPollInterval is the cadence at which stack events are
	// fetched while a waiter is blocking
	defaultEventPollInterval = 10 * time.Second
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateInProgress   StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateComplete     StackStatus = "CREATE_COMPLETE"
	StackStatusCreateFailed       StackStatus = "CREATE_FAILED"
	StackStatusDeleteInProgress   StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteComplete     StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteFailed       StackStatus = "DELETE_FAILED"
	StackStatusRollbackInProgress StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackComplete   StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed     StackStatus = "ROLLBACK_FAILED"
)

// IsRollbackComplete reports whether the status marks a finished rollback
// (ROLLBACK_COMPLETE and the UPDATE_/IMPORT_ prefixed variants)
func (s StackStatus) IsRollbackComplete() bool {
	return strings.HasSuffix(string(s), "ROLLBACK_COMPLETE")
}

// IsInProgress reports whether the provider is still working on the stack
func (s StackStatus) IsInProgress() bool {
	return strings.HasSuffix(string(s), "_IN_PROGRESS")
}

// IsFailed reports whether the status marks a failed or rolled back operation
func (s StackStatus) IsFailed() bool {
	return strings.HasSuffix(string(s), "_FAILED") || s.IsRollbackComplete()
}

// Stack represents a CloudFormation stack with essential information
type Stack struct {
	Name        string
	Status      StackStatus
	CreatedTime *time.Time
	UpdatedTime *time.Time
	Description string
	Parameters  map[string]string
	Outputs     map[string]string
	Tags        map[string]string
}

// StackEvent represents a single provider-emitted stack event
type StackEvent struct {
	EventId              string
	StackName            string
	LogicalResourceId    string
	PhysicalResourceId   string
	ResourceType         string
	ResourceStatus       string
	ResourceStatusReason string
	Timestamp            time.Time
}

// Parameter represents a CloudFormation stack parameter
type Parameter struct {
	Key   string
	Value string
}

// CreateStackInput contains parameters for creating a stack
type CreateStackInput struct {
	StackName    string
	TemplateBody string
	Parameters   []Parameter
	Tags         map[string]string
	Capabilities []string
}

// DeleteStackInput contains parameters for deleting a stack
type DeleteStackInput struct {
	StackName string
}

// DefaultCloudFormationOperations provides CloudFormation-specific operations
type DefaultCloudFormationOperations struct {
	client       CloudFormationClient
	pollInterval time.Duration
}

// NewCloudFormationOperationsWithClient creates operations with a custom client (for testing)
func NewCloudFormationOperationsWithClient(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client:       client,
		pollInterval: defaultEventPollInterval,
	}
}

// SetPollInterval overrides the event polling cadence (for testing)
func (cf *DefaultCloudFormationOperations) SetPollInterval(interval time.Duration) {
	cf.pollInterval = interval
}

// CreateStack submits a stack creation request. It returns as soon as the
// provider has accepted the request; use WaitForStackCreate to block until
// the stack reaches a terminal state.
func (cf *DefaultCloudFormationOperations) CreateStack(ctx context.Context, input CreateStackInput) error {
	params := make([]types.Parameter, len(input.Parameters))
	for i, p := range input.Parameters {
		params[i] = types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		}
	}

	tags := make([]types.Tag, 0, len(input.Tags))
	for k, v := range input.Tags {
		tags = append(tags, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(v),
		})
	}

	capabilities := make([]types.Capability, len(input.Capabilities))
	for i, capability := range input.Capabilities {
		capabilities[i] = types.Capability(capability)
	}

	_, err := cf.client.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(input.StackName),
		TemplateBody: aws.String(input.TemplateBody),
		Parameters:   params,
		Tags:         tags,
		Capabilities: capabilities,
	})

	if err != nil {
		return fmt.Errorf("failed to create stack %s: %w", input.StackName, err)
	}

	return nil
}

// DeleteStack submits a stack deletion request
func (cf *DefaultCloudFormationOperations) DeleteStack(ctx context.Context, input DeleteStackInput) error {
	_, err := cf.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(input.StackName),
	})

	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", input.StackName, err)
	}

	return nil
}

// GetStack retrieves information about a specific stack
func (cf *DefaultCloudFormationOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}

	cfnStack := result.Stacks[0]
	stack := &Stack{
		Name:        aws.ToString(cfnStack.StackName),
		Status:      StackStatus(cfnStack.StackStatus),
		CreatedTime: cfnStack.CreationTime,
		UpdatedTime: cfnStack.LastUpdatedTime,
		Description: aws.ToString(cfnStack.Description),
		Parameters:  make(map[string]string),
		Outputs:     make(map[string]string),
		Tags:        make(map[string]string),
	}

	for _, param := range cfnStack.Parameters {
		stack.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}

	for _, output := range cfnStack.Outputs {
		stack.Outputs[aws.ToString(output.OutputKey)] = aws.ToString(output.OutputValue)
	}

	for _, tag := range cfnStack.Tags {
		stack.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return stack, nil
}

// ListStacks returns a list of all CloudFormation stacks
func (cf *DefaultCloudFormationOperations) ListStacks(ctx context.Context) ([]*Stack, error) {
	var stacks []*Stack
	paginator := cloudformation.NewListStacksPaginator(cf.client, &cloudformation.ListStacksInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stacks: %w", err)
		}

		for _, summary := range page.StackSummaries {
			// Skip deleted stacks
			if summary.StackStatus == types.StackStatusDeleteComplete {
				continue
			}

			stack := &Stack{
				Name:        aws.ToString(summary.StackName),
				Status:      StackStatus(summary.StackStatus),
				CreatedTime: summary.CreationTime,
				UpdatedTime: summary.LastUpdatedTime,
				Description: aws.ToString(summary.TemplateDescription),
			}
			stacks = append(stacks, stack)
		}
	}

	return stacks, nil
}

// ValidateTemplate validates a CloudFormation template
func (cf *DefaultCloudFormationOperations) ValidateTemplate(ctx context.Context, templateBody string) error {
	_, err := cf.client.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateBody: aws.String(templateBody),
	})

	if err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}

	return nil
}

// StackExists checks if a stack exists. A "does not exist" response maps to
// (false, nil); any other describe failure is returned to the caller.
func (cf *DefaultCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})

	if err != nil {
		if isStackNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if stack exists: %w", err)
	}

	return true, nil
}

// isStackNotFoundError checks if the error indicates the stack doesn't exist.
// CloudFormation reports a missing stack as a ValidationError whose message
// contains "does not exist".
func isStackNotFoundError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "does not exist") ||
		strings.Contains(err.Error(), "ValidationError"))
}

// GetTemplate retrieves the template for a CloudFormation stack
func (cf *DefaultCloudFormationOperations) GetTemplate(ctx context.Context, stackName string) (string, error) {
	result, err := cf.client.GetTemplate(ctx, &cloudformation.GetTemplateInput{
		StackName: aws.String(stackName),
	})

	if err != nil {
		return "", fmt.Errorf("failed to get template for stack %s: %w", stackName, err)
	}

	return aws.ToString(result.TemplateBody), nil
}

// DescribeStackEvents returns the stack's event history, newest first, as
// reported by the provider
func (cf *DefaultCloudFormationOperations) DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error) {
	result, err := cf.client.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(stackName),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to describe events for stack %s: %w", stackName, err)
	}

	events := make([]StackEvent, 0, len(result.StackEvents))
	for _, e := range result.StackEvents {
		event := StackEvent{
			EventId:              aws.ToString(e.EventId),
			StackName:            aws.ToString(e.StackName),
			LogicalResourceId:    aws.ToString(e.LogicalResourceId),
			PhysicalResourceId:   aws.ToString(e.PhysicalResourceId),
			ResourceType:         aws.ToString(e.ResourceType),
			ResourceStatus:       string(e.ResourceStatus),
			ResourceStatusReason: aws.ToString(e.ResourceStatusReason),
		}
		if e.Timestamp != nil {
			event.Timestamp = *e.Timestamp
		}
		events = append(events, event)
	}

	return events, nil
}

// WaitForStackCreate blocks until the stack reaches a terminal create state.
// While the waiter blocks, events emitted after since are streamed to
// eventCallback; the stream is cancelled and fully drained before the method
// returns, so the callback is never invoked after WaitForStackCreate resolves.
func (cf *DefaultCloudFormationOperations) WaitForStackCreate(ctx context.Context, stackName string, since time.Time, eventCallback func(StackEvent)) error {
	waiter := cloudformation.NewStackCreateCompleteWaiter(cf.client)
	err := cf.waitForStack(ctx, stackName, since, eventCallback, func(ctx context.Context) error {
		return waiter.Wait(ctx, &cloudformation.DescribeStacksInput{
			StackName: aws.String(stackName),
		}, stackWaitTimeout)
	})
	if err != nil {
		return fmt.Errorf("failed to wait for creation of stack %s: %w", stackName, err)
	}
	return nil
}

// WaitForStackDelete blocks until the stack reaches a terminal delete state,
// with the same event streaming contract as WaitForStackCreate
func (cf *DefaultCloudFormationOperations) WaitForStackDelete(ctx context.Context, stackName string, since time.Time, eventCallback func(StackEvent)) error {
	waiter := cloudformation.NewStackDeleteCompleteWaiter(cf.client)
	err := cf.waitForStack(ctx, stackName, since, eventCallback, func(ctx context.Context) error {
		return waiter.Wait(ctx, &cloudformation.DescribeStacksInput{
			StackName: aws.String(stackName),
		}, stackWaitTimeout)
	})
	if err != nil {
		return fmt.Errorf("failed to wait for deletion of stack %s: %w", stackName, err)
	}
	return nil
}

// waitForStack runs the wait function while streaming events in a background
// goroutine. The streamer lives exactly as long as the wait: its context is
// cancelled the moment the waiter returns, and we join the goroutine before
// handing the result back.
func (cf *DefaultCloudFormationOperations) waitForStack(ctx context.Context, stackName string, since time.Time, eventCallback func(StackEvent), wait func(context.Context) error) error {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	if eventCallback != nil {
		streamer := NewEventStreamer(cf, cf.pollInterval)
		go func() {
			defer close(done)
			streamer.Stream(streamCtx, stackName, since, eventCallback)
		}()
	} else {
		close(done)
	}

	err := wait(ctx)

	cancel()
	<-done

	return err
}
