/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// DefaultSSMOperations provides access to SSM parameter store values.
// The resolver uses it to source secret-ish stack parameters (database
// passwords and the like) instead of carrying them in configuration.
type DefaultSSMOperations struct {
	client SSMClient
}

// NewSSMOperationsWithClient creates operations with a custom client (for testing)
func NewSSMOperationsWithClient(client SSMClient) *DefaultSSMOperations {
	return &DefaultSSMOperations{
		client: client,
	}
}

// GetParameter fetches a single parameter value, decrypting SecureString
// parameters when withDecryption is set
func (s *DefaultSSMOperations) GetParameter(ctx context.Context, name string, withDecryption bool) (string, error) {
	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(withDecryption),
	})

	if err != nil {
		return "", fmt.Errorf("failed to get SSM parameter %s: %w", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("SSM parameter %s has no value", name)
	}

	return aws.ToString(result.Parameter.Value), nil
}
