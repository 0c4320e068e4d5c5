// Package awsconfig loads the shared AWS SDK configuration used by every
// AWS-backed gateway and classifies SDK errors into the gateway sentinels.
package awsconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
)

const DefaultRegion = "us-east-1"

func LoadConfig(ctx context.Context, profile, region string) (*aws.Config, error) {
	if region == "" {
		region = DefaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithSharedConfigProfile(profile),
		config.WithDefaultRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	// Test the credentials
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid AWS credentials for profile %s: %w", profile, err)
	}

	return &awsCfg, nil
}

// authErrorCodes are the API error codes AWS services return for credential
// and permission problems.
var authErrorCodes = map[string]struct{}{
	"AccessDenied":          {},
	"AccessDeniedException": {},
	"AuthFailure":           {},
	"ExpiredToken":          {},
	"InvalidClientTokenId":  {},
	"UnauthorizedOperation": {},
	"UnrecognizedClientException": {},
}

// ClassifyError maps an AWS SDK error onto the gateway sentinels so callers
// can distinguish an aborting credential failure from plain missing data.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := authErrorCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%s: %s: %w", op, apiErr.ErrorCode(), gateways.ErrAuthentication)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
