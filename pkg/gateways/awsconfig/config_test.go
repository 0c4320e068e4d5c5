package awsconfig

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantAuth bool
	}{
		{name: "nil", err: nil},
		{
			name:     "access denied",
			err:      &smithy.GenericAPIError{Code: "AccessDenied", Message: "no"},
			wantAuth: true,
		},
		{
			name:     "unauthorized operation",
			err:      &smithy.GenericAPIError{Code: "UnauthorizedOperation"},
			wantAuth: true,
		},
		{
			name:     "expired token wrapped",
			err:      fmt.Errorf("call failed: %w", &smithy.GenericAPIError{Code: "ExpiredToken"}),
			wantAuth: true,
		},
		{name: "throttling", err: &smithy.GenericAPIError{Code: "Throttling"}},
		{name: "plain error", err: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError("describe instances", tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Error(t, got)
			assert.Equal(t, tt.wantAuth, errors.Is(got, gateways.ErrAuthentication))
			assert.Contains(t, got.Error(), "describe instances")
		})
	}
}
