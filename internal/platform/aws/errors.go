package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/imamik/cloudwait/internal/provider"
)

// transientCodes are API error codes that resolve by waiting.
var transientCodes = map[string]bool{
	"Throttling":                   true,
	"ThrottlingException":          true,
	"RequestLimitExceeded":         true,
	"RequestThrottled":             true,
	"TooManyRequestsException":     true,
	"ServiceUnavailable":           true,
	"Unavailable":                  true,
	"InternalError":                true,
	"InternalFailure":              true,
	"ResourceContention":           true,
	"ScalingActivityInProgress":    true,
	"InsufficientInstanceCapacity": true,
}

// terminalCodes are API error codes that retrying cannot fix.
var terminalCodes = map[string]bool{
	"ValidationError":             true,
	"InvalidParameterValue":       true,
	"InvalidParameterCombination": true,
	"MissingParameter":            true,
	"IncorrectInstanceState":      true,
	"IncorrectState":              true,
	"UnauthorizedOperation":       true,
	"AuthFailure":                 true,
	"ResourceInUse":               true,
}

// classify converts an SDK error into a *provider.APIError. Context errors
// and errors without an API code pass through unchanged.
func classify(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", action, err)
	}

	code := apiErr.ErrorCode()
	out := &provider.APIError{
		Code:    code,
		Message: apiErr.ErrorMessage(),
		Err:     err,
	}
	switch {
	case isNotFoundCode(code):
		out.Class = provider.ClassTerminal
		out.NotFound = true
	case transientCodes[code]:
		out.Class = provider.ClassTransient
	case terminalCodes[code]:
		out.Class = provider.ClassTerminal
	case apiErr.ErrorFault() == smithy.FaultServer:
		out.Class = provider.ClassTransient
	case apiErr.ErrorFault() == smithy.FaultClient:
		out.Class = provider.ClassTerminal
	}
	return out
}

// isNotFoundCode matches EC2 codes like "InvalidInstanceID.NotFound" and
// "InvalidSnapshot.NotFound".
func isNotFoundCode(code string) bool {
	return strings.HasSuffix(code, ".NotFound") || code == "NotFound"
}
