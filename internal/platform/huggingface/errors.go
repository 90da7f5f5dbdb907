package huggingface

import (
	"errors"
	"fmt"
)

// Common errors returned by the huggingface package. The specific
// failures wrap ErrRemoteInference so callers can match the whole
// family with a single errors.Is check.
var (
	// ErrRemoteInference is the root of every classification failure:
	// transport errors, non-2xx responses, timeouts, and malformed bodies.
	ErrRemoteInference = errors.New("remote inference failed")

	// ErrRequestFailed is returned when the request could not be sent
	// or the endpoint answered with a non-2xx status.
	ErrRequestFailed = fmt.Errorf("%w: request failed", ErrRemoteInference)

	// ErrInvalidResponse is returned when the response body does not
	// have the expected labels/scores shape.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response", ErrRemoteInference)

	// ErrEmptyInput is returned when the input text is empty.
	ErrEmptyInput = errors.New("input text cannot be empty")
)
