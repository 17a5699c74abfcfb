package llm

import (
	"errors"
	"fmt"
)

// Kind discriminates generation failures so callers can select fallback
// behavior without string matching.
type Kind string

const (
	// KindConfiguration: required credential absent. No network attempt made.
	KindConfiguration Kind = "ConfigurationError"
	// KindNetwork: the outbound generation call failed or timed out.
	KindNetwork Kind = "NetworkError"
	// KindEmptyResponse: the call succeeded but returned no usable text.
	KindEmptyResponse Kind = "EmptyResponseError"
	// KindMalformedOutput: the generated text did not match the mandated
	// JSON schema. Produced by the pipeline's decode step, not by clients.
	KindMalformedOutput Kind = "MalformedOutputError"
)

// Error is a typed generation failure.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain. Untyped errors
// collapse to KindNetwork, the broadest transient category.
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindNetwork
}
