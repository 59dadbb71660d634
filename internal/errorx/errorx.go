// Package errorx contains the stable error taxonomy used by the ASN
// lookup pipeline. Providers map every transport-level failure into one
// of the failure strings defined here, so that calling code never needs
// to depend on transport-library-specific error types.
package errorx

import (
	"encoding/json"
	"fmt"
)

const (
	// FailureTimeout means the request exceeded its deadline.
	FailureTimeout = "timeout"

	// FailureConnection means that DNS resolution, TCP connect,
	// or the TLS handshake failed.
	FailureConnection = "connection_failure"

	// FailureAPI means the remote endpoint answered but reported
	// a failure, e.g., a non-2xx HTTP status.
	FailureAPI = "api_failure"

	// FailureParse means the response body was not valid JSON or
	// lacked the expected fields or shape.
	FailureParse = "parse_error"

	// FailureInvalidInput means the supplied address failed basic
	// syntactic validation before any request was issued.
	FailureInvalidInput = "invalid_input"

	// FailureInterrupted means that the user interrupted us.
	FailureInterrupted = "interrupted"

	// FailureUnknown is the prefix of the escape-hatch failure we
	// return when we cannot classify the underlying error.
	FailureUnknown = "unknown_failure"
)

const (
	// HTTPRoundTripOperation is the operation where we issue an HTTP
	// request and read the corresponding response.
	HTTPRoundTripOperation = "http_round_trip"

	// DNSRoundTripOperation is the operation where we issue a DNS
	// query and read the corresponding response.
	DNSRoundTripOperation = "dns_round_trip"

	// ParseOperation is the operation where we decode a response
	// body into the expected result shape.
	ParseOperation = "parse_response"

	// InputValidationOperation is the operation where we validate
	// the user-supplied input before issuing any request.
	InputValidationOperation = "input_validation"
)

// ErrWrapper is our error wrapper for Go errors. The key objective of
// this structure is to properly set Failure, which is also returned by
// the Error() method, to be one of the Failure strings above.
type ErrWrapper struct {
	// Failure is the failure string. This is either one of the
	// FailureXXX constants or a string with the FailureUnknown
	// prefix for errors we have not mapped yet.
	Failure string

	// Operation is the operation that failed.
	Operation string

	// StatusCode is the HTTP status code, when Failure is
	// FailureAPI and the remote spoke HTTP, and zero otherwise.
	StatusCode int

	// WrappedErr is the error that we're wrapping.
	WrappedErr error
}

// Error returns the failure string for this error.
func (e *ErrWrapper) Error() string {
	return e.Failure
}

// Unwrap allows to access the underlying error.
func (e *ErrWrapper) Unwrap() error {
	return e.WrappedErr
}

// MarshalJSON converts an ErrWrapper to a JSON value.
func (e *ErrWrapper) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Failure)
}

// NewErrWrapper creates a new [*ErrWrapper] by classifying the given
// error, which must not be nil, and recording the failed operation.
//
// If the err argument has already been classified, this function will
// keep the original failure string rather than classifying again.
func NewErrWrapper(operation string, err error) *ErrWrapper {
	if err == nil {
		panic("errorx: NewErrWrapper passed a nil error")
	}
	return &ErrWrapper{
		Failure:    ClassifyGenericError(err),
		Operation:  operation,
		WrappedErr: err,
	}
}

// NewHTTPStatusError creates a new [*ErrWrapper] describing an HTTP
// response whose status code was outside the 2xx range.
func NewHTTPStatusError(operation string, statusCode int) *ErrWrapper {
	return &ErrWrapper{
		Failure:    FailureAPI,
		Operation:  operation,
		StatusCode: statusCode,
		WrappedErr: fmt.Errorf("unexpected HTTP status: %d", statusCode),
	}
}

// NewAPIError creates a new [*ErrWrapper] describing an in-band error
// reported by the remote API inside an otherwise-valid response.
func NewAPIError(operation string, reason string) *ErrWrapper {
	return &ErrWrapper{
		Failure:    FailureAPI,
		Operation:  operation,
		WrappedErr: fmt.Errorf("API error: %s", reason),
	}
}

// NewParseError creates a new [*ErrWrapper] describing a response body
// that did not have the shape we expected.
func NewParseError(err error) *ErrWrapper {
	return &ErrWrapper{
		Failure:    FailureParse,
		Operation:  ParseOperation,
		WrappedErr: err,
	}
}

// NewInvalidInputError creates a new [*ErrWrapper] describing input
// that failed local syntactic validation.
func NewInvalidInputError(input string) *ErrWrapper {
	return &ErrWrapper{
		Failure:    FailureInvalidInput,
		Operation:  InputValidationOperation,
		WrappedErr: fmt.Errorf("not a valid IP address: %s", input),
	}
}
