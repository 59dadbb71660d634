package errorx

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ClassifyGenericError maps an error occurred during an operation to
// one of the failure strings in this package. This is the most generic
// classifier: we use it for every transport error because all our
// operations reduce to a single request/response transaction.
//
// If the input error is an [*ErrWrapper] we don't perform the
// classification again and we return its Failure.
//
// We check, in order:
//
// - system call errors, which are reliable on every platform;
//
// - well known error types of the standard library;
//
// - errors that we can only recognize by their string.
//
// If everything else fails, this classifier returns a string
// like "unknown_failure: XXX".
func ClassifyGenericError(err error) string {
	var errwrapper *ErrWrapper
	if errors.As(err, &errwrapper) {
		return errwrapper.Failure // we've already classified it
	}

	if failure := classifySyscallError(err); failure != "" {
		return failure
	}

	if errors.Is(err, context.Canceled) {
		return FailureInterrupted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	// Note: *url.Error, *net.OpError, and *net.DNSError all implement
	// net.Error, so this check catches timeouts wherever they occur
	// in the dial/handshake/round-trip chain.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureConnection
	}

	if failure := classifyTLSError(err); failure != "" {
		return failure
	}

	if failure := classifyJSONError(err); failure != "" {
		return failure
	}

	if failure := classifyWithStringSuffix(err); failure != "" {
		return failure
	}

	return fmt.Sprintf("%s: %s", FailureUnknown, err.Error())
}

// classifySyscallError maps system call errors to failure strings. This
// function returns an empty string when the error is not a system call
// error that we know about.
func classifySyscallError(err error) string {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return FailureConnection
	case errors.Is(err, syscall.ECONNRESET):
		return FailureConnection
	case errors.Is(err, syscall.EHOSTUNREACH):
		return FailureConnection
	case errors.Is(err, syscall.ENETUNREACH):
		return FailureConnection
	case errors.Is(err, syscall.EADDRNOTAVAIL):
		return FailureConnection
	case errors.Is(err, syscall.EPIPE):
		return FailureConnection
	case errors.Is(err, syscall.ETIMEDOUT):
		return FailureTimeout
	default:
		return ""
	}
}

// classifyTLSError maps certificate validation and TLS protocol errors
// to failure strings. A failed handshake means we could not establish
// the secure channel, which belongs to the connection-failure class.
func classifyTLSError(err error) string {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostnameError    x509.HostnameError
		invalidCert      x509.CertificateInvalidError
		recordHeader     tls.RecordHeaderError
	)
	switch {
	case errors.As(err, &unknownAuthority):
		return FailureConnection
	case errors.As(err, &hostnameError):
		return FailureConnection
	case errors.As(err, &invalidCert):
		return FailureConnection
	case errors.As(err, &recordHeader):
		return FailureConnection
	default:
		return ""
	}
}

// classifyJSONError maps JSON decoding errors to failure strings.
func classifyJSONError(err error) string {
	var (
		syntaxError *json.SyntaxError
		typeError   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxError):
		return FailureParse
	case errors.As(err, &typeError):
		return FailureParse
	default:
		return ""
	}
}

// classifyWithStringSuffix is a subset of [ClassifyGenericError] that
// performs classification by looking at error suffixes. This function
// will return an empty string if it cannot classify the error.
func classifyWithStringSuffix(err error) string {
	s := err.Error()
	if strings.HasSuffix(s, "operation was canceled") {
		return FailureInterrupted
	}
	if strings.HasSuffix(s, "context deadline exceeded") {
		return FailureTimeout
	}
	if strings.HasSuffix(s, "i/o timeout") {
		return FailureTimeout
	}
	if strings.HasSuffix(s, "TLS handshake timeout") {
		return FailureTimeout
	}
	if strings.HasSuffix(s, "connection refused") {
		return FailureConnection
	}
	if strings.HasSuffix(s, "no such host") {
		return FailureConnection
	}
	if strings.HasSuffix(s, "use of closed network connection") {
		return FailureConnection
	}
	if strings.HasSuffix(s, "EOF") {
		return FailureConnection
	}
	return "" // not found
}
