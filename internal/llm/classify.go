package llm

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
)

// ErrorCategory is the closed taxonomy attached to a failed pipeline run.
// Presentation only; never persisted with the record.
type ErrorCategory string

const (
	CategoryNetworkUnreachable ErrorCategory = "NETWORK_UNREACHABLE"
	CategoryTimedOut           ErrorCategory = "TIMED_OUT"
	CategoryNoFoodDetected     ErrorCategory = "NO_FOOD_DETECTED"
	CategoryMalformedOutput    ErrorCategory = "MALFORMED_OUTPUT"
	CategoryServiceOverloaded  ErrorCategory = "SERVICE_OVERLOADED"
	CategoryConfigurationError ErrorCategory = "CONFIGURATION_ERROR"
	CategoryUnclassified       ErrorCategory = "UNCLASSIFIED"
)

// Classify maps any pipeline failure to the taxonomy. Pure; consulted only
// to pick a user-facing message. Precedence is deliberate: a request that
// timed out because the network dropped must read as TimedOut or
// NetworkUnreachable, never as NoFoodDetected: the user should be told to
// check connectivity, not to speak more clearly.
func Classify(err error) ErrorCategory {
	if err == nil {
		return CategoryUnclassified
	}

	// 1. explicit timeout/deadline signals
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return CategoryTimedOut
	}

	// 2. connectivity-level signals
	if isNetworkUnreachable(err) {
		return CategoryNetworkUnreachable
	}

	// 3. recognition / parsing signals
	if errors.Is(err, ErrNoFoodDetected) {
		return CategoryNoFoodDetected
	}
	if errors.Is(err, ErrMalformedOutput) {
		return CategoryMalformedOutput
	}
	var mre *ModelReportedError
	if errors.As(err, &mre) {
		return CategoryUnclassified
	}

	// 4. service-side status signals
	var se *ServiceError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case 429, 503, 529:
			return CategoryServiceOverloaded
		case 400, 401, 403:
			return CategoryConfigurationError
		}
		return CategoryUnclassified
	}

	// 5. local configuration signals
	if errors.Is(err, ErrNoCandidates) {
		return CategoryConfigurationError
	}

	return CategoryUnclassified
}

// Message is the short, action-oriented line shown for a category.
// Unclassified deliberately reads like NoFoodDetected: fail soft and ask for
// a clearer retry instead of exposing raw technical detail.
func (c ErrorCategory) Message() string {
	switch c {
	case CategoryTimedOut, CategoryNetworkUnreachable:
		return "Check your connection and try again."
	case CategoryServiceOverloaded:
		return "The analysis service is busy. Try again shortly."
	case CategoryConfigurationError:
		return "The app is misconfigured. Contact support."
	case CategoryNoFoodDetected, CategoryMalformedOutput, CategoryUnclassified:
		return "We couldn't recognize any food. Speak more clearly and retry."
	}
	return "We couldn't recognize any food. Speak more clearly and retry."
}

func isTimeout(err error) bool {
	if os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetworkUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}
