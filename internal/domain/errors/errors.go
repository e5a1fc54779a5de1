// Package errors provides the gateway's error taxonomy.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error codes for gateway errors. Every failure that leaves the Odoo client
// carries exactly one of these codes.
const (
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeConnectivity  = "CONNECTIVITY_ERROR"
	ErrCodeRemote        = "REMOTE_ERROR"
	ErrCodeDecode        = "DECODE_ERROR"

	// ErrCodeValidation is used by the tool-calling surface for rejected
	// requests; the remote-call client itself never emits it.
	ErrCodeValidation = "VALIDATION_ERROR"
)

// GatewayError represents a classified failure.
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Detail carries the remote-supplied error payload when one could be
	// parsed, or the raw response text otherwise. Nil for non-remote errors.
	Detail any `json:"detail,omitempty"`

	// RemoteStatus is the HTTP status reported by the remote endpoint for
	// REMOTE_ERROR; zero otherwise.
	RemoteStatus int `json:"remote_status,omitempty"`

	HTTPStatus int   `json:"-"`
	Err        error `json:"-"`
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates an error for missing or invalid endpoint
// identity and tenant configuration.
func NewConfigurationError(message string) *GatewayError {
	return &GatewayError{
		Code:       ErrCodeConfiguration,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewValidationError creates an error for a rejected tool-call request.
func NewValidationError(message string, err error) *GatewayError {
	return &GatewayError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewTimeoutError creates an error for a transport deadline exceeded after
// the configured timeout.
func NewTimeoutError(timeout time.Duration, err error) *GatewayError {
	return &GatewayError{
		Code:       ErrCodeTimeout,
		Message:    fmt.Sprintf("request to Odoo API timed out after %s", timeout),
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

// NewConnectivityError creates an error for a connection that could not be
// established after retries.
func NewConnectivityError(err error) *GatewayError {
	return &GatewayError{
		Code:       ErrCodeConnectivity,
		Message:    "failed to connect to Odoo API",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewRemoteError creates an error for an HTTP-level failure reported by the
// remote endpoint. detail is the parsed error body when the body was valid
// JSON, or the raw response text otherwise.
func NewRemoteError(status int, detail any) *GatewayError {
	return &GatewayError{
		Code:         ErrCodeRemote,
		Message:      fmt.Sprintf("Odoo API HTTP %d", status),
		Detail:       detail,
		RemoteStatus: status,
		HTTPStatus:   http.StatusBadGateway,
	}
}

// NewRemoteAppError creates an error for an application-level failure the
// remote endpoint embedded in an otherwise successful response body.
func NewRemoteAppError(message string, detail any) *GatewayError {
	return &GatewayError{
		Code:       ErrCodeRemote,
		Message:    fmt.Sprintf("Odoo API error: %s", message),
		Detail:     detail,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewDecodeError creates an error for a successful response whose body is
// not valid JSON or does not match the operation's result shape.
func NewDecodeError(err error) *GatewayError {
	return &GatewayError{
		Code:       ErrCodeDecode,
		Message:    "invalid JSON response from Odoo API",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// GetGatewayError extracts the gateway error from an error.
func GetGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}

// IsGatewayError checks if the error is a gateway error.
func IsGatewayError(err error) bool {
	_, ok := GetGatewayError(err)
	return ok
}

func hasCode(err error, code string) bool {
	gwErr, ok := GetGatewayError(err)
	return ok && gwErr.Code == code
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool { return hasCode(err, ErrCodeConfiguration) }

// IsTimeout checks if the error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnectivity checks if the error is a connectivity error.
func IsConnectivity(err error) bool { return hasCode(err, ErrCodeConnectivity) }

// IsRemote checks if the error is a remote error.
func IsRemote(err error) bool { return hasCode(err, ErrCodeRemote) }

// IsDecode checks if the error is a decode error.
func IsDecode(err error) bool { return hasCode(err, ErrCodeDecode) }
