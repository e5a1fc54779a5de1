// Package errors_test provides tests for the gateway error taxonomy.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
)

// TestErrorCodes tests that each constructor assigns its code and HTTP
// status.
func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *errors.GatewayError
		code       string
		httpStatus int
	}{
		{"configuration", errors.NewConfigurationError("missing url"), errors.ErrCodeConfiguration, http.StatusBadRequest},
		{"validation", errors.NewValidationError("bad args", nil), errors.ErrCodeValidation, http.StatusBadRequest},
		{"timeout", errors.NewTimeoutError(30*time.Second, nil), errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"connectivity", errors.NewConnectivityError(nil), errors.ErrCodeConnectivity, http.StatusBadGateway},
		{"remote", errors.NewRemoteError(500, "boom"), errors.ErrCodeRemote, http.StatusBadGateway},
		{"remote app", errors.NewRemoteAppError("Access Denied", nil), errors.ErrCodeRemote, http.StatusBadGateway},
		{"decode", errors.NewDecodeError(nil), errors.ErrCodeDecode, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

// TestTimeoutError_Message tests that the timeout message names the
// configured timeout.
func TestTimeoutError_Message(t *testing.T) {
	err := errors.NewTimeoutError(30*time.Second, nil)
	assert.Contains(t, err.Error(), "timed out after 30s")
}

// TestRemoteError_Detail tests that remote errors carry the status and
// detail payload.
func TestRemoteError_Detail(t *testing.T) {
	err := errors.NewRemoteError(503, map[string]any{"name": "odoo.http.SessionExpired"})
	assert.Equal(t, 503, err.RemoteStatus)
	assert.Contains(t, err.Error(), "Odoo API HTTP 503")
	assert.NotNil(t, err.Detail)
}

// TestGetGatewayError_Wrapped tests extraction through error wrapping.
func TestGetGatewayError_Wrapped(t *testing.T) {
	inner := errors.NewConnectivityError(stderrors.New("connection refused"))
	wrapped := fmt.Errorf("call failed: %w", inner)

	gwErr, ok := errors.GetGatewayError(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConnectivity, gwErr.Code)
	assert.True(t, errors.IsConnectivity(wrapped))
}

// TestPredicates tests that each predicate matches only its own code.
func TestPredicates(t *testing.T) {
	timeout := errors.NewTimeoutError(time.Second, nil)

	assert.True(t, errors.IsTimeout(timeout))
	assert.False(t, errors.IsConnectivity(timeout))
	assert.False(t, errors.IsRemote(timeout))
	assert.False(t, errors.IsConfiguration(timeout))
	assert.False(t, errors.IsDecode(timeout))

	assert.False(t, errors.IsGatewayError(stderrors.New("plain")))
	assert.True(t, errors.IsGatewayError(timeout))
}

// TestUnwrap tests that the underlying cause is reachable.
func TestUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := errors.NewConnectivityError(cause)
	assert.True(t, stderrors.Is(err, cause))
}
