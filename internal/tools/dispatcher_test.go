// Package tools_test provides tests for the tool dispatcher.
package tools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
	rediscache "github.com/bmya/odoo-gateway/internal/infrastructure/cache/redis"
	"github.com/bmya/odoo-gateway/internal/odoo"
	"github.com/bmya/odoo-gateway/internal/tools"
)

// expectedTools is the registered tool set in listing order.
var expectedTools = []string{
	"odoo_list_companies",
	"odoo_search_read",
	"odoo_create",
	"odoo_write",
	"odoo_unlink",
	"odoo_search",
	"odoo_read",
	"odoo_search_count",
}

// newTestDispatcher creates a dispatcher whose single tenant points at the
// given backend URL.
func newTestDispatcher(t *testing.T, backendURL string) *tools.Dispatcher {
	t.Helper()

	registry := odoo.NewRegistry(map[string]odoo.ClientConfig{
		"bmya": {
			URL:      backendURL,
			Database: "bmya_prod",
			APIKey:   "test-key",
		},
		"acme": {
			URL:      backendURL,
			Database: "acme_prod",
			APIKey:   "test-key",
		},
	})

	dispatcher, err := tools.NewDispatcher(tools.DispatcherConfig{Registry: registry})
	require.NoError(t, err)
	return dispatcher
}

// TestNewDispatcher_RequiresRegistry tests that a registry is mandatory.
func TestNewDispatcher_RequiresRegistry(t *testing.T) {
	_, err := tools.NewDispatcher(tools.DispatcherConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

// TestTools_Listing tests the tool names, order, and schema shape.
func TestTools_Listing(t *testing.T) {
	dispatcher := newTestDispatcher(t, "http://localhost:8069")

	infos := dispatcher.Tools()
	require.Len(t, infos, len(expectedTools))

	for i, info := range infos {
		assert.Equal(t, expectedTools[i], info.Name)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.InputSchema)
	}

	// search_read requires company and model; options stay optional.
	var schema map[string]any
	require.NoError(t, json.Unmarshal(infos[1].InputSchema, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.ElementsMatch(t, []any{"company", "model"}, schema["required"])
}

// TestDispatch_UnknownTool tests rejection of an unregistered tool name.
func TestDispatch_UnknownTool(t *testing.T) {
	dispatcher := newTestDispatcher(t, "http://localhost:8069")

	_, err := dispatcher.Dispatch(context.Background(), "odoo_nope", json.RawMessage(`{}`))
	require.Error(t, err)

	gwErr, ok := errors.GetGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, gwErr.Code)
	assert.Contains(t, gwErr.Message, "unknown tool")
}

// TestDispatch_MissingRequiredArgument tests schema rejection before any
// remote call.
func TestDispatch_MissingRequiredArgument(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	dispatcher := newTestDispatcher(t, server.URL)

	_, err := dispatcher.Dispatch(context.Background(), "odoo_search_read", json.RawMessage(`{"company": "bmya"}`))
	require.Error(t, err)

	gwErr, ok := errors.GetGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, gwErr.Code)
	assert.Equal(t, 0, calls)
}

// TestDispatch_UnknownArgumentRejected tests that extra properties fail
// validation.
func TestDispatch_UnknownArgumentRejected(t *testing.T) {
	dispatcher := newTestDispatcher(t, "http://localhost:8069")

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner", "bogus": 1}`)
	_, err := dispatcher.Dispatch(context.Background(), "odoo_search_read", args)
	require.Error(t, err)
	assert.True(t, errors.IsGatewayError(err))
}

// TestDispatch_MalformedArguments tests rejection of non-JSON arguments.
func TestDispatch_MalformedArguments(t *testing.T) {
	dispatcher := newTestDispatcher(t, "http://localhost:8069")

	_, err := dispatcher.Dispatch(context.Background(), "odoo_search", json.RawMessage(`{broken`))
	require.Error(t, err)

	gwErr, ok := errors.GetGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, gwErr.Code)
}

// TestDispatch_ListCompanies tests the companies listing rendering.
func TestDispatch_ListCompanies(t *testing.T) {
	dispatcher := newTestDispatcher(t, "http://localhost:8069")

	result, err := dispatcher.Dispatch(context.Background(), "odoo_list_companies", nil)
	require.NoError(t, err)
	assert.Equal(t, "Available companies: acme, bmya\n\nTotal: 2", result)
}

// TestDispatch_SearchRead tests a full search_read round trip with indented
// JSON rendering.
func TestDispatch_SearchRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/2/res.partner/search_read", r.URL.Path)
		assert.Equal(t, "bmya_prod", r.Header.Get("X-Odoo-Database"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{}, body["domain"])
		assert.Equal(t, float64(2), body["limit"])

		w.Write([]byte(`[{"id": 1, "name": "ACME"}]`))
	}))
	defer server.Close()

	dispatcher := newTestDispatcher(t, server.URL)

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner", "limit": 2}`)
	result, err := dispatcher.Dispatch(context.Background(), "odoo_search_read", args)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id": 1, "name": "ACME"}]`, result)
	assert.Contains(t, result, "\n  ")
}

// TestDispatch_Create tests the create result rendering.
func TestDispatch_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/2/res.partner/create", r.URL.Path)
		w.Write([]byte(`17`))
	}))
	defer server.Close()

	dispatcher := newTestDispatcher(t, server.URL)

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner", "values": {"name": "ACME"}}`)
	result, err := dispatcher.Dispatch(context.Background(), "odoo_create", args)
	require.NoError(t, err)
	assert.Equal(t, "Created record with ID: 17", result)
}

// TestDispatch_WriteUnlink tests the boolean result renderings.
func TestDispatch_WriteUnlink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`true`))
	}))
	defer server.Close()

	dispatcher := newTestDispatcher(t, server.URL)

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner", "ids": [1], "values": {"name": "X"}}`)
	result, err := dispatcher.Dispatch(context.Background(), "odoo_write", args)
	require.NoError(t, err)
	assert.Equal(t, "Updated successfully: true", result)

	args = json.RawMessage(`{"company": "bmya", "model": "res.partner", "ids": [1]}`)
	result, err = dispatcher.Dispatch(context.Background(), "odoo_unlink", args)
	require.NoError(t, err)
	assert.Equal(t, "Deleted successfully: true", result)
}

// TestDispatch_SearchCount tests the count rendering.
func TestDispatch_SearchCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`42`))
	}))
	defer server.Close()

	dispatcher := newTestDispatcher(t, server.URL)

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner"}`)
	result, err := dispatcher.Dispatch(context.Background(), "odoo_search_count", args)
	require.NoError(t, err)
	assert.Equal(t, "Count: 42", result)
}

// TestDispatch_UnknownCompany tests that an unconfigured company yields a
// configuration error.
func TestDispatch_UnknownCompany(t *testing.T) {
	dispatcher := newTestDispatcher(t, "http://localhost:8069")

	args := json.RawMessage(`{"company": "nope", "model": "res.partner"}`)
	_, err := dispatcher.Dispatch(context.Background(), "odoo_search_count", args)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "available companies")
}

// newCachedDispatcher creates a dispatcher backed by a miniredis result
// cache.
func newCachedDispatcher(t *testing.T, backendURL string) *tools.Dispatcher {
	t.Helper()

	mr := miniredis.RunT(t)
	cacheClient, err := rediscache.NewCache(rediscache.Config{
		Host:       mr.Host(),
		Port:       mr.Port(),
		DefaultTTL: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })

	registry := odoo.NewRegistry(map[string]odoo.ClientConfig{
		"bmya": {
			URL:      backendURL,
			Database: "bmya_prod",
			APIKey:   "test-key",
		},
	})

	dispatcher, err := tools.NewDispatcher(tools.DispatcherConfig{
		Registry: registry,
		Cache:    cacheClient,
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)
	return dispatcher
}

// TestDispatch_ReadOnlyResultCached tests that repeated read-only calls are
// served from the cache.
func TestDispatch_ReadOnlyResultCached(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, "%d", calls)
	}))
	defer server.Close()

	dispatcher := newCachedDispatcher(t, server.URL)

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner"}`)

	first, err := dispatcher.Dispatch(context.Background(), "odoo_search_count", args)
	require.NoError(t, err)
	assert.Equal(t, "Count: 1", first)

	second, err := dispatcher.Dispatch(context.Background(), "odoo_search_count", args)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	// Different arguments miss the cache.
	otherArgs := json.RawMessage(`{"company": "bmya", "model": "res.users"}`)
	third, err := dispatcher.Dispatch(context.Background(), "odoo_search_count", otherArgs)
	require.NoError(t, err)
	assert.Equal(t, "Count: 2", third)
	assert.Equal(t, 2, calls)
}

// TestDispatch_MutationsNeverCached tests that write-path tools always hit
// the backend.
func TestDispatch_MutationsNeverCached(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, "%d", calls)
	}))
	defer server.Close()

	dispatcher := newCachedDispatcher(t, server.URL)

	args := json.RawMessage(`{"company": "bmya", "model": "res.partner", "values": {"name": "ACME"}}`)

	first, err := dispatcher.Dispatch(context.Background(), "odoo_create", args)
	require.NoError(t, err)
	assert.Equal(t, "Created record with ID: 1", first)

	second, err := dispatcher.Dispatch(context.Background(), "odoo_create", args)
	require.NoError(t, err)
	assert.Equal(t, "Created record with ID: 2", second)
	assert.Equal(t, 2, calls)
}
