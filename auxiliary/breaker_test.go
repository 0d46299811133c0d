package auxiliary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/errs"
	"marketfeed/httpclient"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := httpclient.New("testaux", server.URL)
	client.MaxAttempts = 1
	breaker := NewBreaker("testaux", client)

	var lastErr error
	for i := 0; i < 3; i++ {
		_, lastErr = breaker.Request(context.Background(), "/", httpclient.Options{})
		require.Error(t, lastErr)
	}

	// The circuit should now be open: the next call fails without
	// reaching the wire, surfaced as an APIFailure with status 0.
	_, err := breaker.Request(context.Background(), "/", httpclient.Options{})
	require.Error(t, err)
	var apiErr *errs.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.APIFailure, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := httpclient.New("testaux", server.URL)
	breaker := NewBreaker("testaux", client)

	raw, err := breaker.Request(context.Background(), "/", httpclient.Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
}
