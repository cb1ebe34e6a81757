package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/stretchr/testify/require"
)

func newTestOracle(endpoint string, maxRetries string) *OracleClient {
	return NewOracleClient(map[string]string{
		"ORACLE_URL":                   endpoint,
		"ORACLE_TIMEOUT_SECONDS":       "5",
		"ORACLE_MAX_RETRIES":           maxRetries,
		"ORACLE_RETRY_BACKOFF_SECONDS": "0",
	})
}

func TestCompleteReturnsResponseText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success": true, "response": "hello from the oracle"}`))
	}))
	defer server.Close()

	text, err := newTestOracle(server.URL, "0").Complete(context.Background(), "hi")
	require.NoError(t, err)
	require.Equal(t, "hello from the oracle", text)
}

func TestCompleteRemoteFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success": false, "error": "model overloaded"}`))
	}))
	defer server.Close()

	_, err := newTestOracle(server.URL, "3").Complete(context.Background(), "hi")
	require.Error(t, err)
	require.True(t, errs.IsOracleRemoteError(err))
	require.Contains(t, err.Error(), "model overloaded")
	require.Equal(t, int32(1), calls.Load())
}

func TestCompleteNon2xxIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestOracle(server.URL, "0").Complete(context.Background(), "hi")
	require.Error(t, err)
	require.True(t, errs.IsOracleTransportError(err))
}

func TestCompleteNetworkFailureIsUnavailable(t *testing.T) {
	// Reserve a port and close it so the connection is refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := newTestOracle(endpoint, "0").Complete(context.Background(), "hi")
	require.Error(t, err)
	require.True(t, errs.IsOracleUnavailableError(err))
}

func TestCompleteRetriesTransportFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"success": true, "response": "third time lucky"}`))
	}))
	defer server.Close()

	text, err := newTestOracle(server.URL, "2").Complete(context.Background(), "hi")
	require.NoError(t, err)
	require.Equal(t, "third time lucky", text)
	require.Equal(t, int32(3), calls.Load())
}

func TestCompleteGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestOracle(server.URL, "2").Complete(context.Background(), "hi")
	require.Error(t, err)
	require.True(t, errs.IsOracleTransportError(err))
	require.Equal(t, int32(3), calls.Load())
}

func TestCompleteMalformedBodyIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	_, err := newTestOracle(server.URL, "3").Complete(context.Background(), "hi")
	require.Error(t, err)
	require.True(t, errs.IsOracleMalformedResponseError(err))
	require.Equal(t, int32(1), calls.Load())
}

func TestCompleteHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOracle(server.URL, "2").Complete(ctx, "hi")
	require.Error(t, err)
	require.True(t, errs.IsOracleUnavailableError(err))
}
