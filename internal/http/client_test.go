package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmapshttp "github.com/fivetwenty-io/gmaps/internal/http"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *MockLogger) find(msg string) map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.logs {
		if entry["msg"] == msg {
			fields, _ := entry["fields"].(map[string]interface{})

			return fields
		}
	}

	return nil
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/nearestRoads", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "key=secret&points=1%2C2", request.URL.RawQuery)

			_, _ = writer.Write([]byte(`{"snappedPoints":[]}`))
		}))
		defer server.Close()

		client := gmapshttp.NewClient()

		outcome := client.Get(context.Background(), server.URL+"/v1/nearestRoads?key=secret&points=1%2C2")
		require.NoError(t, outcome.Err)
		assert.Equal(t, gmapshttp.OutcomeSuccess, outcome.Kind)
		assert.True(t, outcome.Successful())
		assert.Equal(t, http.StatusOK, outcome.StatusCode)
		assert.JSONEq(t, `{"snappedPoints":[]}`, string(outcome.Body))
	})

	t.Run("non-2xx status is an HTTP failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Retry-After", "3")
			writer.WriteHeader(http.StatusTooManyRequests)
			_, _ = writer.Write([]byte("slow down"))
		}))
		defer server.Close()

		client := gmapshttp.NewClient()

		outcome := client.Get(context.Background(), server.URL)
		require.NoError(t, outcome.Err)
		assert.Equal(t, gmapshttp.OutcomeHTTPFailure, outcome.Kind)
		assert.False(t, outcome.Successful())
		assert.Equal(t, http.StatusTooManyRequests, outcome.StatusCode)
		assert.Equal(t, "3", outcome.Header.Get("Retry-After"))
		assert.Equal(t, "slow down", string(outcome.Body))
	})

	t.Run("unreachable server is a transport failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := gmapshttp.NewClient(gmapshttp.WithTimeout(time.Second))

		outcome := client.Get(context.Background(), serverURL)
		assert.Equal(t, gmapshttp.OutcomeTransportFailure, outcome.Kind)
		require.Error(t, outcome.Err)
		assert.Zero(t, outcome.StatusCode)
	})

	t.Run("malformed URL is an invalid request", func(t *testing.T) {
		t.Parallel()

		client := gmapshttp.NewClient()

		outcome := client.Get(context.Background(), "://missing-scheme")
		assert.Equal(t, gmapshttp.OutcomeInvalidRequest, outcome.Kind)
		require.Error(t, outcome.Err)
	})

	t.Run("cancelled context aborts the call", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			<-request.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := gmapshttp.NewClient()

		outcome := client.Get(ctx, server.URL)
		assert.Equal(t, gmapshttp.OutcomeTransportFailure, outcome.Kind)
		assert.True(t, errors.Is(outcome.Err, context.Canceled))
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := gmapshttp.NewClient(gmapshttp.WithLogger(logger), gmapshttp.WithDebug(true))

		outcome := client.Get(context.Background(), server.URL+"/maps/api/geocode/json?address=x&key=secret")
		require.NoError(t, outcome.Err)

		request := logger.find("HTTP Request")
		require.NotNil(t, request)
		assert.Equal(t, http.MethodGet, request["method"])
		assert.NotContains(t, request["url"], "secret")

		response := logger.find("HTTP Response")
		require.NotNil(t, response)
		assert.Equal(t, http.StatusOK, response["status_code"])
	})

	t.Run("without debug nothing is logged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := gmapshttp.NewClient(gmapshttp.WithLogger(logger))

		outcome := client.Get(context.Background(), server.URL)
		require.NoError(t, outcome.Err)
		assert.Empty(t, logger.logs)
	})
}

func TestClient_NeverRetries(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusTooManyRequests} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts.Add(1)
				writer.WriteHeader(status)
			}))
			defer server.Close()

			client := gmapshttp.NewClient()

			outcome := client.Get(context.Background(), server.URL)
			assert.Equal(t, gmapshttp.OutcomeHTTPFailure, outcome.Kind)
			assert.Equal(t, status, outcome.StatusCode)
			assert.Equal(t, int32(1), attempts.Load())
		})
	}
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	custom := &http.Client{Timeout: 5 * time.Second}
	client := gmapshttp.NewClient(gmapshttp.WithHTTPClient(custom), gmapshttp.WithTimeout(time.Millisecond))

	outcome := client.Get(context.Background(), server.URL)
	require.NoError(t, outcome.Err)
	assert.Equal(t, http.StatusNoContent, outcome.StatusCode)
	assert.Equal(t, 5*time.Second, custom.Timeout)
}

func TestClient_WithHTTPClientLeavesCallerUntouched(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	custom := &http.Client{}
	client := gmapshttp.NewClient(gmapshttp.WithHTTPClient(custom), gmapshttp.WithTimeout(20*time.Millisecond))

	outcome := client.Get(context.Background(), server.URL)
	assert.Equal(t, gmapshttp.OutcomeTransportFailure, outcome.Kind)
	assert.Zero(t, custom.Timeout)
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "key is redacted",
			input:    "https://roads.googleapis.com/v1/nearestRoads?points=1%2C2&key=secret",
			expected: "https://roads.googleapis.com/v1/nearestRoads?key=REDACTED&points=1%2C2",
		},
		{
			name:     "no key is left untouched",
			input:    "https://maps.googleapis.com/maps/api/geocode/json?address=x",
			expected: "https://maps.googleapis.com/maps/api/geocode/json?address=x",
		},
		{
			name:     "unparseable URL",
			input:    "://missing-scheme",
			expected: "<unparseable URL>",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, gmapshttp.RedactURL(testCase.input))
		})
	}
}

func TestOutcomeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", gmapshttp.OutcomeSuccess.String())
	assert.Equal(t, "http_failure", gmapshttp.OutcomeHTTPFailure.String())
	assert.Equal(t, "transport_failure", gmapshttp.OutcomeTransportFailure.String())
	assert.Equal(t, "invalid_request", gmapshttp.OutcomeInvalidRequest.String())
}
