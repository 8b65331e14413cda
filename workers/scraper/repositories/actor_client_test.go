package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestApifyClient_RunActor(t *testing.T) {
	var polls int32
	var startBody map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/acts/apify~instagram-scraper/runs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&startBody))
		fmt.Fprint(w, `{"data":{"id":"run1","status":"RUNNING","defaultDatasetId":"ds1"}}`)
	})
	mux.HandleFunc("/v2/actor-runs/run1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("waitForFinish"))
		status := "RUNNING"
		if atomic.AddInt32(&polls, 1) > 1 {
			status = RunSucceeded
		}
		fmt.Fprintf(w, `{"data":{"id":"run1","status":%q,"defaultDatasetId":"ds1"}}`, status)
	})
	mux.HandleFunc("/v2/datasets/ds1/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		switch offset {
		case 0:
			fmt.Fprint(w, `[{"id":"1","likesCount":12345678901234},{"id":"2"}]`)
		case 2:
			fmt.Fprint(w, `[{"id":"3"},"not an object"]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewApifyClient(server.URL+"/", "secret",
		WithRetryConfig(fastRetry),
		WithWaitForFinish(5),
		WithPageSize(2),
	)

	records, err := client.RunActor(t.Context(), "apify/instagram-scraper", map[string]any{
		"resultsType": "posts",
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[0]["id"])
	assert.Equal(t, json.Number("12345678901234"), records[0]["likesCount"])
	assert.Equal(t, "3", records[2]["id"])
	assert.Equal(t, "posts", startBody["resultsType"])
	assert.Equal(t, int32(2), atomic.LoadInt32(&polls))
}

func TestApifyClient_RunFailed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/acts/clockworks~tiktok-scraper/runs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"run2","status":"FAILED","defaultDatasetId":"ds2"}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewApifyClient(server.URL, "secret", WithRetryConfig(fastRetry))
	_, err := client.RunActor(t.Context(), "clockworks/tiktok-scraper", nil)

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "run2", runErr.RunID)
	assert.Equal(t, RunFailed, runErr.Status)
}

func TestApifyClient_APIError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"type":"token-not-valid","message":"Authentication token is not valid."}}`)
	}))
	defer server.Close()

	client := NewApifyClient(server.URL, "bad", WithRetryConfig(fastRetry))
	_, err := client.RunActor(t.Context(), "apidojo/tweet-scraper", map[string]any{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Authentication token is not valid.", apiErr.Message)
	assert.Equal(t, server.URL+"/v2/acts/apidojo~tweet-scraper/runs", apiErr.Endpoint)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "client errors are not retried")
}

func TestApifyClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[{"id":"a"}]`)
	}))
	defer server.Close()

	client := NewApifyClient(server.URL, "secret", WithRetryConfig(fastRetry))
	records, err := client.DatasetItems(t.Context(), "ds")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestApifyClient_RetriesExhausted(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewApifyClient(server.URL, "secret", WithRetryConfig(fastRetry))
	_, err := client.DatasetItems(t.Context(), "ds")
	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestApifyClient_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer server.Close()

	client := NewApifyClient(server.URL, "secret", WithRetryConfig(fastRetry))
	_, err := client.StartRun(t.Context(), "apify/facebook-pages-scraper", map[string]any{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, ShouldRetry(nil, errors.New("dial")))
	assert.True(t, ShouldRetry(&http.Response{StatusCode: http.StatusTooManyRequests}, nil))
	assert.False(t, ShouldRetry(&http.Response{StatusCode: http.StatusNotFound}, nil))
	assert.False(t, ShouldRetry(&http.Response{StatusCode: http.StatusOK}, nil))
}
