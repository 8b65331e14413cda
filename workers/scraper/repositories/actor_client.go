package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"social-scraper/workers/scraper/domain"
)

// Terminal actor run statuses.
const (
	RunSucceeded = "SUCCEEDED"
	RunFailed    = "FAILED"
	RunAborted   = "ABORTED"
	RunTimedOut  = "TIMED-OUT"
)

const defaultPageSize = 1000

// APIError is returned for non-2xx responses from the actor API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("actor api %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("actor api %s returned status %d", e.Endpoint, e.StatusCode)
}

// RunError reports an actor run that ended without succeeding.
type RunError struct {
	RunID  string
	Status string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("actor run %s finished with status %s", e.RunID, e.Status)
}

// ActorRun is the subset of the run object the scraper relies on.
type ActorRun struct {
	ID               string `json:"id"`
	ActID            string `json:"actId"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

func (r ActorRun) Finished() bool {
	switch r.Status {
	case RunSucceeded, RunFailed, RunAborted, RunTimedOut:
		return true
	}
	return false
}

// RetryConfig tunes the retry policy around every HTTP call.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}
}

// ShouldRetry retries network errors, server errors and rate limits.
func ShouldRetry(resp *http.Response, err error) bool {
	if err != nil || resp == nil {
		return true
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

//nolint:bodyclose // the type parameter is not a live response
func newHTTPExecutor(cfg RetryConfig) failsafe.Executor[*http.Response] {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 100 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	policy := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(ShouldRetry).
		Build()
	return failsafe.With(policy)
}

// ApifyClient starts actor runs, waits for them and pages through their
// default dataset.
type ApifyClient struct {
	baseURL       string
	token         string
	client        *http.Client
	httpExecutor  failsafe.Executor[*http.Response]
	waitForFinish int
	pageSize      int
}

type ApifyOption func(*ApifyClient)

func WithHTTPClient(httpClient *http.Client) ApifyOption {
	return func(c *ApifyClient) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

func WithRetryConfig(cfg RetryConfig) ApifyOption {
	return func(c *ApifyClient) {
		c.httpExecutor = newHTTPExecutor(cfg)
	}
}

// WithWaitForFinish sets how many seconds each status poll may block server-side.
func WithWaitForFinish(seconds int) ApifyOption {
	return func(c *ApifyClient) {
		if seconds >= 0 {
			c.waitForFinish = seconds
		}
	}
}

func WithPageSize(n int) ApifyOption {
	return func(c *ApifyClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func NewApifyClient(baseURL, token string, opts ...ApifyOption) *ApifyClient {
	c := &ApifyClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         token,
		client:        &http.Client{Timeout: 90 * time.Second},
		httpExecutor:  newHTTPExecutor(DefaultRetryConfig()),
		waitForFinish: 60,
		pageSize:      defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunActor runs actorID with input to completion and returns its dataset items.
func (c *ApifyClient) RunActor(ctx context.Context, actorID string, input map[string]any) ([]domain.RawRecord, error) {
	run, err := c.StartRun(ctx, actorID, input)
	if err != nil {
		return nil, err
	}
	run, err = c.WaitForRun(ctx, run)
	if err != nil {
		return nil, err
	}
	if run.Status != RunSucceeded {
		return nil, &RunError{RunID: run.ID, Status: run.Status}
	}
	return c.DatasetItems(ctx, run.DefaultDatasetID)
}

func (c *ApifyClient) StartRun(ctx context.Context, actorID string, input map[string]any) (ActorRun, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return ActorRun{}, fmt.Errorf("failed to marshal actor input: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v2/acts/%s/runs", c.baseURL, url.PathEscape(actorPathID(actorID)))

	var envelope struct {
		Data ActorRun `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &envelope); err != nil {
		return ActorRun{}, fmt.Errorf("failed to start actor %s: %w", actorID, err)
	}
	return envelope.Data, nil
}

// WaitForRun polls until the run reaches a terminal status or ctx ends.
func (c *ApifyClient) WaitForRun(ctx context.Context, run ActorRun) (ActorRun, error) {
	for !run.Finished() {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		endpoint := fmt.Sprintf("%s/v2/actor-runs/%s?waitForFinish=%d", c.baseURL, url.PathEscape(run.ID), c.waitForFinish)
		var envelope struct {
			Data ActorRun `json:"data"`
		}
		if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
			return run, fmt.Errorf("failed to poll actor run %s: %w", run.ID, err)
		}
		run = envelope.Data
	}
	return run, nil
}

// DatasetItems reads every item of a dataset page by page. Items that are not
// JSON objects are dropped.
func (c *ApifyClient) DatasetItems(ctx context.Context, datasetID string) ([]domain.RawRecord, error) {
	var records []domain.RawRecord
	for offset := 0; ; offset += c.pageSize {
		q := url.Values{}
		q.Set("format", "json")
		q.Set("clean", "true")
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(c.pageSize))
		endpoint := fmt.Sprintf("%s/v2/datasets/%s/items?%s", c.baseURL, url.PathEscape(datasetID), q.Encode())

		var page []any
		if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to read dataset %s: %w", datasetID, err)
		}
		for _, item := range page {
			if m, ok := item.(map[string]any); ok {
				records = append(records, domain.RawRecord(m))
			}
		}
		if len(page) < c.pageSize {
			return records, nil
		}
	}
}

func (c *ApifyClient) doJSON(ctx context.Context, method, endpoint string, body []byte, out interface{}) error {
	resp, err := c.httpExecutor.WithContext(ctx).Get(func() (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.client.Do(req)
		if ShouldRetry(resp, err) && resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return resp, err
	})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   stripQuery(endpoint),
			Message:    errorMessage(resp.Body),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// actorPathID converts "user/actor" into the "user~actor" form used in URLs.
func actorPathID(actorID string) string {
	return strings.ReplaceAll(actorID, "/", "~")
}

func stripQuery(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func errorMessage(r io.Reader) string {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(data))
}
