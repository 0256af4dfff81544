// Package ordclient talks to the reaction database HTTP API: dataset
// listings, query submission, poll-until-ready result fetching, and rendered
// reaction summaries.
package ordclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ordlabs/ordscan/internal/cache"
	"github.com/ordlabs/ordscan/internal/util"
)

// DefaultBaseURL is the public reaction database service.
const DefaultBaseURL = "https://open-reaction-database.org"

var (
	// ErrTaskNotFound means the service no longer knows the query task.
	ErrTaskNotFound = errors.New("query task not found")
	// ErrPollTimeout means the task stayed in the processing state past the
	// configured poll timeout.
	ErrPollTimeout = errors.New("timed out waiting for query result")
)

// sleepFunc allows tests to override polling delays.
var sleepFunc = time.Sleep

// Record is one entry of a query result payload. Proto carries the
// base64-encoded structured reaction blob; either field may be absent, in
// which case the record is skipped downstream.
type Record struct {
	ReactionID string `json:"reaction_id"`
	Proto      string `json:"proto,omitempty"`
}

// Dataset is one entry of the dataset listing.
type Dataset struct {
	DatasetID string `json:"dataset_id"`
	Name      string `json:"name,omitempty"`
}

// Config holds the client's connection settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration // per-request
	UserAgent    string
	MaxBodyBytes int64
	PollTimeout  time.Duration // overall wait per query task
	HTTPProxy    string
	HTTPSProxy   string
}

// Client is the reaction database API client. The cache and robots checker
// are optional; a nil value disables that behavior.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxBytes    int64
	pollTimeout time.Duration
	store       cache.Cache
	robots      *util.RobotsChecker
}

// NewClient creates a client. store and robots may be nil.
func NewClient(cfg Config, store cache.Cache, robots *util.RobotsChecker) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 8 << 20
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 120 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
		baseURL:     baseURL,
		userAgent:   cfg.UserAgent,
		maxBytes:    maxBytes,
		pollTimeout: pollTimeout,
		store:       store,
		robots:      robots,
	}
}

// ListDatasets returns all datasets hosted by the service. The listing is
// cached briefly; it only changes when datasets are published.
func (c *Client) ListDatasets(ctx context.Context) ([]Dataset, error) {
	key := cache.Key("datasets", c.baseURL)
	if c.store != nil {
		if body, ok := c.store.Get(key); ok {
			var datasets []Dataset
			if err := json.Unmarshal(body, &datasets); err == nil {
				return datasets, nil
			}
		}
	}

	status, body, err := c.get(ctx, "/api/datasets", nil)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list datasets: unexpected status %d", status)
	}

	var datasets []Dataset
	if err := json.Unmarshal(body, &datasets); err != nil {
		return nil, fmt.Errorf("decode dataset listing: %w", err)
	}

	if c.store != nil {
		_ = c.store.Set(key, body, 15*time.Minute)
	}
	return datasets, nil
}

// SubmitQuery submits a record query for a dataset and returns the opaque
// task id to poll.
func (c *Client) SubmitQuery(ctx context.Context, datasetID string, limit int) (string, error) {
	params := url.Values{
		"dataset_id": {datasetID},
		"limit":      {fmt.Sprintf("%d", limit)},
	}
	status, body, err := c.get(ctx, "/api/submit_query", params)
	if err != nil {
		return "", fmt.Errorf("submit query for %s: %w", datasetID, err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("submit query for %s: unexpected status %d", datasetID, status)
	}

	// The service returns the task id as a bare or quoted string.
	taskID := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if taskID == "" {
		return "", fmt.Errorf("submit query for %s: empty task id", datasetID)
	}
	return taskID, nil
}

// FetchQueryResult polls until the task is ready and returns its records.
// 202 means still processing: back off starting at 500ms, multiplying by
// 1.5, capped at 5s. 404 is a permanent not-found failure; any other status
// is a permanent failure too. Exceeding the poll timeout while still
// processing returns ErrPollTimeout.
func (c *Client) FetchQueryResult(ctx context.Context, taskID string) ([]Record, error) {
	deadline := time.Now().Add(c.pollTimeout)
	delay := 500 * time.Millisecond

	for {
		status, body, err := c.get(ctx, "/api/fetch_query_result", url.Values{"task_id": {taskID}})
		if err != nil {
			return nil, fmt.Errorf("fetch query result for task %s: %w", taskID, err)
		}

		switch status {
		case http.StatusOK:
			var records []Record
			if err := json.Unmarshal(body, &records); err != nil {
				return nil, fmt.Errorf("decode query result for task %s: %w", taskID, err)
			}
			return records, nil
		case http.StatusAccepted:
			sleepFunc(delay)
			delay = min(delay*3/2, 5*time.Second)
		case http.StatusNotFound:
			return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
		default:
			return nil, fmt.Errorf("unexpected status %d for task %s", status, taskID)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("task %s: %w", taskID, ErrPollTimeout)
		}
	}
}

// ReactionSummary fetches the rendered summary document for a reaction.
// Summaries are immutable per reaction id, so they cache well.
func (c *Client) ReactionSummary(ctx context.Context, reactionID string, compact bool) (string, error) {
	key := cache.Key("summary", fmt.Sprintf("%s|%s|%t", c.baseURL, reactionID, compact))
	if c.store != nil {
		if body, ok := c.store.Get(key); ok {
			return string(body), nil
		}
	}

	params := url.Values{
		"reaction_id": {reactionID},
		"compact":     {fmt.Sprintf("%t", compact)},
	}
	status, body, err := c.get(ctx, "/api/reaction_summary", params)
	if err != nil {
		return "", fmt.Errorf("reaction summary for %s: %w", reactionID, err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("reaction summary for %s: unexpected status %d", reactionID, status)
	}

	if c.store != nil {
		_ = c.store.Set(key, body, 0)
	}
	return string(body), nil
}

// get performs one GET against the service and returns the status code and
// limited body. Non-2xx statuses are returned, not treated as errors; the
// poll loop needs to see them.
func (c *Client) get(ctx context.Context, path string, params url.Values) (int, []byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	if c.robots != nil && !c.robots.Allowed(ctx, u) {
		return 0, nil, fmt.Errorf("disallowed by robots.txt: %s", u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}
