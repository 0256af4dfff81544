package ordclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(baseURL string, pollTimeout time.Duration) *Client {
	return NewClient(Config{
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		UserAgent:    "ordscan-test",
		MaxBodyBytes: 1 << 20,
		PollTimeout:  pollTimeout,
	}, nil, nil)
}

func TestSubmitQuery_TrimsQuotedTaskID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/submit_query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("dataset_id"); got != "ord_dataset-abc123" {
			t.Errorf("unexpected dataset_id %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("unexpected limit %q", got)
		}
		_, _ = fmt.Fprint(w, "\"task-42\"\n")
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Minute)
	taskID, err := client.SubmitQuery(context.Background(), "ord_dataset-abc123", 50)
	if err != nil {
		t.Fatalf("SubmitQuery failed: %v", err)
	}
	if taskID != "task-42" {
		t.Errorf("expected task-42, got %q", taskID)
	}
}

func TestFetchQueryResult_NotReadyThenReady(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if n := polls.Add(1); n <= 2 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		_, _ = fmt.Fprint(w, `[{"reaction_id":"ord-1","proto":"AAA="},{"reaction_id":"ord-2"}]`)
	}))
	defer server.Close()

	var slept []time.Duration
	origSleep := sleepFunc
	sleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleepFunc = origSleep }()

	client := newTestClient(server.URL, time.Minute)
	records, err := client.FetchQueryResult(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("FetchQueryResult failed: %v", err)
	}
	if len(records) != 2 || records[0].ReactionID != "ord-1" || records[1].Proto != "" {
		t.Errorf("unexpected records: %+v", records)
	}
	if polls.Load() != 3 {
		t.Errorf("expected 3 polls, got %d", polls.Load())
	}

	// backoff: 500ms then 750ms
	if len(slept) != 2 || slept[0] != 500*time.Millisecond || slept[1] != 750*time.Millisecond {
		t.Errorf("unexpected backoff sequence: %v", slept)
	}
}

func TestFetchQueryResult_BackoffCap(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) <= 8 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		_, _ = fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	var slept []time.Duration
	origSleep := sleepFunc
	sleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleepFunc = origSleep }()

	client := newTestClient(server.URL, time.Minute)
	if _, err := client.FetchQueryResult(context.Background(), "task-1"); err != nil {
		t.Fatalf("FetchQueryResult failed: %v", err)
	}

	last := slept[len(slept)-1]
	if last != 5*time.Second {
		t.Errorf("expected backoff capped at 5s, got %v", last)
	}
	for i := 1; i < len(slept); i++ {
		if slept[i] < slept[i-1] {
			t.Errorf("backoff decreased: %v", slept)
		}
	}
}

func TestFetchQueryResult_NotFound(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Minute)
	_, err := client.FetchQueryResult(context.Background(), "task-gone")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if polls.Load() != 1 {
		t.Errorf("expected no further polling after 404, got %d polls", polls.Load())
	}
}

func TestFetchQueryResult_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Minute)
	_, err := client.FetchQueryResult(context.Background(), "task-1")
	if err == nil {
		t.Fatal("expected error for 500 status")
	}
	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrPollTimeout) {
		t.Errorf("500 should be a plain permanent failure, got %v", err)
	}
}

func TestFetchQueryResult_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	origSleep := sleepFunc
	sleepFunc = func(d time.Duration) {}
	defer func() { sleepFunc = origSleep }()

	client := newTestClient(server.URL, 50*time.Millisecond)
	_, err := client.FetchQueryResult(context.Background(), "task-slow")
	if !errors.Is(err, ErrPollTimeout) {
		t.Fatalf("expected ErrPollTimeout, got %v", err)
	}
}

func TestListDatasets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/datasets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = fmt.Fprint(w, `[{"dataset_id":"ord_dataset-1"},{"dataset_id":"ord_dataset-2"}]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Minute)
	datasets, err := client.ListDatasets(context.Background())
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if len(datasets) != 2 || datasets[0].DatasetID != "ord_dataset-1" {
		t.Errorf("unexpected datasets: %+v", datasets)
	}
}

func TestReactionSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("reaction_id"); got != "ord-1" {
			t.Errorf("unexpected reaction_id %q", got)
		}
		if got := r.URL.Query().Get("compact"); got != "false" {
			t.Errorf("unexpected compact %q", got)
		}
		_, _ = fmt.Fprint(w, "<html><body>summary</body></html>")
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Minute)
	doc, err := client.ReactionSummary(context.Background(), "ord-1", false)
	if err != nil {
		t.Fatalf("ReactionSummary failed: %v", err)
	}
	if doc != "<html><body>summary</body></html>" {
		t.Errorf("unexpected summary: %q", doc)
	}
}
