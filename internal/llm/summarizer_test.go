package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ordlabs/ordscan/internal/aggregate"
	"github.com/ordlabs/ordscan/internal/model"
)

// MockProvider implements the Provider interface for testing.
type MockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	err       error
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func sampleResult() aggregate.RunResult {
	agg := aggregate.New()
	agg.Add(model.CategoryBase, model.EvidenceItem{ReactionID: "ord-1", Value: "K2CO3"})
	agg.Add(model.CategoryBase, model.EvidenceItem{ReactionID: "ord-2", Value: "K2CO3"})
	agg.Add(model.CategorySolvent, model.EvidenceItem{ReactionID: "ord-1", Value: "toluene"})
	return aggregate.RunResult{"ord_dataset-1": agg}
}

func TestNewSummarizer_DisabledProvider(t *testing.T) {
	summarizer, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if summarizer.IsEnabled() {
		t.Error("expected summarizer to be disabled")
	}
	if summarizer.ProviderName() != "" {
		t.Error("expected empty provider name when disabled")
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "mystery"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestGenerateSummary_Disabled(t *testing.T) {
	summarizer := &Summarizer{}

	summary, err := summarizer.GenerateSummary(context.Background(), sampleResult())
	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
	if summary != nil {
		t.Error("expected nil summary when provider disabled")
	}
}

func TestGenerateSummary_ProviderUnavailable(t *testing.T) {
	summarizer := &Summarizer{provider: &MockProvider{name: "mock", available: false}}

	if _, err := summarizer.GenerateSummary(context.Background(), sampleResult()); err == nil {
		t.Fatal("expected error when provider unavailable")
	}
}

func TestGenerateSummary_Success(t *testing.T) {
	summarizer := &Summarizer{provider: &MockProvider{
		name:      "mock",
		available: true,
		response:  &SummarizeResponse{Summary: "mostly K2CO3", Model: "m", TokensUsed: 7},
	}}

	resp, err := summarizer.GenerateSummary(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if resp.Summary != "mostly K2CO3" || resp.TokensUsed != 7 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGenerateSummary_ProviderError(t *testing.T) {
	summarizer := &Summarizer{provider: &MockProvider{
		name:      "mock",
		available: true,
		err:       errors.New("boom"),
	}}

	if _, err := summarizer.GenerateSummary(context.Background(), sampleResult()); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleResult())

	if !strings.Contains(prompt, "ord_dataset-1 (3 evidence items)") {
		t.Errorf("prompt missing dataset header:\n%s", prompt)
	}
	if !strings.Contains(prompt, "K2CO3 (2)") {
		t.Errorf("prompt missing top value:\n%s", prompt)
	}
	if !strings.Contains(prompt, "toluene (1)") {
		t.Errorf("prompt missing solvent value:\n%s", prompt)
	}
}
