// Package llm generates an optional prose summary of a finished run. The
// summary is strictly cosmetic: it is produced after aggregation and never
// influences what was classified or counted.
package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/ordlabs/ordscan/internal/aggregate"
	"github.com/ordlabs/ordscan/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary of the run result.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	// Result is the finished, already-filtered run result.
	Result aggregate.RunResult

	// Prompt is an optional custom prompt (if empty, use the default).
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the summary output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai" or "" for disabled
	Model     string
	APIKey    string
	BaseURL   string // custom endpoint, e.g. an OpenAI-compatible local server
	Timeout   int    // seconds
	MaxTokens int
}

// DefaultConfig returns sensible defaults (provider disabled).
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt renders the run result into the default summarization prompt.
// Only category totals and top values are included; raw evidence would blow
// the token budget on large runs.
func BuildPrompt(result aggregate.RunResult) string {
	prompt := `You are summarizing the output of a chemical-reaction scraper that
classifies reagents, solvents and catalysts into categories (Base, Solvent,
Ligand, Metal, amine, aryl halide, ...) and counts how often each value
occurs per dataset.

Rules:
1. Describe only what the counts show. Do not infer reaction outcomes or
   chemical correctness; classification is keyword-heuristic best effort.
2. Mention the most frequent values per category where notable.
3. Keep it to one short paragraph per dataset.

Datasets:
`

	ids := make([]string, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		agg := result[id]
		prompt += fmt.Sprintf("\n%s (%d evidence items):\n", id, agg.Len())
		for _, cat := range sortedCategories(agg) {
			prompt += fmt.Sprintf("- %s: %s\n", cat, topValues(agg.Counts[cat], 5))
		}
	}

	prompt += "\nProvide the summary now."
	return prompt
}

func sortedCategories(agg *aggregate.Aggregate) []model.Category {
	cats := make([]model.Category, 0, len(agg.Counts))
	for cat := range agg.Counts {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func topValues(table map[string]int, n int) string {
	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(table))
	for v, c := range table {
		entries = append(entries, entry{v, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	out := ""
	for i, e := range entries {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s (%d)", e.value, e.count)
	}
	return out
}
