// Package pipeline orchestrates a run: per dataset, submit a query, poll
// for the records, extract classified evidence from each record into a
// fresh aggregate, then filter and serialize the combined result.
package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/ordlabs/ordscan/internal/aggregate"
	"github.com/ordlabs/ordscan/internal/cache"
	"github.com/ordlabs/ordscan/internal/extract"
	"github.com/ordlabs/ordscan/internal/model"
	"github.com/ordlabs/ordscan/internal/ord"
	"github.com/ordlabs/ordscan/internal/ordclient"
	"github.com/ordlabs/ordscan/internal/util"
	"github.com/ordlabs/ordscan/internal/worker"
)

// Service is the subset of the reaction database client the pipeline uses.
type Service interface {
	ListDatasets(ctx context.Context) ([]ordclient.Dataset, error)
	SubmitQuery(ctx context.Context, datasetID string, limit int) (string, error)
	FetchQueryResult(ctx context.Context, taskID string) ([]ordclient.Record, error)
	ReactionSummary(ctx context.Context, reactionID string, compact bool) (string, error)
}

// Pipeline drives dataset scans. The decoder is an injected capability:
// when nil, the structured extraction path degrades to a no-op per record
// and the run proceeds with zero structured evidence.
type Pipeline struct {
	client  Service
	decoder ord.Decoder
	limiter *worker.Limiter
	config  *model.Config
}

// NewPipeline wires a pipeline from configuration, with the wire decoder as
// the default structured-record capability.
func NewPipeline(cfg *model.Config) *Pipeline {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)

	client := ordclient.NewClient(ordclient.Config{
		BaseURL:      cfg.HTTP.BaseURL,
		Timeout:      cfg.HTTP.Timeout,
		UserAgent:    cfg.HTTP.UserAgent,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		PollTimeout:  cfg.Query.PollTimeout,
		HTTPProxy:    cfg.HTTP.HTTPProxy,
		HTTPSProxy:   cfg.HTTP.HTTPSProxy,
	}, store, robots)

	return &Pipeline{
		client:  client,
		decoder: ord.WireDecoder{},
		limiter: worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		config:  cfg,
	}
}

// NewPipelineWith builds a pipeline from explicit collaborators. decoder may
// be nil to disable structured extraction.
func NewPipelineWith(client Service, decoder ord.Decoder, limiter *worker.Limiter, cfg *model.Config) *Pipeline {
	return &Pipeline{client: client, decoder: decoder, limiter: limiter, config: cfg}
}

// ResolveDatasets returns the dataset ids to scan: the explicit ids if any
// were given, otherwise every dataset the service lists. Listing failure
// with no explicit ids is the one fatal error of a run.
func (p *Pipeline) ResolveDatasets(ctx context.Context, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}

	datasets, err := p.client.ListDatasets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	ids := make([]string, 0, len(datasets))
	for _, d := range datasets {
		ids = append(ids, d.DatasetID)
	}
	return ids, nil
}

// ScanDataset scans one dataset into a fresh aggregate: submit, poll, then
// walk each record's decoded input slots. Records that lack an id or a blob,
// or whose blob fails to decode, are skipped silently.
func (p *Pipeline) ScanDataset(ctx context.Context, datasetID string) (*aggregate.Aggregate, error) {
	taskID, err := p.client.SubmitQuery(ctx, datasetID, p.config.Query.Limit)
	if err != nil {
		return nil, err
	}

	records, err := p.client.FetchQueryResult(ctx, taskID)
	if err != nil {
		return nil, err
	}

	agg := aggregate.New()
	for _, rec := range records {
		if rec.ReactionID == "" {
			continue
		}
		p.extractRecord(agg, rec)

		// courtesy throttle between records
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
	}
	return agg, nil
}

// extractRecord feeds one record's evidence into the aggregate. All decode
// failures are swallowed: a malformed record never aborts its dataset.
func (p *Pipeline) extractRecord(agg *aggregate.Aggregate, rec ordclient.Record) {
	if p.decoder == nil || rec.Proto == "" {
		return
	}

	blob, err := base64.StdEncoding.DecodeString(rec.Proto)
	if err != nil {
		return
	}
	rxn, err := p.decoder.Decode(blob)
	if err != nil {
		return
	}
	// the payload's reaction id is authoritative
	rxn.ID = rec.ReactionID

	for _, ev := range extract.ExtractRecord(rxn) {
		agg.Add(ev.Category, ev.Item)
	}
}

// Run scans the datasets sequentially, applying the output filters to each
// aggregate. A failed dataset is reported to stderr in verbose mode and
// omitted from the result; the run itself never aborts.
func (p *Pipeline) Run(ctx context.Context, datasetIDs []string, opts aggregate.FilterOptions) aggregate.RunResult {
	result := make(aggregate.RunResult)
	for _, datasetID := range datasetIDs {
		agg, err := p.ScanDataset(ctx, datasetID)
		if err != nil {
			if p.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", datasetID, err)
			}
			continue
		}
		result[datasetID] = agg.Filter(opts)
		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ %s: %d evidence items\n", datasetID, agg.Len())
		}
	}
	return result
}

// RunConcurrent scans the datasets across the worker pool. Per-dataset
// failure isolation is identical to Run.
func (p *Pipeline) RunConcurrent(ctx context.Context, datasetIDs []string, opts aggregate.FilterOptions, workers int) aggregate.RunResult {
	processor := worker.NewBatchProcessor(p, workers)

	result := make(aggregate.RunResult)
	for _, res := range processor.ProcessDatasets(ctx, datasetIDs) {
		if res.Error != nil {
			if p.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.DatasetID, res.Error)
			}
			continue
		}
		result[res.DatasetID] = res.Aggregate.Filter(opts)
	}
	return result
}

// ScanSummary fetches a reaction's rendered summary document and extracts
// per-category name counts from it.
func (p *Pipeline) ScanSummary(ctx context.Context, reactionID string, compact bool) (map[model.Category]map[string]int, error) {
	doc, err := p.client.ReactionSummary(ctx, reactionID, compact)
	if err != nil {
		return nil, err
	}
	return extract.ExtractComponents(doc)
}
