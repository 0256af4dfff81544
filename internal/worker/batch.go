package worker

import (
	"context"

	"github.com/ordlabs/ordscan/internal/aggregate"
)

// DatasetScanner scans one dataset into an aggregate.
type DatasetScanner interface {
	ScanDataset(ctx context.Context, datasetID string) (*aggregate.Aggregate, error)
}

// DatasetJob scans a single dataset.
type DatasetJob struct {
	DatasetID string
	Scanner   DatasetScanner
}

// Execute runs the scan. Errors are carried in the result, never propagated:
// one dataset's failure must not affect the others.
func (j *DatasetJob) Execute(ctx context.Context) Result {
	agg, err := j.Scanner.ScanDataset(ctx, j.DatasetID)
	return &DatasetResult{
		DatasetID: j.DatasetID,
		Aggregate: agg,
		Error:     err,
	}
}

// DatasetResult is the outcome of scanning one dataset.
type DatasetResult struct {
	DatasetID string
	Aggregate *aggregate.Aggregate
	Error     error
}

// GetError returns the error from the dataset result.
func (r *DatasetResult) GetError() error {
	return r.Error
}

// BatchProcessor scans multiple datasets concurrently. Datasets share no
// state, so parallelism only changes wall-clock time, never the per-dataset
// aggregates.
type BatchProcessor struct {
	scanner     DatasetScanner
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(scanner DatasetScanner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
	}
}

// ProcessDatasets scans the given datasets across the pool and returns one
// result per dataset, in completion order.
func (b *BatchProcessor) ProcessDatasets(ctx context.Context, datasetIDs []string) []*DatasetResult {
	if len(datasetIDs) == 0 {
		return []*DatasetResult{}
	}

	pool := NewPoolWithCapacity(b.concurrency, len(datasetIDs))
	pool.Start()

	for _, id := range datasetIDs {
		pool.Submit(&DatasetJob{DatasetID: id, Scanner: b.scanner})
	}

	results := pool.Wait()

	out := make([]*DatasetResult, len(results))
	for i, result := range results {
		out[i] = result.(*DatasetResult)
	}
	return out
}
