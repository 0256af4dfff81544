package cli

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ordlabs/ordscan/internal/aggregate"
	"github.com/ordlabs/ordscan/internal/llm"
	"github.com/ordlabs/ordscan/internal/model"
	"github.com/ordlabs/ordscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	datasetIDs  []string
	limit       int
	outPath     string
	pollTimeout time.Duration
	baseOnly    bool
	smilesOnly  bool
	concurrency int
	baseURL     string
	userAgent   string
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// datasetIDPattern matches dataset ids wherever they appear, including
// inside dataset page URLs.
var datasetIDPattern = regexp.MustCompile(`ord_dataset-[A-Za-z0-9]+`)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dataset-id-or-url...]",
	Short: "Scan datasets and write per-category component counts",
	Long: `Scan retrieves up to --limit reaction records from each dataset,
classifies every compound identifier into categories, and writes one JSON
artifact mapping dataset id to category/value count tables plus the raw
evidence behind each count.

Datasets may be given as ids or as dataset page URLs; with no arguments
every dataset the service lists is scanned.

Example:
  ordscan scan ord_dataset-00005539a1e04c809a9a78647bea649c
  ordscan scan https://open-reaction-database.org/client/browse?dataset=ord_dataset-abc123 --limit 100
  ordscan scan --base-only --smiles-only --out bases.json
  ordscan scan --concurrency 4 --llm --llm-model gpt-4o-mini`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Query flags
	scanCmd.Flags().StringSliceVar(&datasetIDs, "datasets", nil, "dataset ids to scan (alternative to positional args)")
	scanCmd.Flags().IntVar(&limit, "limit", 50, "max records to request per dataset")
	scanCmd.Flags().DurationVar(&pollTimeout, "timeout", 2*time.Minute, "max wait for each dataset query to complete")

	// Output flags
	scanCmd.Flags().StringVar(&outPath, "out", "ords_components.json", "output JSON path")
	scanCmd.Flags().BoolVar(&baseOnly, "base-only", false, "keep only the Base category in the output")
	scanCmd.Flags().BoolVar(&smilesOnly, "smiles-only", false, "keep only SMILES-typed raw evidence (counts are unaffected)")

	// HTTP flags
	scanCmd.Flags().StringVar(&baseURL, "base-url", "", "service base URL (default: https://open-reaction-database.org)")
	scanCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetches)")

	// Concurrency flags
	scanCmd.Flags().IntVar(&concurrency, "concurrency", 1, "number of datasets to scan in parallel")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM summary of the run")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// extractDatasetIDs normalizes positional args and --datasets values to
// dataset ids. URLs yield the embedded id; values with no recognizable id
// are rejected.
func extractDatasetIDs(args []string) ([]string, error) {
	var ids []string
	for _, arg := range args {
		id := datasetIDPattern.FindString(arg)
		if id == "" {
			return nil, fmt.Errorf("no dataset id found in %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	explicit, err := extractDatasetIDs(append(append([]string{}, args...), datasetIDs...))
	if err != nil {
		return err
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Query.Limit = limit
	cfg.Query.PollTimeout = pollTimeout
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Path = outPath
	cfg.Output.BaseOnly = baseOnly
	cfg.Output.SMILESOnly = smilesOnly
	cfg.Output.Verbose = verbose
	if baseURL != "" {
		cfg.HTTP.BaseURL = baseURL
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		if llmProvider == "openai" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	ctx := context.Background()
	p := pipeline.NewPipeline(cfg)

	targets, err := p.ResolveDatasets(ctx, explicit)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning %d dataset(s), limit %d per dataset\n", len(targets), limit)
	}

	opts := aggregate.FilterOptions{BaseOnly: cfg.Output.BaseOnly, SMILESOnly: cfg.Output.SMILESOnly}

	var result aggregate.RunResult
	if cfg.Concurrency.Workers > 1 {
		result = p.RunConcurrent(ctx, targets, opts, cfg.Concurrency.Workers)
	} else {
		result = p.Run(ctx, targets, opts)
	}

	renderer := pipeline.NewRenderer()
	if err := renderer.WriteResult(result, cfg.Output.Path); err != nil {
		return err
	}

	return writeSummary(ctx, cfg, result)
}

// writeSummary generates the optional LLM run summary next to the artifact.
// Summary failure never fails the scan; the artifact is already on disk.
func writeSummary(ctx context.Context, cfg *model.Config, result aggregate.RunResult) error {
	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}
	if !summarizer.IsEnabled() {
		return nil
	}

	resp, err := summarizer.GenerateSummary(ctx, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ LLM summary failed: %v\n", err)
		return nil
	}

	path := strings.TrimSuffix(cfg.Output.Path, ".json") + ".summary.txt"
	if err := os.WriteFile(path, []byte(resp.Summary+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "✗ write summary: %v\n", err)
		return nil
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ LLM summary (%s, %d tokens): %s\n", resp.Model, resp.TokensUsed, path)
	}
	return nil
}
