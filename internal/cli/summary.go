package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ordlabs/ordscan/internal/model"
	"github.com/ordlabs/ordscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var summaryCompact bool

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary <reaction-id>",
	Short: "Scan one reaction's rendered summary page",
	Long: `Summary fetches a single reaction's rendered summary document and
extracts per-category component name counts from its tables and free text.

Example:
  ordscan summary ord-56b1f4bfeebc4b8ab990b9804e798aa7
  ordscan summary ord-56b1f4bfeebc4b8ab990b9804e798aa7 --compact`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryCompact, "compact", false, "request the compact summary rendering")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	p := pipeline.NewPipeline(cfg)
	counts, err := p.ScanSummary(context.Background(), args[0], summaryCompact)
	if err != nil {
		return fmt.Errorf("summary scan failed: %w", err)
	}

	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
