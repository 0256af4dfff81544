package cli

import (
	"context"
	"fmt"

	"github.com/ordlabs/ordscan/internal/model"
	"github.com/ordlabs/ordscan/internal/pipeline"
	"github.com/spf13/cobra"
)

// datasetsCmd represents the datasets command
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List available dataset ids",
	Long: `Datasets prints the id of every dataset the service lists, one per
line. These ids are what scan takes as arguments.`,
	Args: cobra.NoArgs,
	RunE: runDatasets,
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	p := pipeline.NewPipeline(cfg)
	ids, err := p.ResolveDatasets(context.Background(), nil)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
