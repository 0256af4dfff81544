package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ordlabs/ordscan/internal/aggregate"
)

// Renderer writes the run artifact.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WriteResult serializes the run result to path as indented JSON and prints
// the path, which is the run's only required stdout output.
func (r *Renderer) WriteResult(result aggregate.RunResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	fmt.Println(path)
	return nil
}
