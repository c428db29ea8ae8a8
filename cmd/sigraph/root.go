package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/siggraph-go/graph"
)

var rootCmd = &cobra.Command{
	Use:           "sigraph",
	Short:         "Inspect and evaluate signal graph documents",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evalCmd)
}

// loadDocument reads and decodes a graph document. YAML is selected by
// file extension; everything else is treated as JSON.
func loadDocument(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return graph.DecodeDocumentYAML(data)
	default:
		return graph.DecodeDocument(data)
	}
}
