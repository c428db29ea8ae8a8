package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/siggraph-go/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check graph document structure",
	Long: `Validate decodes graph documents (JSON or YAML) and reports every
structural problem at once: dangling edges, missing sockets, duplicate
node ids, duplicate input edges.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invalid := 0
		for _, path := range args {
			g, err := loadDocument(path)
			if err != nil {
				var ve *graph.ValidationError
				if errors.As(err, &ve) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d issue(s)\n", path, len(ve.Issues))
					for _, issue := range ve.Issues {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", issue)
					}
					invalid++
					continue
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d nodes, %d edges)\n",
				path, len(g.Nodes), len(g.Edges))
		}

		if invalid > 0 {
			return fmt.Errorf("%d invalid graph document(s)", invalid)
		}
		return nil
	},
}
