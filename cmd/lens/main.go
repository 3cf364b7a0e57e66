// Package main provides the lens CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphlens/lens/pkg/artifact"
	"github.com/graphlens/lens/pkg/graph"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/logger/console"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lens",
	Short: "Inspect knowledge-graph pipeline outputs",
	Long: `lens inspects the artifact tables a knowledge-graph indexing
pipeline writes (documents, text units, entities, relationships,
communities, reports, covariates) without starting the server.

All commands take a pipeline output directory and assemble the same
graph the server would serve.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version

	cobra.OnInitialize(func() {
		logger.Init(console.New(console.Params{
			Debug: os.Getenv("DEBUG") != "",
		}))
	})
}

// buildGraph loads one output directory and assembles its graph, the
// shared front half of every subcommand.
func buildGraph(dir string) (*graph.Graph, *graph.Diagnostics, []*artifact.DecodeError, error) {
	files, err := artifact.ReadDir(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, nil, fmt.Errorf("no artifact files in %s", dir)
	}

	set, decodeErrs := artifact.LoadSet(context.Background(), files)
	g, diags := graph.Build(set)
	return g, diags, decodeErrs, nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
