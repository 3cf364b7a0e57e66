package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <output-dir>",
	Short: "Summarize a pipeline output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	g, diags, decodeErrs, err := buildGraph(args[0])
	if err != nil {
		return err
	}

	kinds := make(map[string]int)
	for _, node := range g.Nodes {
		kinds[node.Kind]++
	}
	edgeKinds := make(map[string]int)
	for _, edge := range g.Edges {
		edgeKinds[string(edge.Kind)]++
	}

	type statsOutput struct {
		Nodes        int            `json:"nodes"`
		Edges        int            `json:"edges"`
		NodeKinds    map[string]int `json:"node_kinds"`
		EdgeKinds    map[string]int `json:"edge_kinds"`
		SkippedRows  int            `json:"skipped_rows"`
		Dangling     int            `json:"dangling_edges"`
		Duplicates   int            `json:"duplicate_nodes"`
		DecodeErrors int            `json:"decode_errors"`
	}

	return outputJSON(statsOutput{
		Nodes:        g.NodeCount(),
		Edges:        g.EdgeCount(),
		NodeKinds:    kinds,
		EdgeKinds:    edgeKinds,
		SkippedRows:  len(diags.SkippedRows),
		Dangling:     len(diags.DanglingEdges),
		Duplicates:   len(diags.DuplicateNodes),
		DecodeErrors: len(decodeErrs),
	})
}
