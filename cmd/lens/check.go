package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <output-dir>",
	Short: "Report everything a load would skip or drop",
	Long: `check loads an output directory and prints every diagnostic the
build produces: undecodable files, rows missing required fields, edges
with missing endpoints and duplicate node ids.

Exits non-zero when any diagnostic is present, so it works as a
pipeline post-step.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, diags, decodeErrs, err := buildGraph(args[0])
	if err != nil {
		return err
	}

	type checkOutput struct {
		Clean        bool     `json:"clean"`
		Nodes        int      `json:"nodes"`
		Edges        int      `json:"edges"`
		DecodeErrors []string `json:"decode_errors,omitempty"`
		SkippedRows  []string `json:"skipped_rows,omitempty"`
		Dangling     []string `json:"dangling_edges,omitempty"`
		Duplicates   []string `json:"duplicate_nodes,omitempty"`
	}

	out := checkOutput{
		Clean: diags.Empty() && len(decodeErrs) == 0,
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
	}
	for _, decodeErr := range decodeErrs {
		out.DecodeErrors = append(out.DecodeErrors, decodeErr.Error())
	}
	for _, skipped := range diags.SkippedRows {
		out.SkippedRows = append(out.SkippedRows, skipped.String())
	}
	for _, dangling := range diags.DanglingEdges {
		out.Dangling = append(out.Dangling, dangling.String())
	}
	for _, dup := range diags.DuplicateNodes {
		out.Duplicates = append(out.Duplicates, dup.String())
	}

	if err := outputJSON(out); err != nil {
		return err
	}
	if !out.Clean {
		return fmt.Errorf("%d diagnostics", len(out.DecodeErrors)+len(out.SkippedRows)+len(out.Dangling)+len(out.Duplicates))
	}
	return nil
}
