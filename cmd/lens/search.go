package main

import (
	"github.com/spf13/cobra"

	"github.com/graphlens/lens/pkg/search"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <output-dir> <query>",
	Short: "Search nodes by label and metadata",
	Args:  cobra.ExactArgs(2),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	g, _, _, err := buildGraph(args[0])
	if err != nil {
		return err
	}

	matches := search.NewIndex(g).Search(args[1])
	if matches == nil {
		matches = []search.Match{}
	}
	if len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}
	return outputJSON(matches)
}
