package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/pagerank"
	"github.com/spf13/cobra"
)

// NewRankCmd creates the rank subcommand
func NewRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <corpus>",
		Short: "Rank a corpus on this machine",
		Long: `Rank the pages of a corpus with both estimators and print the results.

The corpus is a directory of .html pages, an edge list file or an http(s) URL
serving an edge list.`,
		Example: `  pagerank rank corpus0
  pagerank rank -n 50000 --seed 1 graph.txt
  pagerank rank --render ranks.svg corpus0`,
		Args: cobra.ExactArgs(1),
		RunE: runRankCmd,
	}
	addConfigFlags(cmd)
	cmd.Flags().StringP("render", "r", "", "Draw the ranked graph to this file (.dot, .svg, .png, .jpg)")
	return cmd
}

func runRankCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g, err := graph.Load(args[0])
	if err != nil {
		return err
	}
	result, err := pagerank.Rank(g, cfg)
	if err != nil {
		return err
	}
	printResults(cmd.OutOrStdout(), cfg.Samples, result)

	if output, _ := cmd.Flags().GetString("render"); output != "" {
		return renderToFile(g, result.Iterated, output)
	}
	return nil
}

func printResults(w io.Writer, samples int, result pagerank.Result) {
	fmt.Fprintf(w, "PageRank Results from Sampling (n = %d)\n", samples)
	printTable(w, result.Sampled)
	fmt.Fprintln(w, "PageRank Results from Iteration")
	printTable(w, result.Iterated)
}

func printTable(w io.Writer, ranks pagerank.RankTable) {
	pages := make([]string, 0, len(ranks))
	for page := range ranks {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	for _, page := range pages {
		fmt.Fprintf(w, "  %s: %.4f\n", page, ranks[page])
	}
}

func renderToFile(g graph.Graph, ranks pagerank.RankTable, output string) error {
	format, err := graph.ParseFormat(strings.TrimPrefix(filepath.Ext(output), "."))
	if err != nil {
		return err
	}
	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := graph.Render(g, ranks, format, file); err != nil {
		return fmt.Errorf("could not render %s: %w", output, err)
	}
	return nil
}
