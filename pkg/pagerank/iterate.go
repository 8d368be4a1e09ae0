package pagerank

import (
	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/utils"
)

// IteratePageRank computes the rank of every page by applying the PageRank
// recurrence until no rank changes by cfg.Threshold or more, or
// cfg.MaxIterations sweeps have run.
//
// R_(i+1)(p) = (1-d)/N + d * sum_(q -> p) R_i(q) / L(q)
//
// A page without links contributes R_i(q) / N to every page.
func IteratePageRank(g graph.Graph, cfg Config) (RankTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := checkDamping(cfg.Damping); err != nil {
		return nil, err
	}
	if err := checkConvergence(cfg.Threshold, cfg.MaxIterations); err != nil {
		return nil, err
	}

	pages := g.Pages()
	n := float64(len(pages))
	ranks := make(RankTable, len(pages))
	for _, page := range pages {
		ranks[page] = 1 / n
	}

	for i := 1; i <= cfg.MaxIterations; i++ {
		next := sweep(g, pages, ranks, cfg.Damping)
		delta := next.MaxDelta(ranks)
		ranks = next
		if delta < cfg.Threshold {
			utils.EngineLog("iterate", "Convergence check success (%d iterations)", i)
			normalize(ranks)
			return ranks, nil
		}
		utils.EngineLog("iterate", "Convergence check failed (%f)", delta)
	}
	utils.WarnLog("iterate", "No convergence after %d iterations", cfg.MaxIterations)
	normalize(ranks)
	return ranks, nil
}

// Sweep applies the recurrence once to ranks and returns the new table.
// All pages are updated from the old values.
func Sweep(g graph.Graph, ranks RankTable, damping float64) RankTable {
	return sweep(g, g.Pages(), ranks, damping)
}

func sweep(g graph.Graph, pages []string, ranks RankTable, damping float64) RankTable {
	n := float64(len(pages))
	// Map: rank flowing along every link
	incoming := make(map[string]float64, len(pages))
	dangling := 0.0
	for _, q := range pages {
		links := g[q]
		if len(links) == 0 {
			dangling += ranks[q]
			continue
		}
		share := ranks[q] / float64(len(links))
		for p := range links {
			incoming[p] += share
		}
	}

	// Reduce: damping and random jump
	next := make(RankTable, len(pages))
	for _, p := range pages {
		next[p] = (1-damping)/n + damping*(incoming[p]+dangling/n)
	}
	return next
}
