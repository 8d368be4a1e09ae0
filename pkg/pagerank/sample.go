package pagerank

import (
	"fmt"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/utils"
)

// SamplePageRank estimates the rank of every page by walking cfg.Samples
// pages with the transition model, starting from a page chosen uniformly at
// random. The rank of a page is the fraction of samples that visited it.
//
// The walk draws from cfg.Rand(): a fixed cfg.Seed makes it reproducible.
func SamplePageRank(g graph.Graph, cfg Config) (RankTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := checkDamping(cfg.Damping); err != nil {
		return nil, err
	}
	if err := checkSamples(cfg.Samples); err != nil {
		return nil, err
	}

	rng := cfg.Rand()
	pages := g.Pages()
	visits := make([]int, len(pages))
	index := make(map[string]int, len(pages))
	for i, page := range pages {
		index[page] = i
	}

	// First sample: every page equally likely
	current := rng.Intn(len(pages))
	visits[current]++

	weights := make([]float64, len(pages))
	for i := 1; i < cfg.Samples; i++ {
		distribution, err := TransitionModel(g, pages[current], cfg.Damping)
		if err != nil {
			return nil, err
		}
		for page, p := range distribution {
			weights[index[page]] = p
		}
		if current, err = WeightedChoice(rng, weights); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		visits[current]++
	}

	ranks := make(RankTable, len(pages))
	for i, page := range pages {
		ranks[page] = float64(visits[i]) / float64(cfg.Samples)
	}
	utils.EngineLog("sample", "Visited %d pages over %d samples", len(pages), cfg.Samples)
	return ranks, nil
}
