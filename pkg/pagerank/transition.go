package pagerank

import (
	"fmt"

	"github.com/lioia/pagerank/pkg/graph"
)

// TransitionModel returns the probability distribution over the page the
// random surfer visits after page.
//
// With probability damping the surfer follows one of the links of page,
// chosen uniformly; otherwise it jumps to any page of the graph. A page
// without links is treated as linking to every page, itself included.
func TransitionModel(g graph.Graph, page string, damping float64) (Distribution, error) {
	if len(g) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidGraph)
	}
	if err := checkDamping(damping); err != nil {
		return nil, err
	}
	links, ok := g[page]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	for link := range links {
		if _, ok := g[link]; !ok {
			return nil, fmt.Errorf("%w: page %q links to unknown page %q", ErrInvalidGraph, page, link)
		}
	}

	n := float64(len(g))
	distribution := make(Distribution, len(g))
	// Dangling page
	if len(links) == 0 {
		for p := range g {
			distribution[p] = 1 / n
		}
		return distribution, nil
	}

	jump := (1 - damping) / n
	follow := damping / float64(len(links))
	for p := range g {
		distribution[p] = jump
		if _, ok := links[p]; ok {
			distribution[p] += follow
		}
	}
	normalize(distribution)
	return distribution, nil
}
