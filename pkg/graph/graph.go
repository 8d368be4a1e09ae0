package graph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidGraph is returned when a graph cannot be ranked: it has no pages
// or one of its link sets points outside the set of pages.
var ErrInvalidGraph = errors.New("invalid graph")

// Links is the set of pages a page links to
type Links map[string]struct{}

// Graph maps every page of the corpus to the pages it links to.
// Keys form the universe of pages; a page with an empty link set is dangling.
type Graph map[string]Links

// New builds a graph from an adjacency list. Duplicate links collapse into one.
// Targets are not checked here, Validate reports them.
func New(adjacency map[string][]string) Graph {
	g := make(Graph, len(adjacency))
	for page, links := range adjacency {
		g.AddPage(page)
		for _, link := range links {
			g[page][link] = struct{}{}
		}
	}
	return g
}

// AddPage inserts a page with no links, if it is not already present
func (g Graph) AddPage(page string) {
	if g[page] == nil {
		g[page] = make(Links)
	}
}

// AddLink inserts both pages and the link from -> to
func (g Graph) AddLink(from, to string) {
	g.AddPage(from)
	g.AddPage(to)
	g[from][to] = struct{}{}
}

// Pages returns the page identifiers in lexical order.
// Sampling iterates over this slice, so a seeded walk is reproducible.
func (g Graph) Pages() []string {
	pages := make([]string, 0, len(g))
	for page := range g {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// OutDegree returns the number of links leaving page
func (g Graph) OutDegree(page string) int {
	return len(g[page])
}

// HasLink reports whether from links to to
func (g Graph) HasLink(from, to string) bool {
	_, ok := g[from][to]
	return ok
}

// Validate checks the invariants the estimators rely on.
// Self-links are tolerated.
func (g Graph) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalidGraph)
	}
	for _, page := range g.Pages() {
		for link := range g[page] {
			if _, ok := g[link]; !ok {
				return fmt.Errorf("%w: page %q links to unknown page %q", ErrInvalidGraph, page, link)
			}
		}
	}
	return nil
}

// Edges returns the number of links in the graph
func (g Graph) Edges() int {
	edges := 0
	for _, links := range g {
		edges += len(links)
	}
	return edges
}

// Clone returns a deep copy of g
func (g Graph) Clone() Graph {
	clone := make(Graph, len(g))
	for page, links := range g {
		clone[page] = make(Links, len(links))
		for link := range links {
			clone[page][link] = struct{}{}
		}
	}
	return clone
}

// Adjacency returns g as sorted adjacency lists (the inverse of New)
func (g Graph) Adjacency() map[string][]string {
	adjacency := make(map[string][]string, len(g))
	for page, links := range g {
		list := make([]string, 0, len(links))
		for link := range links {
			list = append(list, link)
		}
		sort.Strings(list)
		adjacency[page] = list
	}
	return adjacency
}
