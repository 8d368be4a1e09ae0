package graph

import (
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// ParseFormat maps a format name (dot, svg, png, jpg) to a graphviz output format
func ParseFormat(format string) (graphviz.Format, error) {
	switch format {
	case "", "dot":
		return graphviz.XDOT, nil
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "jpg":
		return graphviz.JPG, nil
	}
	return "", fmt.Errorf("unsupported render format %q", format)
}

// Render draws g with graphviz. When ranks is not nil every page is labelled
// with its rank and sized proportionally to it.
func Render(g Graph, ranks map[string]float64, format graphviz.Format, w io.Writer) error {
	gv := graphviz.New()
	defer gv.Close()
	graph, err := gv.Graph()
	if err != nil {
		return err
	}
	defer graph.Close()

	maxRank := 0.0
	for _, rank := range ranks {
		maxRank = math.Max(maxRank, rank)
	}

	nodes := make(map[string]*cgraph.Node, len(g))
	for _, page := range g.Pages() {
		node, err := graph.CreateNode(page)
		if err != nil {
			return fmt.Errorf("could not create node %s: %w", page, err)
		}
		node.SetShape(cgraph.EllipseShape)
		if rank, ok := ranks[page]; ok {
			node.SetLabel(fmt.Sprintf("%s\n%.4f", page, rank))
			if maxRank > 0 {
				// Between 0.75 and 2 inches wide
				node.SetWidth(0.75 + 1.25*rank/maxRank)
			}
		}
		nodes[page] = node
	}
	adjacency := g.Adjacency()
	for _, page := range g.Pages() {
		for _, link := range adjacency[page] {
			to, ok := nodes[link]
			if !ok {
				return fmt.Errorf("%w: page %q links to unknown page %q", ErrInvalidGraph, page, link)
			}
			if _, err := graph.CreateEdge(page+"->"+link, nodes[page], to); err != nil {
				return fmt.Errorf("could not create edge %s -> %s: %w", page, link, err)
			}
		}
	}
	return gv.Render(graph, format, w)
}
