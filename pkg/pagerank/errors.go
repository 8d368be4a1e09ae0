package pagerank

import (
	"errors"

	"github.com/lioia/pagerank/pkg/graph"
)

var (
	// ErrInvalidGraph: empty graph or a link to a page outside the graph
	ErrInvalidGraph = graph.ErrInvalidGraph
	// ErrInvalidParameter: damping factor outside (0,1), non-positive sample
	// count, threshold or iteration cap
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownPage: the transition model was asked about a page that is not
	// in the graph. The estimators only walk pages of the graph, so reaching it
	// through them is a bug.
	ErrUnknownPage = errors.New("unknown page")
)
