package node

import (
	"errors"
	"fmt"

	"github.com/lioia/pagerank/pkg/codec"
	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/pagerank"
	"github.com/lioia/pagerank/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Ranker answers ranking requests on behalf of every transport
type Ranker struct {
	Config pagerank.Config // Defaults for fields a request leaves unset
}

func NewRanker(cfg pagerank.Config) *Ranker {
	return &Ranker{Config: cfg}
}

// Handle runs both estimators on the request graph. On failure the
// response still carries the request id and the error message.
func (r *Ranker) Handle(req codec.RankRequest) (codec.RankResponse, error) {
	if req.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return codec.RankResponse{}, fmt.Errorf("could not generate request id: %w", err)
		}
		req.ID = id
	}
	resp := codec.RankResponse{ID: req.ID}
	g, cfg, err := r.prepare(req)
	if err != nil {
		resp.Error = err.Error()
		return resp, err
	}
	utils.ServerLog("Ranking %s (%d pages, %d links)", req.ID, len(g), g.Edges())
	result, err := pagerank.Rank(g, cfg)
	if err != nil {
		resp.Error = err.Error()
		return resp, err
	}
	resp.Samples = cfg.Samples
	resp.Sampled = result.Sampled
	resp.Iterated = result.Iterated
	return resp, nil
}

// Iterate runs only the iterative estimator
func (r *Ranker) Iterate(req codec.RankRequest) (graph.Graph, pagerank.RankTable, error) {
	g, cfg, err := r.prepare(req)
	if err != nil {
		return nil, nil, err
	}
	ranks, err := pagerank.IteratePageRank(g, cfg)
	return g, ranks, err
}

func (r *Ranker) prepare(req codec.RankRequest) (graph.Graph, pagerank.Config, error) {
	cfg := r.Config.Override(req.Config)
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	g := graph.New(req.Graph)
	if err := g.Validate(); err != nil {
		return nil, cfg, err
	}
	return g, cfg, nil
}

// IsInvalidInput reports whether err was caused by the request content
func IsInvalidInput(err error) bool {
	return errors.Is(err, pagerank.ErrInvalidGraph) || errors.Is(err, pagerank.ErrInvalidParameter)
}
