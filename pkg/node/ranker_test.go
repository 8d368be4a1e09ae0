package node

import (
	"math"
	"testing"

	"github.com/lioia/pagerank/pkg/codec"
	"github.com/lioia/pagerank/pkg/pagerank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRanker() *Ranker {
	cfg := pagerank.DefaultConfig()
	cfg.Seed = 1
	return NewRanker(cfg)
}

func cycleRequest(id string) codec.RankRequest {
	return codec.RankRequest{
		ID:    id,
		Graph: map[string][]string{"a": {"b"}, "b": {"a"}},
	}
}

func TestRankerHandle(t *testing.T) {
	resp, err := testRanker().Handle(cycleRequest("r1"))
	require.NoError(t, err)
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, pagerank.DefaultConfig().Samples, resp.Samples)
	assert.InDelta(t, 0.5, resp.Iterated["a"], 1e-9)
	assert.InDelta(t, 0.5, resp.Sampled["a"], 0.03)
	assert.Empty(t, resp.Error)
}

func TestRankerHandleGeneratesID(t *testing.T) {
	resp, err := testRanker().Handle(cycleRequest(""))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestRankerHandleOverridesConfig(t *testing.T) {
	req := cycleRequest("r2")
	req.Config.Samples = 10
	resp, err := testRanker().Handle(req)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Samples)
}

func TestRankerHandleErrors(t *testing.T) {
	tests := []struct {
		name string
		req  codec.RankRequest
		want error
	}{
		{"empty graph", codec.RankRequest{ID: "e1", Graph: map[string][]string{}}, pagerank.ErrInvalidGraph},
		{"unknown link", codec.RankRequest{ID: "e2", Graph: map[string][]string{"a": {"b"}}}, pagerank.ErrInvalidGraph},
		{"invalid damping", codec.RankRequest{ID: "e3", Graph: map[string][]string{"a": {}}, Config: pagerank.Config{Damping: 2}}, pagerank.ErrInvalidParameter},
		{"NaN damping", codec.RankRequest{ID: "e4", Graph: map[string][]string{"a": {}}, Config: pagerank.Config{Damping: math.NaN()}}, pagerank.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := testRanker().Handle(tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsInvalidInput(err))
			assert.Equal(t, tt.req.ID, resp.ID)
			assert.NotEmpty(t, resp.Error)
			assert.Nil(t, resp.Sampled)
		})
	}
}
