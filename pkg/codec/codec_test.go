package codec

import (
	"math"
	"testing"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/pagerank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestRequestRoundTrip(t *testing.T) {
	g := graph.New(map[string][]string{"a": {"b", "c"}, "b": {}, "c": {"a"}})
	cfg := pagerank.Config{Damping: 0.6, Samples: 500, Threshold: 0.01, MaxIterations: 20, Seed: 17}
	req := NewRankRequest("req-1", g, cfg)

	data, err := MarshalRequest(req)
	require.NoError(t, err)
	got, err := UnmarshalRequest(data)
	require.NoError(t, err)

	assert.Equal(t, req, got)
	assert.Equal(t, g, graph.New(got.Graph))
}

func TestResponseRoundTrip(t *testing.T) {
	resp := RankResponse{
		ID:       "req-2",
		Samples:  1000,
		Sampled:  pagerank.RankTable{"a": 0.25, "b": 0.75},
		Iterated: pagerank.RankTable{"a": 0.3, "b": 0.7},
	}
	data, err := MarshalResponse(resp)
	require.NoError(t, err)
	got, err := UnmarshalResponse(data)
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestErrorResponse(t *testing.T) {
	s, err := EncodeResponse(RankResponse{ID: "req-3", Error: "invalid graph: no pages"})
	require.NoError(t, err)
	got := DecodeResponse(s)
	assert.Equal(t, "invalid graph: no pages", got.Error)
	assert.Nil(t, got.Sampled)
	assert.Nil(t, got.Iterated)
}

func TestDecodeRequestErrors(t *testing.T) {
	tests := map[string]map[string]any{
		"missing graph":     {"id": "x"},
		"links not a list":  {"id": "x", "graph": map[string]any{"a": "b"}},
		"link not a string": {"id": "x", "graph": map[string]any{"a": []any{1.0}}},
		"fractional samples": withConfig(map[string]any{"samples": 10.5}),
		"huge samples":       withConfig(map[string]any{"samples": 1e300}),
		"NaN iterations":     withConfig(map[string]any{"max_iterations": math.NaN()}),
		"infinite seed":      withConfig(map[string]any{"seed": math.Inf(-1)}),
		"inexact seed":       withConfig(map[string]any{"seed": 1e17}),
		"samples as string":  withConfig(map[string]any{"samples": "100"}),
	}
	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := structpb.NewStruct(fields)
			require.NoError(t, err)
			_, err = DecodeRequest(s)
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := UnmarshalRequest([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func withConfig(cfg map[string]any) map[string]any {
	return map[string]any{"id": "x", "graph": map[string]any{"a": []any{}}, "config": cfg}
}

func TestDecodeRequestConfigBounds(t *testing.T) {
	s, err := structpb.NewStruct(withConfig(map[string]any{
		"samples":        float64(math.MaxInt32),
		"max_iterations": 1.0,
		"seed":           -float64(1 << 53),
	}))
	require.NoError(t, err)
	req, err := DecodeRequest(s)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, req.Config.Samples)
	assert.Equal(t, 1, req.Config.MaxIterations)
	assert.Equal(t, int64(-1<<53), req.Config.Seed)

	// Fields left out fall back to zero
	s, err = structpb.NewStruct(withConfig(map[string]any{"damping": 0.5}))
	require.NoError(t, err)
	req, err = DecodeRequest(s)
	require.NoError(t, err)
	assert.Equal(t, pagerank.Config{Damping: 0.5}, req.Config)
}
