package pagerank

import (
	"math"
	"testing"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratePageRank(t *testing.T) {
	tests := []struct {
		name  string
		graph graph.Graph
		want  RankTable
	}{
		{
			name:  "corpus0",
			graph: corpus0(),
			want: RankTable{
				"1.html": 0.2199,
				"2.html": 0.4292,
				"3.html": 0.2199,
				"4.html": 0.1310,
			},
		},
		{
			name:  "two page cycle",
			graph: cycle(),
			want:  RankTable{"a": 0.5, "b": 0.5},
		},
		{
			name:  "dangling target",
			graph: graph.New(map[string][]string{"a": {"b"}, "b": {}}),
			want:  RankTable{"a": 0.3509, "b": 0.6491},
		},
		{
			name:  "single page",
			graph: single(),
			want:  RankTable{"only": 1},
		},
	}
	cfg := DefaultConfig()
	cfg.Threshold = 1e-6
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IteratePageRank(tt.graph, cfg)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for page, rank := range tt.want {
				assert.InDelta(t, rank, got[page], 1e-4, page)
			}
		})
	}
}

func TestIteratePageRankCycleIsExact(t *testing.T) {
	got, err := IteratePageRank(cycle(), DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got["a"], 1e-12)
	assert.InDelta(t, 0.5, got["b"], 1e-12)
}

func TestIteratePageRankStar(t *testing.T) {
	got, err := IteratePageRank(star(), DefaultConfig())
	require.NoError(t, err)
	sorted := got.Sorted()
	assert.Equal(t, "1", sorted[0].Page)
	for _, entry := range sorted[1:] {
		assert.Greater(t, got["1"], entry.Rank)
	}
}

func TestIteratePageRankSumsToOne(t *testing.T) {
	for name, g := range map[string]graph.Graph{
		"corpus0": corpus0(),
		"star":    star(),
		"chain":   graph.New(map[string][]string{"a": {"b"}, "b": {"c"}, "c": {}, "d": {}}),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := IteratePageRank(g, DefaultConfig())
			require.NoError(t, err)
			assert.InDelta(t, 1.0, got.Sum(), 1e-3)
		})
	}
}

func TestIteratePageRankFixedPoint(t *testing.T) {
	cfg := DefaultConfig()
	for name, g := range map[string]graph.Graph{
		"corpus0": corpus0(),
		"star":    star(),
		"cycle":   cycle(),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := IteratePageRank(g, cfg)
			require.NoError(t, err)
			again := Sweep(g, got, cfg.Damping)
			assert.Less(t, again.MaxDelta(got), cfg.Threshold)
		})
	}
}

func TestIteratePageRankIterationCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	cfg.Threshold = 1e-12
	got, err := IteratePageRank(corpus0(), cfg)
	require.NoError(t, err)
	// One sweep from the uniform table
	uniform := RankTable{"1.html": 0.25, "2.html": 0.25, "3.html": 0.25, "4.html": 0.25}
	assert.InDelta(t, 0.0, Sweep(corpus0(), uniform, cfg.Damping).MaxDelta(got), 1e-12)
}

func TestIteratePageRankSelfLink(t *testing.T) {
	g := graph.New(map[string][]string{"a": {"a", "b"}, "b": {"a"}})
	got, err := IteratePageRank(g, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Sum(), 1e-3)
	assert.Greater(t, got["a"], got["b"])
}

func TestIteratePageRankErrors(t *testing.T) {
	tests := []struct {
		name  string
		graph graph.Graph
		cfg   Config
		want  error
	}{
		{"empty graph", graph.Graph{}, DefaultConfig(), ErrInvalidGraph},
		{"link outside graph", graph.New(map[string][]string{"a": {"b"}}), DefaultConfig(), ErrInvalidGraph},
		{"zero damping", cycle(), Config{Damping: 0, Threshold: 0.001, MaxIterations: 10}, ErrInvalidParameter},
		{"damping above one", cycle(), Config{Damping: 1.1, Threshold: 0.001, MaxIterations: 10}, ErrInvalidParameter},
		{"no threshold", cycle(), Config{Damping: 0.85, MaxIterations: 10}, ErrInvalidParameter},
		{"no iterations", cycle(), Config{Damping: 0.85, Threshold: 0.001}, ErrInvalidParameter},
		{"NaN damping", cycle(), Config{Damping: math.NaN(), Threshold: 0.001, MaxIterations: 10}, ErrInvalidParameter},
		{"NaN threshold", cycle(), Config{Damping: 0.85, Threshold: math.NaN(), MaxIterations: 10}, ErrInvalidParameter},
		{"infinite threshold", cycle(), Config{Damping: 0.85, Threshold: math.Inf(1), MaxIterations: 10}, ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IteratePageRank(tt.graph, tt.cfg)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}
