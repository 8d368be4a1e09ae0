package pagerank

import (
	"github.com/lioia/pagerank/pkg/graph"
)

// corpus0: 1 -> 2; 2 -> 1, 3; 3 -> 2, 4; 4 -> 2
func corpus0() graph.Graph {
	return graph.New(map[string][]string{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html", "4.html"},
		"4.html": {"2.html"},
	})
}

// cycle: a <-> b
func cycle() graph.Graph {
	return graph.New(map[string][]string{
		"a": {"b"},
		"b": {"a"},
	})
}

// star: every page links to 1, which has no links
func star() graph.Graph {
	return graph.New(map[string][]string{
		"1": {},
		"2": {"1"},
		"3": {"1"},
		"4": {"1"},
	})
}

func single() graph.Graph {
	return graph.New(map[string][]string{"only": {}})
}

func testConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}
