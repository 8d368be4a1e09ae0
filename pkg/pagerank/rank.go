package pagerank

import (
	"math"
	"sort"

	"github.com/lioia/pagerank/pkg/graph"
	"golang.org/x/sync/errgroup"
)

// Tolerance on the sum of a distribution before it gets renormalised
const Tolerance = 1e-6

// Distribution is the probability of visiting each page next
type Distribution map[string]float64

func (d Distribution) Sum() float64 {
	return sum(d)
}

// RankTable maps every page to its rank; ranks sum to 1
type RankTable map[string]float64

type Entry struct {
	Page string
	Rank float64
}

func (r RankTable) Sum() float64 {
	return sum(r)
}

// Sorted returns the entries by decreasing rank (ties by page)
func (r RankTable) Sorted() []Entry {
	entries := make([]Entry, 0, len(r))
	for page, rank := range r {
		entries = append(entries, Entry{Page: page, Rank: rank})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank > entries[j].Rank
		}
		return entries[i].Page < entries[j].Page
	})
	return entries
}

// MaxDelta returns the largest absolute rank difference between r and other.
// A page missing from one table counts as rank 0 there.
func (r RankTable) MaxDelta(other RankTable) float64 {
	delta := 0.0
	for page, rank := range r {
		delta = math.Max(delta, math.Abs(rank-other[page]))
	}
	for page, rank := range other {
		if _, ok := r[page]; !ok {
			delta = math.Max(delta, math.Abs(rank))
		}
	}
	return delta
}

// Result holds the rank tables of both estimators for the same graph
type Result struct {
	Sampled  RankTable
	Iterated RankTable
}

// Rank runs both estimators concurrently. The graph is only read.
func Rank(g graph.Graph, cfg Config) (Result, error) {
	var result Result
	var eg errgroup.Group
	eg.Go(func() error {
		ranks, err := SamplePageRank(g, cfg)
		result.Sampled = ranks
		return err
	})
	eg.Go(func() error {
		ranks, err := IteratePageRank(g, cfg)
		result.Iterated = ranks
		return err
	})
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func sum[M ~map[string]float64](m M) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}

// normalize rescales m to sum 1 when rounding drifted past Tolerance
func normalize[M ~map[string]float64](m M) {
	total := sum(m)
	if total <= 0 || math.Abs(total-1) <= Tolerance {
		return
	}
	for k := range m {
		m[k] /= total
	}
}
