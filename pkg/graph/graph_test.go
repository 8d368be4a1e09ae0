package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New(map[string][]string{
		"a": {"b", "c", "b"},
		"b": {},
		"c": {"a"},
	})
	assert.Equal(t, []string{"a", "b", "c"}, g.Pages())
	assert.Equal(t, 2, g.OutDegree("a"))
	assert.Equal(t, 0, g.OutDegree("b"))
	assert.True(t, g.HasLink("c", "a"))
	assert.False(t, g.HasLink("a", "a"))
	assert.Equal(t, 3, g.Edges())
	assert.Equal(t, map[string][]string{
		"a": {"b", "c"},
		"b": {},
		"c": {"a"},
	}, g.Adjacency())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		graph   Graph
		wantErr bool
	}{
		{"nil graph", nil, true},
		{"empty graph", Graph{}, true},
		{"single dangling page", New(map[string][]string{"a": nil}), false},
		{"cycle", New(map[string][]string{"a": {"b"}, "b": {"a"}}), false},
		{"self link", New(map[string][]string{"a": {"a"}}), false},
		{"link outside graph", New(map[string][]string{"a": {"b"}}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGraph)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClone(t *testing.T) {
	g := New(map[string][]string{"a": {"b"}, "b": {}})
	clone := g.Clone()
	clone.AddLink("b", "c")
	assert.Equal(t, 2, len(g))
	assert.False(t, g.HasLink("b", "c"))
	assert.True(t, clone.HasLink("b", "c"))
}

func TestLoadGraphFromBytes(t *testing.T) {
	contents := []byte(`# comment
// another comment
a b
a,c
b c
c a
c c
d

`)
	g, err := LoadGraphFromBytes(contents)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {"a"},
		"d": {},
	}, g.Adjacency())
	assert.NoError(t, g.Validate())
}

func TestLoadGraphFromBytesWindowsNewlines(t *testing.T) {
	g, err := LoadGraphFromBytes([]byte("1 2\r\n2 1\r\n"))
	require.NoError(t, err)
	assert.True(t, g.HasLink("1", "2"))
	assert.True(t, g.HasLink("2", "1"))
}

func TestLoadGraphFromBytesInvalidLine(t *testing.T) {
	_, err := LoadGraphFromBytes([]byte("a b\na b c\n"))
	assert.ErrorContains(t, err, "line 2")
}
