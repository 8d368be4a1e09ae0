package graph

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/lioia/pagerank/pkg/utils"
)

// Load builds a graph from a resource: a directory is crawled as an HTML
// corpus, anything else is read as an edge list (local file or network resource)
func Load(resource string) (Graph, error) {
	if !isURL(resource) {
		if info, err := os.Stat(resource); err == nil && info.IsDir() {
			return Crawl(resource)
		}
	}
	return LoadGraphResource(resource)
}

func LoadGraphResource(resource string) (g Graph, err error) {
	var bytes []byte
	// Check if it's a network resource or a local one
	if isURL(resource) {
		// Loading file from network
		var resp *http.Response
		resp, err = http.Get(resource)
		if err != nil {
			utils.WarnLog("loader", "Could not load network file at %s: %v", resource, err)
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("could not load %s: %s", resource, resp.Status)
		}
		// Read response body
		bytes, err = io.ReadAll(resp.Body)
		if err != nil {
			utils.WarnLog("loader", "Could not load body from request: %v", err)
			return nil, err
		}
	} else {
		// Loading file from local filesystem
		bytes, err = os.ReadFile(resource)
		if err != nil {
			utils.WarnLog("loader", "Could not read graph at %s: %v", resource, err)
			return nil, err
		}
	}
	// Parse graph file into graph representation
	g, err = LoadGraphFromBytes(bytes)
	if err != nil {
		utils.WarnLog("loader", "Could not load graph from %s: %v", resource, err)
		return nil, err
	}
	return g, nil
}

func isURL(resource string) bool {
	return strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://")
}

// LoadGraphFromBytes parses an edge list: one "from to" (or "from,to") pair
// per line. A line with a single page declares it without links.
// Self-links are dropped.
func LoadGraphFromBytes(contents []byte) (Graph, error) {
	g := make(Graph)
	// Split file contents in lines (based on newline delimiter)
	lines := strings.Split(strings.ReplaceAll(string(contents), "\r\n", "\n"), "\n")
	for i, line := range lines {
		from, to, skip, err := convertLine(line)
		// There was an error loading the line
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		// Comment line -> no new page to add
		if skip {
			continue
		}
		g.AddPage(from)
		if to == "" || to == from {
			continue
		}
		g.AddLink(from, to)
	}
	return g, nil
}

func convertLine(line string) (string, string, bool, error) {
	line = strings.TrimSpace(line)
	// Skip comment lines
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || line == "" {
		return "", "", true, nil
	}
	// Split line in FromPage and ToPage (space or comma separated)
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	switch len(tokens) {
	case 1:
		return tokens[0], "", false, nil
	case 2:
		return tokens[0], tokens[1], false, nil
	}
	return "", "", false, fmt.Errorf("could not convert %q: expected \"from to\"", line)
}
