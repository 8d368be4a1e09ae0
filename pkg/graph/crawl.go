package graph

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Crawl parses a directory of HTML pages. Every *.html file is a page and
// its anchors become links; self-links and links leaving the corpus are dropped.
func Crawl(directory string) (Graph, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("could not read corpus %s: %w", directory, err)
	}

	found := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		links, err := parseFile(filepath.Join(directory, entry.Name()))
		if err != nil {
			return nil, err
		}
		found[entry.Name()] = links
	}

	// Only include links to other pages in the corpus
	g := make(Graph, len(found))
	for page, links := range found {
		g.AddPage(page)
		for _, link := range links {
			if _, ok := found[link]; !ok || link == page {
				continue
			}
			g[page][link] = struct{}{}
		}
	}
	return g, nil
}

func parseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()
	links, err := ParseLinks(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return links, nil
}

// ParseLinks returns the href of every <a> element in document order
func ParseLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					links = append(links, attr.Val)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}
