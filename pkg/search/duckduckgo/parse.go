package duckduckgo

import (
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/search"

	"golang.org/x/net/html"
)

func parseResults(r io.Reader, limit int) ([]search.Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	results := make([]search.Result, 0, limit)
	var current *search.Result

	flush := func() {
		if current != nil && current.Link != "" {
			results = append(results, *current)
		}
		current = nil
	}

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			classes := classList(n)
			switch {
			case slices.Contains(classes, "result--ad"):
				return true
			case n.Data == "a" && slices.Contains(classes, "result__a"):
				flush()
				if len(results) >= limit {
					return false
				}
				current = &search.Result{
					Title: collapse(textContent(n)),
					Link:  unwrapRedirect(attr(n, "href")),
				}
				return true
			case slices.Contains(classes, "result__snippet"):
				if current != nil {
					current.Snippet = collapse(textContent(n))
				}
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	flush()

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect links to the target URL.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
