package search

import "context"

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Client runs a web search and returns hits in rank order. An empty result
// list is not an error.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
