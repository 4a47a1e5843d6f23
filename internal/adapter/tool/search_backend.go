package tool

import "context"

// SearchRequest is one batched search call: a free-text objective biasing
// relevance plus up to a handful of concrete queries. Fan-out across queries,
// if any, is the provider's responsibility.
type SearchRequest struct {
	Objective         string
	Queries           []string
	MaxResults        int
	MaxCharsPerResult int
}

// SearchResult is one provider-returned record. Providers are inconsistent
// about which body field they populate, so all three are modeled explicitly
// and Body picks the first present one.
type SearchResult struct {
	Title   string
	URL     string
	Content string
	Text    string
	Snippet string
}

// Body returns the result body using first-present-wins priority:
// content over text over snippet. Returns "" when all three are absent.
func (r SearchResult) Body() string {
	switch {
	case r.Content != "":
		return r.Content
	case r.Text != "":
		return r.Text
	default:
		return r.Snippet
	}
}

// SearchBackend abstracts a web search provider.
type SearchBackend interface {
	// Search performs one batched web search and returns results.
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)
	// Name returns the backend identifier (e.g. "parallel").
	Name() string
}
