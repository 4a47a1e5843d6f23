package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"seeker/internal/domain"
)

const maxSearchBodySize = 2 * 1024 * 1024 // 2MB

// parallelSearchRequest is the JSON body of a Parallel Search API call.
type parallelSearchRequest struct {
	Objective         string   `json:"objective"`
	SearchQueries     []string `json:"search_queries"`
	MaxResults        int      `json:"max_results"`
	MaxCharsPerResult int      `json:"max_chars_per_result"`
}

// parallelSearchResponse models the relevant portion of the API response.
// Result records are loosely structured; any of the body fields may be absent.
type parallelSearchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
		Text    string `json:"text"`
		Snippet string `json:"snippet"`
	} `json:"results"`
}

// ParallelBackend searches the web via the Parallel Search API.
type ParallelBackend struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewParallelBackend creates a search backend for the Parallel Search API.
func NewParallelBackend(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *ParallelBackend {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ParallelBackend{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (b *ParallelBackend) Name() string { return "parallel" }

func (b *ParallelBackend) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	body, err := json.Marshal(parallelSearchRequest{
		Objective:         req.Objective,
		SearchQueries:     req.Queries,
		MaxResults:        req.MaxResults,
		MaxCharsPerResult: req.MaxCharsPerResult,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1beta/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", b.apiKey)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.NewDomainError("ParallelBackend.Search", domain.ErrAuthInvalid, excerpt(respBody))
	case http.StatusTooManyRequests:
		return nil, domain.NewDomainError("ParallelBackend.Search", domain.ErrRateLimit, excerpt(respBody))
	default:
		return nil, domain.NewDomainError("ParallelBackend.Search", domain.ErrProviderError,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, excerpt(respBody)))
	}

	var parsed parallelSearchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if len(results) >= req.MaxResults {
			break
		}
		results = append(results, SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Text:    r.Text,
			Snippet: r.Snippet,
		})
	}

	b.logger.Debug("parallel search completed",
		"objective", req.Objective,
		"queries", len(req.Queries),
		"results", len(results),
	)
	return results, nil
}

// excerpt bounds an error body for inclusion in an error message.
func excerpt(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
