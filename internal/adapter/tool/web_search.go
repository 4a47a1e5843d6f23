package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"seeker/internal/domain"
	"seeker/internal/infra/tracer"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 20
	maxQueries        = 5

	// Per-result character cap asked of the provider, bounding worst-case
	// payload size regardless of provider-side truncation behavior.
	maxCharsPerResult = 10000

	// Output bounds applied after formatting. Both appear in the tool
	// description so the calling LLM knows output is bounded.
	maxOutputLines = 1000
	maxOutputBytes = 100_000

	resultSeparator = "\n\n---\n\n"
)

// WebSearchTool performs one bounded web search per invocation via a
// pluggable SearchBackend. Each call is independent: validate, notify
// progress, call the provider once, shape the outcome. No cross-invocation
// state beyond the rate limiter.
type WebSearchTool struct {
	backend SearchBackend
	bus     domain.EventBus
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewWebSearchTool creates a web search tool backed by the given SearchBackend.
// bus and limiter may be nil (no progress events, no rate limiting).
func NewWebSearchTool(backend SearchBackend, bus domain.EventBus, limiter *RateLimiter, logger *slog.Logger) *WebSearchTool {
	return &WebSearchTool{
		backend: backend,
		bus:     bus,
		limiter: limiter,
		logger:  logger,
	}
}

func (t *WebSearchTool) Name() string { return "web_search" }

func (t *WebSearchTool) Description() string {
	return fmt.Sprintf(
		"Search the web for an objective using up to %d queries in one batched call. "+
			"Output is truncated to at most %d lines / %s.",
		maxQueries, maxOutputLines, "100 kB")
}

func (t *WebSearchTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"objective": {"type": "string", "minLength": 1, "description": "What information is sought and why; biases result relevance"},
				"queries": {"type": "array", "items": {"type": "string"}, "minItems": 1, "maxItems": 5, "description": "Concrete search queries (1-5)"},
				"max_results": {"type": "integer", "minimum": 1, "maximum": 20, "description": "Maximum results to return (default: 10)"}
			},
			"required": ["objective", "queries"]
		}`),
	}
}

type webSearchParams struct {
	Objective  string   `json:"objective"`
	Queries    []string `json:"queries"`
	MaxResults int      `json:"max_results,omitempty"`
}

func (t *WebSearchTool) Execute(ctx context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return Execute(ctx, "tool.web_search", t.logger, params,
		func(ctx context.Context, span trace.Span, p webSearchParams) (any, error) {
			// Mirror the schema constraints; the registry's schema wrapper
			// normally rejects these before the handler runs.
			if err := ValidateAll(
				RequireField("objective", strings.TrimSpace(p.Objective)),
				ValidateSliceLen("queries", p.Queries, 1, maxQueries),
			); err != nil {
				return nil, err
			}
			for _, q := range p.Queries {
				if strings.TrimSpace(q) == "" {
					return nil, fmt.Errorf("'queries' entries must not be empty")
				}
			}
			if p.MaxResults == 0 {
				p.MaxResults = defaultMaxResults
			}
			if err := ValidateRange("max_results", p.MaxResults, 1, maxMaxResults); err != nil {
				return nil, err
			}

			span.SetAttributes(
				tracer.StringAttr("tool.objective", p.Objective),
				tracer.IntAttr("tool.queries", len(p.Queries)),
			)

			details := domain.SearchDetails{
				Objective:  p.Objective,
				QueryCount: len(p.Queries),
				Queries:    p.Queries,
			}

			if t.limiter != nil && !t.limiter.Allow() {
				return &domain.ToolResult{
					IsError:     true,
					IsRetryable: true,
					Content:     "Search failed: rate limit reached, try again shortly",
					Details:     details,
				}, nil
			}

			// Progress is emitted exactly once, strictly before the network
			// call, so an observer sees what is being searched while waiting.
			t.publishProgress(ctx, p.Queries)

			results, err := t.backend.Search(ctx, SearchRequest{
				Objective:         p.Objective,
				Queries:           p.Queries,
				MaxResults:        p.MaxResults,
				MaxCharsPerResult: maxCharsPerResult,
			})

			// Cancellation is best-effort: polled once after the call
			// settles. Work already done is discarded and reported, never
			// presented as success.
			switch {
			case errors.Is(err, context.Canceled) || (err == nil && ctx.Err() != nil):
				t.logger.Debug("web search cancelled", "objective", p.Objective)
				return &domain.ToolResult{Content: "Search cancelled", Details: details}, nil
			case err != nil:
				t.logger.Warn("web search failed", "objective", p.Objective, "error", err)
				return &domain.ToolResult{
					IsError:     true,
					IsRetryable: classifyToolError(err),
					Content:     "Search failed: " + err.Error(),
					Details:     details,
				}, nil
			case len(results) == 0:
				t.logger.Debug("web search returned no results", "objective", p.Objective)
				return &domain.ToolResult{Content: "No results found.", Details: details}, nil
			}

			details.ResultCount = len(results)
			content := formatResults(results)
			trunc := TruncateHead(content, maxOutputLines, maxOutputBytes)
			if trunc.Truncated {
				content = trunc.Content + "\n\n" + trunc.Footer()
			}

			t.logger.Debug("web search completed",
				"objective", p.Objective,
				"results", len(results),
				"truncated", trunc.Truncated,
			)
			return &domain.ToolResult{Content: content, Details: details}, nil
		},
	)
}

// publishProgress emits the single pre-call progress event carrying the
// joined query list. No-op when the tool has no bus.
func (t *WebSearchTool) publishProgress(ctx context.Context, queries []string) {
	if t.bus == nil {
		return
	}
	payload, err := json.Marshal(domain.ToolProgressPayload{
		Tool:    t.Name(),
		Message: "Searching: " + strings.Join(queries, ", "),
	})
	if err != nil {
		return
	}
	t.bus.Publish(ctx, domain.Event{
		Type:      domain.EventToolCallProgress,
		Timestamp: time.Now(),
		SessionID: domain.SessionIDFromContext(ctx),
		Payload:   payload,
	})
}

// formatResults converts search results into a single markdown-ish text
// body. This is a total function: every record, however sparse, yields a
// well-formed block with at least a heading.
func formatResults(results []SearchResult) string {
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		lines := []string{fmt.Sprintf("## Result %d", i+1)}
		if r.Title != "" {
			lines = append(lines, "Title: "+r.Title)
		}
		if r.URL != "" {
			lines = append(lines, "URL: "+r.URL)
		}
		if body := r.Body(); body != "" {
			lines = append(lines, "", body)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, resultSeparator)
}
