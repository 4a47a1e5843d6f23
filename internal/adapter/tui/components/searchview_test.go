package components

import (
	"strings"
	"testing"

	"seeker/internal/domain"
)

func successDetails(results int) domain.SearchDetails {
	return domain.SearchDetails{
		Objective:   "find docs",
		QueryCount:  2,
		ResultCount: results,
		Queries:     []string{"a", "b"},
	}
}

func TestRenderSearchPartialWinsOverEverything(t *testing.T) {
	out := RenderSearch(SearchView{
		Details: successDetails(3),
		Content: "Search failed: boom",
		IsError: true,
		Partial: true,
	})
	if !strings.Contains(out, "Searching") {
		t.Errorf("out = %q, want in-flight indicator", out)
	}
	if strings.Contains(out, "failed") {
		t.Error("partial state leaked outcome content")
	}
}

func TestRenderSearchError(t *testing.T) {
	out := RenderSearch(SearchView{
		Details: successDetails(0),
		Content: "Search failed: HTTP 500\nsecond line",
		IsError: true,
	})
	if !strings.Contains(out, "Search failed: HTTP 500") {
		t.Errorf("out = %q", out)
	}
	if strings.Contains(out, "second line") {
		t.Error("error view must show only the first line")
	}
}

func TestRenderSearchEmptyAndCancelled(t *testing.T) {
	for _, content := range []string{"No results found.", "Search cancelled"} {
		out := RenderSearch(SearchView{Details: successDetails(0), Content: content})
		if !strings.Contains(out, content) {
			t.Errorf("out = %q, want %q shown", out, content)
		}
		if strings.Contains(out, "Found") {
			t.Error("zero-result view rendered a success summary")
		}
	}
}

func TestRenderSearchCollapsedSummary(t *testing.T) {
	out := RenderSearch(SearchView{Details: successDetails(7), Content: "body"})
	if !strings.Contains(out, "Found 7 results") || !strings.Contains(out, "(2 queries)") {
		t.Errorf("out = %q", out)
	}
	if strings.Contains(out, "body") {
		t.Error("collapsed view leaked the body")
	}
}

func TestRenderSearchSingularForms(t *testing.T) {
	d := domain.SearchDetails{QueryCount: 1, ResultCount: 1, Queries: []string{"a"}}
	out := RenderSearch(SearchView{Details: d, Content: "body"})
	if !strings.Contains(out, "Found 1 result") || strings.Contains(out, "1 results") {
		t.Errorf("out = %q, want singular result", out)
	}
	if !strings.Contains(out, "(1 query)") {
		t.Errorf("out = %q, want singular query", out)
	}
}

func TestRenderSearchExpandedPreview(t *testing.T) {
	lines := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		lines = append(lines, "line")
	}
	out := RenderSearch(SearchView{
		Details:  successDetails(3),
		Content:  strings.Join(lines, "\n"),
		Expanded: true,
	})
	if !strings.Contains(out, "Found 3 results") {
		t.Errorf("out = %q, want summary line first", out)
	}
	if !strings.Contains(out, "(10 more lines)") {
		t.Errorf("out = %q, want elision marker for lines beyond the preview", out)
	}
	shown := strings.Count(out, "line")
	if shown != 40+1 { // 40 preview lines plus the "more lines" marker
		t.Errorf("rendered %d occurrences, want 41", shown)
	}
}

func TestRenderSearchExpandedShortBody(t *testing.T) {
	out := RenderSearch(SearchView{
		Details:  successDetails(1),
		Content:  "only\nthree\nlines",
		Expanded: true,
	})
	if !strings.Contains(out, "three") {
		t.Errorf("out = %q, want whole body shown", out)
	}
	if strings.Contains(out, "more lines") {
		t.Error("short body must not show an elision marker")
	}
}

func TestSearchCallLabel(t *testing.T) {
	out := SearchCallLabel("find docs", []string{"a", "b"})
	if !strings.Contains(out, "web_search") || !strings.Contains(out, "find docs") {
		t.Errorf("out = %q", out)
	}
	if !strings.Contains(out, "(2 queries)") {
		t.Errorf("out = %q", out)
	}
	single := SearchCallLabel("find docs", []string{"a"})
	if !strings.Contains(single, "(1 query)") {
		t.Errorf("single = %q", single)
	}
}
