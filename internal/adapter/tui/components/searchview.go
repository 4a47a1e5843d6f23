package components

import (
	"fmt"
	"strings"

	"seeker/internal/adapter/tui/theme"
	"seeker/internal/domain"
)

// previewLines caps how much of the stored body the expanded view reveals.
// Expansion only reveals more of the already-produced, already-truncated
// text; it never reformats or re-fetches.
const previewLines = 40

// SearchView is the display input for one web_search invocation: the stored
// outcome plus display flags. Rendering is a pure function of this value,
// recomputed on every render request.
type SearchView struct {
	Details  domain.SearchDetails
	Content  string
	IsError  bool
	Partial  bool
	Expanded bool
}

// SearchCallLabel renders a compact call-site label from the input
// parameters only, with no dependency on the outcome.
func SearchCallLabel(objective string, queries []string) string {
	noun := "queries"
	if len(queries) == 1 {
		noun = "query"
	}
	return theme.Bold.Render("web_search") + " " +
		theme.TextAccent.Render(objective) + " " +
		theme.TextMuted.Render(fmt.Sprintf("(%d %s)", len(queries), noun))
}

// RenderSearch renders one invocation. The states are mutually exclusive and
// checked in precedence order: partial, error, empty, success
// (collapsed or expanded).
func RenderSearch(v SearchView) string {
	switch {
	case v.Partial:
		return theme.TextInfo.Render(theme.SymbolSpinner) + " " + theme.Dim.Render("Searching"+theme.SymbolEllipsis)
	case v.IsError:
		return theme.TextError.Render(theme.SymbolError) + " " + theme.TextError.Render(firstLine(v.Content))
	case v.Details.ResultCount == 0:
		// Covers both the empty and cancelled outcomes; the stored content
		// says which.
		return theme.TextMuted.Render(theme.SymbolInfo) + " " + theme.TextMuted.Render(firstLine(v.Content))
	case v.Expanded:
		return summaryLine(v.Details) + "\n" + renderPreview(v.Content)
	default:
		return summaryLine(v.Details)
	}
}

// summaryLine is the one-line collapsed success summary.
func summaryLine(d domain.SearchDetails) string {
	queryNoun := "queries"
	if d.QueryCount == 1 {
		queryNoun = "query"
	}
	resultNoun := "results"
	if d.ResultCount == 1 {
		resultNoun = "result"
	}
	return theme.TextSuccess.Render(theme.SymbolSuccess) + " " +
		theme.TextSuccess.Render(fmt.Sprintf("Found %d %s", d.ResultCount, resultNoun)) + " " +
		theme.TextMuted.Render(fmt.Sprintf("(%d %s)", d.QueryCount, queryNoun))
}

// renderPreview styles the first previewLines lines of the stored body and
// marks elided lines with an ellipsis.
func renderPreview(content string) string {
	lines := strings.Split(content, "\n")
	shown := lines
	if len(lines) > previewLines {
		shown = lines[:previewLines]
	}

	var sb strings.Builder
	for _, line := range shown {
		sb.WriteString("  " + theme.TextMuted.Render(line) + "\n")
	}
	if len(lines) > previewLines {
		sb.WriteString("  " + theme.Dim.Render(fmt.Sprintf("%s (%d more lines)", theme.SymbolEllipsis, len(lines)-previewLines)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
