package domain

// SearchDetails is the per-invocation summary attached to a web_search
// ToolResult. It is populated on every outcome branch (success, empty,
// cancelled, provider failure) so renderers can always show what was
// searched without falling back to parsing the content text.
type SearchDetails struct {
	Objective   string   `json:"objective"`
	QueryCount  int      `json:"query_count"`
	ResultCount int      `json:"result_count"`
	Queries     []string `json:"queries"`
}
