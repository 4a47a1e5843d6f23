// Package searchui implements a small Bubble Tea program that runs one
// web search invocation interactively: a spinner with the live progress
// line while the call is in flight, then the rendered outcome with an
// expand/collapse toggle.
package searchui

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"seeker/internal/adapter/tui/components"
	"seeker/internal/adapter/tui/theme"
	"seeker/internal/domain"
)

// resultMsg carries the finished tool result into the update loop.
type resultMsg struct {
	result *domain.ToolResult
}

// progressMsg carries one tool progress notification.
type progressMsg struct {
	message string
}

// Model is the Bubble Tea model for a single search invocation.
type Model struct {
	objective string
	queries   []string

	run        func(ctx context.Context) *domain.ToolResult
	ctx        context.Context
	cancel     context.CancelFunc
	progressCh chan string

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	outcome  *domain.ToolResult
	details  domain.SearchDetails
	progress string
	expanded bool
}

// New creates a model that will invoke run once and render its outcome.
// The run context derives from parent, so cancelling parent (or quitting
// the program) cancels an in-flight search. progressCh receives tool
// progress notifications bridged from the event bus.
func New(parent context.Context, objective string, queries []string, run func(ctx context.Context) *domain.ToolResult, progressCh chan string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.TextInfo

	ctx, cancel := context.WithCancel(parent)
	return Model{
		objective:  objective,
		queries:    queries,
		run:        run,
		ctx:        ctx,
		cancel:     cancel,
		progressCh: progressCh,
		spinner:    sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSearch(), m.waitProgress())
}

func (m Model) startSearch() tea.Cmd {
	return func() tea.Msg {
		return resultMsg{result: m.run(m.ctx)}
	}
}

func (m Model) waitProgress() tea.Cmd {
	if m.progressCh == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-m.progressCh
		if !ok {
			return nil
		}
		return progressMsg{message: msg}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-3, 3))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-3, 3)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			return m, tea.Quit
		case "enter", " ":
			if m.outcome != nil {
				m.expanded = !m.expanded
				m.refresh()
			}
			return m, nil
		}

	case progressMsg:
		m.progress = msg.message
		return m, m.waitProgress()

	case resultMsg:
		m.outcome = msg.result
		if d, ok := msg.result.Details.(domain.SearchDetails); ok {
			m.details = d
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.outcome == nil {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refresh recomputes the viewport content from the stored outcome and the
// current display flags. Rendering is a pure projection; the outcome is
// never re-derived.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(components.RenderSearch(components.SearchView{
		Details:  m.details,
		Content:  contentOf(m.outcome),
		IsError:  m.outcome != nil && m.outcome.IsError,
		Partial:  m.outcome == nil,
		Expanded: m.expanded,
	}))
}

func (m Model) View() string {
	header := components.SearchCallLabel(m.objective, m.queries)

	if m.outcome == nil {
		body := m.spinner.View() + " " + theme.Dim.Render("Searching"+theme.SymbolEllipsis)
		if m.progress != "" {
			body += "\n" + theme.TextMuted.Render(m.progress)
		}
		return header + "\n" + body + "\n"
	}

	hint := theme.Dim.Render("enter: expand/collapse " + theme.SymbolBullet + " q: quit")
	if m.ready {
		return header + "\n" + m.viewport.View() + "\n" + hint
	}
	return header + "\n" + components.RenderSearch(components.SearchView{
		Details:  m.details,
		Content:  contentOf(m.outcome),
		IsError:  m.outcome.IsError,
		Expanded: m.expanded,
	}) + "\n" + hint
}

// FinalRender returns the rendered outcome for printing to the scrollback
// after the program exits, or "" if the search never finished.
func (m Model) FinalRender(expanded bool) string {
	if m.outcome == nil {
		return ""
	}
	return components.SearchCallLabel(m.objective, m.queries) + "\n" +
		components.RenderSearch(components.SearchView{
			Details:  m.details,
			Content:  m.outcome.Content,
			IsError:  m.outcome.IsError,
			Expanded: expanded || m.expanded,
		})
}

// ProgressForwarder returns an event handler that bridges bus progress
// events into the channel consumed by the model.
func ProgressForwarder(ch chan string) domain.EventHandler {
	return func(_ context.Context, event domain.Event) {
		var payload domain.ToolProgressPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return
		}
		select {
		case ch <- payload.Message:
		default:
		}
	}
}

func contentOf(r *domain.ToolResult) string {
	if r == nil {
		return ""
	}
	return r.Content
}
