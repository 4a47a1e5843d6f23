package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"golang.org/x/term"

	"seeker/internal/adapter/tool"
	"seeker/internal/adapter/tui/searchui"
	"seeker/internal/domain"
	"seeker/internal/infra/config"
	"seeker/internal/infra/logger"
	"seeker/internal/infra/tracer"
	"seeker/internal/usecase/eventbus"
)

// queryList collects repeated -query flags.
type queryList []string

func (q *queryList) String() string { return strings.Join(*q, ", ") }

func (q *queryList) Set(v string) error {
	*q = append(*q, v)
	return nil
}

type cliFlags struct {
	ConfigPath string
	Objective  string
	Queries    queryList
	MaxResults int
	Expanded   bool
	Plain      bool
}

func parseFlags() cliFlags {
	var flags cliFlags
	flag.StringVar(&flags.ConfigPath, "config", "./config.yaml", "config file path")
	flag.StringVar(&flags.Objective, "objective", "", "natural-language description of what the search should accomplish")
	flag.Var(&flags.Queries, "query", "search query (repeat for multiple, up to 5)")
	flag.IntVar(&flags.MaxResults, "max-results", 0, "maximum results to return (1-20, provider default when 0)")
	flag.BoolVar(&flags.Expanded, "expanded", false, "print the full result body instead of the summary line")
	flag.BoolVar(&flags.Plain, "plain", false, "disable the interactive display, print plain text")
	flag.Parse()
	return flags
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := parseFlags()

	if flags.Objective == "" || len(flags.Queries) == 0 {
		flag.Usage()
		return fmt.Errorf("both -objective and at least one -query are required")
	}

	// 1. Config
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// 2. Logger & tracer
	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser()

	ctx := context.Background()
	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer tracerShutdown(ctx)

	interactive := !flags.Plain && term.IsTerminal(int(os.Stdout.Fd()))

	// Without an API key the search tool is not registered. This is a
	// soft-disable: say so once on an interactive surface and exit clean.
	if cfg.Search.APIKey == "" {
		if interactive {
			fmt.Println("web_search is disabled: set PARALLEL_API_KEY to enable it.")
		}
		log.Info("search tool disabled, no API key configured")
		return nil
	}

	// 3. Event bus
	bus := eventbus.New(log)
	defer bus.Close()

	// 4. Search backend chain
	var backend tool.SearchBackend = tool.NewParallelBackend(
		cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.Timeout, log)
	if cfg.Search.BreakerEnabled {
		backend = tool.NewCircuitBreakerBackend(backend, log)
	}

	var limiter *tool.RateLimiter
	if cfg.Search.RateLimit > 0 {
		limiter = tool.NewRateLimiter(cfg.Search.RateLimit, cfg.Search.RateWindow)
	}

	// 5. Tool registry
	registry := tool.NewRegistry(log)
	if err := registry.Register(tool.NewWebSearchTool(backend, bus, limiter, log)); err != nil {
		return fmt.Errorf("register web_search: %w", err)
	}

	// 6. Graceful cancellation
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = domain.ContextWithSessionID(ctx, ulid.Make().String())
	publishLifecycle(ctx, bus, domain.EventSessionCreated)

	params := map[string]any{
		"objective": flags.Objective,
		"queries":   []string(flags.Queries),
	}
	if flags.MaxResults > 0 {
		params["max_results"] = flags.MaxResults
	}
	args, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}

	searcher, err := registry.Get("web_search")
	if err != nil {
		return fmt.Errorf("lookup web_search: %w", err)
	}

	execute := func(ctx context.Context) *domain.ToolResult {
		publishLifecycle(ctx, bus, domain.EventToolCallStarted)
		result, err := searcher.Execute(ctx, args)
		if err != nil {
			// The middleware converts failures into results; anything
			// escaping it is a boundary problem, not a search outcome.
			result = &domain.ToolResult{IsError: true, Content: "Search failed: " + err.Error()}
		}
		publishLifecycle(ctx, bus, domain.EventToolCallCompleted)
		return result
	}

	if interactive {
		return runInteractive(ctx, bus, flags, execute)
	}
	return runPlain(ctx, execute)
}

func publishLifecycle(ctx context.Context, bus domain.EventBus, eventType domain.EventType) {
	bus.Publish(ctx, domain.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		SessionID: domain.SessionIDFromContext(ctx),
	})
}

// runPlain prints the outcome content verbatim. A failed search is still a
// completed invocation, so the process exits zero either way.
func runPlain(ctx context.Context, execute func(context.Context) *domain.ToolResult) error {
	result := execute(ctx)
	fmt.Println(result.Content)
	return nil
}

func runInteractive(ctx context.Context, bus domain.EventBus, flags cliFlags, execute func(context.Context) *domain.ToolResult) error {
	progressCh := make(chan string, 4)
	unsubscribe := bus.Subscribe(domain.EventToolCallProgress, searchui.ProgressForwarder(progressCh))
	defer unsubscribe()

	model := searchui.New(ctx, flags.Objective, flags.Queries, execute, progressCh)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		// A SIGINT cancels the program context; that is a user abort,
		// not a display failure.
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("display: %w", err)
	}

	// Leave the final render on the scrollback after the program exits.
	if m, ok := final.(searchui.Model); ok {
		if view := m.FinalRender(flags.Expanded); view != "" {
			fmt.Println(view)
		}
	}
	return nil
}
