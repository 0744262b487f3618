package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/destiner/carpe"
	"github.com/destiner/carpe/gemini"
	"github.com/destiner/carpe/goquery"
	"github.com/destiner/carpe/htmltomarkdown"
	carpehttp "github.com/destiner/carpe/http"
	"github.com/destiner/carpe/mapreduce"
	"github.com/destiner/carpe/rate"
	"github.com/destiner/carpe/readability"
	"github.com/destiner/carpe/reader"
	"github.com/destiner/carpe/rod"
	carpeslog "github.com/destiner/carpe/slog"
	"github.com/destiner/carpe/sqlite"
	"github.com/destiner/carpe/trafilatura"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService carpe.ArticleService

	// Inference, when set, replaces the provider selected by flags.
	Inference carpe.InferenceService

	// Getenv looks up API keys. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("carpe"),
		kong.Description("Save web articles to read later, with AI summaries and answers"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'carpe --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CARPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	if m.ArticleService == nil {
		m.ArticleService = sqlite.NewArticleService(m.DB)
	}
	deps.DB = m.DB
	deps.Articles = m.ArticleService
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Reader = &reader.Service{Articles: m.ArticleService}

	if cmd == "add" {
		fetcher, err := newFetcher(cli.Add.Static, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		tokenCounter, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Reader.Fetcher = fetcher
		deps.Reader.Extractor = newExtractor(cli.Add.Extractor)
		deps.Reader.Metadata = goquery.NewMetadataExtractor()
		deps.Reader.Tokens = tokenCounter
		deps.Reader.RetryDelays = reader.DefaultRetryDelays()
	}

	if cmd == "summarize" || cmd == "ask" || cmd == "status" {
		registry := prometheus.NewRegistry()
		defer logMetrics(deps.Logger, registry)

		inference := m.Inference
		if inference == nil {
			inference, err = newProvider(ctx, cli.Provider, cli.Model, m.Getenv)
			if err != nil {
				return err
			}
		}
		inference, err = decorateInference(inference, cli.Provider, cli.RPS, registry, deps.Logger)
		if err != nil {
			return err
		}
		deps.Inference = inference

		opts := []mapreduce.Option{mapreduce.WithMapConcurrency(cli.MapConcurrency)}
		deps.Reader.Summarizer = carpeslog.NewLoggingSummarizer(mapreduce.NewSummarizer(inference, opts...), deps.Logger)
		deps.Reader.Answerer = carpeslog.NewLoggingAnswerer(mapreduce.NewAnswerer(inference, opts...), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// hostRPS limits page fetches to one per second per host.
const hostRPS = 1.0

// newFetcher returns the page fetcher: headless Chrome by default, plain
// HTTP when static is set. Both are throttled per host and logged.
func newFetcher(static bool, logger *slog.Logger) (carpe.Fetcher, error) {
	var fetcher carpe.Fetcher
	if static {
		fetcher = carpehttp.NewFetcher()
	} else {
		f, err := rod.NewFetcher(rod.WithAwaiterDecorator(func(next carpe.NavigationAwaiter) carpe.NavigationAwaiter {
			return carpeslog.NewLoggingAwaiter(next, logger)
		}))
		if err != nil {
			return nil, err
		}
		fetcher = f
	}
	return carpeslog.NewLoggingFetcher(rate.NewFetcher(fetcher, hostRPS), logger), nil
}

func newExtractor(name string) carpe.Extractor {
	if name == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

func defaultDBPath() string {
	if path := os.Getenv("CARPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "carpe.db"
	}
	dir := filepath.Join(home, ".carpe")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "carpe.db")
}
