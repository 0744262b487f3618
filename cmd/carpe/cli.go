package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/reader"
	"github.com/destiner/carpe/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Articles  carpe.ArticleService
	Converter carpe.Converter
	Reader    *reader.Service
	Inference carpe.InferenceService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Provider       string  `enum:"gemini,anthropic,openai" default:"gemini" env:"CARPE_PROVIDER" help:"Inference provider (${enum})"`
	Model          string  `env:"CARPE_MODEL" help:"Model name (provider default if empty)"`
	RPS            float64 `name:"rps" default:"1" env:"CARPE_RPS" help:"Inference calls per second (0 for unlimited)"`
	MapConcurrency int     `default:"1" help:"Concurrent per-chunk inference calls"`
	Verbose        bool    `short:"v" help:"Log debug output to stderr"`

	Add       AddCmd       `cmd:"" help:"Save an article by URL"`
	List      ListCmd      `cmd:"" help:"List saved articles"`
	Read      ReadCmd      `cmd:"" help:"Print the reader view of an article"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a saved article"`
	Mark      MarkCmd      `cmd:"" help:"Mark an article read or unread"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize an article"`
	Ask       AskCmd       `cmd:"" help:"Ask a question about an article"`
	Status    StatusCmd    `cmd:"" help:"Show whether AI features are available"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL       string `arg:"" help:"Article URL"`
	Static    bool   `short:"s" help:"Fetch with plain HTTP instead of a headless browser"`
	Extractor string `enum:"trafilatura,readability" default:"trafilatura" help:"Reader view extractor (${enum})"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Unread bool `short:"u" help:"Only show unread articles"`
	Limit  int  `short:"n" default:"0" help:"Maximum number of articles (0 for all)"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	ID       string `arg:"" help:"Article ID"`
	Markdown bool   `short:"m" help:"Render the article as markdown"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}

// MarkCmd is the "mark" subcommand.
type MarkCmd struct {
	ID     string `arg:"" help:"Article ID"`
	Unread bool   `help:"Mark as unread instead of read"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `short:"f" help:"Regenerate even if a current summary is stored"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	ID       string `arg:"" help:"Article ID"`
	Question string `arg:"" help:"Question to ask about the article"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
