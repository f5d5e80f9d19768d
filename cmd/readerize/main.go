package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readerize"
	readerizehttp "github.com/fwojciec/readerize/http"
	"github.com/fwojciec/readerize/rod"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath is the config file read when --config is not given.
	// A missing file is ignored.
	ConfigPath string

	// Services for end-to-end testing. When nil, real implementations are
	// created on demand.
	HTTPFetcher    readerize.Fetcher
	BrowserFetcher readerize.Fetcher
	Sitemaps       readerize.SitemapService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: DefaultConfigPath,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readerize"),
		kong.Description("Extract the readable article from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readerize --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath, required := m.ConfigPath, false
	if cli.Config != "" {
		configPath, required = cli.Config, true
	}
	cfg, err := LoadConfig(configPath, required)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", readerize.ErrorMessage(err))
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		Config:     cfg,
		NewFetcher: m.newFetcher(cfg),
		Sitemaps:   m.Sitemaps,
	}
	if deps.Sitemaps == nil {
		deps.Sitemaps = readerizehttp.NewSitemapService(nil)
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the factory commands use to open fetchers. Fetchers
// set on Main are returned as is.
func (m *Main) newFetcher(cfg Config) func(browser bool, timeout time.Duration) (readerize.Fetcher, error) {
	return func(browser bool, timeout time.Duration) (readerize.Fetcher, error) {
		if browser {
			if m.BrowserFetcher != nil {
				return m.BrowserFetcher, nil
			}
			f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
			if err != nil {
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			return f, nil
		}

		if m.HTTPFetcher != nil {
			return m.HTTPFetcher, nil
		}
		opts := []readerizehttp.Option{readerizehttp.WithTimeout(timeout)}
		if cfg.UserAgent != "" {
			opts = append(opts, readerizehttp.WithUserAgent(cfg.UserAgent))
		}
		return readerizehttp.NewFetcher(opts...), nil
	}
}
