package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cdunford/claimharvest/fs"
	"github.com/cdunford/claimharvest/goquery"
	"github.com/cdunford/claimharvest/harvest"
	"github.com/cdunford/claimharvest/htmltomarkdown"
	chhttp "github.com/cdunford/claimharvest/http"
	"github.com/cdunford/claimharvest/readability"
	chslog "github.com/cdunford/claimharvest/slog"
	"github.com/cdunford/claimharvest/trafilatura"
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
	// Data directory holding run output. Set before calling Run().
	DataDir string

	// SQLite database path used by the index command.
	DBPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dataDir := defaultDataDir()
	return &Main{
		DataDir: dataDir,
		DBPath:  defaultDBPath(dataDir),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		DBPath: m.DBPath,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("claimharvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'claimharvest --help' to see available commands")
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

	if cli.Data != "" {
		m.DataDir = cli.Data
		deps.DBPath = defaultDBPath(cli.Data)
	}
	date := cli.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	deps.SeedURL = "https://" + cli.Site + "/"
	deps.Run = fs.NewRunDir(m.DataDir, date)
	if err := deps.Run.Ensure(); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps.Harvester = &harvest.Harvester{
		Site:        cli.Site,
		Fetcher:     chslog.NewLoggingFetcher(chhttp.NewFetcher(), logger),
		Sitemaps:    chslog.NewLoggingSitemapService(chhttp.NewSitemapService(nil), logger),
		Parser:      chslog.NewLoggingParser(goquery.NewParser(cli.Brand), logger),
		Extractor:   trafilatura.NewExtractor(),
		Fallback:    readability.NewExtractor(),
		Converter:   htmltomarkdown.NewConverter(),
		Snapshots:   deps.Run,
		Pages:       fs.NewPageStore(deps.Run.ParsedDir()),
		RateLimiter: harvest.NewDomainLimiter(cli.RPS),
		Concurrency: cli.Concurrency,
	}

	return kongCtx.Run(deps)
}

func defaultDataDir() string {
	if dir := os.Getenv("CLAIMHARVEST_DATA"); dir != "" {
		return dir
	}
	return "data"
}

func defaultDBPath(dataDir string) string {
	if path := os.Getenv("CLAIMHARVEST_DB"); path != "" {
		return path
	}
	return filepath.Join(dataDir, "claimharvest.db")
}
