package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/detect"
	"github.com/fwojciec/pagewatch/difflib"
	"github.com/fwojciec/pagewatch/etree"
	"github.com/fwojciec/pagewatch/goquery"
	"github.com/fwojciec/pagewatch/htmltext"
	"github.com/fwojciec/pagewatch/jsonpath"
	"github.com/fwojciec/pagewatch/pdftohtml"
	pwslog "github.com/fwojciec/pagewatch/slog"
	"github.com/fwojciec/pagewatch/sqlite"
	"github.com/fwojciec/pagewatch/xpath"
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
	// Database path. Set before calling Run().
	DBPath string

	// Converter binary for PDF documents. Set before calling Run().
	PDFTool string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	WatchStateService pagewatch.WatchStateService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		PDFTool: os.Getenv("PDF_TO_HTML_TOOL"),
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
		kong.Name("pagewatch"),
		kong.Description("Detect meaningful changes in fetched web content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagewatch --help' to see available commands")
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

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.WatchStateService = sqlite.NewWatchStateService(m.DB)
	deps.States = m.WatchStateService

	deps.Detector = pwslog.NewLoggingDetector(newDetector(m.PDFTool, logger), logger)

	return kongCtx.Run(deps)
}

// newDetector wires the pipeline with its production capabilities.
func newDetector(pdfTool string, logger *slog.Logger) *detect.Detector {
	css := goquery.NewSelector()
	renderer := htmltext.NewRenderer()
	converter := pdftohtml.NewConverter(pdftohtml.WithTool(pdfTool))

	return &detect.Detector{
		CSS:       css,
		XPath:     xpath.NewSelector(),
		JSON:      jsonpath.NewQuerier(),
		Titles:    css,
		Renderer:  renderer,
		Feeds:     etree.NewFeedNormalizer(renderer),
		Differ:    difflib.NewDiffer(),
		Converter: pwslog.NewLoggingConverter(converter, logger),
	}
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEWATCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagewatch.db"
	}
	dir := filepath.Join(home, ".pagewatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagewatch.db")
}
