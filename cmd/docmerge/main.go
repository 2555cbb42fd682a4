package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tsawler/docmerge/internal/config"
	"github.com/tsawler/docmerge/ocr"
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
	// ConfigDir is searched for docmerge.yml when --config is not given.
	ConfigDir string

	// OCR client, open while a merge with alt text runs.
	OCR *ocr.Client
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{ConfigDir: "."}
}

// Close releases the OCR client.
func (m *Main) Close() error {
	if m.OCR != nil {
		err := m.OCR.Close()
		m.OCR = nil
		return err
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
		kong.Name("docmerge"),
		kong.Description("Merge DOCX reports by heading and sub-heading."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docmerge --help' to see available commands")
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

	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	deps.Config = cfg

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if sel := kongCtx.Selected(); sel != nil && sel.Name == "merge" && (cli.Merge.AltText || cfg.AltText) {
		client, err := ocr.New()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: alt text needs Tesseract and a build with -tags ocr")
			return fmt.Errorf("failed to start OCR: %w", err)
		}
		m.OCR = client
		defer m.Close()
		if lang := cfg.Language(cli.Merge.OCRLang); lang != "" {
			if err := client.SetLanguage(lang); err != nil {
				return fmt.Errorf("setting OCR language %q: %w", lang, err)
			}
		}
		deps.Describer = client
	}

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(m.ConfigDir)
}
