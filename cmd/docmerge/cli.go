package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/tsawler/docmerge/internal/config"
	"github.com/tsawler/docmerge/merge"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *config.Config
	Logger    *slog.Logger
	Describer merge.ImageDescriber
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug detail to stderr"`
	Config  string `help:"Config file (default: docmerge.yml in the working directory)" type:"path"`

	Merge   MergeCmd   `cmd:"" help:"Merge documents into one report"`
	Inspect InspectCmd `cmd:"" help:"Show how a document's paragraphs are classified"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Files          []string `arg:"" name:"file" help:"DOCX files, merged in order"`
	Output         string   `short:"o" help:"Output file, - for stdout (default: merged_report with the format's extension)"`
	Format         string   `short:"f" enum:"docx,md,html" default:"docx" help:"Output format (docx, md, html)"`
	FirstCell      bool     `help:"Also require matching first cells to merge tables"`
	ImageWidth     float64  `help:"Image width in inches (default 2)"`
	NoTableSpacing bool     `help:"Do not add a blank paragraph after tables"`
	Emphasis       []string `sep:"," help:"Run flags that mark a sub-heading (bold, italic, underline)"`
	AltText        bool     `help:"Describe images without alt text using OCR"`
	OCRLang        string   `name:"ocr-lang" help:"Tesseract language(s) for --alt-text, e.g. eng+fra"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File     string   `arg:"" help:"DOCX file"`
	Emphasis []string `sep:"," help:"Run flags that mark a sub-heading (bold, italic, underline)"`
}
