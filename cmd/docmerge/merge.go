package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tsawler/docmerge"
	"github.com/tsawler/docmerge/format"
)

// defaultOutputName is the output file name without extension.
const defaultOutputName = "merged_report"

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
	out, err := format.Parse(c.Format)
	if err != nil {
		return err
	}

	m := c.merger(deps)

	var buf bytes.Buffer
	var warnings []docmerge.Warning
	switch out {
	case format.Markdown:
		var md string
		md, warnings, err = m.ToMarkdown()
		buf.WriteString(md)
	case format.HTML:
		warnings, err = m.ToHTML(&buf)
	default:
		warnings, err = m.WriteDOCX(&buf)
	}
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	path := c.Output
	if path == "" {
		path = defaultOutputName + out.Extension()
	}
	if path == "-" {
		_, err := deps.Stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(deps.Stdout, "Merged %d documents into %s\n", len(c.Files), path)
	return nil
}

// merger applies the config file first and then the flags, so flags win.
func (c *MergeCmd) merger(deps *Dependencies) *docmerge.Merger {
	cfg := deps.Config
	m := docmerge.Open(c.Files...).WithLogger(deps.Logger)

	if c.FirstCell || cfg.IncludeFirstCell {
		m = m.IncludeFirstCell()
	}

	switch {
	case c.ImageWidth > 0:
		m = m.ImageWidth(c.ImageWidth)
	case cfg.ImageWidthInches > 0:
		m = m.ImageWidth(cfg.ImageWidthInches)
	}

	switch {
	case c.Emphasis != nil:
		m = m.SubheadingEmphasis(c.Emphasis...)
	case cfg.SubheadingEmphasis != nil:
		m = m.SubheadingEmphasis(cfg.SubheadingEmphasis...)
	}

	if c.NoTableSpacing || !cfg.Spacing() {
		m = m.NoTableSpacing()
	}

	if deps.Describer != nil {
		m = m.WithDescriber(deps.Describer)
	}
	return m
}
