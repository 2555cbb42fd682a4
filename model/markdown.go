package model

import (
	"fmt"
	"strings"
)

// ToMarkdown renders the document body as Markdown. Headings become level-1
// and sub-headings level-2 ATX headings; images are written as references to
// their media name since Markdown cannot embed the bytes.
func (d *Document) ToMarkdown() string {
	var sb strings.Builder
	image := 0

	for _, n := range d.Body {
		switch v := n.(type) {
		case *Heading:
			sb.WriteString("# ")
			sb.WriteString(v.Text)
			sb.WriteString("\n\n")
		case *Subheading:
			sb.WriteString("## ")
			sb.WriteString(v.Text)
			sb.WriteString("\n\n")
		case *Paragraph:
			text := paragraphMarkdown(v, &image)
			if strings.TrimSpace(text) == "" {
				continue
			}
			sb.WriteString(text)
			sb.WriteString("\n\n")
		case *Table:
			if md := v.ToMarkdown(); md != "" {
				sb.WriteString(md)
				sb.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func paragraphMarkdown(p *Paragraph, image *int) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(runMarkdown(r))
		for _, img := range r.Images {
			*image++
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("image%d%s", *image, img.Format.Extension())
			}
			fmt.Fprintf(&sb, "![%s](%s)", img.AltText, name)
		}
	}
	return sb.String()
}

// runMarkdown wraps the run text in emphasis markers. Surrounding whitespace
// stays outside the markers so the output remains valid Markdown.
func runMarkdown(r Run) string {
	trimmed := strings.TrimSpace(r.Text)
	if trimmed == "" || !r.Style.Any() {
		return r.Text
	}
	lead := r.Text[:strings.Index(r.Text, trimmed)]
	trail := r.Text[len(lead)+len(trimmed):]

	text := trimmed
	if r.Style.Underline {
		text = "<u>" + text + "</u>"
	}
	if r.Style.Italic {
		text = "*" + text + "*"
	}
	if r.Style.Bold {
		text = "**" + text + "**"
	}
	return lead + text + trail
}
