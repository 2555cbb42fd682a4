// Package htmldoc renders merged documents as standalone HTML pages.
package htmldoc

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docmerge/model"
)

const tableStyle = "border-collapse: collapse"
const cellStyle = "border: 1px solid #000000; padding: 2px 4px"

// Render writes doc as an HTML5 page. Headings become h1 and sub-headings
// h2; images with bytes are embedded as data URIs.
func Render(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("htmldoc: nil document")
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	htmlEl.AppendChild(head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	if doc.Metadata.Title != "" {
		title := element(atom.Title)
		title.AppendChild(text(doc.Metadata.Title))
		head.AppendChild(title)
	}

	body := element(atom.Body)
	htmlEl.AppendChild(body)

	for _, n := range doc.Body {
		switch v := n.(type) {
		case *model.Heading:
			body.AppendChild(withText(atom.H1, v.Text))
		case *model.Subheading:
			body.AppendChild(withText(atom.H2, v.Text))
		case *model.Paragraph:
			body.AppendChild(paragraph(v))
		case *model.Table:
			body.AppendChild(table(v))
		default:
			return fmt.Errorf("htmldoc: unsupported node %T", n)
		}
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("htmldoc: rendering: %w", err)
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(a atom.Atom, s string) *html.Node {
	n := element(a)
	n.AppendChild(text(s))
	return n
}

func paragraph(p *model.Paragraph) *html.Node {
	n := element(atom.P)
	for _, r := range p.Runs {
		if r.Text != "" {
			n.AppendChild(run(r))
		}
		for _, img := range r.Images {
			n.AppendChild(image(img))
		}
	}
	return n
}

// run builds the inline content of r, splitting on line breaks and nesting
// the emphasis elements innermost-underline.
func run(r model.Run) *html.Node {
	content := element(atom.Span)
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			content.AppendChild(element(atom.Br))
		}
		if line != "" {
			content.AppendChild(text(line))
		}
	}

	wrap := func(a atom.Atom) {
		outer := element(a)
		outer.AppendChild(content)
		content = outer
	}
	if r.Style.Underline {
		wrap(atom.U)
	}
	if r.Style.Italic {
		wrap(atom.I)
	}
	if r.Style.Bold {
		wrap(atom.B)
	}
	return content
}

func image(img model.ImageRef) *html.Node {
	n := element(atom.Img)
	n.Attr = append(n.Attr, html.Attribute{Key: "alt", Val: img.AltText})
	if len(img.Data) > 0 {
		src := "data:" + img.Format.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		n.Attr = append(n.Attr, html.Attribute{Key: "src", Val: src})
	} else if img.Name != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "src", Val: img.Name})
	}
	if img.Width > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "width", Val: fmt.Sprint(img.Width / model.EMUPerPixel)})
	}
	return n
}

func table(t *model.Table) *html.Node {
	n := element(atom.Table)
	if t.Bordered {
		n.Attr = []html.Attribute{{Key: "style", Val: tableStyle}}
	}
	tbody := element(atom.Tbody)
	n.AppendChild(tbody)

	for _, row := range t.Rows {
		tr := element(atom.Tr)
		for _, cell := range row.Cells {
			td := element(atom.Td)
			if t.Bordered {
				td.Attr = []html.Attribute{{Key: "style", Val: cellStyle}}
			}
			var content *html.Node
			if cell.Bold {
				content = element(atom.B)
				td.AppendChild(content)
			} else {
				content = td
			}
			for i, line := range strings.Split(cell.Text, "\n") {
				if i > 0 {
					content.AppendChild(element(atom.Br))
				}
				if line != "" {
					content.AppendChild(text(line))
				}
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return n
}
