package browser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document's table of contents.
type Heading struct {
	Level int
	Text  string
	Slug  string
}

// Link is a hyperlink found in a document, numbered from 1 in document
// order.
type Link struct {
	Index int
	Text  string
	URL   string
}

// Outline indexes the headings, named anchors and links of a Markdown
// document. Each anchor maps to the text used to find it in rendered output.
type Outline struct {
	headings []Heading
	targets  map[string]string
	links    []Link
}

var outlineParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseOutline parses source and collects its headings with GitHub style
// slugs, any id or name attributes in embedded HTML, and its links.
func ParseOutline(source string) *Outline {
	src := []byte(source)
	doc := outlineParser.Parser().Parse(text.NewReader(src))

	o := &Outline{targets: make(map[string]string)}
	slugs := make(map[string]int)
	var pending []string // HTML anchors waiting for the next heading's text
	var inHeading string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Heading:
			if !entering {
				inHeading = ""
				return ast.WalkContinue, nil
			}
			title := strings.TrimSpace(inlineText(node, src))
			h := Heading{Level: node.Level, Text: title, Slug: uniqueSlug(slugs, title)}
			o.headings = append(o.headings, h)
			o.add(h.Slug, title)
			for _, name := range pending {
				o.add(name, title)
			}
			pending = nil
			inHeading = title
		case *ast.HTMLBlock:
			if entering {
				var buf bytes.Buffer
				writeSegments(&buf, node.Lines(), src)
				if node.HasClosure() {
					buf.Write(node.ClosureLine.Value(src))
				}
				pending = o.addHTML(buf.String(), inHeading, pending)
			}
		case *ast.RawHTML:
			if entering {
				var buf bytes.Buffer
				writeSegments(&buf, node.Segments, src)
				pending = o.addHTML(buf.String(), inHeading, pending)
			}
		case *ast.Link:
			if entering {
				o.addLink(strings.TrimSpace(inlineText(node, src)), string(node.Destination))
			}
		case *ast.AutoLink:
			if entering {
				o.addLink(string(node.Label(src)), string(node.URL(src)))
			}
		}
		return ast.WalkContinue, nil
	})

	return o
}

// Headings returns the document's headings in order.
func (o *Outline) Headings() []Heading {
	return o.headings
}

// Title returns the text of the first level 1 heading, or "".
func (o *Outline) Title() string {
	for _, h := range o.headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Has reports whether the document defines the anchor name.
func (o *Outline) Has(name string) bool {
	_, ok := o.targets[name]
	return ok
}

// Text returns the text that marks the anchor in rendered output.
func (o *Outline) Text(name string) (string, bool) {
	t, ok := o.targets[name]
	return t, ok
}

// Links returns the document's links in order.
func (o *Outline) Links() []Link {
	return o.links
}

// Link returns the link numbered index.
func (o *Outline) Link(index int) (Link, bool) {
	if index < 1 || index > len(o.links) {
		return Link{}, false
	}
	return o.links[index-1], true
}

func (o *Outline) addLink(label, dest string) {
	if dest == "" {
		return
	}
	if label == "" {
		label = dest
	}
	o.links = append(o.links, Link{Index: len(o.links) + 1, Text: label, URL: dest})
}

func (o *Outline) add(name, label string) {
	if name == "" {
		return
	}
	if _, exists := o.targets[name]; !exists {
		o.targets[name] = label
	}
}

// addHTML records id and name attributes in fragment. Anchors without text
// of their own take the enclosing heading's text, or are returned as pending
// for the next heading.
func (o *Outline) addHTML(fragment, heading string, pending []string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return pending
	}
	doc.Find("[id], a[name]").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label == "" {
			label = heading
		}
		for _, attr := range []string{"id", "name"} {
			name, ok := s.Attr(attr)
			if !ok || name == "" {
				continue
			}
			if label == "" {
				pending = append(pending, name)
				continue
			}
			o.add(name, label)
		}
	})
	return pending
}

// LineOf returns the first line of rendered output containing label once
// ANSI escapes are removed, or -1.
func LineOf(rendered, label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return -1
	}
	for i, line := range strings.Split(ansi.Strip(rendered), "\n") {
		if strings.Contains(line, label) {
			return i
		}
	}
	return -1
}

// FindLine returns the first line after from whose text contains query,
// ignoring case and wrapping past the end, or -1.
func FindLine(rendered, query string, from int) int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return -1
	}
	lines := strings.Split(ansi.Strip(rendered), "\n")
	for step := 1; step <= len(lines); step++ {
		i := (max(from, -1) + step) % len(lines)
		if strings.Contains(strings.ToLower(lines[i]), query) {
			return i
		}
	}
	return -1
}

// Slug converts heading text into a GitHub style anchor name.
func Slug(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

func uniqueSlug(seen map[string]int, title string) string {
	slug := Slug(title)
	n := seen[slug]
	seen[slug] = n + 1
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.RawHTML:
		default:
			sb.WriteString(inlineText(c, src))
		}
	}
	return sb.String()
}

func writeSegments(buf *bytes.Buffer, segs *text.Segments, src []byte) {
	if segs == nil {
		return
	}
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(src))
	}
}
