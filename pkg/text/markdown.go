package text

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var (
	htmlTag = regexp.MustCompile(`<[^>]*>`)

	parser = goldmark.New().Parser()
)

// Section is the text following a heading, up to the next heading of any
// level. Text before the first heading forms a section without title.
type Section struct {
	Title string
	Level int

	Text string
}

// Plain renders markdown as plain text, keeping one blank line between
// blocks. Markup, link targets and html tags are dropped.
func Plain(markdown string) string {
	source := []byte(markdown)
	doc := parser.Parse(gmtext.NewReader(source))

	var sb strings.Builder

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		writeBlock(&sb, n, source)
	}

	return Normalize(sb.String())
}

// Sections splits markdown at its top level headings.
func Sections(markdown string) []Section {
	source := []byte(markdown)
	doc := parser.Parse(gmtext.NewReader(source))

	var result []Section
	var current *Section

	var body strings.Builder

	flush := func() {
		if current == nil {
			return
		}

		current.Text = Normalize(body.String())

		if current.Title != "" || current.Text != "" {
			result = append(result, *current)
		}

		body.Reset()
	}

	current = &Section{}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			flush()

			var title strings.Builder
			writeInline(&title, h, source)

			current = &Section{
				Title: Normalize(title.String()),
				Level: h.Level,
			}

			continue
		}

		writeBlock(&body, n, source)
	}

	flush()

	return result
}

func writeBlock(sb *strings.Builder, n ast.Node, source []byte) {
	switch n := n.(type) {
	case *ast.ThematicBreak:
		return

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		writeLines(sb, n.Lines(), source)

	case *ast.HTMLBlock:
		var raw strings.Builder
		writeLines(&raw, n.Lines(), source)

		if n.HasClosure() {
			raw.Write(n.ClosureLine.Value(source))
		}

		sb.WriteString(stripTags(raw.String()))

	case *ast.List, *ast.ListItem, *ast.Blockquote, *ast.Document:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeBlock(sb, c, source)
		}

		return

	default:
		writeInline(sb, n, source)
	}

	sb.WriteString("\n\n")
}

func writeInline(sb *strings.Builder, n ast.Node, source []byte) {
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := n.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(source))

			if n.HardLineBreak() {
				sb.WriteString("\n")
			} else if n.SoftLineBreak() {
				sb.WriteString(" ")
			}

		case *ast.String:
			sb.Write(n.Value)

		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					sb.Write(t.Segment.Value(source))
				}
			}

			return ast.WalkSkipChildren, nil

		case *ast.AutoLink:
			sb.Write(n.URL(source))

		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
}

func writeLines(sb *strings.Builder, lines *gmtext.Segments, source []byte) {
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
}

func stripTags(s string) string {
	return htmlTag.ReplaceAllString(s, " ")
}
