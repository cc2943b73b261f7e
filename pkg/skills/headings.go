package skills

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jingkaihe/skillcheck/pkg/frontmatter"
)

type heading struct {
	level int
	text  string
}

// CheckHeadings is the markdown-aware counterpart of CheckSections: a marker
// such as "## Examples" is only satisfied by a real level-2 heading whose text
// starts with "Examples". Markers in code fences, quotes or inline text do not
// count. The frontmatter header is skipped before parsing.
func CheckHeadings(content string, required []string) []string {
	found := collectHeadings(frontmatter.Body(content))

	var warnings []string
	for _, section := range required {
		want := parseMarker(section)
		if !hasHeading(found, want) {
			warnings = append(warnings, missingSection(section))
		}
	}
	return warnings
}

func parseMarker(marker string) heading {
	trimmed := strings.TrimLeft(marker, "#")
	return heading{
		level: len(marker) - len(trimmed),
		text:  strings.TrimSpace(trimmed),
	}
}

func hasHeading(found []heading, want heading) bool {
	for _, h := range found {
		if want.level > 0 && h.level != want.level {
			continue
		}
		if strings.HasPrefix(h.text, want.text) {
			return true
		}
	}
	return false
}

func collectHeadings(body string) []heading {
	source := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		// blockquote content is quoted text, not document structure
		if n.Kind() == ast.KindBlockquote {
			return ast.WalkSkipChildren, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, heading{
				level: h.Level,
				text:  strings.TrimSpace(inlineText(h, source)),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return headings
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}
