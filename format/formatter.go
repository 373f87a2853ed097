// Package format defines the contract with the lightweight markup-to-HTML
// formatter. The production formatter lives outside this module; the pipeline
// only ever calls Format with a rendering context.
package format

import (
	"html"
	"strings"

	"github.com/duckdoc/go-duckdoc/core"
)

// Context carries the rendering context supplied to the formatter for one
// record's text field.
type Context struct {
	// Pos is the position of the record the text belongs to.
	Pos core.Position
	// Kind is the record's resolved kind ("class" or a member kind).
	Kind string
}

// Formatter turns lightweight doc markup into HTML.
type Formatter interface {
	Format(text string, ctx Context) string
}

// Plain is the default formatter: it escapes HTML metacharacters and wraps
// paragraphs (blank-line separated blocks) in <p> elements. It performs no
// markup interpretation.
type Plain struct{}

func (Plain) Format(text string, _ Context) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	blocks := strings.Split(text, "\n\n")
	var out strings.Builder
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out.WriteString("<p>")
		out.WriteString(html.EscapeString(block))
		out.WriteString("</p>")
	}
	return out.String()
}
