package tags

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
)

//  ######################################################
//              CUSTOM TAG CATALOG
//  ######################################################

// customSpec is one entry of a YAML tag catalog. Only "pattern" is
// mandatory; everything else gets a sensible default.
type customSpec struct {
	Pattern   string   `yaml:"pattern"`
	Key       string   `yaml:"key"`
	Title     string   `yaml:"title"`
	Contexts  []string `yaml:"contexts"`
	Position  int      `yaml:"position"`
	Multiline bool     `yaml:"multiline"`
}

// ParseCustomCatalog reads a YAML catalog of simple documentation tags and
// returns a Tag per entry, in catalog order. A minimal catalog:
//
//	- pattern: author
//	- pattern: license
//	  title: License terms
//	  multiline: true
func ParseCustomCatalog(data []byte) ([]Tag, error) {
	var specs []customSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse custom tag catalog: %w", err)
	}
	out := make([]Tag, 0, len(specs))
	for i, spec := range specs {
		if spec.Pattern == "" {
			return nil, fmt.Errorf("custom tag catalog: entry %d has no pattern", i)
		}
		if spec.Key == "" {
			spec.Key = spec.Pattern
		}
		if spec.Title == "" {
			spec.Title = strings.ToUpper(spec.Pattern[:1]) + spec.Pattern[1:]
		}
		contexts := []Context{ContextClass, AnyMember}
		if len(spec.Contexts) > 0 {
			contexts = make([]Context, len(spec.Contexts))
			for j, c := range spec.Contexts {
				contexts[j] = Context(c)
			}
		}
		pos := spec.Position
		if pos == 0 {
			pos = PosCustom + i
		}
		out = append(out, &CustomTag{
			base: base{TagDef{
				Pattern:    spec.Pattern,
				StorageKey: spec.Key,
				Contexts:   contexts,
				Pos:        pos,
				Multiline:  spec.Multiline,
			}},
			title: spec.Title,
		})
	}
	return out, nil
}

// CustomTag is a catalog-defined tag. It captures free text, joins repeated
// occurrences, and renders a titled block.
type CustomTag struct {
	base
	title string
}

func (t *CustomTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	frag := &core.Fragment{
		Key:       t.def.StorageKey,
		Fields:    core.Record{},
		Multiline: t.def.Multiline,
		Pos:       pos,
	}
	if !t.def.Multiline {
		frag.Doc = cur.RestOfLine()
	}
	return []*core.Fragment{frag}, nil
}

func (t *CustomTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	parts := make([]string, 0, len(frags))
	for _, frag := range frags {
		if frag.Doc != "" {
			parts = append(parts, frag.Doc)
		}
	}
	rec[t.def.StorageKey] = strings.Join(parts, "\n\n")
	return nil
}

func (t *CustomTag) RenderHTML(rec core.Record) (string, error) {
	text, _ := rec[t.def.StorageKey].(string)
	return fmt.Sprintf("<div class=\"custom-%s\"><strong>%s:</strong> %s</div>",
		t.def.Pattern, html.EscapeString(t.title), html.EscapeString(text)), nil
}
