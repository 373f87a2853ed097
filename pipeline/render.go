package pipeline

import (
	"sort"
	"strings"

	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/format"
	"github.com/duckdoc/go-duckdoc/tags"
)

// Render assembles the record's HTML page fragment. Participating tags are
// those applicable to the record's kind, carrying a display position and
// whose storage key is present; they render in ascending position order,
// registration order breaking ties. Markup-carrying doc fields are run
// through the formatter once, in place, before their tag renders.
func (p *Pipeline) Render(rec core.Record) (string, error) {
	kind := rec.RecordKind()

	type ranked struct {
		tag   tags.Renderer
		pos   int
		order int
	}
	var active []ranked
	for i, tag := range p.Registry.ApplicableTo(kind) {
		def := tag.Def()
		if def.Pos == tags.PosNone {
			continue
		}
		renderer, ok := tag.(tags.Renderer)
		if !ok {
			continue
		}
		if _, present := rec[def.StorageKey]; !present {
			continue
		}
		active = append(active, ranked{tag: renderer, pos: def.Pos, order: i})
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].pos != active[j].pos {
			return active[i].pos < active[j].pos
		}
		return active[i].order < active[j].order
	})

	var out strings.Builder
	for _, entry := range active {
		def := entry.tag.Def()
		if def.Html {
			field := def.DocTextField()
			if raw, ok := rec[field].(string); ok && raw != "" {
				rec[field] = p.Formatter.Format(raw, format.Context{Kind: kind})
			}
		}
		html, err := entry.tag.RenderHTML(rec)
		if err != nil {
			return "", err
		}
		out.WriteString(html)
	}
	return out.String(), nil
}
