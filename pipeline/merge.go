package pipeline

import (
	"errors"

	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/tags"
)

// Merge reconciles the comment-derived record with the declaration facts.
// The kind is fixed first so every merge routine sees it. Declaration facts
// are folded in wholesale; tag merge routines then run in registration order
// and re-assert comment intent wherever the comment wins. A merge failure
// does not abort the remaining routines; it marks the record incomplete.
func (p *Pipeline) Merge(rec core.Record, kind string, parsed *ParsedComment, facts core.Record) (bool, []core.Warning) {
	rec[core.KindKey] = kind
	for key, value := range facts {
		rec[key] = value
	}

	groups := make(map[string][]*core.Fragment)
	for _, frag := range parsed.Frags {
		groups[frag.Key] = append(groups[frag.Key], frag)
	}

	incomplete := false
	var warnings []core.Warning
	for _, tag := range p.Registry.ApplicableTo(kind) {
		merger, ok := tag.(tags.Merger)
		if !ok {
			continue
		}
		frags := groups[tag.Def().StorageKey]
		if err := merger.Merge(rec, frags, facts); err != nil {
			var mergeErr *core.MergeError
			if errors.As(err, &mergeErr) && mergeErr.Pos == (core.Position{}) {
				mergeErr.Pos = mergePos(frags, parsed)
			}
			warnings = append(warnings, core.Warning{Pos: mergePos(frags, parsed), Err: err})
			incomplete = true
		}
	}
	return incomplete, warnings
}

// mergePos picks the most specific position available for a merge failure:
// the failing tag's first fragment, else the comment's first fragment.
func mergePos(frags []*core.Fragment, parsed *ParsedComment) core.Position {
	if len(frags) > 0 {
		return frags[0].Pos
	}
	if len(parsed.Frags) > 0 {
		return parsed.Frags[0].Pos
	}
	return core.Position{}
}
