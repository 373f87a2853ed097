package pipeline

import (
	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/schema"
)

// Combine groups fragments by storage key, preserving the order of first
// occurrence, and invokes each key's combine owner exactly once with the
// whole group. The primary doc text is seeded into the record first so the
// doc combiner can prepend it. Combined payloads carrying a schema are
// validated; a failing payload is dropped from the record and reported as a
// warning.
func (p *Pipeline) Combine(rec core.Record, parsed *ParsedComment) []core.Warning {
	var warnings []core.Warning
	if parsed.Primary != "" {
		rec.SetMissingValue("doc", parsed.Primary)
	}

	groups := make(map[string][]*core.Fragment)
	var order []string
	for _, frag := range parsed.Frags {
		if _, seen := groups[frag.Key]; !seen {
			order = append(order, frag.Key)
		}
		groups[frag.Key] = append(groups[frag.Key], frag)
	}

	for _, key := range order {
		frags := groups[key]
		owner, ok := p.Registry.CombineOwner(key)
		if !ok {
			continue
		}
		if err := owner.Combine(rec, frags, frags[0].Pos); err != nil {
			warnings = append(warnings, core.Warning{Pos: frags[0].Pos, Err: err})
			continue
		}
		def := owner.Def()
		if def.Schema == nil {
			continue
		}
		payload, present := rec[key]
		if !present {
			continue
		}
		if err := schema.Validate(def.Schema, payload); err != nil {
			warnings = append(warnings, core.Warning{
				Pos: frags[0].Pos,
				Err: &core.MalformedFragmentError{
					Pattern: def.Pattern,
					Pos:     frags[0].Pos,
					Reason:  err.Error(),
				},
			})
			delete(rec, key)
		}
	}
	return warnings
}
