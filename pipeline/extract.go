package pipeline

import (
	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/tags"
)

// ExtractDecl reads structural facts out of a declaration literal. For each
// declaration-aware tag applicable to the record's kind, in registration
// order: a present property is interpreted by the tag's declaration routine;
// an absent one falls back to the tag's declaration default, when it has
// one. Facts are written into the returned record only, never into the
// comment-derived one; reconciliation is the merge stage's job.
func (p *Pipeline) ExtractDecl(decl core.ConfigLiteral, kind string) (core.Record, []core.Warning) {
	facts := core.Record{}
	var warnings []core.Warning
	if decl == nil {
		decl = core.ConfigLiteral{}
	}
	for _, tag := range p.Registry.DeclTags() {
		def := tag.Def()
		if !def.AppliesTo(kind) {
			continue
		}
		expr, present := decl[def.DeclPattern]
		if present && def.DeclPattern != "" {
			parser, ok := tag.(tags.DeclParser)
			if !ok {
				continue
			}
			if err := parser.ParseDecl(facts, expr); err != nil {
				warnings = append(warnings, core.Warning{Pos: expr.Pos, Err: err})
			}
			continue
		}
		if def.DeclDefault != nil {
			facts.SetMissingValue(def.DeclDefault.Key, def.DeclDefault.Value)
		}
	}
	return facts, warnings
}
