// Package pipeline wires the processing stages together: comment parsing,
// fragment combination, declaration extraction, merging and ordered
// rendering. Each stage is a method on Pipeline so callers can run the whole
// chain or a prefix of it.
package pipeline

import (
	"errors"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/format"
	"github.com/duckdoc/go-duckdoc/tags"
)

// Pipeline holds the immutable registry and the markup formatter shared by
// all stages. Pipelines are safe for concurrent use.
type Pipeline struct {
	Registry  *tags.Registry
	Formatter format.Formatter
}

// ParsedComment is the outcome of the comment-parse stage: the primary doc
// text that preceded any annotation, plus every fragment in occurrence
// order.
type ParsedComment struct {
	Primary string
	Frags   []*core.Fragment
}

// ParseComment scans one documentation comment. Unknown annotations and
// malformed fragments do not abort the scan; they are reported as positioned
// warnings and the scan resumes at the next annotation marker.
func (p *Pipeline) ParseComment(text string, start core.Position) (*ParsedComment, []core.Warning) {
	var warnings []core.Warning
	cur := comments.NewCursor(text, start)
	parsed := &ParsedComment{Primary: cur.CaptureUntilMarker()}

	for {
		name, pos, ok := cur.NextMarker()
		if !ok {
			break
		}
		tag, known := p.Registry.ByPattern(name)
		if !known {
			warnings = append(warnings, core.Warning{
				Pos: pos,
				Err: &core.UnknownTagError{Pattern: name, Pos: pos},
			})
			cur.SkipAnnotation()
			continue
		}
		parser, ok := tag.(tags.CommentParser)
		if !ok {
			cur.SkipAnnotation()
			continue
		}
		frags, err := parser.ParseComment(cur, pos)
		if err != nil {
			warnings = append(warnings, core.Warning{Pos: pos, Err: err})
			cur.SkipAnnotation()
			continue
		}
		trailing := cur.CaptureUntilMarker()
		if last := lastMultiline(frags); last != nil {
			last.AppendDoc(trailing)
		} else if trailing != "" {
			// Free text after a single-line annotation belongs to
			// the primary doc.
			if parsed.Primary != "" {
				parsed.Primary += "\n\n"
			}
			parsed.Primary += trailing
		}
		parsed.Frags = append(parsed.Frags, frags...)
	}
	return parsed, warnings
}

// ResolveKind decides the record kind of a unit: an explicit kind wins, then
// the first fragment whose tag defines a member kind, then "class".
func (p *Pipeline) ResolveKind(explicit string, frags []*core.Fragment) string {
	if explicit != "" {
		return explicit
	}
	for _, frag := range frags {
		if tag, ok := p.Registry.MemberKindTag(frag.Key); ok {
			if kind := tag.Def().MemberKind; kind != "" {
				return kind
			}
		}
	}
	return string(tags.ContextClass)
}

func lastMultiline(frags []*core.Fragment) *core.Fragment {
	for i := len(frags) - 1; i >= 0; i-- {
		if frags[i].Multiline {
			return frags[i]
		}
	}
	return nil
}

// IgnorableWarning reports whether a warning's error is one of the
// recoverable comment-scan failures.
func IgnorableWarning(w core.Warning) bool {
	var unknown *core.UnknownTagError
	var malformed *core.MalformedFragmentError
	return errors.As(w.Err, &unknown) || errors.As(w.Err, &malformed)
}
