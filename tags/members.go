package tags

import (
	"fmt"
	"html"
	"strings"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/schema"
)

//  ######################################################
//              MEMBER-DEFINING TAGS
//  ######################################################

// memberTag is the shared implementation behind @cfg, @property, @method and
// @event. Each defines a member category: a comment carrying one resolves to
// a record of that kind. The annotation shape is
//
//	@cfg {Type} [name=default] Documentation...
//
// with the type, the name and the bracketed default each optional at parse
// time; merge insists on a name from either source.
type memberTag struct {
	base
}

func newMemberTag(kind string) *memberTag {
	return &memberTag{base{TagDef{
		Pattern:    kind,
		StorageKey: kind,
		MemberKind: kind,
		Contexts:   []Context{Context(kind)},
		Pos:        PosSignature,
		Multiline:  true,
		Schema:     schema.Member(),
	}}}
}

// NewCfgTag defines the "cfg" member kind (configuration options).
func NewCfgTag() Tag { return newMemberTag("cfg") }

// NewPropertyTag defines the "property" member kind.
func NewPropertyTag() Tag { return newMemberTag("property") }

// NewMethodTag defines the "method" member kind.
func NewMethodTag() Tag { return newMemberTag("method") }

// NewEventTag defines the "event" member kind.
func NewEventTag() Tag { return newMemberTag("event") }

func (t *memberTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	fields := core.Record{}
	if typ, ok := cur.TakeType(); ok {
		fields["type"] = typ
	}
	if name, dflt, optional, ok := cur.TakeName(); ok {
		fields["name"] = name
		if dflt != "" {
			fields["default"] = dflt
		}
		if optional {
			fields["optional"] = true
		}
	}
	return []*core.Fragment{{
		Key:       t.def.StorageKey,
		Fields:    fields,
		Multiline: true,
		Pos:       pos,
	}}, nil
}

// Combine stores the member payload under the tag's storage key and hoists
// the interpreted fields onto the record itself. When several annotations
// share the key the last one wins; earlier ones carry no extra meaning.
func (t *memberTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	sub := core.Record{}
	for _, field := range []string{"name", "type", "default", "optional"} {
		if v, ok := last.Fields[field]; ok {
			sub[field] = v
		}
	}
	if last.Doc != "" {
		sub["doc"] = last.Doc
	}
	rec[t.def.StorageKey] = sub
	for field, v := range sub {
		if field == "doc" {
			rec.SetMissingValue("doc", v)
			continue
		}
		rec.SetMissingValue(field, v)
	}
	return nil
}

// Merge reconciles the comment-declared member with the declaration-derived
// facts: the comment name wins when both exist, a missing name is an
// inconsistency, and method/event records get their combined signature
// derived from the merged parameter and return fields.
func (t *memberTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if frag := lastFragment(frags, t.def.StorageKey); frag != nil {
		if name, ok := frag.Fields["name"].(string); ok && name != "" {
			rec["name"] = name
		}
	}
	name, _ := rec["name"].(string)
	if name == "" {
		return &core.MergeError{
			Pattern: t.def.Pattern,
			Kind:    rec.RecordKind(),
			Reason:  "member has no name from either comment or declaration",
		}
	}
	if t.def.MemberKind == "method" || t.def.MemberKind == "event" {
		rec["signature"] = buildCallSignature(rec, name)
	}
	return nil
}

// RenderHTML emits the member title line: type and name for value members,
// the derived call signature for callable ones, plus any signature badges
// merged onto the record.
func (t *memberTag) RenderHTML(rec core.Record) (string, error) {
	var title string
	if sig, ok := rec["signature"].(string); ok && sig != "" {
		title = html.EscapeString(sig)
	} else {
		typ, _ := rec["type"].(string)
		name, _ := rec["name"].(string)
		if typ != "" {
			title = fmt.Sprintf("<span class=\"type\">%s</span> <span class=\"name\">%s</span>",
				html.EscapeString(typ), html.EscapeString(name))
		} else {
			title = fmt.Sprintf("<span class=\"name\">%s</span>", html.EscapeString(name))
		}
	}
	return fmt.Sprintf("<div class=\"title %s\">%s%s</div>", t.def.MemberKind, title, renderBadges(rec)), nil
}

// buildCallSignature derives "name( a, b ) : Type" from the merged params
// and return fields.
func buildCallSignature(rec core.Record, name string) string {
	var names []string
	if params, ok := rec["params"].([]any); ok {
		for _, p := range params {
			if sub, ok := p.(core.Record); ok {
				if pname, ok := sub["name"].(string); ok {
					names = append(names, pname)
				}
			}
		}
	}
	sig := fmt.Sprintf("%s( %s )", name, strings.Join(names, ", "))
	if ret, ok := rec["return"].(core.Record); ok {
		if typ, ok := ret["type"].(string); ok && typ != "" {
			sig += " : " + typ
		}
	}
	return sig
}

// renderBadges renders the signature badges accumulated under "signatures".
func renderBadges(rec core.Record) string {
	badges, ok := rec["signatures"].([]any)
	if !ok || len(badges) == 0 {
		return ""
	}
	var out strings.Builder
	for _, b := range badges {
		sig, ok := b.(core.Record)
		if !ok {
			continue
		}
		short, _ := sig["short"].(string)
		tooltip, _ := sig["tooltip"].(string)
		out.WriteString(fmt.Sprintf("<span class=\"signature\" title=\"%s\">%s</span>",
			html.EscapeString(tooltip), html.EscapeString(short)))
	}
	return out.String()
}
