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
//              VALUE-DESCRIBING TAGS
//  ######################################################

// ParamTag collects @param annotations into the ordered "params" list of a
// callable member. Every occurrence contributes one entry; occurrence order
// is preserved.
type ParamTag struct {
	base
}

func NewParamTag() *ParamTag {
	return &ParamTag{base{TagDef{
		Pattern:    "param",
		StorageKey: "params",
		Contexts:   []Context{"method", "event"},
		Pos:        PosParams,
		Multiline:  true,
		Schema:     schema.Params(),
	}}}
}

func (t *ParamTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	fields := core.Record{}
	if typ, ok := cur.TakeType(); ok {
		fields["type"] = typ
	}
	name, dflt, optional, ok := cur.TakeName()
	if !ok {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  "missing parameter name",
		}
	}
	fields["name"] = name
	if dflt != "" {
		fields["default"] = dflt
	}
	if optional {
		fields["optional"] = true
	}
	return []*core.Fragment{{
		Key:       t.def.StorageKey,
		Fields:    fields,
		Multiline: true,
		Pos:       pos,
	}}, nil
}

func (t *ParamTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	params := make([]any, 0, len(frags))
	for _, frag := range frags {
		sub := core.Record{}
		for field, v := range frag.Fields {
			sub[field] = v
		}
		if frag.Doc != "" {
			sub["doc"] = frag.Doc
		}
		params = append(params, sub)
	}
	rec["params"] = params
	return nil
}

func (t *ParamTag) RenderHTML(rec core.Record) (string, error) {
	params, ok := rec["params"].([]any)
	if !ok || len(params) == 0 {
		return "", nil
	}
	var out strings.Builder
	out.WriteString("<h3 class=\"pa\">Parameters</h3><ul>")
	for _, p := range params {
		sub, ok := p.(core.Record)
		if !ok {
			continue
		}
		name, _ := sub["name"].(string)
		typ, _ := sub["type"].(string)
		doc, _ := sub["doc"].(string)
		out.WriteString("<li><span class=\"pre\">")
		out.WriteString(html.EscapeString(name))
		out.WriteString("</span>")
		if typ != "" {
			out.WriteString(" : <code>" + html.EscapeString(typ) + "</code>")
		}
		if dflt, ok := sub["default"]; ok {
			out.WriteString(fmt.Sprintf(" (defaults to <code>%s</code>)", html.EscapeString(fmt.Sprintf("%v", dflt))))
		}
		if doc != "" {
			out.WriteString("<div class=\"sub-desc\">" + html.EscapeString(doc) + "</div>")
		}
		out.WriteString("</li>")
	}
	out.WriteString("</ul>")
	return out.String(), nil
}

// ReturnTag documents a method's return value. One @return per comment is
// meaningful; the last occurrence wins.
type ReturnTag struct {
	base
}

func NewReturnTag() *ReturnTag {
	return &ReturnTag{base{TagDef{
		Pattern:    "return",
		StorageKey: "return",
		Contexts:   []Context{"method"},
		Pos:        PosReturn,
		Multiline:  true,
		Schema:     schema.Return(),
	}}}
}

func (t *ReturnTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	typ, ok := cur.TakeType()
	if !ok {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  "missing return type token",
		}
	}
	return []*core.Fragment{{
		Key:       t.def.StorageKey,
		Fields:    core.Record{"type": typ},
		Multiline: true,
		Pos:       pos,
	}}, nil
}

func (t *ReturnTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	sub := core.Record{"type": last.Fields["type"]}
	if last.Doc != "" {
		sub["doc"] = last.Doc
	}
	rec["return"] = sub
	return nil
}

func (t *ReturnTag) RenderHTML(rec core.Record) (string, error) {
	ret, ok := rec["return"].(core.Record)
	if !ok {
		return "", nil
	}
	typ, _ := ret["type"].(string)
	doc, _ := ret["doc"].(string)
	var out strings.Builder
	out.WriteString("<h3 class=\"pa\">Returns</h3><div class=\"return\"><code>")
	out.WriteString(html.EscapeString(typ))
	out.WriteString("</code>")
	if doc != "" {
		out.WriteString("<div class=\"sub-desc\">" + html.EscapeString(doc) + "</div>")
	}
	out.WriteString("</div>")
	return out.String(), nil
}

// TypeTag sets a member's type explicitly, overriding whatever the member
// annotation or the declaration derived. Not rendered on its own; the member
// title line displays it.
type TypeTag struct {
	base
}

func NewTypeTag() *TypeTag {
	return &TypeTag{base{TagDef{
		Pattern:    "type",
		StorageKey: "type",
		Contexts:   []Context{"cfg", "property"},
	}}}
}

func (t *TypeTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	typ, ok := cur.TakeType()
	if !ok {
		typ, ok = cur.TakeWord()
	}
	if !ok {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  "missing type token",
		}
	}
	return []*core.Fragment{{
		Key:    t.def.StorageKey,
		Fields: core.Record{"type": typ},
		Pos:    pos,
	}}, nil
}

func (t *TypeTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	rec["type"] = last.Fields["type"]
	return nil
}

// DefaultTag records a member's default value, from the @default annotation
// or the "defaultValue" declaration property.
type DefaultTag struct {
	base
}

func NewDefaultTag() *DefaultTag {
	return &DefaultTag{base{TagDef{
		Pattern:     "default",
		StorageKey:  "default",
		DeclPattern: "defaultValue",
		Contexts:    []Context{"cfg", "property"},
		Pos:         PosDefault,
	}}}
}

func (t *DefaultTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	value := cur.RestOfLine()
	if value == "" {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  "missing default value",
		}
	}
	return []*core.Fragment{{
		Key:    t.def.StorageKey,
		Fields: core.Record{"default": value},
		Pos:    pos,
	}}, nil
}

func (t *DefaultTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	rec["default"] = last.Fields["default"]
	return nil
}

func (t *DefaultTag) ParseDecl(rec core.Record, expr core.Expr) error {
	rec["default"] = expr.AnyValue()
	return nil
}

// Merge prefers the comment-declared default over the declaration-derived
// one, mirroring ExtendsTag.
func (t *DefaultTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if frag := lastFragment(frags, t.def.StorageKey); frag != nil {
		rec["default"] = frag.Fields["default"]
	}
	return nil
}

func (t *DefaultTag) RenderHTML(rec core.Record) (string, error) {
	return fmt.Sprintf("<div class=\"default\">Defaults to: <code>%s</code></div>",
		html.EscapeString(fmt.Sprintf("%v", rec["default"]))), nil
}
