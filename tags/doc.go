package tags

import (
	"fmt"
	"strings"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
)

// DocTag handles the record's primary free-text documentation. Text before
// the first annotation marker lands under its storage key; an explicit @doc
// annotation does the same. Its merge routine supplies the baseline fields
// every record carries.
type DocTag struct {
	base
}

func NewDocTag() *DocTag {
	return &DocTag{base{TagDef{
		Pattern:    "doc",
		StorageKey: "doc",
		Contexts:   []Context{ContextClass, AnyMember},
		Pos:        PosDoc,
		Html:       true,
		Multiline:  true,
	}}}
}

func (t *DocTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	return []*core.Fragment{{Key: t.def.StorageKey, Fields: core.Record{}, Multiline: true, Pos: pos}}, nil
}

func (t *DocTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	var parts []string
	for _, frag := range frags {
		if frag.Doc != "" {
			parts = append(parts, frag.Doc)
		}
	}
	if existing, ok := rec["doc"].(string); ok && existing != "" {
		parts = append([]string{existing}, parts...)
	}
	if len(parts) > 0 {
		rec["doc"] = strings.Join(parts, "\n\n")
	}
	return nil
}

func (t *DocTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	rec.SetMissingValue("visibility", "public")
	return nil
}

func (t *DocTag) RenderHTML(rec core.Record) (string, error) {
	doc, _ := rec["doc"].(string)
	if doc == "" {
		return "", nil
	}
	return fmt.Sprintf("<div class=\"doc\">%s</div>", doc), nil
}
