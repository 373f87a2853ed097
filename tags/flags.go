package tags

import (
	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
)

//  ######################################################
//              BOOLEAN FLAG TAGS
//  ######################################################

// flagTag is the shared shape of annotations that carry no payload at all:
// their mere presence sets a boolean field and, when configured, a signature
// badge at merge time. Flag tags render nothing on their own.
type flagTag struct {
	base
}

func newFlagTag(def TagDef) *flagTag {
	return &flagTag{base{def}}
}

func (t *flagTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	return []*core.Fragment{{
		Key:    t.def.StorageKey,
		Fields: core.Record{t.def.StorageKey: true},
		Pos:    pos,
	}}, nil
}

func (t *flagTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	rec[t.def.StorageKey] = true
	return nil
}

func (t *flagTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if on, _ := rec[t.def.StorageKey].(bool); on && t.def.Signature != nil {
		appendSignature(rec, t.def.Signature)
	}
	return nil
}

// NewReadonlyTag marks a member as not assignable after initialization.
func NewReadonlyTag() Tag {
	return newFlagTag(TagDef{
		Pattern:    "readonly",
		StorageKey: "readonly",
		Contexts:   []Context{AnyMember},
		Signature: &Signature{
			Short:   "R O",
			Long:    "readonly",
			Tooltip: "This member cannot be reassigned",
		},
	})
}

// NewStaticTag marks a member as attached to the class rather than an
// instance.
func NewStaticTag() Tag {
	return newFlagTag(TagDef{
		Pattern:    "static",
		StorageKey: "static",
		Contexts:   []Context{AnyMember},
		Signature: &Signature{
			Short:   "STA",
			Long:    "static",
			Tooltip: "This member belongs to the class itself",
		},
	})
}

// privateTag is a flag tag that additionally flips the record's visibility.
type privateTag struct {
	flagTag
}

// NewPrivateTag hides a class or member from public listings.
func NewPrivateTag() Tag {
	return &privateTag{flagTag{base{TagDef{
		Pattern:    "private",
		StorageKey: "private",
		Contexts:   []Context{ContextClass, AnyMember},
		Signature: &Signature{
			Short:   "PRI",
			Long:    "private",
			Tooltip: "This member is private",
		},
	}}}}
}

func (t *privateTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if on, _ := rec["private"].(bool); on {
		rec["visibility"] = "private"
		appendSignature(rec, t.def.Signature)
	}
	return nil
}

// hideTag removes a member from generated output entirely. Unlike @private
// the member is not listed at all.
type hideTag struct {
	flagTag
}

// NewHideTag excludes a member from generated documentation.
func NewHideTag() Tag {
	return &hideTag{flagTag{base{TagDef{
		Pattern:    "hide",
		StorageKey: "hide",
		Contexts:   []Context{AnyMember},
	}}}}
}

func (t *hideTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if on, _ := rec["hide"].(bool); on {
		rec["hidden"] = true
	}
	return nil
}

// appendSignature adds a badge to the record's signature list, skipping
// duplicates by long name.
func appendSignature(rec core.Record, sig *Signature) {
	existing, _ := rec["signatures"].([]any)
	for _, entry := range existing {
		if r, ok := entry.(core.Record); ok && r["long"] == sig.Long {
			return
		}
	}
	rec["signatures"] = append(existing, core.Record{
		"short":   sig.Short,
		"long":    sig.Long,
		"tooltip": sig.Tooltip,
	})
}
