package tags

import (
	"fmt"
	"html"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
)

//  ######################################################
//              CLASS-LEVEL TAGS
//  ######################################################

// ClassTag names a class record. The explicit @class annotation overrides
// whatever name the declaration walker discovered.
type ClassTag struct {
	base
}

func NewClassTag() *ClassTag {
	return &ClassTag{base{TagDef{
		Pattern:    "class",
		StorageKey: "class",
		Contexts:   []Context{ContextClass},
	}}}
}

func (t *ClassTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	fields := core.Record{}
	if name, ok := cur.TakeWord(); ok {
		fields["name"] = name
	}
	return []*core.Fragment{{Key: t.def.StorageKey, Fields: fields, Pos: pos}}, nil
}

func (t *ClassTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	if name, ok := last.Fields["name"].(string); ok && name != "" {
		rec["name"] = name
	}
	rec[t.def.StorageKey] = true
	return nil
}

func (t *ClassTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	name, _ := rec["name"].(string)
	if name == "" {
		return &core.MergeError{
			Pattern: t.def.Pattern,
			Kind:    rec.RecordKind(),
			Reason:  "class record has no name from either comment or declaration",
		}
	}
	return nil
}

// ExtendsTag records the parent class, from the @extends annotation or the
// "extend" property of the declaration literal. Declaration-sourced classes
// without either fall back to the root class "Object".
type ExtendsTag struct {
	base
}

func NewExtendsTag() *ExtendsTag {
	return &ExtendsTag{base{TagDef{
		Pattern:     "extends",
		StorageKey:  "extends",
		DeclPattern: "extend",
		DeclDefault: &KeyValue{Key: "extends", Value: "Object"},
		Contexts:    []Context{ContextClass},
		Pos:         PosExtends,
	}}}
}

func (t *ExtendsTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	name, ok := cur.TakeWord()
	if !ok {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  "missing parent class name",
		}
	}
	return []*core.Fragment{{
		Key:    t.def.StorageKey,
		Fields: core.Record{"extends": name},
		Pos:    pos,
	}}, nil
}

func (t *ExtendsTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	rec["extends"] = last.Fields["extends"]
	return nil
}

func (t *ExtendsTag) ParseDecl(rec core.Record, expr core.Expr) error {
	rec["extends"] = expr.StringValue()
	return nil
}

// Merge prefers the comment-declared parent over the declaration-derived
// one: the extractor runs after the combiner, so without this the code fact
// would silently win.
func (t *ExtendsTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if frag := lastFragment(frags, t.def.StorageKey); frag != nil {
		rec["extends"] = frag.Fields["extends"]
	}
	return nil
}

func (t *ExtendsTag) RenderHTML(rec core.Record) (string, error) {
	parent, _ := rec["extends"].(string)
	return fmt.Sprintf("<div class=\"extends\">Extends: <code>%s</code></div>", html.EscapeString(parent)), nil
}

// SingletonTag marks a class as a singleton, from the @singleton annotation
// or the "singleton" declaration property. Marker-only, not rendered.
type SingletonTag struct {
	base
}

func NewSingletonTag() *SingletonTag {
	return &SingletonTag{base{TagDef{
		Pattern:     "singleton",
		StorageKey:  "singleton",
		DeclPattern: "singleton",
		DeclDefault: &KeyValue{Key: "singleton", Value: false},
		Contexts:    []Context{ContextClass},
	}}}
}

func (t *SingletonTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	return []*core.Fragment{{
		Key:    t.def.StorageKey,
		Fields: core.Record{"singleton": true},
		Pos:    pos,
	}}, nil
}

func (t *SingletonTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	rec["singleton"] = true
	return nil
}

func (t *SingletonTag) ParseDecl(rec core.Record, expr core.Expr) error {
	rec["singleton"] = expr.BoolValue()
	return nil
}

// Merge lets an explicit @singleton annotation win over the declaration.
func (t *SingletonTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if lastFragment(frags, t.def.StorageKey) != nil {
		rec["singleton"] = true
	}
	return nil
}

// lastFragment returns the last fragment carrying the given storage key, or
// nil when the comment produced none.
func lastFragment(frags []*core.Fragment, key string) *core.Fragment {
	for i := len(frags) - 1; i >= 0; i-- {
		if frags[i].Key == key {
			return frags[i]
		}
	}
	return nil
}
