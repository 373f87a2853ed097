// Package tags holds the tag descriptor contract, the immutable registry and
// the builtin annotation handlers. A tag is a registered handler for one
// annotation/declaration-property pattern; each processing stage is an
// optional capability interface, so a tag that does not implement a stage is
// simply absent from that stage's applicable set.
package tags

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
)

// Context names one record kind a tag's merge and render logic applies to.
type Context string

const (
	// ContextClass applies a tag to class records.
	ContextClass Context = "class"
	// AnyMember is the wildcard context: the tag applies to every member
	// kind, but never to class records.
	AnyMember Context = "any-member"
)

// Display positions of the builtin render output, ascending. A tag whose Pos
// is PosNone produces no ordered output fragment.
const (
	PosNone       = 0
	PosSignature  = 1
	PosDoc        = 2
	PosDeprecated = 3
	PosSince      = 4
	PosExtends    = 5
	PosDefault    = 6
	PosParams     = 7
	PosReturn     = 8
	// PosCustom is where user-defined YAML tags start; each custom tag is
	// offset by its catalog index to keep their relative order stable.
	PosCustom = 100
)

// KeyValue is a declaration default: a field written verbatim into the
// record when the declaration literal lacks the tag's DeclPattern.
type KeyValue struct {
	Key   string
	Value any
}

// Signature holds the display strings a tag contributes as a signature badge
// on rendered members (e.g. "DEP" / "deprecated").
type Signature struct {
	Short   string
	Long    string
	Tooltip string
}

// TagDef describes one registered tag: which annotation pattern it owns,
// where combined data is stored, which record kinds it applies to and how
// its rendered output is ordered. TagDefs are registered once at startup and
// read-only thereafter.
type TagDef struct {
	// Pattern is the annotation name, without the '@' lead character.
	Pattern string
	// StorageKey is the record field the combined data is stored under.
	StorageKey string
	// MemberKind, when set, names the member category this tag defines
	// (e.g. "event"); a comment carrying such a tag resolves to a record
	// of that kind.
	MemberKind string
	// Signature, when set, is rendered as a badge on applicable members.
	Signature *Signature
	// DeclPattern is the property name recognized inside structural
	// declaration literals. Empty when the tag reads no declarations.
	DeclPattern string
	// DeclDefault, when set, is written into the record whenever the
	// declaration literal lacks DeclPattern.
	DeclDefault *KeyValue
	// Contexts lists the record kinds the tag applies to.
	Contexts []Context
	// Pos is the display ordering rank; PosNone excludes the tag from
	// ordered output assembly.
	Pos int
	// Html marks that the markup formatter must run over DocField before
	// the tag renders.
	Html bool
	// DocField is the record field Html formatting applies to; defaults
	// to "doc" when empty.
	DocField string
	// Multiline marks that fragments of this tag capture all following
	// free text up to the next annotation marker.
	Multiline bool
	// Schema, when set, validates the combined StorageKey payload right
	// after combination.
	Schema *openapi3.Schema
}

// AppliesTo reports whether the tag's contexts cover the given record kind:
// a literal context match, or the AnyMember wildcard for any non-class kind.
func (d *TagDef) AppliesTo(kind string) bool {
	for _, ctx := range d.Contexts {
		if string(ctx) == kind {
			return true
		}
		if ctx == AnyMember && kind != string(ContextClass) {
			return true
		}
	}
	return false
}

// DocTextField returns the field Html formatting applies to.
func (d *TagDef) DocTextField() string {
	if d.DocField != "" {
		return d.DocField
	}
	return "doc"
}

// Tag is the base contract every annotation handler implements. Stage
// capabilities (parse, combine, declaration-parse, merge, render) are the
// optional interfaces below.
type Tag interface {
	Def() *TagDef
}

// CommentParser is the comment-parse capability: invoked once per annotation
// occurrence, it consumes as much of the remaining comment text as it needs
// and returns zero, one or many fragments.
type CommentParser interface {
	Tag
	ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error)
}

// Combiner is the post-parse capability: invoked once per storage-key group
// with all fragments for that key, it may write any fields into the record.
type Combiner interface {
	Tag
	Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error
}

// DeclParser is the declaration-parse capability: invoked when the
// configuration literal contains the tag's DeclPattern, it interprets the
// value expression into record fields.
type DeclParser interface {
	Tag
	ParseDecl(rec core.Record, expr core.Expr) error
}

// Merger is the merge capability: the single point where comment intent and
// code structure are reconciled. The routine may add, overwrite or derive
// fields; it observes fields written by earlier-registered tags.
type Merger interface {
	Tag
	Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error
}

// Renderer is the render capability: produces one HTML fragment for the
// finished record. A tag without it is excluded from output assembly but
// still considered for merge.
type Renderer interface {
	Tag
	RenderHTML(rec core.Record) (string, error)
}

// base provides the Def accessor builtin tags embed.
type base struct {
	def TagDef
}

func (b *base) Def() *TagDef {
	return &b.def
}
