package tags

import (
	"fmt"
	"html"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/duckdoc/go-duckdoc/comments"
	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/schema"
)

//  ######################################################
//              VERSION-CARRYING TAGS
//  ######################################################

// SinceTag records the version a class or member first appeared in. The
// version string is parsed and canonicalized, so "v1.2" and "1.2.0" compare
// equal downstream.
type SinceTag struct {
	base
}

func NewSinceTag() *SinceTag {
	return &SinceTag{base{TagDef{
		Pattern:    "since",
		StorageKey: "since",
		Contexts:   []Context{ContextClass, AnyMember},
		Pos:        PosSince,
		Schema:     schema.Version(),
	}}}
}

func (t *SinceTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	word, ok := cur.TakeWord()
	if !ok {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  "missing version",
		}
	}
	v, err := parseVersion(word)
	if err != nil {
		return nil, &core.MalformedFragmentError{
			Pattern: t.def.Pattern,
			Pos:     pos,
			Reason:  fmt.Sprintf("invalid version '%s': %v", word, err),
		}
	}
	return []*core.Fragment{{
		Key:    t.def.StorageKey,
		Fields: core.Record{"since": v.String()},
		Pos:    pos,
	}}, nil
}

func (t *SinceTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	rec["since"] = last.Fields["since"]
	return nil
}

func (t *SinceTag) RenderHTML(rec core.Record) (string, error) {
	since, _ := rec["since"].(string)
	return fmt.Sprintf("<p class=\"since\">Available since <b>%s</b></p>", html.EscapeString(since)), nil
}

// DeprecatedTag records a deprecation, optionally versioned, with a
// free-text reason. Its merge routine contributes the "DEP" signature badge
// and cross-checks the deprecation version against "since".
type DeprecatedTag struct {
	base
}

func NewDeprecatedTag() *DeprecatedTag {
	return &DeprecatedTag{base{TagDef{
		Pattern:    "deprecated",
		StorageKey: "deprecated",
		Contexts:   []Context{ContextClass, AnyMember},
		Pos:        PosDeprecated,
		Multiline:  true,
		Html:       true,
		DocField:   "deprecated",
		Signature: &Signature{
			Short:   "DEP",
			Long:    "deprecated",
			Tooltip: "This member is deprecated",
		},
	}}}
}

func (t *DeprecatedTag) ParseComment(cur *comments.Cursor, pos core.Position) ([]*core.Fragment, error) {
	frag := &core.Fragment{
		Key:       t.def.StorageKey,
		Fields:    core.Record{},
		Multiline: true,
		Pos:       pos,
	}
	// A leading word is treated as the deprecation version when it parses
	// as one; otherwise it is the start of the reason text.
	if word, ok := cur.TakeWord(); ok {
		if v, err := parseVersion(word); err == nil {
			frag.Fields["version"] = v.String()
		} else {
			frag.Doc = word
		}
	}
	return []*core.Fragment{frag}, nil
}

func (t *DeprecatedTag) Combine(rec core.Record, frags []*core.Fragment, pos core.Position) error {
	last := frags[len(frags)-1]
	rec["deprecated"] = last.Doc
	if v, ok := last.Fields["version"]; ok {
		rec["deprecated_version"] = v
	}
	return nil
}

// Merge contributes the deprecation badge and rejects records claiming to be
// deprecated before they existed.
func (t *DeprecatedTag) Merge(rec core.Record, frags []*core.Fragment, decl core.Record) error {
	if _, ok := rec["deprecated"]; !ok {
		return nil
	}
	appendSignature(rec, t.def.Signature)
	depStr, _ := rec["deprecated_version"].(string)
	sinceStr, _ := rec["since"].(string)
	if depStr != "" && sinceStr != "" {
		dep, depErr := version.NewVersion(depStr)
		since, sinceErr := version.NewVersion(sinceStr)
		if depErr == nil && sinceErr == nil && dep.LessThan(since) {
			return &core.MergeError{
				Pattern: t.def.Pattern,
				Kind:    rec.RecordKind(),
				Reason:  fmt.Sprintf("deprecated in %s, before introduction in %s", depStr, sinceStr),
			}
		}
	}
	return nil
}

func (t *DeprecatedTag) RenderHTML(rec core.Record) (string, error) {
	var out strings.Builder
	out.WriteString("<div class=\"deprecated\"><strong>Deprecated")
	if v, ok := rec["deprecated_version"].(string); ok && v != "" {
		out.WriteString(" since " + html.EscapeString(v))
	}
	out.WriteString("</strong>")
	if reason, ok := rec["deprecated"].(string); ok && reason != "" {
		out.WriteString(" " + reason)
	}
	out.WriteString("</div>")
	return out.String(), nil
}

// parseVersion parses an annotation version token, tolerating a leading "v"
// and segments beyond the core x.y.z while preserving pre-release
// identifiers (e.g. "5.3.0-beta.1" stays as-is).
func parseVersion(raw string) (*version.Version, error) {
	truncated, _ := sanitizeVersion(strings.TrimPrefix(raw, "v"))
	return version.NewVersion(truncated)
}

// sanitizeVersion truncates all segments of a version above core (x.y.z)
// but preserves pre-release identifiers. The second return reports whether
// truncation happened.
func sanitizeVersion(raw string) (string, bool) {
	mainAndPrerelease := raw
	buildMetadata := ""
	if plusIndex := strings.Index(raw, "+"); plusIndex != -1 {
		mainAndPrerelease = raw[:plusIndex]
		buildMetadata = raw[plusIndex:]
	}

	mainVersion := mainAndPrerelease
	prerelease := ""
	if dashIndex := strings.Index(mainAndPrerelease, "-"); dashIndex != -1 {
		mainVersion = mainAndPrerelease[:dashIndex]
		prerelease = mainAndPrerelease[dashIndex:]
	}

	segments := strings.Split(mainVersion, ".")
	if len(segments) <= 3 {
		return raw, false
	}
	return strings.Join(segments[:3], ".") + prerelease + buildMetadata, true
}
