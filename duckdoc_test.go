package duckdoc

import (
	"context"
	"strings"
	"testing"

	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/tags"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		validator ConfigFunc
		wantPanic bool
	}{
		{
			name:      "defaults applied",
			config:    &Config{},
			validator: withTags,
			wantPanic: false,
		},
		{
			name:      "empty tag set rejected",
			config:    &Config{Tags: []tags.Tag{}},
			validator: withTags,
			wantPanic: true,
		},
		{
			name:      "negative workers rejected",
			config:    &Config{MaxWorkers: -1},
			validator: withMaxWorkers,
			wantPanic: true,
		},
		{
			name:      "zero workers defaulted",
			config:    &Config{},
			validator: withMaxWorkers,
			wantPanic: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("Config.Validate() panic = %v, wantPanic %v", r != nil, tt.wantPanic)
				}
			}()
			tt.config.Validate(tt.validator)
		})
	}
}

func TestNew_TagConflict(t *testing.T) {
	_, err := New(&Config{
		ExtraTags: []tags.Tag{tags.NewClassTag()},
	})
	if !core.IsConflictErr(err) {
		t.Errorf("New() error = %v, want ConflictError", err)
	}
}

func TestProcessor_Process_Class(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: `/**
 * @class Ext.Panel
 * A panel is a container with a header.
 * @extends Ext.Container
 * @since 1.1
 */`,
		Pos: core.Position{Filename: "panel.js", Line: 12},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Incomplete || len(res.Warnings) != 0 {
		t.Fatalf("incomplete = %v, warnings = %v", res.Incomplete, res.Warnings)
	}
	if res.Record.RecordKind() != "class" || res.Record.RecordName() != "Ext.Panel" {
		t.Errorf("record = %v", res.Record)
	}
	if res.Record["extends"] != "Ext.Container" {
		t.Errorf("extends = %v", res.Record["extends"])
	}
	if res.Record["since"] != "1.1.0" {
		t.Errorf("since = %v, want canonical 1.1.0", res.Record["since"])
	}
	for _, want := range []string{"A panel is a container", "Ext.Container", "1.1.0"} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, res.HTML)
		}
	}
}

func TestProcessor_Process_CfgMember(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: `/**
 * @cfg {Number} [width=100]
 * The width of the panel in pixels.
 */`,
		Pos: core.Position{Filename: "panel.js", Line: 40},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	rec := res.Record
	if rec.RecordKind() != "cfg" {
		t.Errorf("kind = %q, want cfg", rec.RecordKind())
	}
	if rec["name"] != "width" || rec["type"] != "Number" || rec["default"] != "100" {
		t.Errorf("record = %v", rec)
	}
	if rec["visibility"] != "public" {
		t.Errorf("visibility = %v, want public", rec["visibility"])
	}
	if !strings.Contains(res.HTML, "width") || !strings.Contains(res.HTML, "Number") {
		t.Errorf("HTML = %q", res.HTML)
	}
}

func TestProcessor_Process_MethodSignature(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: `/**
 * @method load
 * Loads the record from the server.
 * @param {String} url The target URL.
 * @param {Function} [callback] Called when done.
 * @return {Boolean} True on success.
 */`,
		Pos: core.Position{Filename: "store.js", Line: 8},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Record["signature"] != "load( url, callback ) : Boolean" {
		t.Errorf("signature = %v", res.Record["signature"])
	}
	// Parameters render after the title and doc, returns last.
	titleIdx := strings.Index(res.HTML, "class=\"title")
	paramsIdx := strings.Index(res.HTML, "Parameters")
	returnIdx := strings.Index(res.HTML, "Returns")
	if titleIdx < 0 || paramsIdx < 0 || returnIdx < 0 {
		t.Fatalf("HTML = %q", res.HTML)
	}
	if !(titleIdx < paramsIdx && paramsIdx < returnIdx) {
		t.Errorf("section order title=%d params=%d return=%d", titleIdx, paramsIdx, returnIdx)
	}
}

func TestProcessor_Process_UnknownTagWarns(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: "/** @class Ext.Panel\n@xtype panel */",
		Pos:     core.Position{Filename: "panel.js", Line: 1},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(res.Warnings) != 1 || !core.IsUnknownTagErr(res.Warnings[0].Err) {
		t.Errorf("warnings = %v, want one UnknownTagError", res.Warnings)
	}
	if res.Incomplete {
		t.Error("unknown tag must not mark the record incomplete")
	}
}

func TestProcessor_Process_DeprecatedBeforeSince(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: `/**
 * @method load
 * @since 2.0
 * @deprecated 1.0 Use fetch instead.
 */`,
		Pos: core.Position{Filename: "store.js", Line: 1},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !res.Incomplete {
		t.Error("deprecation before introduction must mark the record incomplete")
	}
	var found bool
	for _, w := range res.Warnings {
		if core.IsMergeErr(w.Err) {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a MergeError", res.Warnings)
	}
}

func TestProcessor_Process_DeclarationFacts(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: "/** A mostly undocumented class. */",
		Decl: core.ConfigLiteral{
			"extend":    {Raw: `"Ext.Container"`, Value: "Ext.Container"},
			"singleton": {Raw: "true", Value: true},
		},
		Kind: "class",
		Pos:  core.Position{Filename: "panel.js", Line: 1},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Record["extends"] != "Ext.Container" {
		t.Errorf("extends = %v", res.Record["extends"])
	}
	if res.Record["singleton"] != true {
		t.Errorf("singleton = %v, want true", res.Record["singleton"])
	}
	// Nameless class: merge failure, record still returned.
	if !res.Incomplete {
		t.Error("nameless class must be incomplete")
	}
}

func TestProcessor_ProcessAll(t *testing.T) {
	proc, err := New(&Config{MaxWorkers: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	units := []Unit{
		{Comment: "/** @class A */", Pos: core.Position{Filename: "a.js", Line: 1}},
		{Comment: "/** @class B */", Pos: core.Position{Filename: "b.js", Line: 1}},
		{Comment: "/** @class C */", Pos: core.Position{Filename: "c.js", Line: 1}},
	}
	results, err := proc.ProcessAll(context.Background(), units)
	if err != nil {
		t.Fatalf("ProcessAll() error = %v", err)
	}
	if len(results) != len(units) {
		t.Fatalf("got %d results, want %d", len(results), len(units))
	}
	for i, want := range []string{"A", "B", "C"} {
		if results[i].Record.RecordName() != want {
			t.Errorf("results[%d].name = %v, want %q", i, results[i].Record.RecordName(), want)
		}
	}
}

func TestProcessor_Process_ContextCancelled(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := proc.Process(ctx, Unit{Comment: "/** @class A */"}); err == nil {
		t.Error("Process() with cancelled context must fail")
	}
}

func TestResult_EncodeDecodeMsgpack(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: "/** @class Ext.Panel\nA panel. */",
		Pos:     core.Position{Filename: "panel.js", Line: 3},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	data, err := res.EncodeMsgpack()
	if err != nil {
		t.Fatalf("EncodeMsgpack() error = %v", err)
	}
	got, err := DecodeResult(data)
	if err != nil {
		t.Fatalf("DecodeResult() error = %v", err)
	}
	if got.Record.RecordName() != "Ext.Panel" {
		t.Errorf("decoded name = %v", got.Record.RecordName())
	}
	if got.HTML != res.HTML || got.Pos != res.Pos {
		t.Errorf("decoded result = %+v", got)
	}
}

func TestProcessor_Process_CfgRoundTrip(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: "/** @cfg {Number} size The size. */",
		Pos:     core.Position{Filename: "panel.js", Line: 1},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Record.RecordKind() != "cfg" {
		t.Fatalf("kind = %q, want cfg", res.Record.RecordKind())
	}
	if !strings.Contains(res.HTML, "Number") {
		t.Errorf("HTML missing type token:\n%s", res.HTML)
	}
	if got := strings.Count(res.HTML, "The size."); got != 1 {
		t.Errorf("doc text appears %d times, want exactly once:\n%s", got, res.HTML)
	}
}

func TestProcessor_Process_HiddenMember(t *testing.T) {
	proc, err := New(&Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := proc.Process(context.Background(), Unit{
		Comment: "/** @method doLayout\n@hide */",
		Pos:     core.Position{Filename: "panel.js", Line: 1},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Record["hidden"] != true {
		t.Errorf("hidden = %v, want true", res.Record["hidden"])
	}
}
