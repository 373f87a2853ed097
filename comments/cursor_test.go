package comments

import (
	"reflect"
	"testing"

	"github.com/duckdoc/go-duckdoc/core"
)

func TestCursor_NextMarker(t *testing.T) {
	text := `/**
 * Some intro text.
 * @class Ext.Panel
 * @extends Ext.Container
 * More text with an inline @decoy that is not a marker.
 * @since 1.1
 */`
	cur := NewCursor(text, core.Position{Filename: "panel.js", Line: 10})

	intro := cur.CaptureUntilMarker()
	if intro != "Some intro text." {
		t.Errorf("CaptureUntilMarker() = %q, want %q", intro, "Some intro text.")
	}

	var got []string
	var lines []int
	for {
		name, pos, ok := cur.NextMarker()
		if !ok {
			break
		}
		got = append(got, name)
		lines = append(lines, pos.Line)
		cur.SkipAnnotation()
	}
	wantNames := []string{"class", "extends", "since"}
	if !reflect.DeepEqual(got, wantNames) {
		t.Errorf("markers = %v, want %v", got, wantNames)
	}
	wantLines := []int{12, 13, 15}
	if !reflect.DeepEqual(lines, wantLines) {
		t.Errorf("marker lines = %v, want %v", lines, wantLines)
	}
}

func TestCursor_CaptureUntilMarker_Multiline(t *testing.T) {
	text := `/**
 * @method load
 * Loads the record.
 *
 * Blocks until done.
 * @param {String} url
 */`
	cur := NewCursor(text, core.Position{Filename: "f.js", Line: 1})

	name, _, ok := cur.NextMarker()
	if !ok || name != "method" {
		t.Fatalf("NextMarker() = %q, %v", name, ok)
	}
	if word, _ := cur.TakeWord(); word != "load" {
		t.Fatalf("TakeWord() = %q, want load", word)
	}
	doc := cur.CaptureUntilMarker()
	want := "Loads the record.\n\nBlocks until done."
	if doc != want {
		t.Errorf("CaptureUntilMarker() = %q, want %q", doc, want)
	}
	name, _, ok = cur.NextMarker()
	if !ok || name != "param" {
		t.Errorf("NextMarker() after capture = %q, %v, want param", name, ok)
	}
}

func TestCursor_TakeType(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantType string
		wantOk   bool
	}{
		{"simple", "@cfg {Number} width", "Number", true},
		{"compound", "@cfg {String/Number} size", "String/Number", true},
		{"absent", "@cfg width", "", false},
		{"unclosed", "@cfg {Number width", "", false},
		{"empty braces", "@cfg {} width", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewCursor(tt.line, core.Position{})
			if _, _, ok := cur.NextMarker(); !ok {
				t.Fatal("no marker")
			}
			typ, ok := cur.TakeType()
			if typ != tt.wantType || ok != tt.wantOk {
				t.Errorf("TakeType() = %q, %v, want %q, %v", typ, ok, tt.wantType, tt.wantOk)
			}
		})
	}
}

func TestCursor_TakeName(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantName     string
		wantDefault  string
		wantOptional bool
		wantOk       bool
	}{
		{"plain", "@cfg width", "width", "", false, true},
		{"optional", "@cfg [width]", "width", "", true, true},
		{"optional with default", "@cfg [width=100]", "width", "100", true, true},
		{"missing", "@cfg", "", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewCursor(tt.line, core.Position{})
			if _, _, ok := cur.NextMarker(); !ok {
				t.Fatal("no marker")
			}
			name, dflt, optional, ok := cur.TakeName()
			if name != tt.wantName || dflt != tt.wantDefault || optional != tt.wantOptional || ok != tt.wantOk {
				t.Errorf("TakeName() = %q, %q, %v, %v, want %q, %q, %v, %v",
					name, dflt, optional, ok, tt.wantName, tt.wantDefault, tt.wantOptional, tt.wantOk)
			}
		})
	}
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/** opener text", "opener text"},
		{" * continuation", "continuation"},
		{" *  indented keeps one level", " indented keeps one level"},
		{" */", ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := cleanLine(tt.in); got != tt.want {
			t.Errorf("cleanLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
