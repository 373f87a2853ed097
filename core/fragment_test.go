package core

import "testing"

func TestPosition_Shift(t *testing.T) {
	pos := Position{Filename: "panel.js", Line: 10}
	shifted := pos.Shift(3)
	if shifted.Line != 13 || shifted.Filename != "panel.js" {
		t.Errorf("Shift(3) = %v", shifted)
	}
	if pos.Line != 10 {
		t.Error("Shift mutated the receiver")
	}
}

func TestPosition_String(t *testing.T) {
	pos := Position{Filename: "panel.js", Line: 10}
	if got := pos.String(); got != "panel.js:10" {
		t.Errorf("String() = %q", got)
	}
}

func TestFragment_AppendDoc(t *testing.T) {
	frag := &Fragment{Key: "method"}
	frag.AppendDoc("First paragraph.")
	frag.AppendDoc("")
	frag.AppendDoc("Second paragraph.")
	want := "First paragraph.\nSecond paragraph."
	if frag.Doc != want {
		t.Errorf("Doc = %q, want %q", frag.Doc, want)
	}
}

func TestExpr_Values(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		wantStr  string
		wantBool bool
	}{
		{"string value", Expr{Raw: `"Ext.Container"`, Value: "Ext.Container"}, "Ext.Container", false},
		{"bool true", Expr{Raw: "true", Value: true}, "true", true},
		{"raw fallback", Expr{Raw: "Ext.Container"}, "Ext.Container", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.StringValue(); got != tt.wantStr {
				t.Errorf("StringValue() = %q, want %q", got, tt.wantStr)
			}
			if got := tt.expr.BoolValue(); got != tt.wantBool {
				t.Errorf("BoolValue() = %v, want %v", got, tt.wantBool)
			}
		})
	}
}
