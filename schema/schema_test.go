package schema

import (
	"testing"

	"github.com/duckdoc/go-duckdoc/core"
)

func TestValidate_Member(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		wantErr bool
	}{
		{
			name:    "full member",
			payload: core.Record{"name": "width", "type": "Number", "doc": "The width."},
			wantErr: false,
		},
		{
			name:    "nameless member",
			payload: core.Record{"type": "Number"},
			wantErr: false,
		},
		{
			name:    "non-string type",
			payload: core.Record{"name": "width", "type": 42},
			wantErr: true,
		},
		{
			name:    "not an object",
			payload: "width",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Member(), tt.payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Params(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		wantErr bool
	}{
		{
			name: "named parameters",
			payload: []any{
				core.Record{"name": "url", "type": "String"},
				core.Record{"name": "callback", "optional": true},
			},
			wantErr: false,
		},
		{
			name:    "nameless parameter",
			payload: []any{core.Record{"type": "String"}},
			wantErr: true,
		},
		{
			name:    "not a list",
			payload: core.Record{"name": "url"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Params(), tt.payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Return(t *testing.T) {
	if err := Validate(Return(), core.Record{"type": "Boolean", "doc": "True on success."}); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := Validate(Return(), core.Record{"doc": "no type"}); err == nil {
		t.Error("typeless return payload must be rejected")
	}
}

func TestValidate_Version(t *testing.T) {
	if err := Validate(Version(), "1.1.0"); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := Validate(Version(), ""); err == nil {
		t.Error("empty version must be rejected")
	}
}
