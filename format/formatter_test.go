package format

import "testing"

func TestPlain_Format(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single paragraph",
			in:   "Hello world.",
			want: "<p>Hello world.</p>",
		},
		{
			name: "two paragraphs",
			in:   "First.\n\nSecond.",
			want: "<p>First.</p><p>Second.</p>",
		},
		{
			name: "escapes markup",
			in:   "Use <b> & friends.",
			want: "<p>Use &lt;b&gt; &amp; friends.</p>",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Plain{}).Format(tt.in, Context{}); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
