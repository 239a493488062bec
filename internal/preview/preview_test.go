package preview

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"simple", "https://en.wikipedia.org/wiki/Albert_Einstein", "Albert Einstein"},
		{"percent encoded", "https://en.wikipedia.org/wiki/Caf%C3%A9_society", "Café society"},
		{"parentheses", "https://en.wikipedia.org/wiki/Mercury_(planet)", "Mercury (planet)"},
		{"no wiki segment", "not-a-wiki-link", ""},
		{"empty", "", ""},
		{"bad escape", "https://en.wikipedia.org/wiki/100%_Pure", ""},
		{"invalid utf-8", "https://en.wikipedia.org/wiki/%FF_abc", ""},
		{"second wiki segment", "https://en.wikipedia.org/wiki/Foo/wiki/Bar", "Foo"},
		{"segment only", "https://en.wikipedia.org/wiki/", ""},
		{"not wikipedia host", "https://example.com/wiki/Some_Page", "Some Page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.url); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestTitle_Idempotent(t *testing.T) {
	in := "https://en.wikipedia.org/wiki/Ada_Lovelace"
	first := Title(in)
	for i := 0; i < 3; i++ {
		if got := Title(in); got != first {
			t.Fatalf("call %d = %q, want %q", i, got, first)
		}
	}
}
