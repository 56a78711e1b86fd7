package validation

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string
		ok   bool
	}{
		{name: "plain", s: "hello", ok: true},
		{name: "empty", s: "", ok: false},
		{name: "whitespace", s: " \t\n", ok: false},
		{name: "at limit", s: strings.Repeat("x", 10), ok: true},
		{name: "over limit", s: strings.Repeat("x", 11), ok: false},
		{name: "multibyte at limit", s: strings.Repeat("✨", 10), ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateText("Content", tc.s, 10)
			if tc.ok && err != nil {
				t.Fatalf("expected valid text, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid text, got nil error")
			}
		})
	}
}

func TestValidateImageRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		ok   bool
	}{
		{name: "https", ref: "https://picsum.photos/seed/p1/600/400", ok: true},
		{name: "http", ref: "http://localhost:5173/a.png", ok: true},
		{name: "data uri", ref: "data:image/png;base64,iVBORw0KGgo=", ok: true},
		{name: "empty", ref: "  ", ok: false},
		{name: "relative", ref: "/images/a.png", ok: false},
		{name: "javascript", ref: "javascript:alert(1)", ok: false},
		{name: "svg data", ref: "data:image/svg+xml;base64,PHN2Zz4=", ok: false},
		{name: "non base64 data", ref: "data:image/png,raw", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImageRef(tc.ref)
			if tc.ok && err != nil {
				t.Fatalf("expected valid ref, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid ref, got nil error")
			}
		})
	}
}
