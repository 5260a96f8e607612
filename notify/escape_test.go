package notify

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<b>bold</b>", "&lt;b&gt;bold&lt;/b&gt;"},
		{"a & b", "a &amp; b"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EscapeHTML(tc.in); got != tc.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeHTML_NoRawMetacharactersRemain(t *testing.T) {
	out := EscapeHTML(`x < y > z & "w" <tag attr="&">`)
	stripped := strings.NewReplacer("&amp;", "", "&lt;", "", "&gt;", "").Replace(out)
	if strings.ContainsAny(stripped, "<>&") {
		t.Errorf("raw metacharacter survived escaping: %q", out)
	}
}
