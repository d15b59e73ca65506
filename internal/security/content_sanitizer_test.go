package security

import (
	"strings"
	"testing"
)

// 危険なタグが除去されることを検証
func TestContentSanitizer_RemovesDangerousTags(t *testing.T) {
	s := NewContentSanitizer()

	tests := []struct {
		name        string
		input       string
		wantAbsent  []string
		wantPresent []string
	}{
		{
			name:       "scriptタグの除去",
			input:      `<p>hello</p><script>alert('xss')</script>`,
			wantAbsent: []string{"<script>", "alert"},
			wantPresent: []string{
				"<p>hello</p>",
			},
		},
		{
			name:       "iframeタグの除去",
			input:      `before<iframe src="https://evil.example.com"></iframe>after`,
			wantAbsent: []string{"<iframe"},
		},
		{
			name:       "onclickイベント属性の除去",
			input:      `<p onclick="steal()">text</p>`,
			wantAbsent: []string{"onclick"},
			wantPresent: []string{
				"<p>text</p>",
			},
		},
		{
			name:       "aタグは許可しない",
			input:      `<a href="https://example.com">link</a>`,
			wantAbsent: []string{"<a "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sanitize(tt.input)
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("Sanitize(%q) = %q, must not contain %q", tt.input, got, absent)
				}
			}
			for _, present := range tt.wantPresent {
				if !strings.Contains(got, present) {
					t.Errorf("Sanitize(%q) = %q, must contain %q", tt.input, got, present)
				}
			}
		})
	}
}

// 許可タグが保持されることを検証
func TestContentSanitizer_KeepsAllowedTags(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>text</p><pre><code>func main() {}</code></pre><strong>bold</strong>`
	got := s.Sanitize(input)

	for _, want := range []string{"<p>", "<pre>", "<code>", "<strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Sanitize() = %q, must contain %q", got, want)
		}
	}
}

// 空文字列と冪等性を検証
func TestContentSanitizer_EmptyAndIdempotent(t *testing.T) {
	s := NewContentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want \"\"", got)
	}

	input := `<p>hello <em>world</em></p><script>x</script>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("Sanitize is not idempotent: %q != %q", once, twice)
	}
}
