package sanitize

import (
	"strings"
	"testing"
)

func TestText_RemovesAllHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script tag",
			input:    `Acme <script>alert('xss')</script> Robotics`,
			expected: `Acme  Robotics`,
		},
		{
			name:     "inline event handler",
			input:    `<div onclick="alert('xss')">Backend Engineer</div>`,
			expected: `Backend Engineer`,
		},
		{
			name:     "iframe injection",
			input:    `Remote <iframe src="evil.com"></iframe> friendly`,
			expected: `Remote  friendly`,
		},
		{
			name:     "mixed HTML tags",
			input:    `<b>Bold</b> <i>Italic</i> <a href="http://example.com">Link</a>`,
			expected: `Bold Italic Link`,
		},
		{
			name:     "plain text unchanged",
			input:    `Just plain text`,
			expected: `Just plain text`,
		},
		{
			name:     "empty string",
			input:    ``,
			expected: ``,
		},
		{
			name:     "image tag with onerror",
			input:    `<img src=x onerror="alert('xss')">`,
			expected: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Text(tt.input)
			if result != tt.expected {
				t.Errorf("Text(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestHTML_AllowsSafeFormatting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes script tags",
			input:    `<p>We build <script>alert('xss')</script> robots</p>`,
			expected: `<p>We build  robots</p>`,
		},
		{
			name:     "removes inline event handlers",
			input:    `<p onclick="alert('xss')">Apply now</p>`,
			expected: `<p>Apply now</p>`,
		},
		{
			name:     "allows basic formatting",
			input:    `<p><b>Bold</b> <i>Italic</i> <strong>Strong</strong></p>`,
			expected: `<p><b>Bold</b> <i>Italic</i> <strong>Strong</strong></p>`,
		},
		{
			name:     "allows lists",
			input:    `<ul><li>Go experience</li><li>SQL</li></ul>`,
			expected: `<ul><li>Go experience</li><li>SQL</li></ul>`,
		},
		{
			name:     "removes dangerous link protocols",
			input:    `<a href="javascript:alert('xss')">Click</a>`,
			expected: `Click`,
		},
		{
			name:     "removes style attributes",
			input:    `<p style="background:url(javascript:alert(1))">Perks</p>`,
			expected: `<p>Perks</p>`,
		},
		{
			name:     "plain text unchanged",
			input:    `Just plain text`,
			expected: `Just plain text`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HTML(tt.input)
			if result != tt.expected {
				t.Errorf("HTML(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestPtrVariantsPreserveNil(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Error("TextPtr(nil) should stay nil")
	}
	if HTMLPtr(nil) != nil {
		t.Error("HTMLPtr(nil) should stay nil")
	}

	raw := `<b>Fintech</b>`
	cleaned := TextPtr(&raw)
	if cleaned == nil || *cleaned != "Fintech" {
		t.Errorf("TextPtr(%q) = %v, want Fintech", raw, cleaned)
	}
	if raw != `<b>Fintech</b>` {
		t.Error("TextPtr must not mutate its input")
	}
}

func TestText_CommonXSSVectors(t *testing.T) {
	vectors := []struct {
		name  string
		input string
	}{
		{"Basic XSS", `<script>alert('XSS')</script>`},
		{"IMG onerror", `<img src=x onerror=alert('XSS')>`},
		{"SVG onload", `<svg onload=alert('XSS')>`},
		{"Input autofocus", `<input autofocus onfocus=alert('XSS')>`},
		{"JavaScript protocol", `<a href="javascript:alert('XSS')">Click</a>`},
		{"Data URI", `<a href="data:text/html,<script>alert('XSS')</script>">Click</a>`},
		{"Object data", `<object data="javascript:alert('XSS')">`},
	}

	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			result := Text(v.input)
			for _, d := range []string{"alert", "javascript:", "<script"} {
				if strings.Contains(result, d) {
					t.Errorf("Text(%q) still contains %q: %q", v.input, d, result)
				}
			}
		})
	}
}

func BenchmarkHTML_Description(b *testing.B) {
	input := `<p>We are hiring a <b>backend engineer</b> to join our platform team. ` +
		`<a href='http://example.com'>Read more</a> <script>alert('xss')</script></p>`
	for i := 0; i < b.N; i++ {
		HTML(input)
	}
}
