package utils

import (
	"strings"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text without markdown",
			input:    "Não encontrei esse CEP 😕 Verifique se está correto.",
			expected: "Não encontrei esse CEP 😕 Verifique se está correto.",
		},
		{
			name:     "bold text",
			input:    "O CEP **14790-000** corresponde a:",
			expected: "O CEP 14790-000 corresponde a:",
		},
		{
			name:     "line breaks are kept",
			input:    "Rua 8, Centro\nGuaíra/SP",
			expected: "Rua 8, Centro\nGuaíra/SP",
		},
		{
			name:     "escaped underscore",
			input:    "Rua\\_A",
			expected: "Rua_A",
		},
		{
			name:     "link",
			input:    "Veja no [mapa](https://maps.google.com)",
			expected: "Veja no mapa",
		},
		{
			name:     "unordered list",
			input:    "- Rua 8\n- Avenida 1-A",
			expected: "• Rua 8\n\n• Avenida 1-A",
		},
		{
			name:     "paragraphs",
			input:    "Encontrei:\n\nRua 8",
			expected: "Encontrei:\n\nRua 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRenderHTML(t *testing.T) {
	if got := RenderHTML("  "); got != "" {
		t.Errorf("RenderHTML(vazio) = %q", got)
	}

	got := RenderHTML("O CEP **14790-000** corresponde a:\nRua 8, Centro")
	for _, want := range []string{"<p>", "<strong>14790-000</strong>", "<br", "Rua 8, Centro"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderHTML() = %q, deveria conter %q", got, want)
		}
	}

	got = RenderHTML("Rua <script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("RenderHTML() não removeu HTML: %q", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Rua 8", "Rua 8"},
		{"Rua_A", `Rua\_A`},
		{"Travessa *", `Travessa \*`},
		{"[Centro]", `\[Centro\]`},
	}

	for _, tt := range tests {
		if got := EscapeMarkdown(tt.input); got != tt.expected {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
		if got := StripMarkdown(EscapeMarkdown(tt.input)); got != tt.input {
			t.Errorf("StripMarkdown(EscapeMarkdown(%q)) = %q", tt.input, got)
		}
	}
}
