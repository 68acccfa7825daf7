package utils

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// newParser cria um parser novo a cada chamada (o parser guarda estado).
// Quebras de linha simples viram <br>, como nas mensagens do chat.
func newParser() *parser.Parser {
	return parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
}

// RenderHTML converte o markdown das respostas em HTML. HTML embutido no
// texto é descartado.
func RenderHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	doc := newParser().Parse([]byte(text))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return strings.TrimSpace(string(markdown.Render(doc, renderer)))
}

// EscapeMarkdown protege textos vindos da base (nomes de rua, bairros) antes de
// entrarem em uma mensagem markdown
func EscapeMarkdown(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`*`, `\*`,
		`_`, `\_`,
		"`", "\\`",
		`[`, `\[`,
		`]`, `\]`,
		`<`, `\<`,
		`#`, `\#`,
	)
	return r.Replace(text)
}

// StripMarkdown removes all markdown formatting from text and returns plain text
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}

	doc := newParser().Parse([]byte(text))

	var buf bytes.Buffer
	extractText(doc, &buf)

	result := strings.TrimSpace(buf.String())
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")

	return result
}

// extractText walks the AST and extracts text content
func extractText(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Literal)
		return

	case *ast.Code:
		buf.Write(n.Literal)
		return

	case *ast.CodeBlock:
		buf.Write(n.Literal)
		return

	case *ast.Hardbreak:
		buf.WriteString("\n")
		return

	case *ast.Softbreak:
		buf.WriteString(" ")
		return

	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	}

	container := node.AsContainer()
	if container == nil {
		return
	}

	if _, ok := node.(*ast.ListItem); ok {
		buf.WriteString("• ")
	}

	for _, child := range container.Children {
		extractText(child, buf)
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading:
		buf.WriteString("\n\n")
	case *ast.List, *ast.BlockQuote:
		buf.WriteString("\n")
	}
}
