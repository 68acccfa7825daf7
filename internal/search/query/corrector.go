package query

// Correct normaliza o texto e corrige erros comuns de grafia de palavras do domínio
// Exemplo: "Roa Guiara" -> "rua guaira"
func Correct(text string) string {
	return defaultRules.Correct(text)
}

// Correct aplica a tabela de correções em uma única passada, palavra por palavra
func (r *Rules) Correct(text string) string {
	return replaceWords(Normalize(text), r.corrections)
}
