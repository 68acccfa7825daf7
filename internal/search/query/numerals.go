package query

// ExpandNumerals troca números escritos por extenso pelos dígitos correspondentes.
// O texto é normalizado antes; apenas palavras inteiras são substituídas, então
// "um" não é alterado dentro de "umuarama".
// Exemplo: "Rua Oito" -> "rua 8"
func ExpandNumerals(text string) string {
	return defaultRules.ExpandNumerals(text)
}

// ExpandNumerals aplica a tabela de numerais destas regras
func (r *Rules) ExpandNumerals(text string) string {
	return replaceWords(Normalize(text), r.numerals)
}
