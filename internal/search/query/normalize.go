package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctuationReplacer troca cada pontuação relevante por um espaço
var punctuationReplacer = strings.NewReplacer(
	".", " ", ",", " ", ";", " ", ":", " ", "!", " ", "?", " ",
	"'", " ", "\"", " ", "(", " ", ")", " ", "-", " ", "/", " ", "\\", " ",
)

// Normalize converte para minúsculas, remove acentos e pontuação e colapsa espaços.
// Exemplo: "  Av. Gabriel Garcia-Leal " -> "av gabriel garcia leal"
//
// A função é total e idempotente: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Minúsculas antes da decomposição: algumas letras maiúsculas viram
	// letra + marca combinante ao serem convertidas.
	s := strings.ToLower(text)
	s = RemoveAccents(s)
	s = punctuationReplacer.Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

// RemoveAccents remove acentos e diacríticos de uma string
// Exemplo: "Guaíra" -> "Guaira", "Praça" -> "Praca"
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
