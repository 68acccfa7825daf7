package query

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinVariantLength é o tamanho mínimo (em caracteres) de uma variante de busca
const MinVariantLength = 2

var digitLetterPattern = regexp.MustCompile(`([0-9])([a-z])`)

// GenerateVariants gera as strings de busca a partir de uma frase digitada pelo usuário
// usando as regras padrão. Veja Rules.GenerateVariants.
func GenerateVariants(term string) []string {
	return defaultRules.GenerateVariants(term)
}

// GenerateVariants gera, em ordem determinística e sem duplicatas:
//  1. a forma normalizada, a corrigida e a corrigida com numerais expandidos;
//  2. cada uma dessas sem o prefixo de tipo de logradouro ("rua ", "av ", ...);
//  3. para as variantes acima, a abreviação expandida ("av " -> "avenida ") e,
//     para elas e para a forma expandida, número e letra separados ("1a" -> "1-a", "1 a").
//
// Variantes com menos de MinVariantLength caracteres são descartadas.
func (r *Rules) GenerateVariants(term string) []string {
	normalized := Normalize(term)
	corrected := r.Correct(normalized)
	expanded := r.ExpandNumerals(corrected)

	set := newVariantSet()
	bases := []string{normalized, corrected, expanded}
	for _, b := range bases {
		set.add(b)
	}
	for _, b := range bases {
		set.add(r.stripStreetPrefix(b))
	}

	for _, v := range set.items() {
		forms := []string{v}
		if full := r.expandAbbreviation(v); full != "" {
			set.add(full)
			forms = append(forms, full)
		}
		for _, f := range forms {
			set.add(splitDigitLetter(f, "-"))
			set.add(splitDigitLetter(f, " "))
		}
	}

	return set.items()
}

// stripStreetPrefix remove o tipo de logradouro do início; retorna "" se não houver
func (r *Rules) stripStreetPrefix(s string) string {
	for _, p := range r.streetPrefixes {
		if strings.HasPrefix(s, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return ""
}

// expandAbbreviation troca uma abreviação inicial pela forma completa; retorna "" se não houver
func (r *Rules) expandAbbreviation(s string) string {
	for _, a := range r.abbreviations {
		if strings.HasPrefix(s, a.From) {
			return a.To + s[len(a.From):]
		}
	}
	return ""
}

// splitDigitLetter separa número e letra colados; retorna "" se nada mudou
func splitDigitLetter(s, sep string) string {
	out := digitLetterPattern.ReplaceAllString(s, "${1}"+sep+"${2}")
	if out == s {
		return ""
	}
	return out
}

// variantSet preserva a ordem de inserção e ignora duplicatas sem diferenciar maiúsculas
type variantSet struct {
	seen  map[string]bool
	order []string
}

func newVariantSet() *variantSet {
	return &variantSet{seen: make(map[string]bool)}
}

func (s *variantSet) add(v string) {
	if utf8.RuneCountInString(v) < MinVariantLength {
		return
	}
	key := strings.ToLower(v)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.order = append(s.order, v)
}

func (s *variantSet) items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
