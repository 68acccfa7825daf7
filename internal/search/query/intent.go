package query

import (
	"regexp"
	"strings"
)

// IntentKind identifica o que o usuário está pedindo
type IntentKind string

const (
	IntentGreeting        IntentKind = "saudacao"
	IntentThanks          IntentKind = "agradecimento"
	IntentHelp            IntentKind = "ajuda"
	IntentPostalCodeQuery IntentKind = "busca_cep"
	IntentAddressQuery    IntentKind = "busca_endereco"
)

// Intent é o resultado da classificação de uma mensagem.
// PostalCode é preenchido apenas em IntentPostalCodeQuery (8 dígitos) e
// Term apenas em IntentAddressQuery.
type Intent struct {
	Kind       IntentKind `json:"kind"`
	PostalCode string     `json:"cep,omitempty"`
	Term       string     `json:"term,omitempty"`
}

// cepPattern aceita NNNNN-NNN, NNNNN.NNN, NNNNN NNN e NNNNNNNN sem dígitos vizinhos,
// o que impede que uma sequência de 9 dígitos seja lida como CEP.
var cepPattern = regexp.MustCompile(`(?:^|[^0-9])([0-9]{5})[-. ]?([0-9]{3})(?:[^0-9]|$)`)

// Classifier decide a intenção de uma mensagem com regras fixas
type Classifier struct {
	rules *Rules
}

// NewClassifier cria um classificador. Com rules nil, usa as regras embarcadas.
func NewClassifier(rules *Rules) *Classifier {
	if rules == nil {
		rules = defaultRules
	}
	return &Classifier{rules: rules}
}

// Classify classifica usando as regras embarcadas
func Classify(text string) Intent {
	return NewClassifier(nil).Classify(text)
}

// Classify avalia, nesta ordem, saudação, agradecimento, ajuda, CEP e, por fim,
// busca de endereço. A primeira regra que casar vence.
func (c *Classifier) Classify(text string) Intent {
	normalized := Normalize(text)

	if c.isGreeting(normalized) {
		return Intent{Kind: IntentGreeting}
	}
	if containsAny(normalized, c.rules.thanks) {
		return Intent{Kind: IntentThanks}
	}
	if containsAny(normalized, c.rules.help) {
		return Intent{Kind: IntentHelp}
	}
	if cep, ok := ExtractPostalCode(text); ok {
		return Intent{Kind: IntentPostalCodeQuery, PostalCode: cep}
	}

	return Intent{Kind: IntentAddressQuery, Term: c.stripQuestion(normalized)}
}

// ExtractPostalCode procura um CEP no texto e devolve apenas os dígitos
func ExtractPostalCode(text string) (string, bool) {
	m := cepPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}

// isGreeting verifica se o texto é, começa ou termina com uma saudação
func (c *Classifier) isGreeting(normalized string) bool {
	for _, g := range c.rules.greetings {
		if normalized == g ||
			strings.HasPrefix(normalized, g+" ") ||
			strings.HasSuffix(normalized, " "+g) {
			return true
		}
	}
	return false
}

// stripQuestion remove a pergunta inicial mais longa ("qual o cep da ", "onde fica a ", ...).
// Uma pergunta sem complemento ("qual o cep") vira termo vazio.
func (c *Classifier) stripQuestion(normalized string) string {
	padded := normalized + " "
	for _, p := range c.rules.questionPrefixes {
		if strings.HasPrefix(padded, p) {
			return strings.TrimSpace(padded[len(p):])
		}
	}
	return normalized
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
