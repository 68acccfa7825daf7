package query

// ParsedQuery representa uma busca de endereço processada pelo pipeline de texto
type ParsedQuery struct {
	Original   string   // texto digitado
	Normalized string   // minúsculas, sem acento e sem pontuação
	Corrected  string   // após a tabela de correções
	Expanded   string   // corrigido e com numerais por extenso trocados por dígitos
	Variants   []string // strings a consultar, em ordem determinística
}

// Parser processa termos de busca com um conjunto de regras
type Parser struct {
	rules *Rules
}

// NewParser cria um parser. Com rules nil, usa as regras embarcadas.
func NewParser(rules *Rules) *Parser {
	if rules == nil {
		rules = defaultRules
	}
	return &Parser{rules: rules}
}

// Parse executa normalização, correção, expansão de numerais e geração de variantes
func (p *Parser) Parse(term string) *ParsedQuery {
	normalized := Normalize(term)
	corrected := p.rules.Correct(normalized)

	return &ParsedQuery{
		Original:   term,
		Normalized: normalized,
		Corrected:  corrected,
		Expanded:   p.rules.ExpandNumerals(corrected),
		Variants:   p.rules.GenerateVariants(term),
	}
}

// Rules retorna as regras usadas pelo parser
func (p *Parser) Rules() *Rules {
	return p.rules
}
