package synonyms

import "github.com/prefeitura-guaira/app-busca-cep/internal/search/query"

// SynonymGroup representa um grupo de sinônimos
type SynonymGroup struct {
	Root     string   // termo principal
	Synonyms []string // sinônimos
}

// DefaultGroups monta os grupos a partir das regras do pipeline de texto:
// abreviações de tipo de logradouro (av/avenida) e numerais (oito/8).
// Os termos já estão normalizados, como os campos *_busca da collection.
func DefaultGroups(rules *query.Rules) []SynonymGroup {
	if rules == nil {
		rules = query.DefaultRules()
	}

	var groups []SynonymGroup
	for _, g := range rules.AbbreviationGroups() {
		groups = append(groups, SynonymGroup{Root: g[0], Synonyms: g[1:]})
	}
	for _, g := range rules.NumeralGroups() {
		groups = append(groups, SynonymGroup{Root: g[0], Synonyms: g[1:]})
	}
	return groups
}
