package query

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules/regras.yaml
var defaultRulesYAML []byte

// Rule é um par (forma encontrada, substituição)
type Rule struct {
	From string `yaml:"de"`
	To   string `yaml:"para"`
}

// ruleFile espelha o arquivo YAML de regras
type ruleFile struct {
	Corrections      []Rule   `yaml:"correcoes"`
	Numerals         []Rule   `yaml:"numerais"`
	StreetPrefixes   []string `yaml:"prefixos_logradouro"`
	Abbreviations    []Rule   `yaml:"abreviacoes"`
	Greetings        []string `yaml:"saudacoes"`
	Thanks           []string `yaml:"agradecimentos"`
	Help             []string `yaml:"ajuda"`
	QuestionPrefixes []string `yaml:"perguntas"`
}

// Rules contém as tabelas de regras já compiladas. É imutável depois de
// criada e pode ser compartilhada entre goroutines.
type Rules struct {
	numeralOrder     []Rule
	corrections      map[string]string
	numerals         map[string]string
	streetPrefixes   []string
	abbreviations    []Rule
	greetings        []string
	thanks           []string
	help             []string
	questionPrefixes []string
}

var defaultRules = mustLoadRules(defaultRulesYAML)

// DefaultRules retorna as regras embarcadas no binário
func DefaultRules() *Rules {
	return defaultRules
}

func mustLoadRules(data []byte) *Rules {
	r, err := LoadRules(data)
	if err != nil {
		panic(fmt.Sprintf("regras embarcadas inválidas: %v", err))
	}
	return r
}

// LoadRules faz o parse e valida um arquivo de regras
func LoadRules(data []byte) (*Rules, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("erro ao ler regras: %w", err)
	}

	corrections, err := buildWordTable("correcoes", f.Corrections)
	if err != nil {
		return nil, err
	}
	// Uma substituição não pode gerar outra forma corrigível, senão o
	// resultado passaria a depender da ordem de aplicação.
	for from, to := range corrections {
		if _, ok := corrections[to]; ok {
			return nil, fmt.Errorf("correcoes: %q -> %q produz outra entrada da tabela", from, to)
		}
	}

	numerals, err := buildWordTable("numerais", f.Numerals)
	if err != nil {
		return nil, err
	}

	for _, p := range f.StreetPrefixes {
		if p == "" || !strings.HasSuffix(p, " ") {
			return nil, fmt.Errorf("prefixos_logradouro: %q deve terminar com espaço", p)
		}
	}
	for _, a := range f.Abbreviations {
		if !strings.HasSuffix(a.From, " ") || !strings.HasSuffix(a.To, " ") {
			return nil, fmt.Errorf("abreviacoes: %q -> %q devem terminar com espaço", a.From, a.To)
		}
	}

	return &Rules{
		numeralOrder:     f.Numerals,
		corrections:      corrections,
		numerals:         numerals,
		streetPrefixes:   f.StreetPrefixes,
		abbreviations:    f.Abbreviations,
		greetings:        f.Greetings,
		thanks:           f.Thanks,
		help:             f.Help,
		questionPrefixes: sortByLengthDesc(f.QuestionPrefixes),
	}, nil
}

func buildWordTable(name string, rules []Rule) (map[string]string, error) {
	table := make(map[string]string, len(rules))
	for _, r := range rules {
		if r.From == "" || r.To == "" {
			return nil, fmt.Errorf("%s: entrada vazia", name)
		}
		if strings.Contains(r.From, " ") {
			return nil, fmt.Errorf("%s: %q deve ser uma única palavra", name, r.From)
		}
		if Normalize(r.From) != r.From {
			return nil, fmt.Errorf("%s: %q não está normalizada", name, r.From)
		}
		if _, dup := table[r.From]; dup {
			return nil, fmt.Errorf("%s: %q duplicada", name, r.From)
		}
		table[r.From] = r.To
	}
	return table, nil
}

// sortByLengthDesc ordena do maior para o menor, mantendo a ordem do arquivo em empates
func sortByLengthDesc(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// StreetPrefixes retorna os prefixos de tipo de logradouro (com espaço final)
func (r *Rules) StreetPrefixes() []string {
	out := make([]string, len(r.streetPrefixes))
	copy(out, r.streetPrefixes)
	return out
}

// AbbreviationGroups retorna pares abreviação/forma completa sem o espaço final,
// no formato usado para cadastrar sinônimos
func (r *Rules) AbbreviationGroups() [][]string {
	groups := make([][]string, 0, len(r.abbreviations))
	for _, a := range r.abbreviations {
		groups = append(groups, []string{strings.TrimSpace(a.To), strings.TrimSpace(a.From)})
	}
	return groups
}

// NumeralGroups agrupa os numerais por extenso pelo valor em dígitos,
// na ordem do arquivo. Ex.: ["1", "um", "uma"].
func (r *Rules) NumeralGroups() [][]string {
	index := make(map[string]int)
	var groups [][]string
	for _, n := range r.numeralOrder {
		i, ok := index[n.To]
		if !ok {
			i = len(groups)
			index[n.To] = i
			groups = append(groups, []string{n.To})
		}
		groups[i] = append(groups[i], n.From)
	}
	return groups
}

// replaceWords substitui palavras inteiras de um texto já normalizado
func replaceWords(normalized string, table map[string]string) string {
	if normalized == "" {
		return normalized
	}
	words := strings.Split(normalized, " ")
	for i, w := range words {
		if rep, ok := table[w]; ok {
			words[i] = rep
		}
	}
	return strings.Join(words, " ")
}
