package synonyms

import (
	"testing"

	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
)

func TestDefaultGroups(t *testing.T) {
	groups := DefaultGroups(nil)

	want := map[string][]string{
		"avenida": {"av"},
		"rua":     {"r"},
		"8":       {"oito"},
		"14":      {"catorze", "quatorze"},
	}

	byRoot := make(map[string][]string, len(groups))
	for _, g := range groups {
		if _, dup := byRoot[g.Root]; dup {
			t.Errorf("root %q duplicado", g.Root)
		}
		byRoot[g.Root] = g.Synonyms
	}

	for root, syns := range want {
		got, ok := byRoot[root]
		if !ok {
			t.Errorf("grupo %q ausente", root)
			continue
		}
		if len(got) != len(syns) {
			t.Errorf("grupo %q = %v, esperado %v", root, got, syns)
			continue
		}
		for i := range syns {
			if got[i] != syns[i] {
				t.Errorf("grupo %q = %v, esperado %v", root, got, syns)
			}
		}
	}
}

func TestDefaultGroupsCustomRules(t *testing.T) {
	rules, err := query.LoadRules([]byte(`
abreviacoes:
  - { de: "est ", para: "estrada " }
`))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	groups := DefaultGroups(rules)
	if len(groups) != 1 || groups[0].Root != "estrada" || groups[0].Synonyms[0] != "est" {
		t.Errorf("DefaultGroups() = %v", groups)
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"avenida", "syn_avenida"},
		{"Praça", "syn_praca"},
		{"Jardim América", "syn_jardim_america"},
		{"8", "syn_num_8"},
	}

	for _, tt := range tests {
		if got := SanitizeID(tt.input); got != tt.expected {
			t.Errorf("SanitizeID(%q) = %q, esperado %q", tt.input, got, tt.expected)
		}
	}
}
