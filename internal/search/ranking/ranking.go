package ranking

import (
	"sort"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
)

// Scorer pontua registros contra um conjunto fixo de variantes de busca.
// Os bigramas das variantes são calculados uma única vez.
type Scorer struct {
	variants []scoredTerm
}

type scoredTerm struct {
	text    string
	bigrams bigramSet
}

// NewScorer cria um scorer. As variantes devem vir na ordem do gerador;
// a primeira costuma ser o termo normalizado.
func NewScorer(variants []string) *Scorer {
	terms := make([]scoredTerm, 0, len(variants))
	for _, v := range variants {
		n := query.Normalize(v)
		if n == "" {
			continue
		}
		terms = append(terms, scoredTerm{text: n, bigrams: bigrams(n)})
	}
	return &Scorer{variants: terms}
}

// Score retorna a maior similaridade entre qualquer variante e o logradouro
// ou o bairro do registro
func (s *Scorer) Score(rec models.AddressRecord) float64 {
	street := query.Normalize(rec.Street)
	neighborhood := query.Normalize(rec.Neighborhood)
	streetBigrams := bigrams(street)
	neighborhoodBigrams := bigrams(neighborhood)

	best := 0.0
	for _, v := range s.variants {
		best = max(best,
			scoreTerm(v, street, streetBigrams),
			scoreTerm(v, neighborhood, neighborhoodBigrams),
		)
		if best == 1.0 {
			break
		}
	}
	return best
}

func scoreTerm(v scoredTerm, field string, fieldBigrams bigramSet) float64 {
	if field != "" && v.text == field {
		return 1.0
	}
	return dice(v.bigrams, fieldBigrams)
}

// Rank pontua os registros, ordena por score decrescente mantendo a ordem
// original nos empates e corta em limit. limit <= 0 não corta.
func Rank(records []models.AddressRecord, variants []string, limit int) []models.RankedResult {
	scorer := NewScorer(variants)

	results := make([]models.RankedResult, len(records))
	for i, rec := range records {
		results[i] = models.RankedResult{
			AddressRecord: rec,
			Score:         scorer.Score(rec),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
