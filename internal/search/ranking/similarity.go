package ranking

import (
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
)

// Similarity calcula o coeficiente de Dice entre os bigramas de caracteres
// das formas normalizadas de a e b. O resultado está em [0, 1] e é simétrico.
//
// Strings iguais e não vazias depois da normalização valem 1; se qualquer uma
// normalizar para vazio ou tiver menos de 2 caracteres (sem bigramas), vale 0.
func Similarity(a, b string) float64 {
	return diceNormalized(query.Normalize(a), query.Normalize(b))
}

func diceNormalized(na, nb string) float64 {
	if na != "" && na == nb {
		return 1.0
	}
	return dice(bigrams(na), bigrams(nb))
}

// bigramSet é o conjunto de bigramas distintos de uma string
type bigramSet map[string]struct{}

// bigrams desliza uma janela de 2 caracteres sobre s; vazio se len(s) < 2
func bigrams(s string) bigramSet {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	set := make(bigramSet, len(r)-1)
	for i := 0; i < len(r)-1; i++ {
		set[string(r[i:i+2])] = struct{}{}
	}
	return set
}

func dice(a, b bigramSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for bg := range small {
		if _, ok := large[bg]; ok {
			shared++
		}
	}

	return 2.0 * float64(shared) / float64(len(a)+len(b))
}
