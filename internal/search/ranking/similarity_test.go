package ranking

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"brasil", "brasil", 1.0},
		{"a", "a", 1.0},
		{"Avenida Brasil", "avenida brasil", 1.0},
		{"Praça São João", "praca sao joao", 1.0},
		{"", "x", 0.0},
		{"x", "", 0.0},
		{"", "", 0.0},
		// só pontuação normaliza para vazio
		{"!", "!", 0.0},
		{"!", "?", 0.0},
		{"a", "ab", 0.0},
		{"night", "nacht", 0.25},
		// bigramas repetidos contam uma vez
		{"aa", "aaa", 1.0},
		{"abc", "xyz", 0.0},
	}

	for _, test := range tests {
		result := Similarity(test.a, test.b)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v; expected %v", test.a, test.b, result, test.expected)
		}
	}
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	words := []string{"rua brasil", "Avenida 1-A", "av 1a", "centro", "jardim maraca", "x", "", "travessa oito"}

	for _, a := range words {
		for _, b := range words {
			ab := Similarity(a, b)
			ba := Similarity(b, a)
			if ab != ba {
				t.Errorf("Similarity(%q, %q) = %v, mas Similarity(%q, %q) = %v", a, b, ab, b, a, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("Similarity(%q, %q) = %v fora de [0, 1]", a, b, ab)
			}
		}
		if a != "" && Similarity(a, a) != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v; expected 1", a, a, Similarity(a, a))
		}
	}
}
