package ranking

import (
	"fmt"
	"testing"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
)

func record(cep, street, neighborhood string) models.AddressRecord {
	return models.AddressRecord{
		PostalCode:   cep,
		Street:       street,
		Neighborhood: neighborhood,
		Locality:     "Guaíra",
		Region:       "SP",
		Source:       models.SourceLocal,
	}
}

func TestRankDigitLetterStreet(t *testing.T) {
	records := []models.AddressRecord{
		record("14790000", "Rua Brasil", "Centro"),
		record("14790001", "Avenida 1-A", "Jardim Maracá"),
		record("14790002", "Avenida 11", "Centro"),
	}

	results := Rank(records, query.GenerateVariants("av 1a"), 5)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].PostalCode != "14790001" {
		t.Errorf("results[0] = %q, want Avenida 1-A", results[0].Street)
	}
	if results[0].Score < 0.5 {
		t.Errorf("results[0].Score = %v, want >= 0.5", results[0].Score)
	}
}

func TestRankNeighborhoodField(t *testing.T) {
	records := []models.AddressRecord{
		record("14790000", "Rua Sete", "Vila Nova"),
		record("14790001", "Rua Oito", "Centro"),
	}

	results := Rank(records, query.GenerateVariants("centro"), 0)

	if results[0].PostalCode != "14790001" || results[0].Score != 1.0 {
		t.Errorf("results[0] = %+v, want o registro do bairro Centro com score 1", results[0])
	}
}

func TestRankStableOnTies(t *testing.T) {
	records := []models.AddressRecord{
		record("14790003", "Rua Brasil", "Centro"),
		record("14790001", "RUA BRASIL", "Centro"),
		record("14790002", "rua brasil", "Centro"),
	}

	results := Rank(records, query.GenerateVariants("rua brasil"), 0)

	want := []string{"14790003", "14790001", "14790002"}
	for i, cep := range want {
		if results[i].PostalCode != cep {
			t.Errorf("results[%d] = %q, want %q", i, results[i].PostalCode, cep)
		}
	}
}

func TestRankCap(t *testing.T) {
	var records []models.AddressRecord
	for i := 0; i < 12; i++ {
		records = append(records, record(fmt.Sprintf("147900%02d", i), fmt.Sprintf("Rua Brasil %d", i), "Centro"))
	}
	// o mais parecido fica no fim da lista de entrada
	records = append(records, record("14790099", "Rua Brasil", "Centro"))

	results := Rank(records, query.GenerateVariants("rua brasil"), 5)

	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want 5", len(results))
	}
	if results[0].PostalCode != "14790099" {
		t.Errorf("results[0] = %q, want 14790099", results[0].PostalCode)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results fora de ordem em %d: %v > %v", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	if results := Rank(nil, []string{"rua brasil"}, 5); len(results) != 0 {
		t.Errorf("Rank(nil) = %v, want vazio", results)
	}
}
