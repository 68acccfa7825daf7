// Package importer carrega arquivos CSV de CEPs na base local.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
)

// Columns é a ordem esperada das colunas do CSV
var Columns = []string{"cep", "logradouro", "bairro", "localidade", "uf"}

// RowError descreve uma linha rejeitada
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("linha %d: %s", e.Line, e.Reason)
}

// ReadResult é o conteúdo válido do arquivo e as linhas rejeitadas
type ReadResult struct {
	Records    []models.AddressRecord
	Rejected   []RowError
	Duplicates int
}

// ReadCSV lê registros no formato cep,logradouro,bairro,localidade,uf.
// O cabeçalho é opcional. CEPs aceitam hífen ou ponto e são gravados com 8 dígitos;
// localidade e UF vazias recebem os valores padrão. Um CEP repetido com o mesmo
// logradouro e bairro é descartado.
func ReadCSV(r io.Reader, defaultCity, defaultUF string) (*ReadResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ReadResult{}
	seen := make(map[string]struct{})
	rows := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("erro ao ler CSV: %w", err)
		}
		rows++
		if rows == 1 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}
		line, _ := reader.FieldPos(0)

		rec, reason := parseRow(row, defaultCity, defaultUF)
		if reason != "" {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: reason})
			continue
		}

		key := rec.PostalCode + "|" + strings.ToLower(rec.Street) + "|" + strings.ToLower(rec.Neighborhood)
		if _, dup := seen[key]; dup {
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

func parseRow(row []string, defaultCity, defaultUF string) (models.AddressRecord, string) {
	if len(row) < 3 {
		return models.AddressRecord{}, fmt.Sprintf("esperadas ao menos 3 colunas, encontradas %d", len(row))
	}

	get := func(i int) string {
		if i < len(row) {
			return strings.Join(strings.Fields(row[i]), " ")
		}
		return ""
	}

	cep := utils.DigitsOnly(get(0))
	if !utils.IsValidCEP(cep) {
		return models.AddressRecord{}, fmt.Sprintf("CEP inválido %q", get(0))
	}

	rec := models.AddressRecord{
		PostalCode:   cep,
		Street:       get(1),
		Neighborhood: get(2),
		Locality:     get(3),
		Region:       strings.ToUpper(get(4)),
		Source:       models.SourceLocal,
	}
	if rec.Street == "" && rec.Neighborhood == "" {
		return models.AddressRecord{}, "logradouro e bairro vazios"
	}
	if rec.Locality == "" {
		rec.Locality = defaultCity
	}
	if rec.Region == "" {
		rec.Region = defaultUF
	}
	if len(rec.Region) != 2 {
		return models.AddressRecord{}, fmt.Sprintf("UF inválida %q", rec.Region)
	}
	return rec, ""
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")), "cep")
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
