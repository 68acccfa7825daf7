package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
)

const sampleCSV = `cep,logradouro,bairro,localidade,uf
14790-000,Rua 8,Centro,Guaíra,SP
14790.030, Avenida  1-A ,Centro,,
14790030,Avenida 1-A,Centro,Guaíra,SP
1479,Rua Sem CEP,Centro,Guaíra,SP
14790050,,,Guaíra,SP

14790060,Rua 10,Maracá,Guaíra,SAO
`

func TestReadCSV(t *testing.T) {
	result, err := ReadCSV(strings.NewReader(sampleCSV), "Guaíra", "SP")
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, models.AddressRecord{
		PostalCode: "14790000", Street: "Rua 8", Neighborhood: "Centro",
		Locality: "Guaíra", Region: "SP", Source: models.SourceLocal,
	}, result.Records[0])

	// espaços extras são removidos e localidade/UF vazias recebem o padrão
	assert.Equal(t, "14790030", result.Records[1].PostalCode)
	assert.Equal(t, "Avenida 1-A", result.Records[1].Street)
	assert.Equal(t, "Guaíra", result.Records[1].Locality)
	assert.Equal(t, "SP", result.Records[1].Region)

	assert.Equal(t, 1, result.Duplicates)
	require.Len(t, result.Rejected, 3)
	assert.Equal(t, 5, result.Rejected[0].Line)
	assert.Contains(t, result.Rejected[0].Error(), "CEP inválido")
	assert.Contains(t, result.Rejected[1].Reason, "vazios")
	assert.Contains(t, result.Rejected[2].Reason, "UF inválida")
	assert.Equal(t, 8, result.Rejected[2].Line, "linhas em branco contam na numeração")
}

func TestReadCSVWithoutHeader(t *testing.T) {
	result, err := ReadCSV(strings.NewReader("14790000,Rua 8,Centro\n"), "Guaíra", "SP")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "SP", result.Records[0].Region)
}

type fakeSink struct {
	prepared bool
	batches  [][]models.AddressRecord
	failAt   int
}

func (f *fakeSink) Name() string { return "fake" }

func (f *fakeSink) Prepare(ctx context.Context) error {
	f.prepared = true
	return nil
}

func (f *fakeSink) Write(ctx context.Context, batch []models.AddressRecord) (int, error) {
	if f.failAt > 0 && len(f.batches)+1 == f.failAt {
		return 0, errors.New("conexão perdida")
	}
	f.batches = append(f.batches, batch)
	return len(batch), nil
}

func records(n int) []models.AddressRecord {
	out := make([]models.AddressRecord, n)
	for i := range out {
		out[i] = models.AddressRecord{PostalCode: "14790000", Street: "Rua"}
	}
	return out
}

func TestImporterRun(t *testing.T) {
	sink := &fakeSink{}
	im := NewImporter(sink, 2, false, nil)

	stats, err := im.Run(context.Background(), &ReadResult{
		Records:  records(5),
		Rejected: []RowError{{Line: 3, Reason: "CEP inválido"}},
	})
	require.NoError(t, err)

	assert.True(t, sink.prepared)
	assert.Len(t, sink.batches, 3)
	assert.Equal(t, 5, stats.Written)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 6, stats.Read)
	assert.Equal(t, 1, stats.Rejected)
}

func TestImporterDryRun(t *testing.T) {
	sink := &fakeSink{}
	stats, err := NewImporter(sink, 2, true, nil).Run(context.Background(), &ReadResult{Records: records(3)})
	require.NoError(t, err)

	assert.False(t, sink.prepared)
	assert.Empty(t, sink.batches)
	assert.Equal(t, 0, stats.Written)
}

func TestImporterStopsOnError(t *testing.T) {
	sink := &fakeSink{failAt: 2}
	stats, err := NewImporter(sink, 2, false, nil).Run(context.Background(), &ReadResult{Records: records(5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lote 2")
	assert.Equal(t, 2, stats.Written)
}
