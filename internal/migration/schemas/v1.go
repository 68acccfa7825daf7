package schemas

import (
	"github.com/typesense/typesense-go/v3/typesense/api"
)

// SchemaV1 é o schema baseline da collection de CEPs, espelho da tabela
// importada: busca apenas por token nos campos originais.
func SchemaV1() *SchemaDefinition {
	return &SchemaDefinition{
		Version: "v1",
		Fields: []api.Field{
			{Name: "cep", Type: "string", Facet: BoolPtr(true)},
			{Name: "logradouro", Type: "string", Facet: BoolPtr(false)},
			{Name: "bairro", Type: "string", Facet: BoolPtr(true)},
			{Name: "localidade", Type: "string", Facet: BoolPtr(true)},
			{Name: "uf", Type: "string", Facet: BoolPtr(true)},
			{Name: "complemento", Type: "string", Facet: BoolPtr(false), Optional: BoolPtr(true)},
		},
	}
}
