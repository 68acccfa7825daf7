package schemas

import (
	"github.com/typesense/typesense-go/v3/typesense/api"
)

// SchemaV2 acrescenta os campos normalizados logradouro_busca e bairro_busca,
// indexados com infix para a busca por substring.
func SchemaV2() *SchemaDefinition {
	v1 := SchemaV1()

	fields := append(v1.Fields,
		api.Field{Name: "logradouro_busca", Type: "string", Facet: BoolPtr(false), Infix: BoolPtr(true)},
		api.Field{Name: "bairro_busca", Type: "string", Facet: BoolPtr(false), Infix: BoolPtr(true)},
	)

	return &SchemaDefinition{
		Version:         "v2",
		Fields:          fields,
		TokenSeparators: []string{"-", "/"},
	}
}
