package schemas

import (
	"testing"
)

func TestRegistryCurrentVersion(t *testing.T) {
	r := NewRegistry()

	if got := r.GetCurrentVersion(); got != "v2" {
		t.Errorf("GetCurrentVersion() = %q, esperado v2", got)
	}

	versions := r.ListVersions()
	if len(versions) != 2 || versions[0] != "v1" || versions[1] != "v2" {
		t.Errorf("ListVersions() = %v", versions)
	}

	if _, err := r.GetSchema("v9"); err == nil {
		t.Error("GetSchema(v9) deveria falhar")
	}
}

func TestSchemaV2InfixFields(t *testing.T) {
	schema, err := NewRegistry().GetSchema("v2")
	if err != nil {
		t.Fatalf("GetSchema: %v", err)
	}

	infix := map[string]bool{}
	for _, f := range schema.Fields {
		if f.Infix != nil && *f.Infix {
			infix[f.Name] = true
		}
	}
	if !infix["logradouro_busca"] || !infix["bairro_busca"] {
		t.Errorf("campos infix = %v", infix)
	}

	// v1 não pode ser alterado por v2
	for _, f := range SchemaV1().Fields {
		if f.Name == "logradouro_busca" {
			t.Error("SchemaV1 contém logradouro_busca")
		}
	}
}

func TestCollectionSchema(t *testing.T) {
	def := SchemaV2()
	cs := def.CollectionSchema("ceps_guaira")

	if cs.Name != "ceps_guaira" {
		t.Errorf("Name = %q", cs.Name)
	}
	if len(cs.Fields) != len(def.Fields) {
		t.Errorf("Fields = %d, esperado %d", len(cs.Fields), len(def.Fields))
	}
	if cs.DefaultSortingField != nil {
		t.Errorf("DefaultSortingField = %q, esperado nil", *cs.DefaultSortingField)
	}
	if cs.TokenSeparators == nil || len(*cs.TokenSeparators) != 2 {
		t.Errorf("TokenSeparators = %v", cs.TokenSeparators)
	}

	cs.Fields[0].Name = "alterado"
	if def.Fields[0].Name == "alterado" {
		t.Error("CollectionSchema deve copiar os campos")
	}
}
